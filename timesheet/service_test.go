package timesheet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skyraksys.com/hrm/model"
	"skyraksys.com/hrm/utils"
)

type fixture struct {
	store *memStore
	dir   *memDirectory
	svc   *Service

	admin   *model.Employee
	hr      *model.Employee
	manager *model.Employee
	dev     *model.Employee
	qa      *model.Employee

	project      *model.Project
	devTask      *model.Task
	reviewTask   *model.Task
	qaTask       *model.Task
	inactiveTask *model.Task
}

func newFixture() *fixture {
	dir := newMemDirectory()
	store := newMemStore(dir)

	f := &fixture{
		store: store,
		dir:   dir,
		svc:   NewService(store, dir, zap.NewNop()),
	}

	f.admin = f.addEmployee("EMP001", model.RoleAdmin, nil)
	f.hr = f.addEmployee("EMP002", model.RoleHR, nil)
	f.manager = f.addEmployee("EMP003", model.RoleManager, nil)
	f.dev = f.addEmployee("EMP004", model.RoleEmployee, &f.manager.ID)
	f.qa = f.addEmployee("EMP005", model.RoleEmployee, &f.manager.ID)

	f.project = &model.Project{ID: uuid.New(), Name: "Orbital Platform", IsActive: true}
	dir.projects[f.project.ID] = f.project

	f.devTask = f.addTask("Development", true, nil, true)
	f.reviewTask = f.addTask("Code Review", true, nil, true)
	f.qaTask = f.addTask("QA Signoff", false, &f.qa.ID, true)
	f.inactiveTask = f.addTask("Legacy Cleanup", true, nil, false)

	return f
}

func (f *fixture) addEmployee(code string, role model.Role, managerID *uuid.UUID) *model.Employee {
	e := &model.Employee{
		ID:        uuid.New(),
		Code:      code,
		FirstName: code,
		LastName:  "Example",
		Email:     code + "@skyraksys.com",
		Role:      role,
		Status:    model.EmployeeActive,
		ManagerID: managerID,
	}
	f.dir.employees[e.ID] = e
	return e
}

func (f *fixture) addTask(name string, availableToAll bool, assignedTo *uuid.UUID, active bool) *model.Task {
	t := &model.Task{
		ID:             uuid.New(),
		ProjectID:      f.project.ID,
		Name:           name,
		IsActive:       active,
		AvailableToAll: availableToAll,
		AssignedTo:     assignedTo,
	}
	f.dir.tasks[t.ID] = t
	return t
}

func (f *fixture) as(e *model.Employee) Actor {
	return Actor{EmployeeID: e.ID, Role: e.Role}
}

var (
	testWeek      = utils.MustParseDate("2026-08-24")
	standardHours = DayHours{Monday: 8, Tuesday: 8, Wednesday: 8, Thursday: 8, Friday: 8}
)

func (f *fixture) draft(t *testing.T, e *model.Employee, task *model.Task, hours DayHours) *model.Timesheet {
	t.Helper()
	entry, err := f.svc.CreateOrUpdateDraft(context.Background(), f.as(e), DraftInput{
		ProjectID:     f.project.ID,
		TaskID:        task.ID,
		WeekStartDate: testWeek,
		Hours:         hours,
	})
	require.NoError(t, err)
	return entry
}

func TestCreateDraft(t *testing.T) {
	f := newFixture()

	entry := f.draft(t, f.dev, f.devTask, standardHours)

	assert.Equal(t, model.StatusDraft, entry.Status)
	assert.Equal(t, f.dev.ID, entry.EmployeeID)
	assert.Equal(t, testWeek, entry.WeekStartDate)
	assert.Equal(t, utils.MustParseDate("2026-08-30"), entry.WeekEndDate)
	assert.Equal(t, 35, entry.WeekNumber)
	assert.Equal(t, 2026, entry.Year)
	assert.Equal(t, 40.0, entry.TotalHoursWorked)
}

func TestCreateDraftNormalizesMidweekDate(t *testing.T) {
	f := newFixture()

	entry, err := f.svc.CreateOrUpdateDraft(context.Background(), f.as(f.dev), DraftInput{
		ProjectID:     f.project.ID,
		TaskID:        f.devTask.ID,
		WeekStartDate: utils.MustParseDate("2026-08-27"), // a Thursday
		Hours:         standardHours,
	})
	require.NoError(t, err)
	assert.Equal(t, testWeek, entry.WeekStartDate)
}

func TestCreateDraftUpsertsExistingDraft(t *testing.T) {
	f := newFixture()

	first := f.draft(t, f.dev, f.devTask, standardHours)
	second := f.draft(t, f.dev, f.devTask, DayHours{Monday: 4})

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4.0, second.TotalHoursWorked)
}

func TestCreateDraftValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateOrUpdateDraft(context.Background(), f.as(f.dev), DraftInput{
		ProjectID:     f.project.ID,
		TaskID:        f.devTask.ID,
		WeekStartDate: testWeek,
		Hours:         DayHours{Tuesday: -1},
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateDraftUnknownReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateOrUpdateDraft(ctx, f.as(f.dev), DraftInput{
		ProjectID: uuid.New(), TaskID: f.devTask.ID, WeekStartDate: testWeek,
	})
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = f.svc.CreateOrUpdateDraft(ctx, f.as(f.dev), DraftInput{
		ProjectID: f.project.ID, TaskID: uuid.New(), WeekStartDate: testWeek,
	})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateDraftTaskAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Assigned to qa, dev may not log against it.
	_, err := f.svc.CreateOrUpdateDraft(ctx, f.as(f.dev), DraftInput{
		ProjectID: f.project.ID, TaskID: f.qaTask.ID, WeekStartDate: testWeek, Hours: standardHours,
	})
	assert.Equal(t, KindAccessDenied, KindOf(err))

	// The assignee may.
	_, err = f.svc.CreateOrUpdateDraft(ctx, f.as(f.qa), DraftInput{
		ProjectID: f.project.ID, TaskID: f.qaTask.ID, WeekStartDate: testWeek, Hours: standardHours,
	})
	assert.NoError(t, err)

	// Inactive tasks are closed to everyone.
	_, err = f.svc.CreateOrUpdateDraft(ctx, f.as(f.dev), DraftInput{
		ProjectID: f.project.ID, TaskID: f.inactiveTask.ID, WeekStartDate: testWeek, Hours: standardHours,
	})
	assert.Equal(t, KindAccessDenied, KindOf(err))
}

func TestCreateDraftOnBehalf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Only admins may file for someone else.
	_, err := f.svc.CreateOrUpdateDraft(ctx, f.as(f.dev), DraftInput{
		EmployeeID: &f.qa.ID,
		ProjectID:  f.project.ID, TaskID: f.devTask.ID, WeekStartDate: testWeek, Hours: standardHours,
	})
	assert.Equal(t, KindPermissionError, KindOf(err))

	entry, err := f.svc.CreateOrUpdateDraft(ctx, f.as(f.admin), DraftInput{
		EmployeeID: &f.qa.ID,
		ProjectID:  f.project.ID, TaskID: f.devTask.ID, WeekStartDate: testWeek, Hours: standardHours,
	})
	require.NoError(t, err)
	assert.Equal(t, f.qa.ID, entry.EmployeeID)
}

func TestCreateDraftBlockedByNonDraftEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)
	_, err := f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateOrUpdateDraft(ctx, f.as(f.dev), DraftInput{
		ProjectID: f.project.ID, TaskID: f.devTask.ID, WeekStartDate: testWeek, Hours: standardHours,
	})
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Contains(t, err.Error(), "submitted entry already exists")
}

func TestUpdateDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)

	updated, err := f.svc.UpdateDraft(ctx, f.as(f.dev), entry.ID, UpdateInput{
		FridayHours: utils.Ptr(4.0),
		Description: utils.Ptr("half friday"),
	})
	require.NoError(t, err)
	assert.Equal(t, 36.0, updated.TotalHoursWorked)
	assert.Equal(t, "half friday", updated.Description)

	// Someone else's draft is out of reach.
	_, err = f.svc.UpdateDraft(ctx, f.as(f.qa), entry.ID, UpdateInput{MondayHours: utils.Ptr(1.0)})
	assert.Equal(t, KindPermissionError, KindOf(err))

	// Admins can edit anyone's draft.
	_, err = f.svc.UpdateDraft(ctx, f.as(f.admin), entry.ID, UpdateInput{MondayHours: utils.Ptr(7.5)})
	assert.NoError(t, err)
}

func TestUpdateDraftOnlyDrafts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)
	_, err := f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateDraft(ctx, f.as(f.dev), entry.ID, UpdateInput{MondayHours: utils.Ptr(1.0)})
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestSubmit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)

	submitted, err := f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	// Submitting twice fails on status.
	_, err = f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestSubmitZeroHours(t *testing.T) {
	f := newFixture()

	entry := f.draft(t, f.dev, f.devTask, DayHours{})

	_, err := f.svc.Submit(context.Background(), f.as(f.dev), entry.ID)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "zero hours")
}

func TestSubmitWithSiblingDraftsRequiresBulk(t *testing.T) {
	f := newFixture()

	entry := f.draft(t, f.dev, f.devTask, standardHours)
	f.draft(t, f.dev, f.reviewTask, DayHours{Monday: 2})

	_, err := f.svc.Submit(context.Background(), f.as(f.dev), entry.ID)
	require.Error(t, err)

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindRequiresBulk, domainErr.Kind)
	assert.Equal(t, 1, domainErr.SiblingDrafts)

	// Nothing was transitioned.
	current, err := f.store.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, current.Status)
}

func TestBulkSubmitWholeWeek(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := f.draft(t, f.dev, f.devTask, standardHours)
	second := f.draft(t, f.dev, f.reviewTask, DayHours{Monday: 2})

	result, err := f.svc.BulkSubmit(ctx, f.as(f.dev), []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, result.Failed)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		current, err := f.store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.StatusSubmitted, current.Status)
	}
}

func TestBulkSubmitMixedStatuses(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := f.draft(t, f.dev, f.devTask, standardHours)
	second := f.draft(t, f.dev, f.reviewTask, DayHours{Monday: 2})
	_, err := f.svc.BulkSubmit(ctx, f.as(f.dev), []uuid.UUID{first.ID})
	require.NoError(t, err)

	result, err := f.svc.BulkSubmit(ctx, f.as(f.dev), []uuid.UUID{first.ID, second.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)

	require.Len(t, result.Items, 3)
	require.NotNil(t, result.Items[0].Error)
	assert.Equal(t, KindInvalidState, result.Items[0].Error.Kind)
	assert.Nil(t, result.Items[1].Error)
	require.NotNil(t, result.Items[2].Error)
	assert.Equal(t, KindNotFound, result.Items[2].Error.Kind)
}

func TestApprovePermissions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)
	_, err := f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)

	// A plain employee cannot approve at all.
	_, err = f.svc.Approve(ctx, f.as(f.qa), entry.ID, "")
	assert.Equal(t, KindPermissionError, KindOf(err))

	// The direct manager can.
	approved, err := f.svc.Approve(ctx, f.as(f.manager), entry.ID, "looks right")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, f.manager.ID, *approved.ApprovedBy)
	assert.Equal(t, "looks right", approved.ApproverComments)
}

func TestApproveScopeAndSelfApproval(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// otherManager manages nobody here.
	otherManager := f.addEmployee("EMP006", model.RoleManager, nil)

	entry := f.draft(t, f.dev, f.devTask, standardHours)
	_, err := f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.as(otherManager), entry.ID, "")
	assert.Equal(t, KindPermissionError, KindOf(err))

	// HR may approve anyone's entry.
	_, err = f.svc.Approve(ctx, f.as(f.hr), entry.ID, "")
	assert.NoError(t, err)

	// Nobody approves their own entry, not even an admin.
	adminEntry, err := f.svc.CreateOrUpdateDraft(ctx, f.as(f.admin), DraftInput{
		ProjectID: f.project.ID, TaskID: f.devTask.ID, WeekStartDate: testWeek, Hours: standardHours,
	})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.as(f.admin), adminEntry.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, f.as(f.admin), adminEntry.ID, "")
	assert.Equal(t, KindPermissionError, KindOf(err))
}

func TestApproveOnlySubmitted(t *testing.T) {
	f := newFixture()

	entry := f.draft(t, f.dev, f.devTask, standardHours)

	_, err := f.svc.Approve(context.Background(), f.as(f.manager), entry.ID, "")
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestRejectRequiresComments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)
	_, err := f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, f.as(f.manager), entry.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	rejected, err := f.svc.Reject(ctx, f.as(f.manager), entry.ID, "friday is overstated")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	assert.Equal(t, "friday is overstated", rejected.ApproverComments)
	assert.Nil(t, rejected.ApprovedAt)
}

func TestResubmitOnlyFromRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)

	// Draft entries cannot be resubmitted.
	_, err := f.svc.Resubmit(ctx, f.as(f.dev), entry.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))

	_, err = f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, f.as(f.manager), entry.ID, "redo friday")
	require.NoError(t, err)

	back, err := f.svc.Resubmit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, back.Status)
	assert.Nil(t, back.RejectedAt)
	assert.Nil(t, back.SubmittedAt)
	assert.Empty(t, back.ApproverComments)
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)
	require.Equal(t, 40.0, entry.TotalHoursWorked)

	_, err := f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, f.as(f.manager), entry.ID, "friday was a public holiday")
	require.NoError(t, err)

	_, err = f.svc.Resubmit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)

	updated, err := f.svc.UpdateDraft(ctx, f.as(f.dev), entry.ID, UpdateInput{
		FridayHours: utils.Ptr(4.0),
	})
	require.NoError(t, err)
	require.Equal(t, 36.0, updated.TotalHoursWorked)

	_, err = f.svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.NoError(t, err)

	final, err := f.svc.Approve(ctx, f.as(f.manager), entry.ID, "")
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, final.Status)
	assert.Equal(t, 36.0, final.TotalHoursWorked)
	assert.NotNil(t, final.ApprovedAt)
	assert.Nil(t, final.RejectedAt)
}

func TestBulkSaveReportsPerItemFailures(t *testing.T) {
	f := newFixture()

	inputs := []DraftInput{
		{ProjectID: f.project.ID, TaskID: f.devTask.ID, WeekStartDate: testWeek, Hours: standardHours},
		{ProjectID: f.project.ID, TaskID: f.reviewTask.ID, WeekStartDate: testWeek, Hours: DayHours{Tuesday: -1}},
		{ProjectID: f.project.ID, TaskID: f.qaTask.ID, WeekStartDate: testWeek, Hours: DayHours{Monday: 2}},
	}

	result, err := f.svc.BulkSave(context.Background(), f.as(f.qa), inputs)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, result.Items, 3)
	assert.Nil(t, result.Items[0].Error)
	require.NotNil(t, result.Items[1].Error)
	assert.Equal(t, KindValidation, result.Items[1].Error.Kind)
	assert.Contains(t, result.Items[1].Error.Message, "Tuesday")
	assert.Nil(t, result.Items[2].Error)
}

func TestBulkSaveEmpty(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BulkSave(context.Background(), f.as(f.dev), nil)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestBulkRejectRequiresComments(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BulkReject(context.Background(), f.as(f.manager), []uuid.UUID{uuid.New()}, "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestListScoping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.draft(t, f.dev, f.devTask, standardHours)
	f.draft(t, f.qa, f.qaTask, DayHours{Monday: 3})

	outsider := f.addEmployee("EMP007", model.RoleEmployee, nil)
	f.draft(t, outsider, f.devTask, DayHours{Monday: 1})

	// Employees see their own entries only.
	entries, total, err := f.svc.List(ctx, f.as(f.dev), ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, f.dev.ID, entries[0].EmployeeID)

	// Asking for someone else's is refused.
	_, _, err = f.svc.List(ctx, f.as(f.dev), ListQuery{EmployeeID: &f.qa.ID})
	assert.Equal(t, KindPermissionError, KindOf(err))

	// A manager sees their reports and themselves, not the outsider.
	_, total, err = f.svc.List(ctx, f.as(f.manager), ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, _, err = f.svc.List(ctx, f.as(f.manager), ListQuery{EmployeeID: &outsider.ID})
	assert.Equal(t, KindPermissionError, KindOf(err))

	// HR sees everything.
	_, total, err = f.svc.List(ctx, f.as(f.hr), ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestGetByIDReadScope(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.qa, f.qaTask, standardHours)

	_, err := f.svc.GetByID(ctx, f.as(f.qa), entry.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, f.as(f.manager), entry.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, f.as(f.dev), entry.ID)
	assert.Equal(t, KindPermissionError, KindOf(err))

	_, err = f.svc.GetByID(ctx, f.as(f.hr), uuid.New())
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestPendingQueue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	devEntry := f.draft(t, f.dev, f.devTask, standardHours)
	qaEntry := f.draft(t, f.qa, f.qaTask, DayHours{Monday: 3})
	_, err := f.svc.Submit(ctx, f.as(f.dev), devEntry.ID)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.as(f.qa), qaEntry.ID)
	require.NoError(t, err)

	// An employee gets no queue at all.
	_, err = f.svc.ListPendingForApprover(ctx, f.as(f.dev), PendingFilter{})
	assert.Equal(t, KindPermissionError, KindOf(err))

	queue, err := f.svc.ListPendingForApprover(ctx, f.as(f.manager), PendingFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, queue.TotalPending)
	assert.Equal(t, 43.0, queue.TotalHours)
	assert.Equal(t, 2, queue.Employees)

	// A manager with no reports has an empty queue even with an explicit
	// employee filter.
	otherManager := f.addEmployee("EMP008", model.RoleManager, nil)
	queue, err = f.svc.ListPendingForApprover(ctx, f.as(otherManager), PendingFilter{EmployeeID: &f.dev.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, queue.TotalPending)
}

func TestSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	devEntry := f.draft(t, f.dev, f.devTask, standardHours)
	f.draft(t, f.dev, f.reviewTask, DayHours{Monday: 2})
	_, err := f.svc.BulkSubmit(ctx, f.as(f.dev), []uuid.UUID{devEntry.ID})
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx, f.as(f.dev), nil, 2026)
	require.NoError(t, err)

	assert.EqualValues(t, 1, summary[model.StatusDraft].Count)
	assert.Equal(t, 2.0, summary[model.StatusDraft].TotalHours)
	assert.EqualValues(t, 1, summary[model.StatusSubmitted].Count)
	assert.Equal(t, 40.0, summary[model.StatusSubmitted].TotalHours)
	assert.EqualValues(t, 0, summary[model.StatusApproved].Count)
}

func TestTransitionConflictReportsCurrentStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := f.draft(t, f.dev, f.devTask, standardHours)

	// Flip the row under the service between its read and its write.
	svc := NewService(&racingStore{memStore: f.store}, f.dir, zap.NewNop())
	_, err := svc.Submit(ctx, f.as(f.dev), entry.ID)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

// racingStore approves the entry behind the caller's back right before
// every Transition, so the compare-and-swap always misses.
type racingStore struct {
	*memStore
}

func (s *racingStore) Transition(ctx context.Context, id uuid.UUID, from model.TimesheetStatus, updates map[string]any) (bool, error) {
	s.mu.Lock()
	if e, ok := s.entries[id]; ok {
		e.Status = model.StatusApproved
	}
	s.mu.Unlock()
	return s.memStore.Transition(ctx, id, from, updates)
}
