package timesheet

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"skyraksys.com/hrm/model"
)

// Actor identifies the caller of an operation: the employee record behind
// the authenticated user plus their role.
type Actor struct {
	EmployeeID uuid.UUID
	Role       model.Role
}

func (a Actor) isAdmin() bool {
	return a.Role == model.RoleAdmin
}

func (a Actor) canModerate() bool {
	return a.Role == model.RoleAdmin || a.Role == model.RoleHR || a.Role == model.RoleManager
}

// DraftInput carries everything needed to create or upsert a weekly draft.
// EmployeeID is optional: only admins may file on another employee's behalf.
type DraftInput struct {
	EmployeeID    *uuid.UUID `json:"employeeId,omitempty"`
	ProjectID     uuid.UUID  `json:"projectId"`
	TaskID        uuid.UUID  `json:"taskId"`
	WeekStartDate time.Time  `json:"weekStartDate"`
	Hours         DayHours   `json:"hours"`
	Description   string     `json:"description"`
}

// UpdateInput is a partial edit of a draft. Nil fields keep their value.
type UpdateInput struct {
	TaskID         *uuid.UUID `json:"taskId,omitempty"`
	MondayHours    *float64   `json:"mondayHours,omitempty"`
	TuesdayHours   *float64   `json:"tuesdayHours,omitempty"`
	WednesdayHours *float64   `json:"wednesdayHours,omitempty"`
	ThursdayHours  *float64   `json:"thursdayHours,omitempty"`
	FridayHours    *float64   `json:"fridayHours,omitempty"`
	SaturdayHours  *float64   `json:"saturdayHours,omitempty"`
	SundayHours    *float64   `json:"sundayHours,omitempty"`
	Description    *string    `json:"description,omitempty"`
}

// Service runs the weekly entry lifecycle. All state transitions go through
// the store's status-guarded Transition so concurrent writers cannot race a
// row out from under a precondition.
type Service struct {
	store Store
	dir   Directory
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, dir Directory, log *zap.Logger) *Service {
	return &Service{
		store: store,
		dir:   dir,
		log:   log,
		now:   time.Now,
	}
}

// CreateOrUpdateDraft files a weekly draft. If a draft already exists for
// the same (employee, project, task, week) it is updated in place; entries
// in any other status block the write.
func (s *Service) CreateOrUpdateDraft(ctx context.Context, actor Actor, in DraftInput) (*model.Timesheet, error) {
	if err := in.Hours.Validate(); err != nil {
		return nil, err
	}

	employeeID := actor.EmployeeID
	if in.EmployeeID != nil && *in.EmployeeID != actor.EmployeeID {
		if !actor.isAdmin() {
			return nil, permissionErr("only administrators can file timesheets on behalf of another employee")
		}
		employeeID = *in.EmployeeID
	}

	employee, err := s.dir.Employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, notFoundErr("employee %s not found", employeeID)
	}

	project, err := s.dir.Project(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, notFoundErr("project %s not found", in.ProjectID)
	}

	task, err := s.dir.Task(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, notFoundErr("task %s not found", in.TaskID)
	}
	if task.ProjectID != in.ProjectID {
		return nil, validationErr("task %q does not belong to project %q", task.Name, project.Name)
	}
	if err := CheckTaskAccess(task, employeeID); err != nil {
		return nil, err
	}

	start, end, weekNumber, year := WeekOf(in.WeekStartDate)

	existing, err := s.store.FindEntry(ctx, employeeID, in.ProjectID, in.TaskID, start)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		switch existing.Status {
		case model.StatusDraft:
			existing.MondayHours = in.Hours.Monday
			existing.TuesdayHours = in.Hours.Tuesday
			existing.WednesdayHours = in.Hours.Wednesday
			existing.ThursdayHours = in.Hours.Thursday
			existing.FridayHours = in.Hours.Friday
			existing.SaturdayHours = in.Hours.Saturday
			existing.SundayHours = in.Hours.Sunday
			existing.Description = in.Description
			existing.TotalHoursWorked = in.Hours.Total()
			if err := s.store.Update(ctx, existing); err != nil {
				return nil, err
			}
			s.log.Info("draft timesheet updated in place",
				zap.String("id", existing.ID.String()),
				zap.Float64("totalHours", existing.TotalHoursWorked))
			return s.store.FindByID(ctx, existing.ID)
		case model.StatusRejected:
			return nil, invalidStateErr("a rejected entry already exists for this task and week, resubmit it to make changes")
		default:
			return nil, invalidStateErr("a %s entry already exists for this task and week",
				strings.ToLower(string(existing.Status)))
		}
	}

	entry := &model.Timesheet{
		EmployeeID:       employeeID,
		ProjectID:        in.ProjectID,
		TaskID:           in.TaskID,
		WeekStartDate:    start,
		WeekEndDate:      end,
		WeekNumber:       weekNumber,
		Year:             year,
		MondayHours:      in.Hours.Monday,
		TuesdayHours:     in.Hours.Tuesday,
		WednesdayHours:   in.Hours.Wednesday,
		ThursdayHours:    in.Hours.Thursday,
		FridayHours:      in.Hours.Friday,
		SaturdayHours:    in.Hours.Saturday,
		SundayHours:      in.Hours.Sunday,
		TotalHoursWorked: in.Hours.Total(),
		Description:      in.Description,
		Status:           model.StatusDraft,
	}
	if err := s.store.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Info("draft timesheet created",
		zap.String("id", entry.ID.String()),
		zap.String("employee", employeeID.String()),
		zap.String("week", start.Format("2006-01-02")),
		zap.Float64("totalHours", entry.TotalHoursWorked))
	return s.store.FindByID(ctx, entry.ID)
}

// UpdateDraft edits the mutable fields of a draft entry by id.
func (s *Service) UpdateDraft(ctx context.Context, actor Actor, id uuid.UUID, in UpdateInput) (*model.Timesheet, error) {
	entry, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFoundErr("timesheet %s not found", id)
	}
	if entry.EmployeeID != actor.EmployeeID && !actor.isAdmin() {
		return nil, permissionErr("you can only edit your own timesheets")
	}
	if entry.Status != model.StatusDraft {
		return nil, invalidStateErr("only draft entries can be edited, current status is %s", entry.Status)
	}

	if in.TaskID != nil && *in.TaskID != entry.TaskID {
		task, err := s.dir.Task(ctx, *in.TaskID)
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, notFoundErr("task %s not found", *in.TaskID)
		}
		if task.ProjectID != entry.ProjectID {
			return nil, validationErr("task %q does not belong to the entry's project", task.Name)
		}
		if err := CheckTaskAccess(task, entry.EmployeeID); err != nil {
			return nil, err
		}
		entry.TaskID = *in.TaskID
	}

	apply := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&entry.MondayHours, in.MondayHours)
	apply(&entry.TuesdayHours, in.TuesdayHours)
	apply(&entry.WednesdayHours, in.WednesdayHours)
	apply(&entry.ThursdayHours, in.ThursdayHours)
	apply(&entry.FridayHours, in.FridayHours)
	apply(&entry.SaturdayHours, in.SaturdayHours)
	apply(&entry.SundayHours, in.SundayHours)
	if in.Description != nil {
		entry.Description = *in.Description
	}

	hours := DayHours{
		Monday:    entry.MondayHours,
		Tuesday:   entry.TuesdayHours,
		Wednesday: entry.WednesdayHours,
		Thursday:  entry.ThursdayHours,
		Friday:    entry.FridayHours,
		Saturday:  entry.SaturdayHours,
		Sunday:    entry.SundayHours,
	}
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	entry.TotalHoursWorked = hours.Total()

	if err := s.store.Update(ctx, entry); err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, entry.ID)
}

// Submit transitions a single draft to Submitted. When other drafts exist
// for the same employee and week the call is refused with a
// RequiresBulkSubmission error so the week cannot be submitted piecemeal.
func (s *Service) Submit(ctx context.Context, actor Actor, id uuid.UUID) (*model.Timesheet, error) {
	return s.submit(ctx, actor, id, true)
}

func (s *Service) submit(ctx context.Context, actor Actor, id uuid.UUID, checkSiblings bool) (*model.Timesheet, error) {
	entry, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFoundErr("timesheet %s not found", id)
	}
	if entry.EmployeeID != actor.EmployeeID && !actor.isAdmin() {
		return nil, permissionErr("you can only submit your own timesheets")
	}
	if entry.Status != model.StatusDraft {
		return nil, invalidStateErr("only draft entries can be submitted, current status is %s", entry.Status)
	}
	if entry.TotalHoursWorked <= 0 {
		return nil, validationErr("cannot submit a timesheet with zero hours")
	}

	if checkSiblings {
		week, err := s.store.ListWeek(ctx, entry.EmployeeID, entry.WeekStartDate)
		if err != nil {
			return nil, err
		}
		siblings := 0
		for _, e := range week {
			if e.ID != entry.ID && e.Status == model.StatusDraft {
				siblings++
			}
		}
		if siblings > 0 {
			return nil, &Error{
				Kind: KindRequiresBulk,
				Message: "this week has other draft entries for different tasks, " +
					"submit the whole week with a bulk submission",
				SiblingDrafts: siblings,
			}
		}
	}

	// Re-check task access at submission time; assignments may have changed
	// since the draft was filed.
	task, err := s.dir.Task(ctx, entry.TaskID)
	if err != nil {
		return nil, err
	}
	if err := CheckTaskAccess(task, entry.EmployeeID); err != nil {
		return nil, err
	}

	ok, err := s.store.Transition(ctx, entry.ID, model.StatusDraft, map[string]any{
		"status":       model.StatusSubmitted,
		"submitted_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, entry.ID, "submitted")
	}

	s.log.Info("timesheet submitted",
		zap.String("id", entry.ID.String()),
		zap.String("employee", entry.EmployeeID.String()),
		zap.Float64("totalHours", entry.TotalHoursWorked))
	return s.store.FindByID(ctx, entry.ID)
}

// Approve transitions a submitted entry to Approved.
func (s *Service) Approve(ctx context.Context, actor Actor, id uuid.UUID, comments string) (*model.Timesheet, error) {
	entry, err := s.requireApprovable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.store.Transition(ctx, entry.ID, model.StatusSubmitted, map[string]any{
		"status":            model.StatusApproved,
		"approved_at":       s.now(),
		"approved_by":       actor.EmployeeID,
		"approver_comments": comments,
		"rejected_at":       nil,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, entry.ID, "approved")
	}

	s.log.Info("timesheet approved",
		zap.String("id", entry.ID.String()),
		zap.String("approver", actor.EmployeeID.String()))
	return s.store.FindByID(ctx, entry.ID)
}

// Reject transitions a submitted entry to Rejected. Comments are mandatory:
// the employee needs to know what to fix.
func (s *Service) Reject(ctx context.Context, actor Actor, id uuid.UUID, comments string) (*model.Timesheet, error) {
	if strings.TrimSpace(comments) == "" {
		return nil, validationErr("rejection requires approver comments")
	}

	entry, err := s.requireApprovable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.store.Transition(ctx, entry.ID, model.StatusSubmitted, map[string]any{
		"status":            model.StatusRejected,
		"rejected_at":       s.now(),
		"approved_by":       actor.EmployeeID,
		"approver_comments": comments,
		"approved_at":       nil,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, entry.ID, "rejected")
	}

	s.log.Info("timesheet rejected",
		zap.String("id", entry.ID.String()),
		zap.String("approver", actor.EmployeeID.String()))
	return s.store.FindByID(ctx, entry.ID)
}

// Resubmit returns a rejected entry to Draft for another edit+submit cycle,
// clearing the rejection timestamp and the approver's comments. This is the
// only backward transition in the lifecycle.
func (s *Service) Resubmit(ctx context.Context, actor Actor, id uuid.UUID) (*model.Timesheet, error) {
	entry, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFoundErr("timesheet %s not found", id)
	}
	if entry.EmployeeID != actor.EmployeeID && !actor.isAdmin() {
		return nil, permissionErr("you can only resubmit your own timesheets")
	}
	if entry.Status != model.StatusRejected {
		return nil, invalidStateErr("only rejected entries can be resubmitted, current status is %s", entry.Status)
	}

	ok, err := s.store.Transition(ctx, entry.ID, model.StatusRejected, map[string]any{
		"status":            model.StatusDraft,
		"rejected_at":       nil,
		"approver_comments": "",
		"submitted_at":      nil,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidStateErr("only rejected entries can be resubmitted")
	}

	s.log.Info("timesheet returned to draft",
		zap.String("id", entry.ID.String()),
		zap.String("employee", entry.EmployeeID.String()))
	return s.store.FindByID(ctx, entry.ID)
}

// requireApprovable loads the entry and enforces the approval permission
// and status preconditions shared by Approve and Reject.
func (s *Service) requireApprovable(ctx context.Context, actor Actor, id uuid.UUID) (*model.Timesheet, error) {
	if !actor.canModerate() {
		return nil, permissionErr("only managers, HR or administrators can approve or reject timesheets")
	}

	entry, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFoundErr("timesheet %s not found", id)
	}

	employee, err := s.dir.Employee(ctx, entry.EmployeeID)
	if err != nil {
		return nil, err
	}
	var managerID *uuid.UUID
	if employee != nil {
		managerID = employee.ManagerID
	}
	if !CanBeApprovedBy(entry, actor.EmployeeID, actor.Role, managerID) {
		return nil, permissionErr("you do not have permission to approve or reject this timesheet")
	}

	if entry.Status != model.StatusSubmitted {
		return nil, invalidStateErr("only submitted entries can be approved or rejected, current status is %s", entry.Status)
	}
	return entry, nil
}

// transitionConflict explains a zero-row conditional update: the row either
// vanished or changed status between the read and the write.
func (s *Service) transitionConflict(ctx context.Context, id uuid.UUID, action string) error {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return notFoundErr("timesheet %s not found", id)
	}
	return invalidStateErr("timesheet could not be %s, current status is %s", action, current.Status)
}

// GetByID returns one entry, enforcing read scope: employees see their own,
// managers also their direct reports, HR and admin everything.
func (s *Service) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*model.Timesheet, error) {
	entry, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFoundErr("timesheet %s not found", id)
	}
	if err := s.checkReadAccess(ctx, actor, entry.EmployeeID); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListQuery is the caller-facing filter for List; role scoping is applied
// on top of it.
type ListQuery struct {
	EmployeeID    *uuid.UUID
	ProjectID     *uuid.UUID
	Status        *model.TimesheetStatus
	WeekStartDate *time.Time
	Year          *int
	WeekNumber    *int
	SortBy        string
	SortDesc      bool
	Page          int
	PageSize      int
}

// List returns entries visible to the actor plus the total row count.
func (s *Service) List(ctx context.Context, actor Actor, q ListQuery) ([]model.Timesheet, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}

	f := ListFilter{
		ProjectID:     q.ProjectID,
		Status:        q.Status,
		WeekStartDate: q.WeekStartDate,
		Year:          q.Year,
		WeekNumber:    q.WeekNumber,
		SortBy:        q.SortBy,
		SortDesc:      q.SortDesc,
		Limit:         q.PageSize,
		Offset:        (q.Page - 1) * q.PageSize,
	}

	scope, err := s.visibleEmployees(ctx, actor, q.EmployeeID)
	if err != nil {
		return nil, 0, err
	}
	f.EmployeeIDs = scope

	return s.store.List(ctx, f)
}

// ListByEmployeeAndWeek returns all of an employee's entries for the week
// containing the given date.
func (s *Service) ListByEmployeeAndWeek(ctx context.Context, actor Actor, employeeID uuid.UUID, date time.Time) ([]model.Timesheet, error) {
	if err := s.checkReadAccess(ctx, actor, employeeID); err != nil {
		return nil, err
	}
	return s.store.ListWeek(ctx, employeeID, WeekStart(date))
}

// PendingQueue is the approver-facing view of submitted entries.
type PendingQueue struct {
	Entries      []model.Timesheet `json:"entries"`
	TotalPending int               `json:"totalPending"`
	TotalHours   float64           `json:"totalHours"`
	Employees    int               `json:"employees"`
}

// ListPendingForApprover returns the submitted entries the actor may act
// on: a manager sees their direct reports, HR and admin see everyone.
func (s *Service) ListPendingForApprover(ctx context.Context, actor Actor, f PendingFilter) (*PendingQueue, error) {
	if !actor.canModerate() {
		return nil, permissionErr("only managers, HR or administrators can list pending approvals")
	}
	if actor.Role == model.RoleManager {
		f.ManagerID = &actor.EmployeeID
		f.EmployeeID = nil
	}

	entries, err := s.store.ListPending(ctx, f)
	if err != nil {
		return nil, err
	}

	queue := &PendingQueue{Entries: entries, TotalPending: len(entries)}
	seen := map[uuid.UUID]struct{}{}
	for _, e := range entries {
		queue.TotalHours += e.TotalHoursWorked
		seen[e.EmployeeID] = struct{}{}
	}
	queue.Employees = len(seen)
	return queue, nil
}

// Summary returns per-status counts and hour totals for a year, scoped the
// same way as List.
func (s *Service) Summary(ctx context.Context, actor Actor, employeeID *uuid.UUID, year int) (map[model.TimesheetStatus]StatusSummary, error) {
	scope, err := s.visibleEmployees(ctx, actor, employeeID)
	if err != nil {
		return nil, err
	}
	return s.store.Summarize(ctx, scope, year)
}

// visibleEmployees translates the actor's role into an employee-id scope.
// An empty slice means unrestricted.
func (s *Service) visibleEmployees(ctx context.Context, actor Actor, requested *uuid.UUID) ([]uuid.UUID, error) {
	switch actor.Role {
	case model.RoleAdmin, model.RoleHR:
		if requested != nil {
			return []uuid.UUID{*requested}, nil
		}
		return nil, nil
	case model.RoleManager:
		reports, err := s.dir.Subordinates(ctx, actor.EmployeeID)
		if err != nil {
			return nil, err
		}
		scope := append(reports, actor.EmployeeID)
		if requested != nil {
			for _, id := range scope {
				if id == *requested {
					return []uuid.UUID{*requested}, nil
				}
			}
			return nil, permissionErr("you can only view timesheets of your direct reports")
		}
		return scope, nil
	default:
		if requested != nil && *requested != actor.EmployeeID {
			return nil, permissionErr("you can only view your own timesheets")
		}
		return []uuid.UUID{actor.EmployeeID}, nil
	}
}

// checkReadAccess enforces the same visibility rule for single-entry reads.
func (s *Service) checkReadAccess(ctx context.Context, actor Actor, ownerID uuid.UUID) error {
	if ownerID == actor.EmployeeID {
		return nil
	}
	switch actor.Role {
	case model.RoleAdmin, model.RoleHR:
		return nil
	case model.RoleManager:
		owner, err := s.dir.Employee(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner != nil && owner.ManagerID != nil && *owner.ManagerID == actor.EmployeeID {
			return nil
		}
	}
	return permissionErr("access denied")
}
