package timesheet

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"skyraksys.com/hrm/model"
)

// memStore is an in-memory Store with the same contract as the database
// implementation, including the status-guarded Transition.
type memStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*model.Timesheet
	dir     *memDirectory
}

func newMemStore(dir *memDirectory) *memStore {
	return &memStore{entries: map[uuid.UUID]*model.Timesheet{}, dir: dir}
}

func (s *memStore) Create(ctx context.Context, entry *model.Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.EmployeeID == entry.EmployeeID && e.ProjectID == entry.ProjectID &&
			e.TaskID == entry.TaskID && e.WeekStartDate.Equal(entry.WeekStartDate) {
			return validationErr("an entry already exists for this project and task combination for the week of %s",
				entry.WeekStartDate.Format("2006-01-02"))
		}
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt

	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *memStore) Update(ctx context.Context, entry *model.Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.UpdatedAt = time.Now()
	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *memStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Timesheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	s.hydrate(&cp)
	return &cp, nil
}

// hydrate fills the relations the database store preloads.
func (s *memStore) hydrate(e *model.Timesheet) {
	if s.dir == nil {
		return
	}
	if emp, ok := s.dir.employees[e.EmployeeID]; ok {
		e.Employee = *emp
	}
	if p, ok := s.dir.projects[e.ProjectID]; ok {
		e.Project = *p
	}
	if task, ok := s.dir.tasks[e.TaskID]; ok {
		e.Task = *task
	}
	if e.ApprovedBy != nil {
		if emp, ok := s.dir.employees[*e.ApprovedBy]; ok {
			approver := *emp
			e.Approver = &approver
		}
	}
}

func (s *memStore) FindEntry(ctx context.Context, employeeID, projectID, taskID uuid.UUID, weekStart time.Time) (*model.Timesheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.EmployeeID == employeeID && e.ProjectID == projectID &&
			e.TaskID == taskID && e.WeekStartDate.Equal(weekStart) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListWeek(ctx context.Context, employeeID uuid.UUID, weekStart time.Time) ([]model.Timesheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Timesheet
	for _, e := range s.entries {
		if e.EmployeeID == employeeID && e.WeekStartDate.Equal(weekStart) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) Transition(ctx context.Context, id uuid.UUID, from model.TimesheetStatus, updates map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.Status != from {
		return false, nil
	}

	for k, v := range updates {
		switch k {
		case "status":
			e.Status = v.(model.TimesheetStatus)
		case "submitted_at":
			e.SubmittedAt = timePtr(v)
		case "approved_at":
			e.ApprovedAt = timePtr(v)
		case "rejected_at":
			e.RejectedAt = timePtr(v)
		case "approved_by":
			e.ApprovedBy = uuidPtr(v)
		case "approver_comments":
			e.ApproverComments = v.(string)
		}
	}
	e.UpdatedAt = time.Now()
	return true, nil
}

func timePtr(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	}
	return nil
}

func uuidPtr(v any) *uuid.UUID {
	switch id := v.(type) {
	case uuid.UUID:
		return &id
	case *uuid.UUID:
		return id
	}
	return nil
}

func (s *memStore) List(ctx context.Context, f ListFilter) ([]model.Timesheet, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Timesheet
	for _, e := range s.entries {
		if len(f.EmployeeIDs) > 0 && !containsID(f.EmployeeIDs, e.EmployeeID) {
			continue
		}
		if f.ProjectID != nil && e.ProjectID != *f.ProjectID {
			continue
		}
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		if f.WeekStartDate != nil && !e.WeekStartDate.Equal(*f.WeekStartDate) {
			continue
		}
		if f.Year != nil && e.Year != *f.Year {
			continue
		}
		if f.WeekNumber != nil && e.WeekNumber != *f.WeekNumber {
			continue
		}
		cp := *e
		s.hydrate(&cp)
		matched = append(matched, cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		if f.SortDesc {
			return matched[i].WeekStartDate.After(matched[j].WeekStartDate)
		}
		return matched[i].WeekStartDate.Before(matched[j].WeekStartDate)
	})

	total := int64(len(matched))
	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (s *memStore) ListPending(ctx context.Context, f PendingFilter) ([]model.Timesheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Timesheet
	for _, e := range s.entries {
		if e.Status != model.StatusSubmitted {
			continue
		}
		if f.EmployeeID != nil && e.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.ManagerID != nil {
			owner, ok := s.dir.employees[e.EmployeeID]
			if !ok || owner.ManagerID == nil || *owner.ManagerID != *f.ManagerID {
				continue
			}
		}
		if f.Year != nil && e.Year != *f.Year {
			continue
		}
		if f.WeekNumber != nil && e.WeekNumber != *f.WeekNumber {
			continue
		}
		cp := *e
		s.hydrate(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) Summarize(ctx context.Context, employeeIDs []uuid.UUID, year int) (map[model.TimesheetStatus]StatusSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[model.TimesheetStatus]StatusSummary{
		model.StatusDraft:     {},
		model.StatusSubmitted: {},
		model.StatusApproved:  {},
		model.StatusRejected:  {},
	}
	for _, e := range s.entries {
		if len(employeeIDs) > 0 && !containsID(employeeIDs, e.EmployeeID) {
			continue
		}
		if e.Year != year {
			continue
		}
		summary := out[e.Status]
		summary.Count++
		summary.TotalHours += e.TotalHoursWorked
		out[e.Status] = summary
	}
	return out, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// memDirectory is an in-memory Directory.
type memDirectory struct {
	employees map[uuid.UUID]*model.Employee
	projects  map[uuid.UUID]*model.Project
	tasks     map[uuid.UUID]*model.Task
}

func newMemDirectory() *memDirectory {
	return &memDirectory{
		employees: map[uuid.UUID]*model.Employee{},
		projects:  map[uuid.UUID]*model.Project{},
		tasks:     map[uuid.UUID]*model.Task{},
	}
}

func (d *memDirectory) Employee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := d.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (d *memDirectory) Project(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	p, ok := d.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (d *memDirectory) Task(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	t, ok := d.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (d *memDirectory) Subordinates(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, e := range d.employees {
		if e.ManagerID != nil && *e.ManagerID == managerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
