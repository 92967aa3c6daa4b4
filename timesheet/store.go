package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"skyraksys.com/hrm/model"
)

// ListFilter narrows List. Nil fields are ignored.
type ListFilter struct {
	EmployeeIDs   []uuid.UUID
	ProjectID     *uuid.UUID
	Status        *model.TimesheetStatus
	WeekStartDate *time.Time
	Year          *int
	WeekNumber    *int
	SortBy        string
	SortDesc      bool
	Limit         int
	Offset        int
}

// PendingFilter narrows ListPending (status Submitted is implied).
type PendingFilter struct {
	ManagerID  *uuid.UUID
	EmployeeID *uuid.UUID
	Year       *int
	WeekNumber *int
}

// StatusSummary is the per-status rollup returned by Summarize.
type StatusSummary struct {
	Count      int64   `json:"count"`
	TotalHours float64 `json:"totalHours"`
}

// Store is the persistence contract for weekly entries. Find methods return
// (nil, nil) when no row matches; Transition is the status-guarded
// compare-and-swap: it only applies updates while the row still holds the
// expected status, and reports whether a row was touched.
type Store interface {
	Create(ctx context.Context, entry *model.Timesheet) error
	Update(ctx context.Context, entry *model.Timesheet) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Timesheet, error)
	FindEntry(ctx context.Context, employeeID, projectID, taskID uuid.UUID, weekStart time.Time) (*model.Timesheet, error)
	ListWeek(ctx context.Context, employeeID uuid.UUID, weekStart time.Time) ([]model.Timesheet, error)
	Transition(ctx context.Context, id uuid.UUID, from model.TimesheetStatus, updates map[string]any) (bool, error)
	List(ctx context.Context, f ListFilter) ([]model.Timesheet, int64, error)
	ListPending(ctx context.Context, f PendingFilter) ([]model.Timesheet, error)
	Summarize(ctx context.Context, employeeIDs []uuid.UUID, year int) (map[model.TimesheetStatus]StatusSummary, error)
}

// Directory is the read-only Employee/Project/Task collaborator. Lookups
// return (nil, nil) when the id is unknown.
type Directory interface {
	Employee(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	Project(ctx context.Context, id uuid.UUID) (*model.Project, error)
	Task(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Subordinates(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error)
}
