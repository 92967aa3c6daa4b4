package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"skyraksys.com/hrm/model"
)

// GormStore persists entries through a *gorm.DB. Duplicate-key violations
// on the (employee, project, task, week) unique index come back as typed
// validation errors instead of raw driver errors.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, entry *model.Timesheet) error {
	err := s.db.WithContext(ctx).Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return validationErr("an entry already exists for this project and task combination for the week of %s",
			entry.WeekStartDate.Format("2006-01-02"))
	}
	return err
}

func (s *GormStore) Update(ctx context.Context, entry *model.Timesheet) error {
	return s.db.WithContext(ctx).Save(entry).Error
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Timesheet, error) {
	var entry model.Timesheet
	err := s.db.WithContext(ctx).
		Preload("Employee").
		Preload("Project").
		Preload("Task").
		Preload("Approver").
		First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *GormStore) FindEntry(ctx context.Context, employeeID, projectID, taskID uuid.UUID, weekStart time.Time) (*model.Timesheet, error) {
	var entry model.Timesheet
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND project_id = ? AND task_id = ? AND week_start_date = ?",
			employeeID, projectID, taskID, weekStart).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *GormStore) ListWeek(ctx context.Context, employeeID uuid.UUID, weekStart time.Time) ([]model.Timesheet, error) {
	var entries []model.Timesheet
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND week_start_date = ?", employeeID, weekStart).
		Find(&entries).Error
	return entries, err
}

// Transition performs the compare-and-swap on status. Zero rows affected
// means the row is gone or no longer in the expected status; the caller
// decides which by re-fetching.
func (s *GormStore) Transition(ctx context.Context, id uuid.UUID, from model.TimesheetStatus, updates map[string]any) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Timesheet{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

var sortColumns = map[string]string{
	"weekStartDate": "week_start_date",
	"status":        "status",
	"totalHours":    "total_hours_worked",
	"createdAt":     "created_at",
}

func (s *GormStore) List(ctx context.Context, f ListFilter) ([]model.Timesheet, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Timesheet{})

	if len(f.EmployeeIDs) > 0 {
		q = q.Where("employee_id IN ?", f.EmployeeIDs)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.WeekStartDate != nil {
		q = q.Where("week_start_date = ?", *f.WeekStartDate)
	}
	if f.Year != nil {
		q = q.Where("year = ?", *f.Year)
	}
	if f.WeekNumber != nil {
		q = q.Where("week_number = ?", *f.WeekNumber)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "week_start_date"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}

	var entries []model.Timesheet
	err := q.Preload("Employee").
		Preload("Project").
		Preload("Task").
		Preload("Approver").
		Order(fmt.Sprintf("%s %s", column, dir)).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&entries).Error
	return entries, total, err
}

func (s *GormStore) ListPending(ctx context.Context, f PendingFilter) ([]model.Timesheet, error) {
	q := s.db.WithContext(ctx).Model(&model.Timesheet{}).
		Where("timesheets.status = ?", model.StatusSubmitted)

	if f.ManagerID != nil {
		q = q.Joins("JOIN employees ON employees.id = timesheets.employee_id").
			Where("employees.manager_id = ?", *f.ManagerID)
	}
	if f.EmployeeID != nil {
		q = q.Where("timesheets.employee_id = ?", *f.EmployeeID)
	}
	if f.Year != nil {
		q = q.Where("timesheets.year = ?", *f.Year)
	}
	if f.WeekNumber != nil {
		q = q.Where("timesheets.week_number = ?", *f.WeekNumber)
	}

	var entries []model.Timesheet
	err := q.Preload("Employee").
		Preload("Project").
		Preload("Task").
		Order("timesheets.week_start_date DESC").
		Find(&entries).Error
	return entries, err
}

func (s *GormStore) Summarize(ctx context.Context, employeeIDs []uuid.UUID, year int) (map[model.TimesheetStatus]StatusSummary, error) {
	type row struct {
		Status     model.TimesheetStatus
		Count      int64
		TotalHours float64
	}

	q := s.db.WithContext(ctx).Model(&model.Timesheet{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_hours_worked), 0) AS total_hours").
		Where("year = ?", year).
		Group("status")
	if len(employeeIDs) > 0 {
		q = q.Where("employee_id IN ?", employeeIDs)
	}

	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := map[model.TimesheetStatus]StatusSummary{
		model.StatusDraft:     {},
		model.StatusSubmitted: {},
		model.StatusApproved:  {},
		model.StatusRejected:  {},
	}
	for _, r := range rows {
		summary[r.Status] = StatusSummary{Count: r.Count, TotalHours: r.TotalHours}
	}
	return summary, nil
}
