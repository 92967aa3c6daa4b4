// Package directory provides read-only lookups over the employee, project
// and task records the timesheet workflow consumes.
package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"skyraksys.com/hrm/model"
)

type Directory struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) Employee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var emp model.Employee
	err := d.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (d *Directory) Project(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := d.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *Directory) Task(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	err := d.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Subordinates returns the ids of an employee's direct reports.
func (d *Directory) Subordinates(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := d.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("manager_id = ?", managerID).
		Pluck("id", &ids).Error
	return ids, err
}

// ListEmployees returns active employees ordered by name.
func (d *Directory) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var emps []model.Employee
	err := d.db.WithContext(ctx).
		Where("status = ?", model.EmployeeActive).
		Order("first_name, last_name").
		Find(&emps).Error
	return emps, err
}

// ListProjects returns active projects ordered by name.
func (d *Directory) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := d.db.WithContext(ctx).
		Where("is_active").
		Order("name").
		Find(&projects).Error
	return projects, err
}

// ListTasks returns the active tasks of a project that the given employee
// may log time against.
func (d *Directory) ListTasks(ctx context.Context, projectID uuid.UUID, employeeID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := d.db.WithContext(ctx).
		Where("project_id = ? AND is_active", projectID).
		Where("available_to_all OR assigned_to = ?", employeeID).
		Order("name").
		Find(&tasks).Error
	return tasks, err
}
