package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "Active"
	EmployeeInactive   EmployeeStatus = "Inactive"
	EmployeeOnLeave    EmployeeStatus = "On Leave"
	EmployeeTerminated EmployeeStatus = "Terminated"
)

type Employee struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;column:id"`
	Code      string         `gorm:"type:varchar(50);not null;uniqueIndex;column:code"`
	FirstName string         `gorm:"type:varchar(100);not null;column:first_name"`
	LastName  string         `gorm:"type:varchar(100);not null;column:last_name"`
	Email     string         `gorm:"type:varchar(255);not null;uniqueIndex;column:email"`
	Role      Role           `gorm:"type:varchar(20);not null;default:'employee';column:role"`
	Status    EmployeeStatus `gorm:"type:varchar(20);not null;default:'Active';column:status"`
	HireDate  time.Time      `gorm:"type:date;column:hire_date"`

	// Direct manager, used for approval scoping. Nil for top-level staff.
	ManagerID *uuid.UUID `gorm:"type:uuid;column:manager_id;index"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Manager *Employee `gorm:"foreignKey:ManagerID"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
