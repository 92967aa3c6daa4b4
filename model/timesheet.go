package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimesheetStatus string

const (
	StatusDraft     TimesheetStatus = "Draft"
	StatusSubmitted TimesheetStatus = "Submitted"
	StatusApproved  TimesheetStatus = "Approved"
	StatusRejected  TimesheetStatus = "Rejected"
)

// Timesheet is one weekly entry for a single (employee, project, task, week)
// combination. Multiple entries per week are allowed across different
// project/task combinations, never for the same one.
type Timesheet struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`

	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;column:employee_id;uniqueIndex:uq_timesheet_entry;index:idx_timesheet_employee_status"`
	ProjectID     uuid.UUID `gorm:"type:uuid;not null;column:project_id;uniqueIndex:uq_timesheet_entry"`
	TaskID        uuid.UUID `gorm:"type:uuid;not null;column:task_id;uniqueIndex:uq_timesheet_entry"`
	WeekStartDate time.Time `gorm:"type:date;not null;column:week_start_date;uniqueIndex:uq_timesheet_entry"`
	WeekEndDate   time.Time `gorm:"type:date;not null;column:week_end_date"`
	WeekNumber    int       `gorm:"not null;column:week_number"`
	Year          int       `gorm:"not null;column:year"`

	MondayHours    float64 `gorm:"type:decimal(4,2);not null;default:0;column:monday_hours"`
	TuesdayHours   float64 `gorm:"type:decimal(4,2);not null;default:0;column:tuesday_hours"`
	WednesdayHours float64 `gorm:"type:decimal(4,2);not null;default:0;column:wednesday_hours"`
	ThursdayHours  float64 `gorm:"type:decimal(4,2);not null;default:0;column:thursday_hours"`
	FridayHours    float64 `gorm:"type:decimal(4,2);not null;default:0;column:friday_hours"`
	SaturdayHours  float64 `gorm:"type:decimal(4,2);not null;default:0;column:saturday_hours"`
	SundayHours    float64 `gorm:"type:decimal(4,2);not null;default:0;column:sunday_hours"`

	// Stored sum of the seven day fields, recomputed on every write.
	TotalHoursWorked float64 `gorm:"type:decimal(5,2);not null;column:total_hours_worked"`

	Description string `gorm:"type:text;column:description"`

	Status           TimesheetStatus `gorm:"type:varchar(20);not null;default:'Draft';column:status;index:idx_timesheet_employee_status"`
	SubmittedAt      *time.Time      `gorm:"column:submitted_at"`
	ApprovedAt       *time.Time      `gorm:"column:approved_at"`
	RejectedAt       *time.Time      `gorm:"column:rejected_at"`
	ApprovedBy       *uuid.UUID      `gorm:"type:uuid;column:approved_by"`
	ApproverComments string          `gorm:"type:text;column:approver_comments"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Employee Employee  `gorm:"foreignKey:EmployeeID"`
	Project  Project   `gorm:"foreignKey:ProjectID"`
	Task     Task      `gorm:"foreignKey:TaskID"`
	Approver *Employee `gorm:"foreignKey:ApprovedBy"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

func (t *Timesheet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
