package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task availability works one of two ways: a task is either open to every
// employee (AvailableToAll) or bound to exactly one employee (AssignedTo).
// If neither holds, nobody can log time against it.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;column:project_id;index"`
	Name        string    `gorm:"type:varchar(255);not null;column:name"`
	Description string    `gorm:"type:text;column:description"`
	IsActive    bool      `gorm:"not null;default:true;column:is_active"`

	AvailableToAll bool       `gorm:"not null;default:false;column:available_to_all"`
	AssignedTo     *uuid.UUID `gorm:"type:uuid;column:assigned_to"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Project Project `gorm:"foreignKey:ProjectID"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
