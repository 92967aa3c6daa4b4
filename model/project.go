package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	Name        string    `gorm:"type:varchar(255);not null;column:name"`
	Description string    `gorm:"type:text;column:description"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Active';column:status"`
	IsActive    bool      `gorm:"not null;default:true;column:is_active"`
	StartDate   time.Time `gorm:"type:date;column:start_date"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
