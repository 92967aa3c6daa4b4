package main

import (
	"flag"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skyraksys.com/hrm/config"
	"skyraksys.com/hrm/core"
	"skyraksys.com/hrm/model"
	"skyraksys.com/hrm/utils"
)

// Seeds a local database with a small org chart and one project so the
// API can be exercised end to end.
func main() {
	cfgPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := core.Connect(&cfg.Database, core.LogLevelInfo)
	if err != nil {
		log.Fatal(err)
	}
	if err := core.Migrate(db); err != nil {
		log.Fatal(err)
	}

	admin := employee(db, "EMP001", "Ada", "Nguyen", "ada.nguyen@skyraksys.com", model.RoleAdmin, nil)
	hr := employee(db, "EMP002", "Harriet", "Okafor", "harriet.okafor@skyraksys.com", model.RoleHR, nil)
	manager := employee(db, "EMP003", "Marco", "Silva", "marco.silva@skyraksys.com", model.RoleManager, nil)
	dev := employee(db, "EMP004", "Devi", "Sharma", "devi.sharma@skyraksys.com", model.RoleEmployee, &manager.ID)
	qa := employee(db, "EMP005", "Quinn", "Baker", "quinn.baker@skyraksys.com", model.RoleEmployee, &manager.ID)

	project := model.Project{
		Name:        "Orbital Platform",
		Description: "Internal platform build-out",
		IsActive:    true,
		StartDate:   utils.MustParseDate("2026-01-05"),
	}
	if err := db.Where(model.Project{Name: project.Name}).FirstOrCreate(&project).Error; err != nil {
		log.Fatal(err)
	}

	tasks := []model.Task{
		{ProjectID: project.ID, Name: "Development", IsActive: true, AvailableToAll: true},
		{ProjectID: project.ID, Name: "Code Review", IsActive: true, AvailableToAll: true},
		{ProjectID: project.ID, Name: "QA Signoff", IsActive: true, AssignedTo: &qa.ID},
		{ProjectID: project.ID, Name: "Legacy Cleanup", IsActive: false, AvailableToAll: true},
	}
	for i := range tasks {
		t := tasks[i]
		if err := db.Where(model.Task{ProjectID: t.ProjectID, Name: t.Name}).
			Attrs(t).FirstOrCreate(&tasks[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("seeded: admin=%s hr=%s manager=%s reports=[%s %s] project=%s",
		admin.ID, hr.ID, manager.ID, dev.ID, qa.ID, project.ID)
}

func employee(db *gorm.DB, code, first, last, email string, role model.Role, managerID *uuid.UUID) *model.Employee {
	emp := model.Employee{
		Code:      code,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Role:      role,
		Status:    model.EmployeeActive,
		HireDate:  utils.MustParseDate("2025-02-03"),
		ManagerID: managerID,
	}
	if err := db.Where(model.Employee{Code: code}).Attrs(emp).FirstOrCreate(&emp).Error; err != nil {
		log.Fatal(err)
	}
	return &emp
}
