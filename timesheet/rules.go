package timesheet

import (
	"time"

	"github.com/google/uuid"
	"skyraksys.com/hrm/model"
)

const (
	// MaxDayHours caps a single day field; MaxWeekHours caps the stored total.
	MaxDayHours  = 24.0
	MaxWeekHours = 168.0
)

// DayHours is the Monday..Sunday breakdown of one weekly entry.
type DayHours struct {
	Monday    float64 `json:"mondayHours"`
	Tuesday   float64 `json:"tuesdayHours"`
	Wednesday float64 `json:"wednesdayHours"`
	Thursday  float64 `json:"thursdayHours"`
	Friday    float64 `json:"fridayHours"`
	Saturday  float64 `json:"saturdayHours"`
	Sunday    float64 `json:"sundayHours"`
}

func (h DayHours) days() [7]float64 {
	return [7]float64{h.Monday, h.Tuesday, h.Wednesday, h.Thursday, h.Friday, h.Saturday, h.Sunday}
}

// Total is the weekly sum. TotalHoursWorked must equal this after any write.
func (h DayHours) Total() float64 {
	var sum float64
	for _, v := range h.days() {
		sum += v
	}
	return sum
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Validate checks each day field independently, then the weekly total.
func (h DayHours) Validate() error {
	for i, v := range h.days() {
		if v < 0 {
			return validationErr("%s hours must not be negative, got %v", dayNames[i], v)
		}
		if v > MaxDayHours {
			return validationErr("%s hours must not exceed %v, got %v", dayNames[i], MaxDayHours, v)
		}
	}
	if total := h.Total(); total > MaxWeekHours {
		return validationErr("total weekly hours must not exceed %v, got %v", MaxWeekHours, total)
	}
	return nil
}

// WeekStart normalizes any date to the Monday of its week. A caller passing
// a Wednesday means the week containing that Wednesday.
func WeekStart(d time.Time) time.Time {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return d.AddDate(0, 0, -offset)
}

// WeekEnd is the Sunday of the week starting at the given Monday.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}

// WeekOf resolves a date to its canonical week: Monday, Sunday, ISO week
// number and the calendar year of the Monday.
func WeekOf(d time.Time) (start, end time.Time, weekNumber, year int) {
	start = WeekStart(d)
	end = WeekEnd(start)
	_, weekNumber = start.ISOWeek()
	year = start.Year()
	return start, end, weekNumber, year
}

// CheckTaskAccess applies the task availability rule: open to all, or bound
// to exactly one employee. Inactive tasks are closed to everyone.
func CheckTaskAccess(task *model.Task, employeeID uuid.UUID) error {
	if task == nil {
		return notFoundErr("task not found")
	}
	if !task.IsActive {
		return accessDeniedErr("task %q has been deactivated", task.Name)
	}
	if task.AvailableToAll {
		return nil
	}
	if task.AssignedTo == nil {
		return accessDeniedErr("task %q is not available to any employees, contact your manager", task.Name)
	}
	if *task.AssignedTo != employeeID {
		return accessDeniedErr("you are not authorized to work on task %q, contact your manager", task.Name)
	}
	return nil
}

// CanBeApprovedBy applies the approval permission rule: nobody approves
// their own entry, admin and HR approve anyone, a manager only their
// direct reports.
func CanBeApprovedBy(entry *model.Timesheet, approverID uuid.UUID, role model.Role, managerID *uuid.UUID) bool {
	if entry.EmployeeID == approverID {
		return false
	}
	switch role {
	case model.RoleAdmin, model.RoleHR:
		return true
	case model.RoleManager:
		return managerID != nil && *managerID == approverID
	}
	return false
}
