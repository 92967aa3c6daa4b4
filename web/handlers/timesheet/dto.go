package timesheet

import (
	"time"

	"github.com/google/uuid"

	"skyraksys.com/hrm/model"
	ts "skyraksys.com/hrm/timesheet"
	"skyraksys.com/hrm/web/common"
)

type EmployeeDTO struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

type ProjectDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TaskDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TimesheetDTO struct {
	ID uuid.UUID `json:"id"`

	Employee EmployeeDTO `json:"employee"`
	Project  ProjectDTO  `json:"project"`
	Task     TaskDTO     `json:"task"`

	WeekStartDate common.DateOnly `json:"weekStartDate"`
	WeekEndDate   common.DateOnly `json:"weekEndDate"`
	WeekNumber    int             `json:"weekNumber"`
	Year          int             `json:"year"`

	MondayHours    float64 `json:"mondayHours"`
	TuesdayHours   float64 `json:"tuesdayHours"`
	WednesdayHours float64 `json:"wednesdayHours"`
	ThursdayHours  float64 `json:"thursdayHours"`
	FridayHours    float64 `json:"fridayHours"`
	SaturdayHours  float64 `json:"saturdayHours"`
	SundayHours    float64 `json:"sundayHours"`

	TotalHoursWorked float64 `json:"totalHoursWorked"`
	Description      string  `json:"description"`

	Status           model.TimesheetStatus `json:"status"`
	SubmittedAt      *time.Time            `json:"submittedAt,omitempty"`
	ApprovedAt       *time.Time            `json:"approvedAt,omitempty"`
	RejectedAt       *time.Time            `json:"rejectedAt,omitempty"`
	Approver         *EmployeeDTO          `json:"approver,omitempty"`
	ApproverComments string                `json:"approverComments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toEmployeeDTO(e *model.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        e.ID,
		Code:      e.Code,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
	}
}

func toDTO(e *model.Timesheet) TimesheetDTO {
	dto := TimesheetDTO{
		ID:               e.ID,
		Employee:         toEmployeeDTO(&e.Employee),
		Project:          ProjectDTO{ID: e.ProjectID, Name: e.Project.Name},
		Task:             TaskDTO{ID: e.TaskID, Name: e.Task.Name},
		WeekStartDate:    common.DateOnly{Time: e.WeekStartDate},
		WeekEndDate:      common.DateOnly{Time: e.WeekEndDate},
		WeekNumber:       e.WeekNumber,
		Year:             e.Year,
		MondayHours:      e.MondayHours,
		TuesdayHours:     e.TuesdayHours,
		WednesdayHours:   e.WednesdayHours,
		ThursdayHours:    e.ThursdayHours,
		FridayHours:      e.FridayHours,
		SaturdayHours:    e.SaturdayHours,
		SundayHours:      e.SundayHours,
		TotalHoursWorked: e.TotalHoursWorked,
		Description:      e.Description,
		Status:           e.Status,
		SubmittedAt:      e.SubmittedAt,
		ApprovedAt:       e.ApprovedAt,
		RejectedAt:       e.RejectedAt,
		ApproverComments: e.ApproverComments,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	dto.Employee.ID = e.EmployeeID
	if e.Approver != nil {
		approver := toEmployeeDTO(e.Approver)
		dto.Approver = &approver
	}
	return dto
}

func toDTOs(entries []model.Timesheet) []TimesheetDTO {
	dtos := make([]TimesheetDTO, len(entries))
	for i := range entries {
		dtos[i] = toDTO(&entries[i])
	}
	return dtos
}

// DraftRequest is the create/upsert payload. Day hours sit at the top
// level of the JSON body alongside the identifying fields.
type DraftRequest struct {
	EmployeeID    *uuid.UUID       `json:"employeeId,omitempty"`
	ProjectID     uuid.UUID        `json:"projectId" binding:"required"`
	TaskID        uuid.UUID        `json:"taskId" binding:"required"`
	WeekStartDate *common.DateOnly `json:"weekStartDate" binding:"required"`
	ts.DayHours
	Description string `json:"description"`
}

func (r *DraftRequest) toInput() ts.DraftInput {
	return ts.DraftInput{
		EmployeeID:    r.EmployeeID,
		ProjectID:     r.ProjectID,
		TaskID:        r.TaskID,
		WeekStartDate: r.WeekStartDate.Time,
		Hours:         r.DayHours,
		Description:   r.Description,
	}
}

// UpdateRequest is a partial draft edit; absent fields keep their value.
type UpdateRequest struct {
	ts.UpdateInput
}

type BulkSaveRequest struct {
	Timesheets []DraftRequest `json:"timesheets" binding:"required"`
}

type BulkUpdateItem struct {
	ID uuid.UUID `json:"id" binding:"required"`
	ts.UpdateInput
}

type BulkUpdateRequest struct {
	Timesheets []BulkUpdateItem `json:"timesheets" binding:"required"`
}

type BulkIDsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

type BulkActionRequest struct {
	IDs      []uuid.UUID `json:"ids" binding:"required"`
	Comments string      `json:"comments"`
}

type CommentsRequest struct {
	Comments string `json:"comments"`
}
