package v1

import (
	"encoding/json"
	"fmt"
)

// SuccessEnvelope mirrors the server's response wrapper.
type SuccessEnvelope[T any] struct {
	Data T `json:"data"`
}

// TimesheetDraftDTO is the wire form of one weekly draft.
type TimesheetDraftDTO struct {
	EmployeeID     *string `json:"employeeId,omitempty"`
	ProjectID      string  `json:"projectId"`
	TaskID         string  `json:"taskId"`
	WeekStartDate  string  `json:"weekStartDate"` // yyyy-MM-dd
	MondayHours    float64 `json:"mondayHours"`
	TuesdayHours   float64 `json:"tuesdayHours"`
	WednesdayHours float64 `json:"wednesdayHours"`
	ThursdayHours  float64 `json:"thursdayHours"`
	FridayHours    float64 `json:"fridayHours"`
	SaturdayHours  float64 `json:"saturdayHours"`
	SundayHours    float64 `json:"sundayHours"`
	Description    string  `json:"description,omitempty"`
}

type TimesheetDTO struct {
	ID               string  `json:"id"`
	WeekStartDate    string  `json:"weekStartDate"`
	TotalHoursWorked float64 `json:"totalHoursWorked"`
	Status           string  `json:"status"`
}

type BulkItemDTO struct {
	Index      int     `json:"index"`
	ID         *string `json:"id,omitempty"`
	Status     string  `json:"status,omitempty"`
	TotalHours float64 `json:"totalHours,omitempty"`
	Error      *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type BulkResultDTO struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Items     []BulkItemDTO `json:"items"`
}

type TimesheetEndpoint struct {
	transport *Transport
}

// Save files one weekly draft.
func (ep *TimesheetEndpoint) Save(dto *TimesheetDraftDTO) (*TimesheetDTO, error) {
	resp, err := ep.transport.Post("/api/hrm/v1.0/timesheets", dto, nil)
	if err != nil {
		return nil, err
	}

	var result SuccessEnvelope[*TimesheetDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// BulkSave files a batch of drafts and returns the per-item outcomes.
func (ep *TimesheetEndpoint) BulkSave(dtos []TimesheetDraftDTO) (*BulkResultDTO, error) {
	payload := map[string]any{"timesheets": dtos}

	resp, err := ep.transport.Post("/api/hrm/v1.0/timesheets/bulk", payload, nil)
	if err != nil {
		return nil, err
	}

	var result SuccessEnvelope[*BulkResultDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// BulkSubmit submits previously saved drafts by id.
func (ep *TimesheetEndpoint) BulkSubmit(ids []string) (*BulkResultDTO, error) {
	payload := map[string]any{"ids": ids}

	resp, err := ep.transport.Post("/api/hrm/v1.0/timesheets/bulk/submit", payload, nil)
	if err != nil {
		return nil, err
	}

	var result SuccessEnvelope[*BulkResultDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Submit submits a single draft by id.
func (ep *TimesheetEndpoint) Submit(id string) (*TimesheetDTO, error) {
	resp, err := ep.transport.Post(fmt.Sprintf("/api/hrm/v1.0/timesheets/%s/submit", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var result SuccessEnvelope[*TimesheetDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
