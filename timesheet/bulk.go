package timesheet

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"skyraksys.com/hrm/model"
)

// KindInternal marks per-item failures caused by the store rather than the
// payload; callers may retry these.
const KindInternal Kind = "internal_error"

// BulkItem describes the outcome of one element of a batch. Exactly one of
// the success fields (ID, Status, TotalHours) or Error is meaningful.
type BulkItem struct {
	Index      int                   `json:"index"`
	ID         *uuid.UUID            `json:"id,omitempty"`
	Status     model.TimesheetStatus `json:"status,omitempty"`
	TotalHours float64               `json:"totalHours,omitempty"`
	Error      *Error                `json:"error,omitempty"`
	Payload    any                   `json:"payload,omitempty"`
}

// BulkResult is the batch summary. The batch itself always succeeds; each
// element carries its own success or failure.
type BulkResult struct {
	Total     int        `json:"total"`
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Items     []BulkItem `json:"items"`
}

func (r *BulkResult) success(index int, entry *model.Timesheet) {
	r.Succeeded++
	r.Items = append(r.Items, BulkItem{
		Index:      index,
		ID:         &entry.ID,
		Status:     entry.Status,
		TotalHours: entry.TotalHoursWorked,
	})
}

func (r *BulkResult) failure(index int, payload any, err error) {
	r.Failed++
	item := BulkItem{Index: index, Payload: payload}
	if e, ok := err.(*Error); ok {
		item.Error = e
	} else {
		item.Error = &Error{Kind: KindInternal, Message: err.Error()}
	}
	r.Items = append(r.Items, item)
}

// BulkSave files a batch of drafts best-effort: each element is validated
// and persisted independently, and one element's failure never aborts the
// rest. Callers retry only the failed subset.
func (s *Service) BulkSave(ctx context.Context, actor Actor, inputs []DraftInput) (*BulkResult, error) {
	if len(inputs) == 0 {
		return nil, validationErr("provide at least one timesheet to save")
	}

	result := &BulkResult{Total: len(inputs)}
	for i, in := range inputs {
		entry, err := s.CreateOrUpdateDraft(ctx, actor, in)
		if err != nil {
			result.failure(i, in, err)
			continue
		}
		result.success(i, entry)
	}

	s.logBulk("bulk save", result)
	return result, nil
}

// BulkUpdateInput pairs an entry id with a partial edit.
type BulkUpdateInput struct {
	ID     uuid.UUID   `json:"id"`
	Update UpdateInput `json:"update"`
}

// BulkUpdate edits a batch of drafts best-effort.
func (s *Service) BulkUpdate(ctx context.Context, actor Actor, inputs []BulkUpdateInput) (*BulkResult, error) {
	if len(inputs) == 0 {
		return nil, validationErr("provide at least one timesheet to update")
	}

	result := &BulkResult{Total: len(inputs)}
	for i, in := range inputs {
		entry, err := s.UpdateDraft(ctx, actor, in.ID, in.Update)
		if err != nil {
			result.failure(i, in, err)
			continue
		}
		result.success(i, entry)
	}

	s.logBulk("bulk update", result)
	return result, nil
}

// BulkSubmit submits a batch of drafts. Each id gets the single-submit
// preconditions except the sibling-draft check: this is the path that
// submits a whole week at once. An id in the wrong status is a per-item
// failure, not an overall one.
func (s *Service) BulkSubmit(ctx context.Context, actor Actor, ids []uuid.UUID) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, validationErr("provide at least one timesheet id to submit")
	}

	result := &BulkResult{Total: len(ids)}
	for i, id := range ids {
		entry, err := s.submit(ctx, actor, id, false)
		if err != nil {
			result.failure(i, id, err)
			continue
		}
		result.success(i, entry)
	}

	s.logBulk("bulk submit", result)
	return result, nil
}

// BulkApprove approves a batch of submitted entries best-effort.
func (s *Service) BulkApprove(ctx context.Context, actor Actor, ids []uuid.UUID, comments string) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, validationErr("provide at least one timesheet id to approve")
	}

	result := &BulkResult{Total: len(ids)}
	for i, id := range ids {
		entry, err := s.Approve(ctx, actor, id, comments)
		if err != nil {
			result.failure(i, id, err)
			continue
		}
		result.success(i, entry)
	}

	s.logBulk("bulk approve", result)
	return result, nil
}

// BulkReject rejects a batch of submitted entries. The comments requirement
// is checked once for the whole batch since every item shares them.
func (s *Service) BulkReject(ctx context.Context, actor Actor, ids []uuid.UUID, comments string) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, validationErr("provide at least one timesheet id to reject")
	}
	if strings.TrimSpace(comments) == "" {
		return nil, validationErr("rejection requires approver comments")
	}

	result := &BulkResult{Total: len(ids)}
	for i, id := range ids {
		entry, err := s.Reject(ctx, actor, id, comments)
		if err != nil {
			result.failure(i, id, err)
			continue
		}
		result.success(i, entry)
	}

	s.logBulk("bulk reject", result)
	return result, nil
}

func (s *Service) logBulk(op string, result *BulkResult) {
	s.log.Info(op+" completed",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))
}
