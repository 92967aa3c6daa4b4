package timesheet

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ts "skyraksys.com/hrm/timesheet"
	"skyraksys.com/hrm/web/common"
)

// BulkSave files a batch of drafts best-effort; per-element failures are
// reported in the result, not as an overall error.
func (ep *Endpoint) BulkSave(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req BulkSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	inputs := make([]ts.DraftInput, len(req.Timesheets))
	for i := range req.Timesheets {
		inputs[i] = req.Timesheets[i].toInput()
	}

	result, err := ep.svc.BulkSave(c.Request.Context(), a, inputs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

// BulkUpdate edits a batch of drafts best-effort.
func (ep *Endpoint) BulkUpdate(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	inputs := make([]ts.BulkUpdateInput, len(req.Timesheets))
	for i, item := range req.Timesheets {
		inputs[i] = ts.BulkUpdateInput{ID: item.ID, Update: item.UpdateInput}
	}

	result, err := ep.svc.BulkUpdate(c.Request.Context(), a, inputs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

// BulkSubmit submits a whole week (or any batch of drafts) at once. This
// is the only path that may submit a week holding several drafts.
func (ep *Endpoint) BulkSubmit(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ep.svc.BulkSubmit(c.Request.Context(), a, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

// BulkApprove approves a batch of submitted entries.
func (ep *Endpoint) BulkApprove(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ep.svc.BulkApprove(c.Request.Context(), a, req.IDs, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

// BulkReject rejects a batch of submitted entries with shared comments.
func (ep *Endpoint) BulkReject(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ep.svc.BulkReject(c.Request.Context(), a, req.IDs, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}
