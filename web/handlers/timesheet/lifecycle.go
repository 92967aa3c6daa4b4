package timesheet

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyraksys.com/hrm/web/common"
)

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// Submit moves one draft to Submitted. When the week holds other drafts
// the call fails with requires_bulk_submission and the sibling count.
func (ep *Endpoint) Submit(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	entry, err := ep.svc.Submit(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDTO(entry)))
}

// Approve moves a submitted entry to Approved; comments are optional.
func (ep *Endpoint) Approve(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	// An empty body means approval without comments.
	var req CommentsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	entry, err := ep.svc.Approve(c.Request.Context(), a, id, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDTO(entry)))
}

// Reject moves a submitted entry to Rejected; comments are mandatory.
func (ep *Endpoint) Reject(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CommentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	entry, err := ep.svc.Reject(c.Request.Context(), a, id, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDTO(entry)))
}

// Resubmit returns a rejected entry to Draft for another edit cycle.
func (ep *Endpoint) Resubmit(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	entry, err := ep.svc.Resubmit(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDTO(entry)))
}
