package timesheet

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyraksys.com/hrm/web/common"
)

// Create files a weekly draft; an existing draft for the same employee,
// project, task and week is updated in place.
func (ep *Endpoint) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	entry, err := ep.svc.CreateOrUpdateDraft(c.Request.Context(), a, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(toDTO(entry)))
}

// Update edits the mutable fields of a draft entry.
func (ep *Endpoint) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	entry, err := ep.svc.UpdateDraft(c.Request.Context(), a, id, req.UpdateInput)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDTO(entry)))
}

// Get returns a single entry within the actor's read scope.
func (ep *Endpoint) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	entry, err := ep.svc.GetByID(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDTO(entry)))
}
