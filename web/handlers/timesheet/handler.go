package timesheet

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ts "skyraksys.com/hrm/timesheet"
	"skyraksys.com/hrm/web/common"
	"skyraksys.com/hrm/web/middlewares"
)

// Archiver stores a copy of generated exports, keyed by file name.
type Archiver interface {
	WriteFile(ctx context.Context, key string, body []byte) error
}

type Endpoint struct {
	svc     *ts.Service
	log     *zap.Logger
	archive Archiver
}

// Register mounts the weekly timesheet routes. archive may be nil, in
// which case exports are only streamed to the caller.
func Register(r *gin.RouterGroup, svc *ts.Service, log *zap.Logger, archive Archiver) {
	ep := &Endpoint{svc: svc, log: log, archive: archive}

	r.POST("/timesheets", ep.Create)
	r.GET("/timesheets", ep.List)
	r.GET("/timesheets/week", ep.Week)
	r.GET("/timesheets/pending", ep.Pending)
	r.GET("/timesheets/summary", ep.Summary)
	r.GET("/timesheets/export", ep.Export)
	r.GET("/timesheets/:id", ep.Get)
	r.PUT("/timesheets/:id", ep.Update)

	r.POST("/timesheets/:id/submit", ep.Submit)
	r.POST("/timesheets/:id/approve", ep.Approve)
	r.POST("/timesheets/:id/reject", ep.Reject)
	r.POST("/timesheets/:id/resubmit", ep.Resubmit)

	r.POST("/timesheets/bulk", ep.BulkSave)
	r.PUT("/timesheets/bulk", ep.BulkUpdate)
	r.POST("/timesheets/bulk/submit", ep.BulkSubmit)
	r.POST("/timesheets/bulk/approve", ep.BulkApprove)
	r.POST("/timesheets/bulk/reject", ep.BulkReject)
}

func actor(c *gin.Context) (ts.Actor, bool) {
	a, ok := middlewares.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("not authenticated"))
	}
	return a, ok
}

func statusFor(kind ts.Kind) int {
	switch kind {
	case ts.KindValidation:
		return http.StatusBadRequest
	case ts.KindNotFound:
		return http.StatusNotFound
	case ts.KindAccessDenied, ts.KindPermissionError:
		return http.StatusForbidden
	case ts.KindInvalidState, ts.KindRequiresBulk:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError maps workflow errors onto HTTP statuses; anything else is a
// plain 500.
func respondError(c *gin.Context, err error) {
	var domainErr *ts.Error
	if errors.As(err, &domainErr) {
		resp := common.NewCodedErrorResponse(string(domainErr.Kind), domainErr.Message)
		if domainErr.Kind == ts.KindRequiresBulk {
			siblings := domainErr.SiblingDrafts
			resp.SiblingDrafts = &siblings
		}
		c.JSON(statusFor(domainErr.Kind), resp)
		return
	}
	c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
}
