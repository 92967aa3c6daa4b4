package timesheet

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyraksys.com/hrm/model"
	ts "skyraksys.com/hrm/timesheet"
	"skyraksys.com/hrm/web/common"
)

func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid "+name))
		return nil, false
	}
	return &id, true
}

func queryInt(c *gin.Context, name string) *int {
	if val, err := strconv.Atoi(c.Query(name)); err == nil {
		return &val
	}
	return nil
}

func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid "+name+", expected yyyy-MM-dd"))
		return nil, false
	}
	return &d, true
}

// List returns the entries visible to the actor, filtered and paginated
// through query parameters.
func (ep *Endpoint) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	employeeID, ok := queryUUID(c, "employeeId")
	if !ok {
		return
	}
	projectID, ok := queryUUID(c, "projectId")
	if !ok {
		return
	}
	weekStart, ok := queryDate(c, "weekStartDate")
	if !ok {
		return
	}

	q := ts.ListQuery{
		EmployeeID:    employeeID,
		ProjectID:     projectID,
		WeekStartDate: weekStart,
		Year:          queryInt(c, "year"),
		WeekNumber:    queryInt(c, "weekNumber"),
		SortBy:        c.Query("sortBy"),
		SortDesc:      c.Query("sortDir") == "desc",
	}
	if status := c.Query("status"); status != "" {
		s := model.TimesheetStatus(status)
		q.Status = &s
	}
	if page := queryInt(c, "page"); page != nil {
		q.Page = *page
	}
	if pageSize := queryInt(c, "pageSize"); pageSize != nil {
		q.PageSize = *pageSize
	}

	entries, total, err := ep.svc.List(c.Request.Context(), a, q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(toDTOs(entries), total))
}

// Week returns all of an employee's entries for the week containing the
// given date. Defaults: the actor's own entries, the current week.
func (ep *Endpoint) Week(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	employeeID := a.EmployeeID
	if requested, ok := queryUUID(c, "employeeId"); !ok {
		return
	} else if requested != nil {
		employeeID = *requested
	}

	date := time.Now()
	if d, ok := queryDate(c, "date"); !ok {
		return
	} else if d != nil {
		date = *d
	}

	entries, err := ep.svc.ListByEmployeeAndWeek(c.Request.Context(), a, employeeID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDTOs(entries)))
}

type pendingQueueDTO struct {
	Entries      []TimesheetDTO `json:"entries"`
	TotalPending int            `json:"totalPending"`
	TotalHours   float64        `json:"totalHours"`
	Employees    int            `json:"employees"`
}

// Pending returns the approver's queue of submitted entries.
func (ep *Endpoint) Pending(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	employeeID, ok := queryUUID(c, "employeeId")
	if !ok {
		return
	}

	queue, err := ep.svc.ListPendingForApprover(c.Request.Context(), a, ts.PendingFilter{
		EmployeeID: employeeID,
		Year:       queryInt(c, "year"),
		WeekNumber: queryInt(c, "weekNumber"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(pendingQueueDTO{
		Entries:      toDTOs(queue.Entries),
		TotalPending: queue.TotalPending,
		TotalHours:   queue.TotalHours,
		Employees:    queue.Employees,
	}))
}

// Summary returns per-status counts and hour totals for a year.
func (ep *Endpoint) Summary(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	employeeID, ok := queryUUID(c, "employeeId")
	if !ok {
		return
	}

	year := time.Now().UTC().Year()
	if y := queryInt(c, "year"); y != nil {
		year = *y
	}

	summary, err := ep.svc.Summary(c.Request.Context(), a, employeeID, year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(summary))
}
