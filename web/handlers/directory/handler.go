package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyraksys.com/hrm/directory"
	"skyraksys.com/hrm/web/common"
	"skyraksys.com/hrm/web/middlewares"
)

type Endpoint struct {
	dir *directory.Directory
}

// Register mounts the read-only employee/project/task lookups that the
// timesheet entry screens feed from.
func Register(r *gin.RouterGroup, dir *directory.Directory) {
	ep := &Endpoint{dir: dir}
	r.GET("/employees", ep.Employees)
	r.GET("/projects", ep.Projects)
	r.GET("/projects/:id/tasks", ep.Tasks)
}

func (ep *Endpoint) Employees(c *gin.Context) {
	employees, err := ep.dir.ListEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(employees))
}

func (ep *Endpoint) Projects(c *gin.Context) {
	projects, err := ep.dir.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(projects))
}

// Tasks lists the active tasks of a project the caller may log time on.
func (ep *Endpoint) Tasks(c *gin.Context) {
	a, ok := middlewares.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("not authenticated"))
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	tasks, err := ep.dir.ListTasks(c.Request.Context(), projectID, a.EmployeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(tasks))
}
