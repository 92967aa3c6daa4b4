package timesheet

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export streams an xlsx report of the weeks between from and to. A copy
// is archived when an archiver is configured; archiving failures only log,
// the caller still gets their file.
func (ep *Endpoint) Export(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}

	now := time.Now()
	if from == nil {
		from = &now
	}
	if to == nil {
		to = from
	}

	body, name, err := ep.svc.Export(c.Request.Context(), a, *from, *to)
	if err != nil {
		respondError(c, err)
		return
	}

	if ep.archive != nil {
		if err := ep.archive.WriteFile(c.Request.Context(), name, body); err != nil {
			ep.log.Warn("failed to archive export",
				zap.String("file", name),
				zap.Error(err))
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, body)
}
