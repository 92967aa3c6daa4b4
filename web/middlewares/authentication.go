package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyraksys.com/hrm/model"
	"skyraksys.com/hrm/security"
	"skyraksys.com/hrm/timesheet"
	"skyraksys.com/hrm/web/common"
)

const actorKey = "actor"

// Authentication checks for a valid Bearer token (or session cookie) and
// puts the resolved Actor into the request context.
func Authentication(base64Secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Try to get from cookie
			cookie, err := c.Cookie("hrm.ApplicationCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = parts[1]
		}

		claims, err := security.ParseIdentityToken(tokenStr, base64Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		employeeID, err := uuid.Parse(claims.EmployeeID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("token carries no employee identity"))
			return
		}

		c.Set(actorKey, timesheet.Actor{
			EmployeeID: employeeID,
			Role:       model.Role(claims.Role),
		})
		c.Next()
	}
}

// CurrentActor returns the Actor set by Authentication.
func CurrentActor(c *gin.Context) (timesheet.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return timesheet.Actor{}, false
	}
	actor, ok := v.(timesheet.Actor)
	return actor, ok
}
