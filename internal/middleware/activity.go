package middleware

import (
	"github.com/FehCode/financeflow1/internal/activity"
	"github.com/FehCode/financeflow1/internal/models"

	"github.com/gin-gonic/gin"
)

// ActivityMiddleware appends a view_page activity for authenticated GET
// requests after they complete. Recording is best-effort; it never affects
// the response.
func ActivityMiddleware(logger *activity.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}

		v, ok := c.Get("currentUser")
		if !ok {
			return
		}
		user, ok := v.(*models.User)
		if !ok || user == nil {
			return
		}

		_ = logger.Record(c.Request.Context(), user.ID, models.ActivityViewPage, c.Request.URL.Path)
	}
}
