package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the session JWT and puts the current user into
// the request context under "currentUser".
func AuthMiddleware(jwtSecret string, store *database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query parameter ?token=xxx for clients that cannot set headers
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, sign in again")
			c.Abort()
			return
		}

		user, err := store.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if err == database.ErrStoreUnavailable {
				util.Error(c, http.StatusServiceUnavailable, util.CodeUnavailable, "store not ready, reload and retry")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
			}
			c.Abort()
			return
		}
		if user == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user no longer exists")
			c.Abort()
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}
