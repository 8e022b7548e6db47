package handler

import (
	"net/http"

	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/models"
	"github.com/FehCode/financeflow1/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user set by the auth middleware.
// Writes the 401 response itself when absent.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return nil, false
	}
	return user, true
}

// storeError maps store failures onto the response envelope.
// ErrStoreUnavailable is the only fatal one: nothing works without the
// store, so the client is told to reload.
func storeError(c *gin.Context, err error, msg string) {
	if err == database.ErrStoreUnavailable {
		util.Error(c, http.StatusServiceUnavailable, util.CodeUnavailable, "store not ready, reload and retry")
		return
	}
	util.Error(c, http.StatusInternalServerError, util.CodeServerErr, msg)
}
