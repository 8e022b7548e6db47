package handler

import (
	"github.com/FehCode/financeflow1/internal/activity"
	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/models"
	"github.com/FehCode/financeflow1/internal/session"
	"github.com/FehCode/financeflow1/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler owns account-level operations.
type ProfileHandler struct {
	Store      *database.Store
	Sessions   *session.Service
	Activities *activity.Logger
}

func NewProfileHandler(store *database.Store, sessions *session.Service, activities *activity.Logger) *ProfileHandler {
	return &ProfileHandler{Store: store, Sessions: sessions, Activities: activities}
}

// DeleteAccount wipes the user's data: transactions first, then the user
// record. A crash mid-sequence leaves no orphaned transactions; partial
// completion is recoverable by re-running the wipe.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	// recorded before the wipe so the trail keeps the user id
	h.Activities.Record(c.Request.Context(), user.ID, models.ActivityOther, "account deleted")

	if err := h.Store.DeleteUserData(c.Request.Context(), user.ID); err != nil {
		storeError(c, err, "failed to delete account")
		return
	}

	h.Sessions.SignOut()

	util.Success(c, util.Response{
		"message": "account deleted",
	})
}
