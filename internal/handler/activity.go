package handler

import (
	"sort"
	"strconv"

	"github.com/FehCode/financeflow1/internal/activity"
	"github.com/FehCode/financeflow1/internal/util"

	"github.com/gin-gonic/gin"
)

// ActivityHandler exposes the audit trail.
type ActivityHandler struct {
	Activities *activity.Logger
}

func NewActivityHandler(activities *activity.Logger) *ActivityHandler {
	return &ActivityHandler{Activities: activities}
}

// ListMine returns the current user's activities, newest first.
func (h *ActivityHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	items := h.Activities.ForUser(c.Request.Context(), user.ID)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	util.Success(c, util.Response{
		"activities": items,
	})
}

// Recent returns the newest activities across all users (admin view).
func (h *ActivityHandler) Recent(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	util.Success(c, util.Response{
		"activities": h.Activities.Recent(c.Request.Context(), limit),
	})
}
