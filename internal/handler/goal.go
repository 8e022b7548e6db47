package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/FehCode/financeflow1/internal/activity"
	"github.com/FehCode/financeflow1/internal/analytics"
	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/models"
	"github.com/FehCode/financeflow1/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalHandler owns savings-goal CRUD and the derived progress view.
type GoalHandler struct {
	Store      *database.Store
	Activities *activity.Logger
}

func NewGoalHandler(store *database.Store, activities *activity.Logger) *GoalHandler {
	return &GoalHandler{Store: store, Activities: activities}
}

type goalReq struct {
	Name          string `json:"name" binding:"required,max=128"`
	TargetAmount  string `json:"target_amount" binding:"required"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline" binding:"required"`
}

func parseGoalReq(req *goalReq) (target, current decimal.Decimal, deadline time.Time, err error) {
	req.Name = strings.TrimSpace(req.Name)

	target, err = decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return
	}
	if err = util.ValidateAmount(target); err != nil {
		return
	}

	current = decimal.Zero
	if req.CurrentAmount != "" {
		current, err = decimal.NewFromString(req.CurrentAmount)
		if err != nil {
			return
		}
		if current.IsNegative() {
			err = errNegativeCurrent
			return
		}
	}

	if err = util.ValidateDate(req.Deadline); err != nil {
		return
	}
	deadline, _ = time.Parse("2006-01-02", req.Deadline)
	return
}

var errNegativeCurrent = &goalValidationError{"current amount must not be negative"}

type goalValidationError struct{ msg string }

func (e *goalValidationError) Error() string { return e.msg }

func (h *GoalHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	target, current, deadline, err := parseGoalReq(&req)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	goal := models.Goal{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Name:          req.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		CreatedAt:     time.Now(),
	}

	if err := h.Store.SaveGoal(c.Request.Context(), &goal); err != nil {
		storeError(c, err, "failed to save goal")
		return
	}

	h.Activities.Record(c.Request.Context(), user.ID, models.ActivityOther, "added goal "+req.Name)

	util.Success(c, util.Response{
		"goal": goal,
	})
}

// List returns the user's goals, each with its derived progress. Raw
// amounts stay on the record; only the percent is clamped for display.
func (h *GoalHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.Store.GoalsByUser(c.Request.Context(), user.ID)
	if err != nil {
		storeError(c, err, "failed to list goals")
		return
	}

	now := time.Now()
	items := make([]gin.H, 0, len(goals))
	for _, goal := range goals {
		items = append(items, gin.H{
			"goal":     goal,
			"progress": analytics.ProgressForGoal(goal, now),
		})
	}

	util.Success(c, util.Response{
		"goals": items,
	})
}

func (h *GoalHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	target, current, deadline, err := parseGoalReq(&req)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	existing, err := h.Store.GetGoal(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load goal")
		return
	}
	if existing == nil || existing.UserID != user.ID {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		return
	}

	existing.Name = req.Name
	existing.TargetAmount = target
	existing.CurrentAmount = current
	existing.Deadline = deadline

	if err := h.Store.SaveGoal(c.Request.Context(), existing); err != nil {
		storeError(c, err, "failed to save goal")
		return
	}

	util.Success(c, util.Response{
		"goal": existing,
	})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	existing, err := h.Store.GetGoal(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load goal")
		return
	}
	if existing != nil && existing.UserID != user.ID {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		return
	}

	if err := h.Store.DeleteGoal(c.Request.Context(), id); err != nil {
		storeError(c, err, "failed to delete goal")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
