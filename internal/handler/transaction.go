package handler

import (
	"net/http"
	"sort"
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

// TransactionHandler owns transaction CRUD and the derived statistics
// endpoints.
type TransactionHandler struct {
	Store      *database.Store
	Activities *activity.Logger
}

func NewTransactionHandler(store *database.Store, activities *activity.Logger) *TransactionHandler {
	return &TransactionHandler{Store: store, Activities: activities}
}

type transactionReq struct {
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=income expense"`
}

// parseTransactionReq validates the form fields before anything reaches
// the store. Malformed input never gets persisted.
func parseTransactionReq(req *transactionReq) (decimal.Decimal, time.Time, error) {
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)

	if err := util.ValidateDescription(req.Description); err != nil {
		return decimal.Zero, time.Time{}, err
	}
	if err := util.ValidateCategory(req.Category); err != nil {
		return decimal.Zero, time.Time{}, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	if err := util.ValidateAmount(amount); err != nil {
		return decimal.Zero, time.Time{}, err
	}

	if err := util.ValidateDate(req.Date); err != nil {
		return decimal.Zero, time.Time{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	return amount, date, nil
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	amount, date, err := parseTransactionReq(&req)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	tx := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: req.Description,
		Amount:      amount,
		Category:    req.Category,
		Type:        req.Type,
		Date:        date,
		CreatedAt:   time.Now(),
	}

	if err := h.Store.SaveTransaction(c.Request.Context(), &tx); err != nil {
		storeError(c, err, "failed to save transaction")
		return
	}

	h.Activities.Record(c.Request.Context(), user.ID, models.ActivityTransaction, "added "+req.Type+" "+req.Description)

	util.Success(c, util.Response{
		"transaction": tx,
	})
}

// List returns the user's transactions, newest first. The store leaves
// order unspecified, so sorting happens here.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txs, err := h.Store.TransactionsByUser(c.Request.Context(), user.ID)
	if err != nil {
		storeError(c, err, "failed to list transactions")
		return
	}

	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	util.Success(c, util.Response{
		"transactions": txs,
	})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	amount, date, err := parseTransactionReq(&req)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	// only the owning user may edit a record
	existing, err := h.Store.GetTransaction(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load transaction")
		return
	}
	if existing == nil || existing.UserID != user.ID {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	existing.Description = req.Description
	existing.Amount = amount
	existing.Category = req.Category
	existing.Type = req.Type
	existing.Date = date

	if err := h.Store.SaveTransaction(c.Request.Context(), existing); err != nil {
		storeError(c, err, "failed to save transaction")
		return
	}

	util.Success(c, util.Response{
		"transaction": existing,
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	existing, err := h.Store.GetTransaction(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load transaction")
		return
	}
	if existing != nil && existing.UserID != user.ID {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	// deleting an already-absent id is a no-op, not an error
	if err := h.Store.DeleteTransaction(c.Request.Context(), id); err != nil {
		storeError(c, err, "failed to delete transaction")
		return
	}

	h.Activities.Record(c.Request.Context(), user.ID, models.ActivityTransaction, "deleted transaction")

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

// Summary returns the income/expense/balance aggregates.
func (h *TransactionHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txs, err := h.Store.TransactionsByUser(c.Request.Context(), user.ID)
	if err != nil {
		storeError(c, err, "failed to list transactions")
		return
	}

	util.Success(c, util.Response{
		"totals": analytics.ComputeTotals(txs),
	})
}

// Categories returns the expense distribution chart input.
func (h *TransactionHandler) Categories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txs, err := h.Store.TransactionsByUser(c.Request.Context(), user.ID)
	if err != nil {
		storeError(c, err, "failed to list transactions")
		return
	}

	util.Success(c, util.Response{
		"categories": analytics.ExpenseChartData(txs),
	})
}

// History returns the six-month rolling balance history.
func (h *TransactionHandler) History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txs, err := h.Store.TransactionsByUser(c.Request.Context(), user.ID)
	if err != nil {
		storeError(c, err, "failed to list transactions")
		return
	}

	util.Success(c, util.Response{
		"history": analytics.MonthlyBalanceHistory(txs, 6, time.Now()),
	})
}
