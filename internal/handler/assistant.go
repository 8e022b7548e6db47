package handler

import (
	"net/http"

	"github.com/FehCode/financeflow1/internal/analytics"
	"github.com/FehCode/financeflow1/internal/assistant"
	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/util"

	"github.com/gin-gonic/gin"
)

// AssistantHandler bridges the chat endpoint to the assistant gateway.
type AssistantHandler struct {
	Store   *database.Store
	Gateway *assistant.Gateway
}

func NewAssistantHandler(store *database.Store, gateway *assistant.Gateway) *AssistantHandler {
	return &AssistantHandler{Store: store, Gateway: gateway}
}

type chatReq struct {
	Messages []assistant.Message `json:"messages" binding:"required"`
}

// Chat computes the financial snapshot from the user's own records and
// asks the gateway for advice. The gateway never fails: a degraded
// external service yields the local fallback, flagged so the UI can show
// a non-blocking warning.
func (h *AssistantHandler) Chat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	txs, err := h.Store.TransactionsByUser(c.Request.Context(), user.ID)
	if err != nil {
		storeError(c, err, "failed to load transactions")
		return
	}

	totals := analytics.ComputeTotals(txs)
	snap := assistant.Snapshot{
		Balance:  totals.Balance,
		Income:   totals.Income,
		Expenses: totals.Expenses,
	}

	reply, fromFallback := h.Gateway.Advise(c.Request.Context(), req.Messages, snap)

	util.Success(c, util.Response{
		"reply":    reply,
		"fallback": fromFallback,
	})
}
