package handlers

import (
	"net/http"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// TransactionRequest is the body of POST /api/transactions. Amount accepts
// a JSON number or a numeric string.
type TransactionRequest struct {
	UserID      int           `json:"user_id" example:"1"`
	Description string        `json:"description" example:"Coffee"`
	Amount      *models.Money `json:"amount" swaggertype:"string" example:"3.50"`
	Type        string        `json:"type" example:"expense"`
	Category    string        `json:"category" example:"food"`
	Date        string        `json:"date" example:"2024-01-01"`
}

// deleteResponse is the body of a successful delete.
type deleteResponse struct {
	Success bool `json:"success" example:"true"`
}

// @Summary      List transactions
// @Description  Newest date first; ties broken by newest id.
// @Tags         transactions
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {array}   models.Transaction
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/transactions/{userId} [get]
func (h *Handler) listTransactions(c *gin.Context) {
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	txs, err := h.services.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "transactions_list_failed", err, "user_id", userID)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txs)
}

// @Summary      Create transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      TransactionRequest  true  "Transaction"
// @Success      200   {object}  models.Transaction
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/transactions [post]
func (h *Handler) createTransaction(c *gin.Context) {
	var req TransactionRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	tx, err := h.services.CreateTransaction(c.Request.Context(), service.TransactionInput{
		UserID:      req.UserID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		h.writeError(c, "transaction_create_failed", err, "user_id", req.UserID)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// @Summary      Delete transaction
// @Description  Deleting an id that does not exist also succeeds.
// @Tags         transactions
// @Produce      json
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/transactions/{id} [delete]
func (h *Handler) deleteTransaction(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.writeError(c, "transaction_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, deleteResponse{Success: true})
}
