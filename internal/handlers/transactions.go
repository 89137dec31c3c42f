package handlers

import (
	"fmt"
	"net/http"
	"time"

	"finance_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

type transactionRequest struct {
	Amount     float64 `json:"amount" binding:"required"`
	Type       string  `json:"type" binding:"required"` // income | expense
	CategoryID string  `json:"categoryId" binding:"required"`
	Date       string  `json:"date" binding:"required"` // RFC3339 or YYYY-MM-DD
	Notes      string  `json:"notes"`
}

// toInput parses the date and converts the wire shape into service input.
func (r transactionRequest) toInput() (service.TransactionInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return service.TransactionInput{}, err
	}
	return service.TransactionInput{
		Amount:      r.Amount,
		Type:        r.Type,
		CategoryID:  r.CategoryID,
		Date:        date,
		Description: r.Notes,
	}, nil
}

// parseDate accepts a few common layouts and normalizes to UTC.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}

// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, transactions"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/transactions [get]
// @Security     BearerAuth
func (h *Handler) listTransactions(c *gin.Context) {
	uid, _ := ownerID(c)
	transactions, err := h.services.Transactions.List(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err, "transactions_list_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(transactions), "transactions": transactions})
}

// @Summary      Create transaction
// @Description  The category reference is not checked for existence; orphaned references are tolerated.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  transactionRequest  true  "Transaction payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/transactions [post]
// @Security     BearerAuth
func (h *Handler) createTransaction(c *gin.Context) {
	var input transactionRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	in, err := input.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, _ := ownerID(c)
	transaction, err := h.services.Transactions.Create(c.Request.Context(), uid, in)
	if err != nil {
		h.respondError(c, err, "transaction_create_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// @Summary      Get transaction
// @Tags         transactions
// @Produce      json
// @Param        id  path  string  true  "Transaction ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/transactions/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTransaction(c *gin.Context) {
	uid, _ := ownerID(c)
	transaction, err := h.services.Transactions.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "transaction_get_failed", "user_id", uid, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// @Summary      Update transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Transaction ID"
// @Param        body  body  transactionRequest  true  "Replacement payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/transactions/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTransaction(c *gin.Context) {
	var input transactionRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	in, err := input.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, _ := ownerID(c)
	transaction, err := h.services.Transactions.Update(c.Request.Context(), uid, c.Param("id"), in)
	if err != nil {
		h.respondError(c, err, "transaction_update_failed", "user_id", uid, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// @Summary      Delete transaction
// @Tags         transactions
// @Produce      json
// @Param        id  path  string  true  "Transaction ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/transactions/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTransaction(c *gin.Context) {
	uid, _ := ownerID(c)
	transaction, err := h.services.Transactions.Delete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "transaction_delete_failed", "user_id", uid, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}
