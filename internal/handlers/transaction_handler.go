package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tresoria/internal/errors"
	"tresoria/internal/models"
	"tresoria/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the write payload for a transaction. The same
// shape serves create and update; updates additionally carry the id.
type TransactionRequest struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	CategoryID  *string         `json:"categoryId"`
	CompanyID   string          `json:"companyId" binding:"required"`
	Fournisseur string          `json:"fournisseur"`
}

// DeleteTransactionRequest represents the payload for deleting a transaction.
type DeleteTransactionRequest struct {
	ID        string `json:"id" binding:"required"`
	CompanyID string `json:"companyId" binding:"required"`
}

// transactionResponse mirrors the contract's transaction shape: the date is a
// calendar day and the category an embedded object or null.
type transactionResponse struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Fournisseur string            `json:"fournisseur"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Category    *categoryResponse `json:"category"`
}

func newTransactionResponse(t *models.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Fournisseur: t.Fournisseur,
		Label:       t.Label,
		Description: t.Description,
		Amount:      t.Amount,
		CategoryID:  t.CategoryID,
	}
	if t.Category != nil {
		category := newCategoryResponse(t.Category)
		resp.Category = &category
	}
	return resp
}

// ListTransactions handles the retrieval of all transactions for the company
// @Summary     List transactions
// @Description Get all transactions for the company, newest first
// @Tags        transactions
// @Produce     json
// @Success     200 {array} transactionResponse "List of transactions"
// @Failure     500 {object} map[string]interface{} "Server error"
// @Router      /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	companyID := c.Query("companyId")

	transactions, err := h.transactionService.ListTransactions(companyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]transactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, newTransactionResponse(&transactions[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new transaction; negative amounts are expenses, positive income
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} transactionResponse "Created transaction or {error}"
// @Failure     400 {object} map[string]interface{} "Invalid input"
// @Router      /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	input, companyID, _, err := h.bindTransaction(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(companyID, *input)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

// UpdateTransaction handles a full-field replace of an existing transaction
// @Summary     Update a transaction
// @Description Replace every field of an existing transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Updated transaction, id required"
// @Success     200 {object} transactionResponse "Updated transaction or {error}"
// @Failure     400 {object} map[string]interface{} "Invalid input"
// @Failure     404 {object} map[string]interface{} "Transaction not found"
// @Router      /api/transactions [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	input, companyID, id, err := h.bindTransaction(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if id == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction id is required"))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(companyID, id, *input)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

// DeleteTransaction handles the removal of a transaction
// @Summary     Delete a transaction
// @Description Remove a transaction from the company ledger
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body DeleteTransactionRequest true "Transaction to delete"
// @Success     200 {object} map[string]interface{} "Deleted"
// @Failure     404 {object} map[string]interface{} "Transaction not found"
// @Router      /api/transactions [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	var req DeleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.transactionService.DeleteTransaction(req.CompanyID, req.ID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// bindTransaction parses and validates the shared write payload, returning
// the input, the company id, and the transaction id (empty on creates).
func (h *TransactionHandler) bindTransaction(c *gin.Context) (*services.TransactionInput, string, string, error) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	input := services.TransactionInput{
		Label:       req.Label,
		Description: req.Description,
		Fournisseur: req.Fournisseur,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
	}
	if req.Date != "" {
		date, err := parseFlexibleDate(req.Date)
		if err != nil {
			return nil, "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		input.Date = date
	}
	return &input, req.CompanyID, req.ID, nil
}
