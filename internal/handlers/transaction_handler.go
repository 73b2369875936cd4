package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// PriceItemRequest is one quantity/price pair of an itemized transaction
type PriceItemRequest struct {
	Quantity float64 `json:"quantity" binding:"min=0"`
	Price    float64 `json:"price" binding:"min=0"`
}

// TransactionRequest represents the payload for creating or updating a transaction
type TransactionRequest struct {
	CropCycleID            string             `json:"crop_cycle_id" binding:"required"`
	Date                   string             `json:"date" binding:"omitempty,date_only"`
	Description            string             `json:"description" binding:"max=500"`
	Type                   string             `json:"type" binding:"required,transaction_type"`
	Category               string             `json:"category" binding:"max=255"`
	Amount                 float64            `json:"amount" binding:"omitempty,min=0"`
	Quantity               *float64           `json:"quantity" binding:"omitempty,min=0"`
	PriceItems             []PriceItemRequest `json:"price_items"`
	Discount               *float64           `json:"discount" binding:"omitempty,min=0"`
	SupplierID             *string            `json:"supplier_id"`
	FertilizationProgramID *string            `json:"fertilization_program_id"`
}

func (req *TransactionRequest) toInput() (services.TransactionInput, error) {
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return services.TransactionInput{}, err
	}

	items := make([]models.PriceItem, 0, len(req.PriceItems))
	for _, item := range req.PriceItems {
		items = append(items, models.PriceItem{Quantity: item.Quantity, Price: item.Price})
	}
	if len(items) == 0 {
		items = nil
	}

	return services.TransactionInput{
		CropCycleID:            req.CropCycleID,
		Date:                   timeOrZero(date),
		Description:            req.Description,
		Type:                   models.TransactionType(req.Type),
		Category:               req.Category,
		Amount:                 req.Amount,
		Quantity:               req.Quantity,
		PriceItems:             items,
		Discount:               req.Discount,
		SupplierID:             req.SupplierID,
		FertilizationProgramID: req.FertilizationProgramID,
	}, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a revenue or expense on a crop cycle; itemized amounts are derived from the price items minus the discount
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle, supplier or program not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetCycleTransactions handles listing the transactions of one cycle
// @Summary     Get cycle transactions
// @Description Get a paginated list of one cycle's transactions, newest first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Param       type query string false "Filter by type (revenue/expense)"
// @Param       category query string false "Filter by category"
// @Param       from query string false "Filter from date (YYYY-MM-DD)"
// @Param       to query string false "Filter to date (YYYY-MM-DD)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "List of transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id}/transactions [get]
func (h *TransactionHandler) GetCycleTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var filter services.TransactionFilter
	if raw := c.Query("type"); raw != "" {
		txType := models.TransactionType(raw)
		filter.Type = &txType
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}
	if filter.FromDate, err = parseOptionalDate(c.Query("from")); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.ToDate, err = parseOptionalDate(c.Query("to")); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetCycleTransactions(userID, c.Param("id"), getPageRequest(c), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaction handles the retrieval of a single transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating a transaction
// @Summary     Update a transaction
// @Description Replace a transaction's fields; the amount is re-derived from the price items
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body TransactionRequest true "New transaction fields"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
