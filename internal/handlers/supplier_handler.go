package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/services"
)

// SupplierHandler handles supplier and payment requests
type SupplierHandler struct {
	supplierService services.SupplierServicer
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService services.SupplierServicer) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// SupplierRequest represents the payload for creating or renaming a supplier
type SupplierRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// PaymentRequest represents the payload for recording a supplier payment
type PaymentRequest struct {
	Date             string   `json:"date" binding:"omitempty,date_only"`
	Amount           float64  `json:"amount" binding:"required,gt=0"`
	Description      string   `json:"description" binding:"max=500"`
	LinkedExpenseIDs []string `json:"linked_expense_ids"`
}

// CreateSupplier handles the creation of a new supplier
// @Summary     Create a supplier
// @Description Register a new supplier
// @Tags        suppliers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SupplierRequest true "Supplier details"
// @Success     201 {object} models.Supplier "Supplier created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suppliers [post]
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	supplier, err := h.supplierService.CreateSupplier(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"supplier": supplier})
}

// GetSuppliers handles the retrieval of all suppliers for a user
// @Summary     Get all suppliers
// @Description Get a paginated list of the authenticated user's suppliers
// @Tags        suppliers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Supplier] "List of suppliers"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suppliers [get]
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.supplierService.GetUserSuppliers(userID, getPageRequest(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSupplier handles the retrieval of a single supplier
// @Summary     Get supplier by ID
// @Description Get a specific supplier by ID
// @Tags        suppliers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Supplier ID"
// @Success     200 {object} models.Supplier "Supplier details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Supplier not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suppliers/{id} [get]
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	supplier, err := h.supplierService.GetSupplierByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

// UpdateSupplier handles renaming a supplier
// @Summary     Update a supplier
// @Description Rename a supplier
// @Tags        suppliers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Supplier ID"
// @Param       request body SupplierRequest true "New supplier name"
// @Success     200 {object} models.Supplier "Supplier updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Supplier not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suppliers/{id} [put]
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(userID, c.Param("id"), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

// DeleteSupplier handles deleting a supplier
// @Summary     Delete a supplier
// @Description Delete a supplier with no transactions or payments
// @Tags        suppliers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Supplier ID"
// @Success     204 "Supplier deleted"
// @Failure     400 {object} ErrorResponse "Supplier still referenced"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Supplier not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suppliers/{id} [delete]
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.supplierService.DeleteSupplier(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreatePayment handles recording a payment to a supplier
// @Summary     Record a supplier payment
// @Description Record a payment to a supplier, optionally linked to expense invoices
// @Tags        suppliers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Supplier ID"
// @Param       request body PaymentRequest true "Payment details"
// @Success     201 {object} models.SupplierPayment "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Supplier or linked expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suppliers/{id}/payments [post]
func (h *SupplierHandler) CreatePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.supplierService.CreatePayment(userID, c.Param("id"), timeOrZero(date), req.Amount, req.Description, req.LinkedExpenseIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetSupplierPayments handles listing the payments to one supplier
// @Summary     Get supplier payments
// @Description Get a paginated list of payments to one supplier, newest first
// @Tags        suppliers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Supplier ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.SupplierPayment] "List of payments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Supplier not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suppliers/{id}/payments [get]
func (h *SupplierHandler) GetSupplierPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.supplierService.GetSupplierPayments(userID, c.Param("id"), getPageRequest(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePayment handles deleting a supplier payment
// @Summary     Delete a payment
// @Description Delete a supplier payment
// @Tags        suppliers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     204 "Payment deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id} [delete]
func (h *SupplierHandler) DeletePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.supplierService.DeletePayment(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
