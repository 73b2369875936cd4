package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/services"
)

// SettingsHandler handles settings and expense-category requests
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents the payload for updating settings.
// Omitted fields keep their stored value.
type UpdateSettingsRequest struct {
	Theme                               *string `json:"theme" binding:"omitempty,theme"`
	IsFarmerSystemEnabled               *bool   `json:"is_farmer_system_enabled"`
	IsSupplierSystemEnabled             *bool   `json:"is_supplier_system_enabled"`
	IsAgriculturalProgramsSystemEnabled *bool   `json:"is_agricultural_programs_system_enabled"`
	IsTreasurySystemEnabled             *bool   `json:"is_treasury_system_enabled"`
	IsAdvancesSystemEnabled             *bool   `json:"is_advances_system_enabled"`
}

// ExpenseCategoryRequest represents the payload for creating or renaming
// an expense category
type ExpenseCategoryRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	IsFoundational *bool  `json:"is_foundational"`
}

// ReorderCategoriesRequest represents the payload for reordering the
// expense categories; the IDs must cover every category exactly once
type ReorderCategoriesRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required,min=1"`
}

// GetSettings handles retrieving the user's settings
// @Summary     Get settings
// @Description Get the user's settings; defaults are created on first access
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Settings "User settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.settingsService.GetSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings handles updating the user's settings
// @Summary     Update settings
// @Description Update the theme or toggle subsystems; omitted fields are untouched
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateSettingsRequest true "Fields to update"
// @Success     200 {object} models.Settings "Settings updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.SettingsUpdate{
		IsFarmerSystemEnabled:               req.IsFarmerSystemEnabled,
		IsSupplierSystemEnabled:             req.IsSupplierSystemEnabled,
		IsAgriculturalProgramsSystemEnabled: req.IsAgriculturalProgramsSystemEnabled,
		IsTreasurySystemEnabled:             req.IsTreasurySystemEnabled,
		IsAdvancesSystemEnabled:             req.IsAdvancesSystemEnabled,
	}
	if req.Theme != nil {
		theme := models.Theme(*req.Theme)
		update.Theme = &theme
	}

	settings, err := h.settingsService.UpdateSettings(userID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// AddExpenseCategory handles adding an expense category
// @Summary     Add an expense category
// @Description Add an expense category; names are unique per user
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseCategoryRequest true "Category details"
// @Success     201 {object} models.ExpenseCategory "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Category name already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/categories [post]
func (h *SettingsHandler) AddExpenseCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	isFoundational := false
	if req.IsFoundational != nil {
		isFoundational = *req.IsFoundational
	}

	category, err := h.settingsService.AddExpenseCategory(userID, req.Name, isFoundational)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateExpenseCategory handles renaming an expense category
// @Summary     Update an expense category
// @Description Rename a category or change its foundational flag; historical transactions keep the old name
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body ExpenseCategoryRequest true "Fields to update"
// @Success     200 {object} models.ExpenseCategory "Category updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category name already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/categories/{id} [put]
func (h *SettingsHandler) UpdateExpenseCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.settingsService.UpdateExpenseCategory(userID, c.Param("id"), req.Name, req.IsFoundational)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteExpenseCategory handles deleting an expense category
// @Summary     Delete an expense category
// @Description Delete a category; blocked while expense transactions reference it
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     204 "Category deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category is referenced by transactions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/categories/{id} [delete]
func (h *SettingsHandler) DeleteExpenseCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.settingsService.DeleteExpenseCategory(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderExpenseCategories handles reordering the expense categories
// @Summary     Reorder expense categories
// @Description Rewrite the display order; the ID list must cover every category exactly once
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReorderCategoriesRequest true "Ordered category IDs"
// @Success     200 {object} models.Settings "Categories reordered"
// @Failure     400 {object} ErrorResponse "Invalid input or incomplete ID list"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/categories/reorder [put]
func (h *SettingsHandler) ReorderExpenseCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.settingsService.ReorderExpenseCategories(userID, req.OrderedIDs); err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.settingsService.GetSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
