package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/services"
)

// FarmerHandler handles farmer and withdrawal requests
type FarmerHandler struct {
	farmerService services.FarmerServicer
}

// NewFarmerHandler creates a new FarmerHandler
func NewFarmerHandler(farmerService services.FarmerServicer) *FarmerHandler {
	return &FarmerHandler{farmerService: farmerService}
}

// FarmerRequest represents the payload for creating or renaming a farmer
type FarmerRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// WithdrawalRequest represents the payload for recording a withdrawal
type WithdrawalRequest struct {
	Date        string  `json:"date" binding:"omitempty,date_only"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=500"`
}

// CreateFarmer handles the creation of a new farmer
// @Summary     Create a farmer
// @Description Register a new farmer
// @Tags        farmers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FarmerRequest true "Farmer details"
// @Success     201 {object} models.Farmer "Farmer created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /farmers [post]
func (h *FarmerHandler) CreateFarmer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	farmer, err := h.farmerService.CreateFarmer(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"farmer": farmer})
}

// GetFarmers handles the retrieval of all farmers for a user
// @Summary     Get all farmers
// @Description Get a paginated list of the authenticated user's farmers
// @Tags        farmers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Farmer] "List of farmers"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /farmers [get]
func (h *FarmerHandler) GetFarmers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.farmerService.GetUserFarmers(userID, getPageRequest(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFarmer handles the retrieval of a single farmer
// @Summary     Get farmer by ID
// @Description Get a specific farmer by ID
// @Tags        farmers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Farmer ID"
// @Success     200 {object} models.Farmer "Farmer details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Farmer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /farmers/{id} [get]
func (h *FarmerHandler) GetFarmer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	farmer, err := h.farmerService.GetFarmerByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"farmer": farmer})
}

// UpdateFarmer handles renaming a farmer
// @Summary     Update a farmer
// @Description Rename a farmer
// @Tags        farmers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Farmer ID"
// @Param       request body FarmerRequest true "New farmer name"
// @Success     200 {object} models.Farmer "Farmer updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Farmer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /farmers/{id} [put]
func (h *FarmerHandler) UpdateFarmer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	farmer, err := h.farmerService.UpdateFarmer(userID, c.Param("id"), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"farmer": farmer})
}

// DeleteFarmer handles deleting a farmer
// @Summary     Delete a farmer
// @Description Delete a farmer that is not assigned to any crop cycle
// @Tags        farmers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Farmer ID"
// @Success     204 "Farmer deleted"
// @Failure     400 {object} ErrorResponse "Farmer still assigned to a cycle"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Farmer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /farmers/{id} [delete]
func (h *FarmerHandler) DeleteFarmer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.farmerService.DeleteFarmer(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateWithdrawal handles recording a withdrawal on a cycle
// @Summary     Record a withdrawal
// @Description Record a farmer withdrawal against a crop cycle's fund
// @Tags        farmers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Param       request body WithdrawalRequest true "Withdrawal details"
// @Success     201 {object} models.FarmerWithdrawal "Withdrawal recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or cycle has no farmer"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id}/withdrawals [post]
func (h *FarmerHandler) CreateWithdrawal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	withdrawal, err := h.farmerService.CreateWithdrawal(userID, c.Param("id"), timeOrZero(date), req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"withdrawal": withdrawal})
}

// GetCycleWithdrawals handles listing the withdrawals of one cycle
// @Summary     Get cycle withdrawals
// @Description Get a paginated list of one cycle's withdrawals, newest first
// @Tags        farmers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.FarmerWithdrawal] "List of withdrawals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id}/withdrawals [get]
func (h *FarmerHandler) GetCycleWithdrawals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.farmerService.GetCycleWithdrawals(userID, c.Param("id"), getPageRequest(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteWithdrawal handles deleting a withdrawal
// @Summary     Delete a withdrawal
// @Description Delete a farmer withdrawal
// @Tags        farmers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Withdrawal ID"
// @Success     204 "Withdrawal deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Withdrawal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /withdrawals/{id} [delete]
func (h *FarmerHandler) DeleteWithdrawal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.farmerService.DeleteWithdrawal(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
