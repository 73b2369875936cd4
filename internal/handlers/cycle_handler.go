package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/services"
)

// CycleHandler handles crop-cycle-related requests
type CycleHandler struct {
	cycleService services.CropCycleServicer
}

// NewCycleHandler creates a new CycleHandler
func NewCycleHandler(cycleService services.CropCycleServicer) *CycleHandler {
	return &CycleHandler{cycleService: cycleService}
}

// CreateCycleRequest represents the request payload for creating a crop cycle
type CreateCycleRequest struct {
	GreenhouseID          string   `json:"greenhouse_id" binding:"required"`
	Name                  string   `json:"name" binding:"required,max=255"`
	StartDate             string   `json:"start_date" binding:"omitempty,date_only"`
	SeedType              string   `json:"seed_type" binding:"max=255"`
	PlantCount            int      `json:"plant_count" binding:"omitempty,min=0"`
	FarmerID              *string  `json:"farmer_id"`
	FarmerSharePercentage *float64 `json:"farmer_share_percentage" binding:"omitempty,min=0,max=100"`
}

// UpdateCycleRequest represents the request payload for updating a crop cycle
type UpdateCycleRequest struct {
	Name                  string   `json:"name" binding:"omitempty,max=255"`
	SeedType              string   `json:"seed_type" binding:"omitempty,max=255"`
	StartDate             string   `json:"start_date" binding:"omitempty,date_only"`
	Status                *string  `json:"status" binding:"omitempty,cycle_status"`
	PlantCount            *int     `json:"plant_count" binding:"omitempty,min=0"`
	ProductionStartDate   string   `json:"production_start_date" binding:"omitempty,date_only"`
	ClearFarmer           bool     `json:"clear_farmer"`
	FarmerID              *string  `json:"farmer_id"`
	FarmerSharePercentage *float64 `json:"farmer_share_percentage" binding:"omitempty,min=0,max=100"`
}

// CreateCycle handles the creation of a new crop cycle
// @Summary     Create a crop cycle
// @Description Start a new crop cycle in a greenhouse, optionally assigned to a farmer
// @Tags        cycles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCycleRequest true "Cycle details"
// @Success     201 {object} models.CropCycle "Cycle created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Greenhouse or farmer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles [post]
func (h *CycleHandler) CreateCycle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cycle, err := h.cycleService.CreateCropCycle(
		userID,
		req.GreenhouseID,
		req.Name,
		timeOrZero(startDate),
		req.SeedType,
		req.PlantCount,
		req.FarmerID,
		req.FarmerSharePercentage,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cycle": cycle})
}

// GetCycles handles the retrieval of all crop cycles for a user
// @Summary     Get all crop cycles
// @Description Get a paginated list of cycles, optionally filtered by status
// @Tags        cycles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Filter by status (active/closed/archived)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.CropCycle] "List of cycles"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles [get]
func (h *CycleHandler) GetCycles(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var status *models.CropCycleStatus
	if raw := c.Query("status"); raw != "" {
		s := models.CropCycleStatus(raw)
		status = &s
	}

	result, err := h.cycleService.GetUserCropCycles(userID, getPageRequest(c), status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCycle handles the retrieval of a single crop cycle
// @Summary     Get crop cycle by ID
// @Description Get a specific crop cycle by ID
// @Tags        cycles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Success     200 {object} models.CropCycle "Cycle details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id} [get]
func (h *CycleHandler) GetCycle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cycle, err := h.cycleService.GetCropCycleByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cycle": cycle})
}

// UpdateCycle handles updating a crop cycle
// @Summary     Update a crop cycle
// @Description Update a cycle's fields, status, or farmer assignment
// @Tags        cycles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Param       request body UpdateCycleRequest true "Fields to update"
// @Success     200 {object} models.CropCycle "Cycle updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id} [put]
func (h *CycleHandler) UpdateCycle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	productionStartDate, err := parseOptionalDate(req.ProductionStartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	update := services.CropCycleUpdate{
		Name:                  req.Name,
		SeedType:              req.SeedType,
		StartDate:             startDate,
		PlantCount:            req.PlantCount,
		ProductionStartDate:   productionStartDate,
		ClearFarmer:           req.ClearFarmer,
		FarmerID:              req.FarmerID,
		FarmerSharePercentage: req.FarmerSharePercentage,
	}
	if req.Status != nil {
		status := models.CropCycleStatus(*req.Status)
		update.Status = &status
	}

	cycle, err := h.cycleService.UpdateCropCycle(userID, c.Param("id"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cycle": cycle})
}

// DeleteCycle handles deleting a crop cycle
// @Summary     Delete a crop cycle
// @Description Delete a crop cycle and its transactions, withdrawals and programs
// @Tags        cycles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Success     204 "Cycle deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id} [delete]
func (h *CycleHandler) DeleteCycle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.cycleService.DeleteCropCycle(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
