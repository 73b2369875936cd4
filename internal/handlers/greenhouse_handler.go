package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/services"
)

// GreenhouseHandler handles greenhouse-related requests
type GreenhouseHandler struct {
	greenhouseService services.GreenhouseServicer
}

// NewGreenhouseHandler creates a new GreenhouseHandler
func NewGreenhouseHandler(greenhouseService services.GreenhouseServicer) *GreenhouseHandler {
	return &GreenhouseHandler{greenhouseService: greenhouseService}
}

// CreateGreenhouseRequest represents the request payload for creating a greenhouse
type CreateGreenhouseRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	CreationDate string  `json:"creation_date" binding:"omitempty,date_only"`
	InitialCost  float64 `json:"initial_cost" binding:"omitempty,min=0"`
}

// UpdateGreenhouseRequest represents the request payload for updating a greenhouse
type UpdateGreenhouseRequest struct {
	Name         string   `json:"name" binding:"omitempty,max=255"`
	CreationDate string   `json:"creation_date" binding:"omitempty,date_only"`
	InitialCost  *float64 `json:"initial_cost" binding:"omitempty,min=0"`
}

// CreateGreenhouse handles the creation of a new greenhouse
// @Summary     Create a greenhouse
// @Description Create a new greenhouse with its initial capital cost
// @Tags        greenhouses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGreenhouseRequest true "Greenhouse details"
// @Success     201 {object} models.Greenhouse "Greenhouse created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /greenhouses [post]
func (h *GreenhouseHandler) CreateGreenhouse(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGreenhouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	creationDate, err := parseOptionalDate(req.CreationDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	greenhouse, err := h.greenhouseService.CreateGreenhouse(userID, req.Name, timeOrZero(creationDate), req.InitialCost)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"greenhouse": greenhouse})
}

// GetGreenhouses handles the retrieval of all greenhouses for a user
// @Summary     Get all greenhouses
// @Description Get a paginated list of the authenticated user's greenhouses
// @Tags        greenhouses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Greenhouse] "List of greenhouses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /greenhouses [get]
func (h *GreenhouseHandler) GetGreenhouses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.greenhouseService.GetUserGreenhouses(userID, getPageRequest(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGreenhouse handles the retrieval of a single greenhouse
// @Summary     Get greenhouse by ID
// @Description Get a specific greenhouse by ID
// @Tags        greenhouses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Greenhouse ID"
// @Success     200 {object} models.Greenhouse "Greenhouse details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Greenhouse not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /greenhouses/{id} [get]
func (h *GreenhouseHandler) GetGreenhouse(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	greenhouse, err := h.greenhouseService.GetGreenhouseByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"greenhouse": greenhouse})
}

// UpdateGreenhouse handles updating a greenhouse
// @Summary     Update a greenhouse
// @Description Update a greenhouse's name, creation date or initial cost
// @Tags        greenhouses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Greenhouse ID"
// @Param       request body UpdateGreenhouseRequest true "Fields to update"
// @Success     200 {object} models.Greenhouse "Greenhouse updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Greenhouse not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /greenhouses/{id} [put]
func (h *GreenhouseHandler) UpdateGreenhouse(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGreenhouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	creationDate, err := parseOptionalDate(req.CreationDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	greenhouse, err := h.greenhouseService.UpdateGreenhouse(userID, c.Param("id"), req.Name, creationDate, req.InitialCost)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"greenhouse": greenhouse})
}

// DeleteGreenhouse handles deleting a greenhouse
// @Summary     Delete a greenhouse
// @Description Delete a greenhouse that has no crop cycles
// @Tags        greenhouses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Greenhouse ID"
// @Success     204 "Greenhouse deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Greenhouse not found"
// @Failure     409 {object} ErrorResponse "Greenhouse still has crop cycles"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /greenhouses/{id} [delete]
func (h *GreenhouseHandler) DeleteGreenhouse(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.greenhouseService.DeleteGreenhouse(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
