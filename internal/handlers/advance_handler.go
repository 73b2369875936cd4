package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/services"
)

// AdvanceHandler handles treasury advance requests
type AdvanceHandler struct {
	advanceService services.AdvanceServicer
}

// NewAdvanceHandler creates a new AdvanceHandler
func NewAdvanceHandler(advanceService services.AdvanceServicer) *AdvanceHandler {
	return &AdvanceHandler{advanceService: advanceService}
}

// CreateAdvanceRequest represents the payload for recording an advance
type CreateAdvanceRequest struct {
	Date        string  `json:"date" binding:"required,date_only"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=500"`
}

// CreateAdvance handles recording a treasury advance
// @Summary     Record an advance
// @Description Record an advance drawn from the treasury; advances reduce the aggregate balance only
// @Tags        advances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAdvanceRequest true "Advance details"
// @Success     201 {object} models.Advance "Advance recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advances [post]
func (h *AdvanceHandler) CreateAdvance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	advance, err := h.advanceService.CreateAdvance(userID, date, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"advance": advance})
}

// GetAdvances handles listing the user's advances
// @Summary     Get advances
// @Description Get a paginated list of the user's treasury advances
// @Tags        advances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Advance] "List of advances"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advances [get]
func (h *AdvanceHandler) GetAdvances(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.advanceService.GetUserAdvances(userID, getPageRequest(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteAdvance handles deleting an advance
// @Summary     Delete an advance
// @Description Delete a treasury advance
// @Tags        advances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Advance ID"
// @Success     204 "Advance deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Advance not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advances/{id} [delete]
func (h *AdvanceHandler) DeleteAdvance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.advanceService.DeleteAdvance(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
