package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/services"
)

// ProgramHandler handles fertilization-program requests
type ProgramHandler struct {
	programService services.ProgramServicer
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(programService services.ProgramServicer) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// CreateProgramRequest represents the payload for creating a program
type CreateProgramRequest struct {
	CropCycleID string `json:"crop_cycle_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=255"`
	StartDate   string `json:"start_date" binding:"required,date_only"`
	EndDate     string `json:"end_date" binding:"required,date_only"`
}

// UpdateProgramRequest represents the payload for updating a program
type UpdateProgramRequest struct {
	Name      string `json:"name" binding:"omitempty,max=255"`
	StartDate string `json:"start_date" binding:"omitempty,date_only"`
	EndDate   string `json:"end_date" binding:"omitempty,date_only"`
}

// CreateProgram handles the creation of a new fertilization program
// @Summary     Create a fertilization program
// @Description Create a fertilization program on a crop cycle; the end date cannot precede the start date
// @Tags        programs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProgramRequest true "Program details"
// @Success     201 {object} models.FertilizationProgram "Program created"
// @Failure     400 {object} ErrorResponse "Invalid input or end date before start date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	program, err := h.programService.CreateProgram(userID, req.CropCycleID, req.Name, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"program": program})
}

// GetCyclePrograms handles listing the programs of one cycle
// @Summary     Get cycle programs
// @Description Get a paginated list of one cycle's fertilization programs
// @Tags        programs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.FertilizationProgram] "List of programs"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id}/programs [get]
func (h *ProgramHandler) GetCyclePrograms(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.programService.GetCyclePrograms(userID, c.Param("id"), getPageRequest(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProgram handles the retrieval of a single program
// @Summary     Get program by ID
// @Description Get a specific fertilization program by ID
// @Tags        programs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Program ID"
// @Success     200 {object} models.FertilizationProgram "Program details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Program not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /programs/{id} [get]
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	program, err := h.programService.GetProgramByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"program": program})
}

// UpdateProgram handles updating a program
// @Summary     Update a program
// @Description Update a program's name or dates; the date order is re-checked
// @Tags        programs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Program ID"
// @Param       request body UpdateProgramRequest true "Fields to update"
// @Success     200 {object} models.FertilizationProgram "Program updated"
// @Failure     400 {object} ErrorResponse "Invalid input or end date before start date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Program not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /programs/{id} [put]
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	program, err := h.programService.UpdateProgram(userID, c.Param("id"), req.Name, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"program": program})
}

// DeleteProgram handles deleting a program
// @Summary     Delete a program
// @Description Delete a fertilization program
// @Tags        programs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Program ID"
// @Success     204 "Program deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Program not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /programs/{id} [delete]
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.programService.DeleteProgram(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
