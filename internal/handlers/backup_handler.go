package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mashtal/internal/engine"
	apperrors "mashtal/internal/errors"
	"mashtal/internal/services"
)

// BackupHandler exports and restores a user's complete data set
type BackupHandler struct {
	backupService services.BackupServicer
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService services.BackupServicer) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// ExportBackup handles exporting the user's data
// @Summary     Export backup
// @Description Export every record the user owns as a single JSON document
// @Tags        backup
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} engine.Snapshot "Complete data set"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup [get]
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.backupService.Export(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="mashtal-backup.json"`)
	c.JSON(http.StatusOK, snapshot)
}

// ImportBackup handles restoring the user's data from a backup
// @Summary     Import backup
// @Description Replace every record the user owns with the uploaded backup; this is not additive
// @Tags        backup
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body engine.Snapshot true "Backup document"
// @Success     200 {object} map[string]string "Backup restored"
// @Failure     400 {object} ErrorResponse "Invalid backup document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup [post]
func (h *BackupHandler) ImportBackup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var snapshot engine.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.backupService.Import(userID, &snapshot); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "backup restored"})
}
