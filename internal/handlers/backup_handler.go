package handlers

import (
	"net/http"

	"github.com/giftwheel/giveaway-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// BackupHandler handles backup-related HTTP requests
type BackupHandler struct {
	backupService services.BackupService
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService services.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// RunBackup handles POST /backups/run, triggering an export immediately
func (h *BackupHandler) RunBackup(c *gin.Context) {
	counts, err := h.backupService.RunBackup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Backup failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Backup completed", "exported": counts})
}
