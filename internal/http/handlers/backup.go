package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wargrove/armybook-backend/internal/http/response"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/services"
)

type BackupHandler struct {
	log    *logger.Logger
	backup services.BackupService
}

func NewBackupHandler(log *logger.Logger, backup services.BackupService) *BackupHandler {
	return &BackupHandler{
		log:    log.With("handler", "BackupHandler"),
		backup: backup,
	}
}

// GET /api/backup
func (h *BackupHandler) Export(c *gin.Context) {
	doc, err := h.backup.Export(c.Request.Context())
	if err != nil {
		h.log.Error("Export failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="armybook-backup.json"`)
	response.RespondOK(c, doc)
}

// POST /api/backup
func (h *BackupHandler) Import(c *gin.Context) {
	var doc services.BackupDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_backup_body", err)
		return
	}
	if err := h.backup.Import(c.Request.Context(), &doc); err != nil {
		h.log.Error("Import failed", "error", err)
		response.RespondError(c, http.StatusBadRequest, "import_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"imported": true})
}
