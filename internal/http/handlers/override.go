package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/http/response"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/services"
)

type OverrideHandler struct {
	log       *logger.Logger
	overrides services.OverrideService
}

func NewOverrideHandler(log *logger.Logger, overrides services.OverrideService) *OverrideHandler {
	return &OverrideHandler{
		log:       log.With("handler", "OverrideHandler"),
		overrides: overrides,
	}
}

// GET /api/overrides
func (h *OverrideHandler) ListOverrides(c *gin.Context) {
	patches, err := h.overrides.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error("ListOverrides failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_overrides_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"overrides": patches})
}

// GET /api/overrides/:unitId
func (h *OverrideHandler) GetOverride(c *gin.Context) {
	unitID := c.Param("unitId")
	if unitID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_unit_id", nil)
		return
	}
	patch, err := h.overrides.Get(c.Request.Context(), unitID)
	if err != nil {
		h.log.Error("GetOverride failed", "error", err, "unit_id", unitID)
		response.RespondError(c, http.StatusInternalServerError, "load_override_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"override": patch})
}

// PUT /api/overrides/:unitId
//
// An empty patch body deletes the stored override rather than storing
// an empty row.
func (h *OverrideHandler) SetOverride(c *gin.Context) {
	unitID := c.Param("unitId")
	if unitID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_unit_id", nil)
		return
	}
	var patch override.Override
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_override_body", err)
		return
	}
	derived, err := h.overrides.Set(c.Request.Context(), unitID, &patch)
	if err != nil {
		h.log.Error("SetOverride failed", "error", err, "unit_id", unitID)
		response.RespondError(c, http.StatusInternalServerError, "store_override_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"unit": derived})
}

// DELETE /api/overrides/:unitId
func (h *OverrideHandler) DeleteOverride(c *gin.Context) {
	unitID := c.Param("unitId")
	if unitID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_unit_id", nil)
		return
	}
	derived, err := h.overrides.Delete(c.Request.Context(), unitID)
	if err != nil {
		h.log.Error("DeleteOverride failed", "error", err, "unit_id", unitID)
		response.RespondError(c, http.StatusInternalServerError, "delete_override_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"unit": derived})
}
