package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wargrove/armybook-backend/internal/http/response"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/services"
)

type CatalogHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:     log.With("handler", "CatalogHandler"),
		catalog: catalog,
	}
}

// GET /api/factions
func (h *CatalogHandler) ListFactions(c *gin.Context) {
	factions, err := h.catalog.Factions(c.Request.Context())
	if err != nil {
		h.log.Error("ListFactions failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_factions_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"factions": factions})
}

// GET /api/factions/:id/units
//
// Units are returned with overrides already applied; the payload carries
// the override annotations (changed stats, change log) for display.
func (h *CatalogHandler) ListUnits(c *gin.Context) {
	factionID := c.Param("id")
	if factionID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_faction_id", nil)
		return
	}
	units, err := h.catalog.Units(c.Request.Context(), factionID)
	if err != nil {
		h.log.Error("ListUnits failed", "error", err, "faction_id", factionID)
		response.RespondError(c, http.StatusInternalServerError, "load_units_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"units": units})
}

// GET /api/units/:id
func (h *CatalogHandler) GetUnit(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_unit_id", nil)
		return
	}
	unit, err := h.catalog.Unit(c.Request.Context(), unitID)
	if err != nil {
		h.log.Error("GetUnit failed", "error", err, "unit_id", unitID)
		response.RespondError(c, http.StatusInternalServerError, "load_unit_failed", err)
		return
	}
	if unit == nil {
		response.RespondError(c, http.StatusNotFound, "unit_not_found", fmt.Errorf("unit %q not found", unitID))
		return
	}
	response.RespondOK(c, gin.H{"unit": unit})
}

// POST /api/catalog/invalidate
func (h *CatalogHandler) InvalidateCache(c *gin.Context) {
	h.catalog.InvalidateCache(c.Request.Context())
	response.RespondOK(c, gin.H{"invalidated": true})
}

// GET /api/factions/:id/magic-items
func (h *CatalogHandler) ListMagicItems(c *gin.Context) {
	factionID := c.Param("id")
	if factionID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_faction_id", nil)
		return
	}
	items, err := h.catalog.MagicItems(c.Request.Context(), factionID)
	if err != nil {
		h.log.Error("ListMagicItems failed", "error", err, "faction_id", factionID)
		response.RespondError(c, http.StatusInternalServerError, "load_magic_items_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// GET /api/factions/:id/ammunition
func (h *CatalogHandler) ListAmmunition(c *gin.Context) {
	factionID := c.Param("id")
	if factionID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_faction_id", nil)
		return
	}
	ammo, err := h.catalog.Ammunition(c.Request.Context(), factionID)
	if err != nil {
		h.log.Error("ListAmmunition failed", "error", err, "faction_id", factionID)
		response.RespondError(c, http.StatusInternalServerError, "load_ammunition_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ammunition": ammo})
}
