package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wargrove/armybook-backend/internal/http/response"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/services"
)

type RosterHandler struct {
	log    *logger.Logger
	roster services.RosterService
}

func NewRosterHandler(log *logger.Logger, roster services.RosterService) *RosterHandler {
	return &RosterHandler{
		log:    log.With("handler", "RosterHandler"),
		roster: roster,
	}
}

// GET /api/lists
func (h *RosterHandler) ListLists(c *gin.Context) {
	views, err := h.roster.GetLists(c.Request.Context())
	if err != nil {
		h.log.Error("ListLists failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_lists_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"lists": views})
}

// GET /api/lists/:id
func (h *RosterHandler) GetList(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil || listID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_list_id", err)
		return
	}
	view, err := h.roster.GetList(c.Request.Context(), listID)
	if err != nil {
		h.log.Error("GetList failed", "error", err, "list_id", listID)
		response.RespondError(c, http.StatusInternalServerError, "load_list_failed", err)
		return
	}
	if view == nil {
		response.RespondError(c, http.StatusNotFound, "list_not_found", nil)
		return
	}
	response.RespondOK(c, view)
}

// POST /api/lists
func (h *RosterHandler) CreateList(c *gin.Context) {
	var in services.ListInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_list_body", err)
		return
	}
	list, err := h.roster.CreateList(c.Request.Context(), in)
	if err != nil {
		h.log.Error("CreateList failed", "error", err)
		response.RespondError(c, http.StatusBadRequest, "create_list_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"list": list})
}

// PUT /api/lists/:id
func (h *RosterHandler) UpdateList(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil || listID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_list_id", err)
		return
	}
	var in services.ListInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_list_body", err)
		return
	}
	list, err := h.roster.UpdateList(c.Request.Context(), listID, in)
	if err != nil {
		h.log.Error("UpdateList failed", "error", err, "list_id", listID)
		response.RespondError(c, http.StatusInternalServerError, "update_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"list": list})
}

// DELETE /api/lists/:id
func (h *RosterHandler) DeleteList(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil || listID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_list_id", err)
		return
	}
	if err := h.roster.DeleteList(c.Request.Context(), listID); err != nil {
		h.log.Error("DeleteList failed", "error", err, "list_id", listID)
		response.RespondError(c, http.StatusInternalServerError, "delete_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": listID})
}

// POST /api/lists/:id/entries
func (h *RosterHandler) AddEntry(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil || listID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_list_id", err)
		return
	}
	var body struct {
		UnitID string `json:"unitId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UnitID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_entry_body", err)
		return
	}
	entry, err := h.roster.AddEntry(c.Request.Context(), listID, body.UnitID)
	if err != nil {
		h.log.Error("AddEntry failed", "error", err, "list_id", listID, "unit_id", body.UnitID)
		response.RespondError(c, http.StatusBadRequest, "add_entry_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"entry": entry})
}

// DELETE /api/entries/:id
func (h *RosterHandler) RemoveEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil || entryID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_entry_id", err)
		return
	}
	if err := h.roster.RemoveEntry(c.Request.Context(), entryID); err != nil {
		h.log.Error("RemoveEntry failed", "error", err, "entry_id", entryID)
		response.RespondError(c, http.StatusInternalServerError, "remove_entry_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": entryID})
}

// POST /api/entries/:id/mutate
//
// A rejected mutation is a 200 with applied=false, not an error; only
// malformed requests and storage failures are errors.
func (h *RosterHandler) MutateEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil || entryID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_entry_id", err)
		return
	}
	var m services.EntryMutation
	if err := c.ShouldBindJSON(&m); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_mutation_body", err)
		return
	}
	result, err := h.roster.MutateEntry(c.Request.Context(), entryID, m)
	if err != nil {
		h.log.Error("MutateEntry failed", "error", err, "entry_id", entryID, "action", m.Action)
		response.RespondError(c, http.StatusBadRequest, "mutate_entry_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// GET /api/entries/:id/cost
func (h *RosterHandler) GetEntryCost(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil || entryID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_entry_id", err)
		return
	}
	result, err := h.roster.EntryCost(c.Request.Context(), entryID)
	if err != nil {
		h.log.Error("GetEntryCost failed", "error", err, "entry_id", entryID)
		response.RespondError(c, http.StatusInternalServerError, "load_entry_cost_failed", err)
		return
	}
	response.RespondOK(c, result)
}
