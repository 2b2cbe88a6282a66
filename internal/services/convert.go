package services

import (
	"encoding/json"
	"fmt"

	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/roster"
	"github.com/wargrove/armybook-backend/internal/domain/units"
	"github.com/wargrove/armybook-backend/internal/types"
)

// entrySelections is the JSON shape stored in roster_entry.selections.
type entrySelections struct {
	ActiveUpgrades    []string                              `json:"activeUpgrades,omitempty"`
	CommandMagicItems map[string]map[string]units.MagicItem `json:"commandMagicItems,omitempty"`
	MagicItems        map[string]units.MagicItem            `json:"magicItems,omitempty"`
	RelicForm         string                                `json:"relicForm,omitempty"`
	Arrows            *units.AmmoItem                       `json:"arrows,omitempty"`
}

// toDomainEntry converts a stored row to the entry shape the cost
// engine understands. A malformed selections payload degrades to an
// entry with no selections rather than failing.
func toDomainEntry(row *types.RosterEntry) *roster.Entry {
	e := &roster.Entry{
		EntryID:     row.ID.String(),
		UnitID:      row.UnitID,
		UnitName:    row.UnitName,
		ModelCount:  row.ModelCount,
		IsCharacter: row.IsCharacter,
		Category:    row.Category,
		Notes:       row.Notes,
		PtsCost:     row.PtsCost,
	}
	if len(row.Selections) > 0 {
		var sel entrySelections
		if err := json.Unmarshal(row.Selections, &sel); err == nil {
			e.ActiveUpgrades = sel.ActiveUpgrades
			e.CommandMagicItems = sel.CommandMagicItems
			e.MagicItems = sel.MagicItems
			e.RelicForm = sel.RelicForm
			e.Arrows = sel.Arrows
		}
	}
	return e
}

// applyDomainEntry writes a domain entry back onto its stored row.
func applyDomainEntry(row *types.RosterEntry, e *roster.Entry) error {
	sel := entrySelections{
		ActiveUpgrades:    e.ActiveUpgrades,
		CommandMagicItems: e.CommandMagicItems,
		MagicItems:        e.MagicItems,
		RelicForm:         e.RelicForm,
		Arrows:            e.Arrows,
	}
	raw, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshal entry selections: %w", err)
	}
	row.Selections = raw
	row.UnitName = e.UnitName
	row.ModelCount = e.ModelCount
	row.IsCharacter = e.IsCharacter
	row.Category = e.Category
	row.Notes = e.Notes
	row.PtsCost = e.PtsCost
	return nil
}

// decodeUnit unmarshals a catalog row's payload.
func decodeUnit(row *types.Unit) (*units.UnitDefinition, error) {
	var def units.UnitDefinition
	if err := json.Unmarshal(row.Data, &def); err != nil {
		return nil, fmt.Errorf("decode unit %s: %w", row.ID, err)
	}
	return &def, nil
}

// decodeOverride unmarshals a stored patch.
func decodeOverride(row *types.UnitOverride) (*override.Override, error) {
	var ov override.Override
	if err := json.Unmarshal(row.Patch, &ov); err != nil {
		return nil, fmt.Errorf("decode override for %s: %w", row.UnitID, err)
	}
	return &ov, nil
}

func domainMagicItem(row *types.MagicItem) units.MagicItem {
	return units.MagicItem{
		ID:          row.ID,
		Name:        row.Name,
		Slot:        row.Slot,
		Pts:         row.Pts,
		Description: row.Description,
	}
}

func domainAmmoItem(row *types.AmmoItem) *units.AmmoItem {
	return &units.AmmoItem{
		ID:          row.ID,
		Name:        row.Name,
		PtsPerModel: row.PtsPerModel,
		PtsFlat:     row.PtsFlat,
		Description: row.Description,
	}
}
