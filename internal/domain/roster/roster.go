// Package roster holds the army list line-item model the cost engine
// operates on, plus the batch name-resync pass.
package roster

import (
	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/units"
)

// Relic form selections.
const (
	RelicFormBasic    = "basic"
	RelicFormUpgraded = "upgraded"
)

// Entry is one line in an army list. Entries are owned by a single
// mutation path: mutators clone and return a replacement rather than
// editing in place.
type Entry struct {
	EntryID     string `json:"entryId"`
	UnitID      string `json:"unitId"`
	UnitName    string `json:"unitName"`
	ModelCount  int    `json:"modelCount"`
	IsCharacter bool   `json:"isCharacter"`
	Category    string `json:"category"`

	ActiveUpgrades []string `json:"activeUpgrades,omitempty"`

	// CommandMagicItems maps upgrade id -> slot -> item, for command
	// figures carrying their own sub-budget.
	CommandMagicItems map[string]map[string]units.MagicItem `json:"commandMagicItems,omitempty"`

	// MagicItems maps slot -> item. Characters only.
	MagicItems map[string]units.MagicItem `json:"magicItems,omitempty"`

	// RelicForm is "basic", "upgraded", or empty when no form is chosen.
	RelicForm string `json:"relicForm,omitempty"`

	Arrows *units.AmmoItem `json:"arrows,omitempty"`

	Notes   string `json:"notes,omitempty"`
	PtsCost int    `json:"ptsCost"`
}

// Clone returns an independent copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	out := *e
	out.ActiveUpgrades = append([]string(nil), e.ActiveUpgrades...)
	if e.CommandMagicItems != nil {
		out.CommandMagicItems = make(map[string]map[string]units.MagicItem, len(e.CommandMagicItems))
		for upID, slots := range e.CommandMagicItems {
			inner := make(map[string]units.MagicItem, len(slots))
			for slot, item := range slots {
				inner[slot] = item
			}
			out.CommandMagicItems[upID] = inner
		}
	}
	if e.MagicItems != nil {
		out.MagicItems = make(map[string]units.MagicItem, len(e.MagicItems))
		for slot, item := range e.MagicItems {
			out.MagicItems[slot] = item
		}
	}
	if e.Arrows != nil {
		a := *e.Arrows
		out.Arrows = &a
	}
	return &out
}

// HasUpgrade reports whether the upgrade id is currently toggled on.
func (e *Entry) HasUpgrade(id string) bool {
	for _, active := range e.ActiveUpgrades {
		if active == id {
			return true
		}
	}
	return false
}

// SyncEntryNames resynchronizes every entry's cached unit name against
// the current derived units, keyed by unit id. Entries referencing
// unknown unit ids keep their cached name. Returns the number of
// entries renamed; a second run over the same inputs returns zero.
func SyncEntryNames(entries []*Entry, byUnitID map[string]*override.DerivedUnit) int {
	renamed := 0
	for _, e := range entries {
		if e == nil {
			continue
		}
		u, ok := byUnitID[e.UnitID]
		if !ok || u == nil || u.UnitDefinition == nil {
			continue
		}
		if e.UnitName != u.Name {
			e.UnitName = u.Name
			renamed++
		}
	}
	return renamed
}
