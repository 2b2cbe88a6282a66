package cost

import (
	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/roster"
	"github.com/wargrove/armybook-backend/internal/domain/units"
)

// Result is a full cost breakdown for one roster entry.
type Result struct {
	Base         int `json:"base"`
	Ammunition   int `json:"ammunition"`
	Upgrades     int `json:"upgrades"`
	CommandMagic int `json:"commandMagic"`
	MagicItems   int `json:"magicItems"`
	Total        int `json:"total"`

	// Budget and OverBudget describe the character magic item spend.
	// Over-budget is legal transient state (an override can shrink a
	// budget under items already equipped) and is surfaced as a display
	// warning, never an error.
	Budget     int  `json:"budget"`
	OverBudget bool `json:"overBudget"`
}

// Compute recomputes the entry's cost from scratch. Costs are never
// accumulated incrementally: upgrade, ammunition and item costs all
// depend jointly on the model count and the active selections, and
// accumulation would drift under undo/re-toggle sequences. Unknown
// upgrade ids and out-of-range model counts are taken as given and
// never fail.
func Compute(u *override.DerivedUnit, e *roster.Entry) Result {
	var r Result
	if u == nil || u.UnitDefinition == nil || e == nil {
		return r
	}

	if u.IsCharacter {
		r.Base = u.PtsCost
	} else {
		r.Base = u.PtsPerModel * e.ModelCount
	}

	if e.Arrows != nil {
		if PerModelAmmoUnits[u.ID] {
			r.Ammunition = e.Arrows.PtsPerModel * e.ModelCount
		} else {
			r.Ammunition = e.Arrows.PtsFlat
		}
	}

	for _, id := range e.ActiveUpgrades {
		up, ok := findUpgrade(u, id)
		if !ok {
			continue
		}
		if up.PerModel {
			r.Upgrades += up.Pts * e.ModelCount
		} else {
			r.Upgrades += up.Pts
		}
		for _, item := range e.CommandMagicItems[id] {
			r.CommandMagic += item.Pts
		}
	}

	if u.IsCharacter {
		for _, item := range e.MagicItems {
			r.MagicItems += item.Pts
		}
		r.Budget = Budget(u)
		r.OverBudget = r.MagicItems > r.Budget
	}

	r.Total = r.Base + r.Ammunition + r.Upgrades + r.CommandMagic + r.MagicItems
	return r
}

// Recompute returns a copy of the entry with PtsCost brought in line
// with the unit and the entry's selections.
func Recompute(u *override.DerivedUnit, e *roster.Entry) *roster.Entry {
	out := e.Clone()
	out.PtsCost = Compute(u, out).Total
	return out
}

func findUpgrade(u *override.DerivedUnit, id string) (units.UpgradeOption, bool) {
	for _, up := range u.Upgrades {
		if up.ID == id {
			return up, true
		}
	}
	return units.UpgradeOption{}, false
}
