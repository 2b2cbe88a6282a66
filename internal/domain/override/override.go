// Package override implements the unit override resolver: applying a
// user-authored sparse patch to an immutable base unit and producing a
// derived unit with every change tracked for display.
package override

import (
	"github.com/wargrove/armybook-backend/internal/domain/units"
)

// Override is a sparse user-authored patch for a single unit. Scalar
// overrides are kept as the raw strings the user typed; values that do
// not parse as numbers are treated as absent.
type Override struct {
	PtsOverride     string `json:"ptsOverride,omitempty"`
	MinSizeOverride string `json:"minSizeOverride,omitempty"`
	MaxSizeOverride string `json:"maxSizeOverride,omitempty"`

	// StatOverrides maps profile index -> stat name -> replacement value.
	StatOverrides map[int]map[string]string `json:"statOverrides,omitempty"`

	AddSpecialRules    []string `json:"addSpecialRules,omitempty"`
	RemoveSpecialRules []string `json:"removeSpecialRules,omitempty"`
	AddEquipment       []string `json:"addEquipment,omitempty"`
	RemoveEquipment    []string `json:"removeEquipment,omitempty"`

	AddUpgrades    []units.UpgradeOption `json:"addUpgrades,omitempty"`
	RemoveUpgrades []string              `json:"removeUpgrades,omitempty"`

	HouseRuleNote string `json:"houseRuleNote,omitempty"`
}

// Empty reports whether every field is absent or empty. The override
// store deletes rows whose patch becomes empty; the resolver itself
// tolerates an empty-but-present override as a no-op.
func (o *Override) Empty() bool {
	if o == nil {
		return true
	}
	if o.PtsOverride != "" || o.MinSizeOverride != "" || o.MaxSizeOverride != "" {
		return false
	}
	for _, m := range o.StatOverrides {
		if len(m) > 0 {
			return false
		}
	}
	if len(o.AddSpecialRules) > 0 || len(o.RemoveSpecialRules) > 0 {
		return false
	}
	if len(o.AddEquipment) > 0 || len(o.RemoveEquipment) > 0 {
		return false
	}
	if len(o.AddUpgrades) > 0 || len(o.RemoveUpgrades) > 0 {
		return false
	}
	return o.HouseRuleNote == ""
}

// StatChange records a single overridden stat value.
type StatChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// DerivedUnit is a base unit with an override applied. The bookkeeping
// fields are recomputed on every resolve and never persisted.
type DerivedUnit struct {
	*units.UnitDefinition

	HasOverride     bool                          `json:"_hasOverride,omitempty"`
	Changes         []string                      `json:"_overrideChanges,omitempty"`
	OverriddenStats map[int]map[string]StatChange `json:"_overriddenStats,omitempty"`
	AddedRules      []string                      `json:"_addedRules,omitempty"`
	RemovedRules    []string                      `json:"_removedRules,omitempty"`
	HouseRuleNote   string                        `json:"_houseRuleNote,omitempty"`
}
