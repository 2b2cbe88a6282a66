package override

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wargrove/armybook-backend/internal/domain/units"
)

// Resolve applies an override to a base unit. With a nil override the
// derived unit shares the base definition (no copy; callers must treat
// it as read-only). With a non-nil override — even one with no
// recognized fields — the base is deep-copied, HasOverride is set, and
// patches apply in a fixed order, logging a human-readable change entry
// for each step that actually changed a value.
func Resolve(base *units.UnitDefinition, ov *Override) *DerivedUnit {
	if base == nil {
		return nil
	}
	if ov == nil {
		return &DerivedUnit{UnitDefinition: base}
	}

	d := &DerivedUnit{
		UnitDefinition: base.Clone(),
		HasOverride:    true,
	}

	applyPoints(d, ov)
	applySizeLimits(d, ov)
	applyStatOverrides(d, ov)
	removeRules(d, ov)
	addRules(d, ov)
	removeEquipment(d, ov)
	addEquipment(d, ov)
	removeUpgrades(d, ov)
	addUpgrades(d, ov)
	if ov.HouseRuleNote != "" {
		d.HouseRuleNote = ov.HouseRuleNote
	}
	return d
}

// ResolveAll applies overrides across a unit slice. With no overrides
// every derived unit shares its base definition and no unit data is
// copied, so memoizing callers can cheaply detect the no-op case.
func ResolveAll(defs []*units.UnitDefinition, ovs map[string]*Override) []*DerivedUnit {
	out := make([]*DerivedUnit, len(defs))
	if len(ovs) == 0 {
		for i, def := range defs {
			out[i] = &DerivedUnit{UnitDefinition: def}
		}
		return out
	}
	for i, def := range defs {
		var ov *Override
		if def != nil {
			ov = ovs[def.ID]
		}
		out[i] = Resolve(def, ov)
	}
	return out
}

func (d *DerivedUnit) logChange(format string, args ...any) {
	d.Changes = append(d.Changes, fmt.Sprintf(format, args...))
}

// parseNumber accepts the raw override string; blank or non-numeric
// input means "no override".
func parseNumber(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

func applyPoints(d *DerivedUnit, ov *Override) {
	n, ok := parseNumber(ov.PtsOverride)
	if !ok {
		return
	}
	if d.IsCharacter {
		if n != d.PtsCost {
			d.logChange("Points: %d → %d", d.PtsCost, n)
			d.PtsCost = n
		}
		return
	}
	if n != d.PtsPerModel {
		d.logChange("Points per model: %d → %d", d.PtsPerModel, n)
		d.PtsPerModel = n
	}
}

func applySizeLimits(d *DerivedUnit, ov *Override) {
	if n, ok := parseNumber(ov.MinSizeOverride); ok && n != d.MinSize {
		d.logChange("Min size: %d → %d", d.MinSize, n)
		d.MinSize = n
	}
	if n, ok := parseNumber(ov.MaxSizeOverride); ok && n != d.MaxSize {
		d.logChange("Max size: %d → %d", d.MaxSize, n)
		d.MaxSize = n
	}
}

func applyStatOverrides(d *DerivedUnit, ov *Override) {
	if len(ov.StatOverrides) == 0 {
		return
	}
	indices := make([]int, 0, len(ov.StatOverrides))
	for idx := range ov.StatOverrides {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		if idx < 0 || idx >= len(d.Profiles) {
			continue // unknown profile index, ignore
		}
		statMap := ov.StatOverrides[idx]
		profile := &d.Profiles[idx]
		for _, stat := range units.StatNames {
			raw, ok := statMap[stat]
			if !ok || strings.TrimSpace(raw) == "" {
				continue
			}
			old := profile.Stats[stat]
			if fmt.Sprint(old) == raw {
				continue
			}
			if d.OverriddenStats == nil {
				d.OverriddenStats = make(map[int]map[string]StatChange)
			}
			if d.OverriddenStats[idx] == nil {
				d.OverriddenStats[idx] = make(map[string]StatChange)
			}
			d.OverriddenStats[idx][stat] = StatChange{From: old, To: raw}
			d.logChange("%s %s: %v → %s", profile.Name, stat, old, raw)
			if profile.Stats == nil {
				profile.Stats = make(map[string]any)
			}
			profile.Stats[stat] = raw
		}
	}
}

// matchesTarget reports whether a rule or equipment string matches a
// removal target: case-insensitive, trimmed, against the full string or
// the portion before the first colon or parenthesis.
func matchesTarget(entry, target string) bool {
	t := strings.TrimSpace(target)
	if t == "" {
		return false
	}
	e := strings.TrimSpace(entry)
	if strings.EqualFold(e, t) {
		return true
	}
	if i := strings.Index(e, ":"); i >= 0 {
		if strings.EqualFold(strings.TrimSpace(e[:i]), t) {
			return true
		}
	}
	if i := strings.Index(e, "("); i >= 0 {
		if strings.EqualFold(strings.TrimSpace(e[:i]), t) {
			return true
		}
	}
	return false
}

func removeMatching(list []string, targets []string) (kept []string, removed []string) {
	kept = list
	for _, target := range targets {
		next := kept[:0:0]
		for _, entry := range kept {
			if matchesTarget(entry, target) {
				removed = append(removed, entry)
			} else {
				next = append(next, entry)
			}
		}
		kept = next
	}
	return kept, removed
}

func containsFold(list []string, s string) bool {
	t := strings.TrimSpace(s)
	for _, entry := range list {
		if strings.EqualFold(strings.TrimSpace(entry), t) {
			return true
		}
	}
	return false
}

func removeRules(d *DerivedUnit, ov *Override) {
	if len(ov.RemoveSpecialRules) == 0 {
		return
	}
	kept, removed := removeMatching(d.SpecialRules, ov.RemoveSpecialRules)
	if len(removed) == 0 {
		return
	}
	d.SpecialRules = kept
	d.RemovedRules = append(d.RemovedRules, removed...)
	d.logChange("Removed %d special rule(s)", len(removed))
}

func addRules(d *DerivedUnit, ov *Override) {
	added := 0
	for _, rule := range ov.AddSpecialRules {
		rule = strings.TrimSpace(rule)
		if rule == "" || containsFold(d.SpecialRules, rule) {
			continue
		}
		d.SpecialRules = append(d.SpecialRules, rule)
		d.AddedRules = append(d.AddedRules, rule)
		added++
	}
	if added > 0 {
		d.logChange("Added %d special rule(s)", added)
	}
}

func removeEquipment(d *DerivedUnit, ov *Override) {
	if len(ov.RemoveEquipment) == 0 {
		return
	}
	kept, removed := removeMatching(d.Equipment, ov.RemoveEquipment)
	if len(removed) == 0 {
		return
	}
	d.Equipment = kept
	d.logChange("Removed %d equipment item(s)", len(removed))
}

func addEquipment(d *DerivedUnit, ov *Override) {
	added := 0
	for _, item := range ov.AddEquipment {
		item = strings.TrimSpace(item)
		if item == "" || containsFold(d.Equipment, item) {
			continue
		}
		d.Equipment = append(d.Equipment, item)
		added++
	}
	if added > 0 {
		d.logChange("Added %d equipment item(s)", added)
	}
}

func removeUpgrades(d *DerivedUnit, ov *Override) {
	if len(ov.RemoveUpgrades) == 0 {
		return
	}
	removed := 0
	for _, id := range ov.RemoveUpgrades {
		next := d.Upgrades[:0:0]
		for _, up := range d.Upgrades {
			if up.ID == id {
				removed++
			} else {
				next = append(next, up)
			}
		}
		d.Upgrades = next
	}
	if removed > 0 {
		d.logChange("Removed %d upgrade(s)", removed)
	}
}

func addUpgrades(d *DerivedUnit, ov *Override) {
	if len(ov.AddUpgrades) == 0 {
		return
	}
	for _, up := range ov.AddUpgrades {
		d.Upgrades = append(d.Upgrades, up.Clone())
	}
	d.logChange("Added %d upgrade(s)", len(ov.AddUpgrades))
}
