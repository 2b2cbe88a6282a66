package cost

import (
	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/roster"
	"github.com/wargrove/armybook-backend/internal/domain/units"
)

// Toggle-time mutators. Each takes the resolved unit and the current
// entry and returns a replacement entry plus whether the change
// applied. A rejected change returns the input entry unchanged with
// ok=false — constraint violations are no-ops, never errors. Every
// accepted change recomputes the entry cost from scratch.

// ToggleUpgrade flips an upgrade on or off. Activation enforces
// same-type exclusivity and the sprites point pool; deactivating an
// upgrade with a magic sub-budget also clears any items purchased under
// it, so no orphaned cost survives.
func ToggleUpgrade(u *override.DerivedUnit, e *roster.Entry, upgradeID string) (*roster.Entry, bool) {
	if u == nil || u.UnitDefinition == nil || e == nil {
		return e, false
	}
	up, ok := findUpgrade(u, upgradeID)
	if !ok {
		return e, false
	}

	if e.HasUpgrade(upgradeID) {
		out := e.Clone()
		deactivateUpgrade(out, up)
		return Recompute(u, out), true
	}

	if up.Type == spriteType && spritePoolSpend(u, e)+up.Pts > SpritePoolCap {
		return e, false
	}

	out := e.Clone()
	if up.Exclusive {
		for _, activeID := range append([]string(nil), out.ActiveUpgrades...) {
			other, ok := findUpgrade(u, activeID)
			if ok && other.Exclusive && other.Type == up.Type {
				deactivateUpgrade(out, other)
			}
		}
	}
	out.ActiveUpgrades = append(out.ActiveUpgrades, upgradeID)
	return Recompute(u, out), true
}

func deactivateUpgrade(e *roster.Entry, up units.UpgradeOption) {
	next := e.ActiveUpgrades[:0:0]
	for _, id := range e.ActiveUpgrades {
		if id != up.ID {
			next = append(next, id)
		}
	}
	e.ActiveUpgrades = next
	if up.Magic != nil {
		delete(e.CommandMagicItems, up.ID)
	}
}

func spritePoolSpend(u *override.DerivedUnit, e *roster.Entry) int {
	spend := 0
	for _, id := range e.ActiveUpgrades {
		if up, ok := findUpgrade(u, id); ok && up.Type == spriteType {
			spend += up.Pts
		}
	}
	return spend
}

// EquipMagicItem places an item in a character magic item slot,
// replacing whatever the slot held. Rejected when the unit is not a
// character, the slot is not allowed, the slot is locked by the relic,
// the item belongs to a different slot, or the spend would exceed the
// budget.
func EquipMagicItem(u *override.DerivedUnit, e *roster.Entry, slot string, item units.MagicItem) (*roster.Entry, bool) {
	if u == nil || u.UnitDefinition == nil || e == nil || !u.IsCharacter {
		return e, false
	}
	if !units.ValidSlot(slot) || (item.Slot != "" && item.Slot != slot) {
		return e, false
	}
	if slot == LockedSlot(u) {
		return e, false
	}
	if !slotAllowed(u, slot) {
		return e, false
	}

	spend := item.Pts
	for s, equipped := range e.MagicItems {
		if s != slot {
			spend += equipped.Pts
		}
	}
	if spend > Budget(u) {
		return e, false
	}

	out := e.Clone()
	if out.MagicItems == nil {
		out.MagicItems = make(map[string]units.MagicItem)
	}
	out.MagicItems[slot] = item
	return Recompute(u, out), true
}

// UnequipMagicItem empties a character magic item slot.
func UnequipMagicItem(u *override.DerivedUnit, e *roster.Entry, slot string) (*roster.Entry, bool) {
	if u == nil || e == nil {
		return e, false
	}
	if _, ok := e.MagicItems[slot]; !ok {
		return e, false
	}
	out := e.Clone()
	delete(out.MagicItems, slot)
	return Recompute(u, out), true
}

func slotAllowed(u *override.DerivedUnit, slot string) bool {
	for _, s := range AllowedSlots(u) {
		if s == slot {
			return true
		}
	}
	return false
}

// EquipCommandItem places an item under a command upgrade's own magic
// sub-budget. The upgrade must be active and carry an allowance; the
// slot must be in the allowance and the spend within its cap.
func EquipCommandItem(u *override.DerivedUnit, e *roster.Entry, upgradeID, slot string, item units.MagicItem) (*roster.Entry, bool) {
	if u == nil || u.UnitDefinition == nil || e == nil || !e.HasUpgrade(upgradeID) {
		return e, false
	}
	up, ok := findUpgrade(u, upgradeID)
	if !ok || up.Magic == nil {
		return e, false
	}
	slotOK := false
	for _, s := range up.Magic.Slots {
		if s == slot {
			slotOK = true
			break
		}
	}
	if !slotOK || (item.Slot != "" && item.Slot != slot) {
		return e, false
	}

	spend := item.Pts
	for s, equipped := range e.CommandMagicItems[upgradeID] {
		if s != slot {
			spend += equipped.Pts
		}
	}
	if spend > up.Magic.MaxPoints {
		return e, false
	}

	out := e.Clone()
	if out.CommandMagicItems == nil {
		out.CommandMagicItems = make(map[string]map[string]units.MagicItem)
	}
	if out.CommandMagicItems[upgradeID] == nil {
		out.CommandMagicItems[upgradeID] = make(map[string]units.MagicItem)
	}
	out.CommandMagicItems[upgradeID][slot] = item
	return Recompute(u, out), true
}

// UnequipCommandItem removes an item from a command upgrade's slot.
func UnequipCommandItem(u *override.DerivedUnit, e *roster.Entry, upgradeID, slot string) (*roster.Entry, bool) {
	if u == nil || e == nil {
		return e, false
	}
	if _, ok := e.CommandMagicItems[upgradeID][slot]; !ok {
		return e, false
	}
	out := e.Clone()
	delete(out.CommandMagicItems[upgradeID], slot)
	if len(out.CommandMagicItems[upgradeID]) == 0 {
		delete(out.CommandMagicItems, upgradeID)
	}
	return Recompute(u, out), true
}

// SelectAmmo sets or clears the entry's special ammunition. At most one
// selection is active; a nil ammo clears it. Rejected for units without
// an applicable ranged weapon or with their own exclusive ammunition
// upgrades.
func SelectAmmo(u *override.DerivedUnit, e *roster.Entry, ammo *units.AmmoItem) (*roster.Entry, bool) {
	if u == nil || u.UnitDefinition == nil || e == nil {
		return e, false
	}
	if ammo == nil {
		if e.Arrows == nil {
			return e, false
		}
		out := e.Clone()
		out.Arrows = nil
		return Recompute(u, out), true
	}
	if !units.HasRangedWeapon(u.UnitDefinition) || units.HasOwnAmmoUpgrades(u.UnitDefinition) {
		return e, false
	}
	out := e.Clone()
	a := *ammo
	out.Arrows = &a
	return Recompute(u, out), true
}

// SetRelicForm chooses between the relic's basic and upgraded forms, or
// clears the choice. The forms carry no cost difference, so no
// recompute is needed; the entry is still replaced, never mutated.
func SetRelicForm(u *override.DerivedUnit, e *roster.Entry, form string) (*roster.Entry, bool) {
	if u == nil || u.UnitDefinition == nil || e == nil || !u.Relic.Designed() {
		return e, false
	}
	switch form {
	case roster.RelicFormBasic, roster.RelicFormUpgraded, "":
	default:
		return e, false
	}
	out := e.Clone()
	out.RelicForm = form
	return out, true
}

// SetModelCount changes the model count, clamped to the unit's size
// range. Characters are always a single model.
func SetModelCount(u *override.DerivedUnit, e *roster.Entry, count int) (*roster.Entry, bool) {
	if u == nil || u.UnitDefinition == nil || e == nil {
		return e, false
	}
	if u.IsCharacter {
		count = 1
	} else {
		if count < u.MinSize {
			count = u.MinSize
		}
		if u.MaxSize > 0 && count > u.MaxSize {
			count = u.MaxSize
		}
	}
	if count == e.ModelCount {
		return e, false
	}
	out := e.Clone()
	out.ModelCount = count
	return Recompute(u, out), true
}
