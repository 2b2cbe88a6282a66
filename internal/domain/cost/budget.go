package cost

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/units"
)

var notesBudgetRe = regexp.MustCompile(`(?i)magic items\s*\((\d+)\s*pts?\)`)

// Budget resolves the character's magic item point budget:
// an explicit catalog budget wins, then a "Magic Items (<N> pts)"
// pattern in the notes, then the named-character table, then the
// category default. Non-characters always get 0.
func Budget(u *override.DerivedUnit) int {
	if u == nil || u.UnitDefinition == nil || !u.IsCharacter {
		return 0
	}
	if u.MagicItemBudget != nil {
		return *u.MagicItemBudget
	}
	if m := notesBudgetRe.FindStringSubmatch(u.Notes); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if strings.EqualFold(u.Category, "Named Characters") {
		name := strings.ToLower(strings.TrimSpace(u.Name))
		for _, nb := range namedCharacterBudgets {
			if strings.HasPrefix(name, nb.prefix) {
				return nb.budget
			}
		}
		return namedCharacterDefaultBudget
	}
	if b, ok := categoryBudgets[u.Category]; ok {
		return b
	}
	return 0
}

// AllowedSlots resolves which magic item slots the character may fill:
// an explicit catalog list wins; named characters with a zero budget
// are relic-only and get no slots; otherwise slots are inferred from
// the unit's text. Every character gets weapons, talismans and
// enchanted items; armour is withheld from wizards and tree spirits;
// wizards gain arcane items; battle-standard-capable characters gain
// banners. The returned order follows the fixed slot ordering.
func AllowedSlots(u *override.DerivedUnit) []string {
	if u == nil || u.UnitDefinition == nil || !u.IsCharacter {
		return nil
	}
	if u.AllowedSlots != nil {
		return append([]string(nil), u.AllowedSlots...)
	}
	if strings.EqualFold(u.Category, "Named Characters") && Budget(u) == 0 {
		return nil
	}

	wizard := units.IsWizard(u.UnitDefinition)
	allowed := map[string]bool{
		units.SlotWeapons:   true,
		units.SlotTalismans: true,
		units.SlotEnchanted: true,
	}
	if !wizard && !units.IsTreeSpirit(u.UnitDefinition) {
		allowed[units.SlotArmour] = true
	}
	if wizard {
		allowed[units.SlotArcane] = true
	}
	if units.CanCarryBattleStandard(u.UnitDefinition) {
		allowed[units.SlotBanners] = true
	}

	out := make([]string, 0, len(allowed))
	for _, slot := range units.Slots {
		if allowed[slot] {
			out = append(out, slot)
		}
	}
	return out
}

// LockedSlot returns the slot occupied by the unit's relic, or "" when
// the unit has no designed relic. A locked slot cannot also hold a
// purchased item.
func LockedSlot(u *override.DerivedUnit) string {
	if u == nil || u.UnitDefinition == nil || !u.Relic.Designed() {
		return ""
	}
	return units.RelicSlot(u.Relic.Type)
}
