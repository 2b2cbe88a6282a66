package units

import "strings"

// Free-text classification over catalog display strings. The catalog
// has no explicit flags for "is a wizard" or "carries a bow", so these
// helpers scan names, rules, equipment and notes. Keep every caller
// going through this file so an explicit catalog field can replace the
// string matching without touching the resolver or the cost engine.

var wizardMarkers = []string{
	"wizard", "mage", "sorcerer", "sorceress", "shaman", "necromancer",
	"spellsinger", "spellweaver", "warlock", "wielder of magic",
}

var treeSpiritMarkers = []string{
	"forest spirit", "tree spirit", "treeman", "treekin", "dryad",
}

var rangedMarkers = []string{
	"bow", "longbow", "shortbow", "crossbow", "repeater", "javelin", "sling",
}

var battleStandardMarkers = []string{
	"battle standard", "army standard",
}

var ammoUpgradeMarkers = []string{
	"arrow", "bolt", "ammunition",
}

// IsWizard reports whether the unit counts as a spellcaster.
func IsWizard(u *UnitDefinition) bool {
	return matchesAny(unitText(u), wizardMarkers)
}

// IsTreeSpirit reports whether the unit is a forest/tree spirit, which
// forgoes armour items.
func IsTreeSpirit(u *UnitDefinition) bool {
	return matchesAny(unitText(u), treeSpiritMarkers)
}

// CanCarryBattleStandard reports whether the character may take the
// army's battle standard, unlocking banner items.
func CanCarryBattleStandard(u *UnitDefinition) bool {
	if u == nil || !u.IsCharacter {
		return false
	}
	text := strings.ToLower(u.Notes)
	for _, r := range u.SpecialRules {
		text += "\n" + strings.ToLower(r)
	}
	for _, up := range u.Upgrades {
		text += "\n" + strings.ToLower(up.Name)
	}
	return matchesAny(text, battleStandardMarkers)
}

// HasRangedWeapon reports whether the unit's equipment or notes mention
// a weapon that can use special ammunition.
func HasRangedWeapon(u *UnitDefinition) bool {
	if u == nil {
		return false
	}
	text := strings.ToLower(u.Notes)
	for _, eq := range u.Equipment {
		text += "\n" + strings.ToLower(eq)
	}
	return matchesAny(text, rangedMarkers)
}

// HasOwnAmmoUpgrades reports whether the unit's upgrade menu already
// carries an exclusive ammunition choice, in which case the generic
// ammunition picker stays hidden to avoid offering the choice twice.
func HasOwnAmmoUpgrades(u *UnitDefinition) bool {
	if u == nil {
		return false
	}
	for _, up := range u.Upgrades {
		if !up.Exclusive {
			continue
		}
		if matchesAny(strings.ToLower(up.Name), ammoUpgradeMarkers) {
			return true
		}
	}
	return false
}

// RelicSlot maps a relic's free-text type to the magic item slot it
// occupies. Anything unrecognized lands in enchanted.
func RelicSlot(relicType string) string {
	t := strings.ToLower(strings.TrimSpace(relicType))
	switch {
	case containsAny(t, "sword", "blade", "axe", "spear", "lance", "bow", "weapon", "hammer", "mace"):
		return SlotWeapons
	case containsAny(t, "armour", "armor", "shield", "helm", "plate", "mail"):
		return SlotArmour
	case containsAny(t, "talisman", "amulet", "charm", "pendant"):
		return SlotTalismans
	case containsAny(t, "arcane", "staff", "wand", "tome", "grimoire", "scroll"):
		return SlotArcane
	case containsAny(t, "banner", "standard", "icon"):
		return SlotBanners
	default:
		return SlotEnchanted
	}
}

func unitText(u *UnitDefinition) string {
	if u == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(u.Name))
	b.WriteString("\n")
	b.WriteString(strings.ToLower(u.Notes))
	for _, r := range u.SpecialRules {
		b.WriteString("\n")
		b.WriteString(strings.ToLower(r))
	}
	return b.String()
}

func matchesAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
