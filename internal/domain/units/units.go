// Package units holds the immutable catalog value types and the fixed
// vocabularies (categories, stat names, magic item slots) the rest of
// the engine depends on. Catalog data is read-only: nothing in this
// package mutates a UnitDefinition after load.
package units

// Categories in display order. Rank is used for sorting roster sections.
var Categories = []string{
	"Named Characters",
	"Characters",
	"Lords",
	"Heroes",
	"Core",
	"Special",
	"Rare",
	"Mercenaries",
	"Allies",
	"Custom",
}

// CategoryRank returns the position of a category in the fixed ordering.
// Unknown categories sort last.
func CategoryRank(category string) int {
	for i, c := range Categories {
		if c == category {
			return i
		}
	}
	return len(Categories)
}

// StatNames is the fixed stat-line ordering for every profile.
var StatNames = []string{"M", "WS", "BS", "S", "T", "W", "I", "A", "Ld"}

// Magic item slot names.
const (
	SlotWeapons   = "weapons"
	SlotArmour    = "armour"
	SlotTalismans = "talismans"
	SlotEnchanted = "enchanted"
	SlotArcane    = "arcane"
	SlotBanners   = "banners"
)

// Slots in display order.
var Slots = []string{SlotWeapons, SlotArmour, SlotTalismans, SlotEnchanted, SlotArcane, SlotBanners}

// ValidSlot reports whether name is one of the six fixed slots.
func ValidSlot(name string) bool {
	for _, s := range Slots {
		if s == name {
			return true
		}
	}
	return false
}

// Profile is a single named stat-line. Stat values stay in whatever
// shape the catalog supplied them (numbers, "2D6", "-"), so the map
// values are untyped.
type Profile struct {
	Name  string         `json:"name"`
	Stats map[string]any `json:"stats"`
}

// Clone returns an independent copy of the profile.
func (p Profile) Clone() Profile {
	out := Profile{Name: p.Name}
	if p.Stats != nil {
		out.Stats = make(map[string]any, len(p.Stats))
		for k, v := range p.Stats {
			out.Stats[k] = v
		}
	}
	return out
}

// MagicAllowance is a command-figure sub-budget: which slots the figure
// may fill and how many points it may spend across them.
type MagicAllowance struct {
	Slots     []string `json:"slots"`
	MaxPoints int      `json:"maxPoints"`
}

// UpgradeOption is one entry in a unit's upgrade menu.
type UpgradeOption struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Pts       int    `json:"pts"`
	PerModel  bool   `json:"perModel,omitempty"`
	Type      string `json:"type"`
	Exclusive bool   `json:"exclusive,omitempty"`

	// Magic is set on command upgrades that may carry their own items.
	Magic *MagicAllowance `json:"magic,omitempty"`

	// Mount payload, only meaningful when Type == "mount".
	MountProfile   *Profile `json:"mountProfile,omitempty"`
	MountEquipment []string `json:"mountEquipment,omitempty"`
	MountArmour    string   `json:"mountArmour,omitempty"`
	MountRules     []string `json:"mountRules,omitempty"`
}

// Clone returns an independent copy of the upgrade option.
func (o UpgradeOption) Clone() UpgradeOption {
	out := o
	if o.Magic != nil {
		m := MagicAllowance{MaxPoints: o.Magic.MaxPoints}
		m.Slots = append([]string(nil), o.Magic.Slots...)
		out.Magic = &m
	}
	if o.MountProfile != nil {
		p := o.MountProfile.Clone()
		out.MountProfile = &p
	}
	out.MountEquipment = append([]string(nil), o.MountEquipment...)
	out.MountRules = append([]string(nil), o.MountRules...)
	return out
}

// RelicUndesigned is the sentinel name for relics that exist in the
// catalog schema but have not been given rules yet.
const RelicUndesigned = "TBD"

// Relic is a unit-specific item occupying one magic item slot. The two
// textual forms carry no cost difference.
type Relic struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Basic    string `json:"basic"`
	Upgraded string `json:"upgraded"`
}

// Designed reports whether the relic has real rules attached.
func (r *Relic) Designed() bool {
	return r != nil && r.Name != "" && r.Name != RelicUndesigned
}

// MagicItem is a purchasable item from the faction's magic item lists.
type MagicItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slot        string `json:"slot"`
	Pts         int    `json:"pts"`
	Description string `json:"description,omitempty"`
}

// AmmoItem is a special-ammunition choice. Per-model pricing applies
// only to units on the cost engine's allow-list; everyone else pays the
// flat price.
type AmmoItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PtsPerModel int    `json:"ptsPerModel"`
	PtsFlat     int    `json:"ptsFlat"`
	Description string `json:"description,omitempty"`
}

// UnitDefinition is an immutable base unit from the catalog. Characters
// use PtsCost; everything else uses PtsPerModel with MinSize/MaxSize.
type UnitDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	IsCharacter bool   `json:"isCharacter"`

	PtsCost     int `json:"ptsCost,omitempty"`
	PtsPerModel int `json:"ptsPerModel,omitempty"`
	MinSize     int `json:"minSize,omitempty"`
	MaxSize     int `json:"maxSize,omitempty"`

	Profiles     []Profile       `json:"profiles"`
	Equipment    []string        `json:"equipment,omitempty"`
	SpecialRules []string        `json:"specialRules,omitempty"`
	Upgrades     []UpgradeOption `json:"upgrades,omitempty"`

	Relic *Relic `json:"relic,omitempty"`

	// AllowedSlots and MagicItemBudget override the inferred magic item
	// rules when present.
	AllowedSlots    []string `json:"allowedSlots,omitempty"`
	MagicItemBudget *int     `json:"magicItemBudget,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (u *UnitDefinition) Clone() *UnitDefinition {
	if u == nil {
		return nil
	}
	out := *u
	if u.Profiles != nil {
		out.Profiles = make([]Profile, len(u.Profiles))
		for i, p := range u.Profiles {
			out.Profiles[i] = p.Clone()
		}
	}
	out.Equipment = append([]string(nil), u.Equipment...)
	out.SpecialRules = append([]string(nil), u.SpecialRules...)
	if u.Upgrades != nil {
		out.Upgrades = make([]UpgradeOption, len(u.Upgrades))
		for i, o := range u.Upgrades {
			out.Upgrades[i] = o.Clone()
		}
	}
	if u.Relic != nil {
		r := *u.Relic
		out.Relic = &r
	}
	out.AllowedSlots = append([]string(nil), u.AllowedSlots...)
	if u.MagicItemBudget != nil {
		b := *u.MagicItemBudget
		out.MagicItemBudget = &b
	}
	return &out
}
