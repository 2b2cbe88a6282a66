package cost

import (
	"testing"

	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/roster"
	"github.com/wargrove/armybook-backend/internal/domain/units"
)

func derived(u *units.UnitDefinition) *override.DerivedUnit {
	return override.Resolve(u, nil)
}

func regimentUnit() *units.UnitDefinition {
	return &units.UnitDefinition{
		ID:          "glade-guard",
		Name:        "Glade Guard",
		Category:    "Core",
		PtsPerModel: 10,
		MinSize:     5,
		MaxSize:     30,
		Equipment:   []string{"Longbow", "Hand weapon"},
		Upgrades: []units.UpgradeOption{
			{ID: "champion", Name: "Lord's Bowman", Pts: 15, Type: "command"},
			{ID: "banners", Name: "Standard Bearer", Pts: 15, Type: "command"},
			{ID: "shields", Name: "Shields", Pts: 1, PerModel: true, Type: "equipment"},
		},
	}
}

func characterUnit() *units.UnitDefinition {
	return &units.UnitDefinition{
		ID:          "glade-lord",
		Name:        "Glade Lord",
		Category:    "Lords",
		IsCharacter: true,
		PtsCost:     145,
		Equipment:   []string{"Longbow", "Hand weapon", "Light armour"},
		Upgrades: []units.UpgradeOption{
			{ID: "elven-steed", Name: "Elven Steed", Pts: 18, Type: "mount", Exclusive: true},
			{ID: "great-eagle", Name: "Great Eagle", Pts: 50, Type: "mount", Exclusive: true},
		},
	}
}

func entryFor(u *units.UnitDefinition) *roster.Entry {
	count := u.MinSize
	if u.IsCharacter {
		count = 1
	}
	return &roster.Entry{
		EntryID:     "e1",
		UnitID:      u.ID,
		UnitName:    u.Name,
		ModelCount:  count,
		IsCharacter: u.IsCharacter,
		Category:    u.Category,
	}
}

func TestComputeRegimentWithFlatUpgrade(t *testing.T) {
	u := derived(regimentUnit())
	e := entryFor(u.UnitDefinition)
	e.ModelCount = 8
	e.ActiveUpgrades = []string{"champion"}

	r := Compute(u, e)
	if r.Total != 10*8+15 {
		t.Fatalf("Total = %d, want 95", r.Total)
	}
	if r.Base != 80 || r.Upgrades != 15 {
		t.Fatalf("breakdown = %+v", r)
	}
}

func TestComputePerModelUpgrade(t *testing.T) {
	u := derived(regimentUnit())
	e := entryFor(u.UnitDefinition)
	e.ModelCount = 10
	e.ActiveUpgrades = []string{"shields"}

	if got := Compute(u, e).Total; got != 10*10+1*10 {
		t.Fatalf("Total = %d, want 110", got)
	}
}

func TestComputeUnknownUpgradeIgnored(t *testing.T) {
	u := derived(regimentUnit())
	e := entryFor(u.UnitDefinition)
	e.ActiveUpgrades = []string{"deleted-upgrade"}
	if got := Compute(u, e).Total; got != 50 {
		t.Fatalf("Total = %d, want base only 50", got)
	}
}

func TestComputeDeterministic(t *testing.T) {
	u := derived(regimentUnit())
	e := entryFor(u.UnitDefinition)
	e.ModelCount = 12
	e.ActiveUpgrades = []string{"champion", "shields"}
	first := Compute(u, e)
	second := Compute(u, e)
	if first != second {
		t.Fatalf("recompute drifted: %+v vs %+v", first, second)
	}
}

func TestComputeAmmunitionPricing(t *testing.T) {
	ammo := &units.AmmoItem{ID: "hagbane", Name: "Hagbane Arrows", PtsPerModel: 2, PtsFlat: 6}
	cases := []struct {
		name   string
		unitID string
		want   int
	}{
		{name: "allow_listed_per_model", unitID: "glade-guard", want: 2 * 10},
		{name: "not_listed_flat", unitID: "wardancers", want: 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := regimentUnit()
			def.ID = tc.unitID
			u := derived(def)
			e := entryFor(def)
			e.ModelCount = 10
			e.Arrows = ammo
			if got := Compute(u, e).Ammunition; got != tc.want {
				t.Fatalf("Ammunition = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComputeCharacterMagicItems(t *testing.T) {
	u := derived(characterUnit())
	e := entryFor(u.UnitDefinition)
	e.MagicItems = map[string]units.MagicItem{
		units.SlotWeapons:   {ID: "sword-might", Name: "Sword of Might", Slot: units.SlotWeapons, Pts: 20},
		units.SlotTalismans: {ID: "luckstone", Name: "Luckstone", Slot: units.SlotTalismans, Pts: 10},
	}
	r := Compute(u, e)
	if r.MagicItems != 30 {
		t.Fatalf("MagicItems = %d, want 30", r.MagicItems)
	}
	if r.Total != 145+30 {
		t.Fatalf("Total = %d, want 175", r.Total)
	}
	if r.Budget != 100 || r.OverBudget {
		t.Fatalf("budget = %d overBudget=%v, want 100/false", r.Budget, r.OverBudget)
	}
}

func TestComputeOverBudgetIsWarningNotError(t *testing.T) {
	// An override can shrink the budget under items already equipped;
	// the engine must report it, not fail.
	def := characterUnit()
	shrunk := 10
	def.MagicItemBudget = &shrunk
	u := derived(def)
	e := entryFor(def)
	e.MagicItems = map[string]units.MagicItem{
		units.SlotWeapons: {ID: "sword-might", Slot: units.SlotWeapons, Pts: 20},
	}
	r := Compute(u, e)
	if !r.OverBudget {
		t.Fatalf("expected OverBudget, got %+v", r)
	}
	if r.Total != 165 {
		t.Fatalf("Total = %d, want 165", r.Total)
	}
}

func TestComputeCommandMagicSeparateFromCharacterMagic(t *testing.T) {
	def := regimentUnit()
	def.Upgrades = append(def.Upgrades, units.UpgradeOption{
		ID: "battle-banner", Name: "Magic Standard", Pts: 25, Type: "command",
		Magic: &units.MagicAllowance{Slots: []string{units.SlotBanners}, MaxPoints: 50},
	})
	u := derived(def)
	e := entryFor(def)
	e.ActiveUpgrades = []string{"battle-banner"}
	e.CommandMagicItems = map[string]map[string]units.MagicItem{
		"battle-banner": {units.SlotBanners: {ID: "war-banner", Slot: units.SlotBanners, Pts: 25}},
	}
	r := Compute(u, e)
	if r.CommandMagic != 25 || r.MagicItems != 0 {
		t.Fatalf("command magic not separated: %+v", r)
	}
	if r.Total != 50+25+25 {
		t.Fatalf("Total = %d, want 100", r.Total)
	}
}

func TestComputeInactiveCommandItemsIgnored(t *testing.T) {
	def := regimentUnit()
	def.Upgrades = append(def.Upgrades, units.UpgradeOption{
		ID: "battle-banner", Name: "Magic Standard", Pts: 25, Type: "command",
		Magic: &units.MagicAllowance{Slots: []string{units.SlotBanners}, MaxPoints: 50},
	})
	u := derived(def)
	e := entryFor(def)
	e.CommandMagicItems = map[string]map[string]units.MagicItem{
		"battle-banner": {units.SlotBanners: {ID: "war-banner", Slot: units.SlotBanners, Pts: 25}},
	}
	if got := Compute(u, e).CommandMagic; got != 0 {
		t.Fatalf("inactive upgrade's items counted: %d", got)
	}
}

func TestComputeMissingUnitSafe(t *testing.T) {
	e := entryFor(regimentUnit())
	e.PtsCost = 95
	if got := Compute(nil, e); got.Total != 0 {
		t.Fatalf("nil unit Total = %d, want 0", got.Total)
	}
}
