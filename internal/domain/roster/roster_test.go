package roster

import (
	"testing"

	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/units"
)

func TestSyncEntryNames(t *testing.T) {
	renamed := override.Resolve(
		&units.UnitDefinition{ID: "glade-guard", Name: "Old Name"},
		&override.Override{}, // name change arrives via the resolved unit below
	)
	renamed.Name = "New Name"

	byID := map[string]*override.DerivedUnit{
		"glade-guard": renamed,
	}

	entries := []*Entry{
		{EntryID: "e1", UnitID: "glade-guard", UnitName: "Old Name"},
		{EntryID: "e2", UnitID: "glade-guard", UnitName: "Old Name"},
		{EntryID: "e3", UnitID: "deleted-unit", UnitName: "Cached Name"},
	}

	if got := SyncEntryNames(entries, byID); got != 2 {
		t.Fatalf("first pass renamed %d, want 2", got)
	}
	for _, e := range entries[:2] {
		if e.UnitName != "New Name" {
			t.Fatalf("entry %s name = %q", e.EntryID, e.UnitName)
		}
	}
	if entries[2].UnitName != "Cached Name" {
		t.Fatalf("missing unit must keep its cached name, got %q", entries[2].UnitName)
	}

	if got := SyncEntryNames(entries, byID); got != 0 {
		t.Fatalf("second pass renamed %d, want 0", got)
	}
}

func TestEntryCloneIndependent(t *testing.T) {
	e := &Entry{
		EntryID:        "e1",
		ActiveUpgrades: []string{"champion"},
		MagicItems: map[string]units.MagicItem{
			units.SlotWeapons: {ID: "sword", Pts: 20},
		},
		CommandMagicItems: map[string]map[string]units.MagicItem{
			"banner": {units.SlotBanners: {ID: "war-banner", Pts: 25}},
		},
		Arrows: &units.AmmoItem{ID: "hagbane", PtsFlat: 6},
	}
	c := e.Clone()
	c.ActiveUpgrades[0] = "other"
	c.MagicItems[units.SlotWeapons] = units.MagicItem{ID: "axe"}
	c.CommandMagicItems["banner"][units.SlotBanners] = units.MagicItem{ID: "other-banner"}
	c.Arrows.PtsFlat = 99

	if e.ActiveUpgrades[0] != "champion" ||
		e.MagicItems[units.SlotWeapons].ID != "sword" ||
		e.CommandMagicItems["banner"][units.SlotBanners].ID != "war-banner" ||
		e.Arrows.PtsFlat != 6 {
		t.Fatalf("clone shares state with original: %+v", e)
	}
}

func TestHasUpgrade(t *testing.T) {
	e := &Entry{ActiveUpgrades: []string{"a", "b"}}
	if !e.HasUpgrade("a") || e.HasUpgrade("c") {
		t.Fatalf("HasUpgrade wrong for %v", e.ActiveUpgrades)
	}
}

func TestCloneNil(t *testing.T) {
	var e *Entry
	if got := e.Clone(); got != nil {
		t.Fatalf("nil clone = %+v", got)
	}
}
