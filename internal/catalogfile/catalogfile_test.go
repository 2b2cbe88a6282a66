package catalogfile

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/wargrove/armybook-backend/internal/domain/units"
)

func TestLoadFile(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "wood-realm.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.ID != "wood-realm" || f.Name != "Wood Realm" || f.SortOrder != 1 {
		t.Fatalf("unexpected header %+v", f)
	}
	if len(f.Units) != 2 || len(f.MagicItems) != 1 || len(f.Ammunition) != 1 {
		t.Fatalf("unexpected counts: %d units, %d items, %d ammo", len(f.Units), len(f.MagicItems), len(f.Ammunition))
	}
}

func TestLoadDirSorted(t *testing.T) {
	files, err := LoadDir("testdata")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(files) != 1 || files[0].ID != "wood-realm" {
		t.Fatalf("unexpected files %+v", files)
	}
}

func TestUnitEntryDefinition(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "wood-realm.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	guard := f.Units[0].Definition()
	if guard.ID != "glade-guard" || guard.PtsPerModel != 12 || guard.MinSize != 10 {
		t.Fatalf("unexpected regiment %+v", guard)
	}
	if len(guard.Profiles) != 1 || guard.Profiles[0].Stats["M"] != 5 {
		t.Fatalf("profile not converted: %+v", guard.Profiles)
	}
	var banner *units.UpgradeOption
	for i := range guard.Upgrades {
		if guard.Upgrades[i].ID == "banners" {
			banner = &guard.Upgrades[i]
		}
	}
	if banner == nil || banner.Magic == nil || banner.Magic.MaxPoints != 25 {
		t.Fatalf("banner magic allowance lost: %+v", banner)
	}

	captain := f.Units[1].Definition()
	if !captain.IsCharacter || captain.PtsCost != 75 {
		t.Fatalf("unexpected character %+v", captain)
	}
	if captain.MagicItemBudget == nil || *captain.MagicItemBudget != 50 {
		t.Fatalf("item budget lost: %+v", captain.MagicItemBudget)
	}
	if len(captain.Upgrades) != 1 || captain.Upgrades[0].MountProfile == nil {
		t.Fatalf("mount profile lost: %+v", captain.Upgrades)
	}
}

func TestFileRows(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "wood-realm.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	faction, unitRows, itemRows, ammoRows, err := f.Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if faction.ID != "wood-realm" {
		t.Fatalf("unexpected faction %+v", faction)
	}
	if len(unitRows) != 2 || len(itemRows) != 1 || len(ammoRows) != 1 {
		t.Fatalf("unexpected row counts")
	}

	// Payload round-trips into the domain definition.
	var def units.UnitDefinition
	if err := json.Unmarshal(unitRows[0].Data, &def); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if def.ID != "glade-guard" || len(def.Equipment) != 2 {
		t.Fatalf("payload mangled %+v", def)
	}
	if unitRows[1].IsCharacter != true || unitRows[1].Category != "Heroes" {
		t.Fatalf("scalar columns wrong %+v", unitRows[1])
	}
}
