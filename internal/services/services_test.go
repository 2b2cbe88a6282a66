package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/wargrove/armybook-backend/internal/catalogfile"
	"github.com/wargrove/armybook-backend/internal/db"
	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/repos"
	"github.com/wargrove/armybook-backend/internal/types"
)

type testEnv struct {
	dbs      *db.Service
	catalog  CatalogService
	override OverrideService
	roster   RosterService
	backup   BackupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	dbs, err := db.NewTestService(log)
	if err != nil {
		t.Fatalf("db.NewTestService: %v", err)
	}
	if err := dbs.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}

	conn := dbs.DB()
	factionRepo := repos.NewFactionRepo(conn, log)
	unitRepo := repos.NewUnitRepo(conn, log)
	itemRepo := repos.NewMagicItemRepo(conn, log)
	ammoRepo := repos.NewAmmoItemRepo(conn, log)
	overrideRepo := repos.NewUnitOverrideRepo(conn, log)
	listRepo := repos.NewArmyListRepo(conn, log)
	entryRepo := repos.NewRosterEntryRepo(conn, log)

	catalog := NewCatalogService(dbs, nil, factionRepo, unitRepo, itemRepo, ammoRepo, overrideRepo, log)
	return &testEnv{
		dbs:      dbs,
		catalog:  catalog,
		override: NewOverrideService(dbs, catalog, unitRepo, overrideRepo, entryRepo, log),
		roster:   NewRosterService(dbs, catalog, listRepo, entryRepo, log),
		backup:   NewBackupService(dbs, catalog, listRepo, entryRepo, overrideRepo, log),
	}
}

func testArmyBook() *catalogfile.File {
	return &catalogfile.File{
		ID:   "wood-realm",
		Name: "Wood Realm",
		Units: []catalogfile.UnitEntry{
			{
				ID:          "glade-guard",
				Name:        "Glade Guard",
				Category:    "Core",
				PtsPerModel: 12,
				MinSize:     10,
				MaxSize:     30,
				Equipment:   []string{"Longbow", "Hand Weapon"},
				Rules:       []string{"Forest Stalkers"},
				Upgrades: []catalogfile.UpgradeRow{
					{ID: "champion", Name: "Lord's Bowman", Pts: 12, Type: "command"},
					{ID: "banners", Name: "Standard Bearer", Pts: 12, Type: "command"},
				},
				Profiles: []catalogfile.ProfileRow{
					{Name: "Glade Guard", Stats: map[string]any{"M": 5, "WS": 4, "BS": 4}},
				},
			},
			{
				ID:          "glade-captain",
				Name:        "Glade Captain",
				Category:    "Heroes",
				IsCharacter: true,
				PtsCost:     75,
				Profiles: []catalogfile.ProfileRow{
					{Name: "Glade Captain", Stats: map[string]any{"M": 5, "WS": 6, "BS": 6}},
				},
			},
		},
		MagicItems: []catalogfile.MagicItemRow{
			{ID: "helm-of-the-hunt", Name: "Helm of the Hunt", Slot: "enchanted", Pts: 20},
		},
		Ammunition: []catalogfile.AmmunitionRow{
			{ID: "hagbane-tips", Name: "Hagbane Tips", PtsPerModel: 3},
		},
	}
}

func seedCatalog(t *testing.T, env *testEnv) {
	t.Helper()
	if err := env.catalog.ImportFiles(context.Background(), []*catalogfile.File{testArmyBook()}); err != nil {
		t.Fatalf("ImportFiles: %v", err)
	}
}

func TestCatalogImportAndResolve(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()

	factions, err := env.catalog.Factions(ctx)
	if err != nil {
		t.Fatalf("Factions: %v", err)
	}
	if len(factions) != 1 || factions[0].ID != "wood-realm" {
		t.Fatalf("unexpected factions %+v", factions)
	}

	resolved, err := env.catalog.Units(ctx, "wood-realm")
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 units, got %d", len(resolved))
	}
	for _, u := range resolved {
		if u.HasOverride {
			t.Fatalf("unit %s should not be flagged as overridden", u.ID)
		}
	}

	items, err := env.catalog.MagicItems(ctx, "wood-realm")
	if err != nil {
		t.Fatalf("MagicItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != "helm-of-the-hunt" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestCatalogImportIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	seedCatalog(t, env)

	resolved, err := env.catalog.Units(context.Background(), "wood-realm")
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("reimport duplicated units: got %d", len(resolved))
	}
}

func TestOverrideSetResyncsEntries(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()

	list, err := env.roster.CreateList(ctx, ListInput{Name: "Muster", FactionID: "wood-realm"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	entry, err := env.roster.AddEntry(ctx, list.ID, "glade-guard")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if entry.ModelCount != 10 || entry.PtsCost != 120 {
		t.Fatalf("expected 10 models at 120 pts, got %d at %d", entry.ModelCount, entry.PtsCost)
	}

	derived, err := env.override.Set(ctx, "glade-guard", &override.Override{PtsOverride: "10"})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !derived.HasOverride {
		t.Fatal("derived unit should carry the override flag")
	}

	view, err := env.roster.GetList(ctx, list.ID)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if view.Total != 100 {
		t.Fatalf("entry cost not resynced after override: total %d", view.Total)
	}

	// Removing the override restores catalog pricing.
	if _, err := env.override.Delete(ctx, "glade-guard"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	view, err = env.roster.GetList(ctx, list.ID)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if view.Total != 120 {
		t.Fatalf("entry cost not restored after delete: total %d", view.Total)
	}
}

func TestOverrideEmptyPatchDeletesRow(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()

	if _, err := env.override.Set(ctx, "glade-guard", &override.Override{HouseRuleNote: "test"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := env.override.Set(ctx, "glade-guard", &override.Override{}); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	patch, err := env.override.Get(ctx, "glade-guard")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if patch != nil {
		t.Fatalf("empty patch should delete the row, got %+v", patch)
	}
}

func TestOverrideSetUnknownUnitRejected(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)

	if _, err := env.override.Set(context.Background(), "nope", &override.Override{PtsOverride: "1"}); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestRosterMutations(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()

	list, err := env.roster.CreateList(ctx, ListInput{Name: "Muster", FactionID: "wood-realm"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	entry, err := env.roster.AddEntry(ctx, list.ID, "glade-guard")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	res, err := env.roster.MutateEntry(ctx, entry.ID, EntryMutation{Action: ActionToggleUpgrade, UpgradeID: "champion"})
	if err != nil {
		t.Fatalf("MutateEntry toggle: %v", err)
	}
	if !res.Applied {
		t.Fatal("toggle should apply")
	}
	if res.Entry.PtsCost != 132 {
		t.Fatalf("expected 132 pts with champion, got %d", res.Entry.PtsCost)
	}

	res, err = env.roster.MutateEntry(ctx, entry.ID, EntryMutation{Action: ActionToggleUpgrade, UpgradeID: "nope"})
	if err != nil {
		t.Fatalf("MutateEntry unknown upgrade: %v", err)
	}
	if res.Applied {
		t.Fatal("unknown upgrade must be rejected without error")
	}
	if res.Entry.PtsCost != 132 {
		t.Fatalf("rejected mutation changed cost to %d", res.Entry.PtsCost)
	}

	res, err = env.roster.MutateEntry(ctx, entry.ID, EntryMutation{Action: ActionSetModelCount, ModelCount: 20})
	if err != nil {
		t.Fatalf("MutateEntry set count: %v", err)
	}
	if !res.Applied || res.Entry.ModelCount != 20 {
		t.Fatalf("expected 20 models, got %+v", res.Entry)
	}
	if res.Entry.PtsCost != 252 {
		t.Fatalf("expected 252 pts for 20 models plus champion, got %d", res.Entry.PtsCost)
	}

	res, err = env.roster.MutateEntry(ctx, entry.ID, EntryMutation{Action: ActionSelectAmmo, AmmoID: "hagbane-tips"})
	if err != nil {
		t.Fatalf("MutateEntry ammo: %v", err)
	}
	if !res.Applied {
		t.Fatal("glade guard may take special ammunition")
	}
	if res.Entry.PtsCost != 312 {
		t.Fatalf("expected 312 pts with per-model ammo, got %d", res.Entry.PtsCost)
	}

	if _, err := env.roster.MutateEntry(ctx, entry.ID, EntryMutation{Action: "bogus"}); err == nil {
		t.Fatal("unknown action must be an error")
	}
}

func TestRosterCharacterMagicItem(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()

	list, err := env.roster.CreateList(ctx, ListInput{Name: "Muster", FactionID: "wood-realm"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	entry, err := env.roster.AddEntry(ctx, list.ID, "glade-captain")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if entry.ModelCount != 1 || entry.PtsCost != 75 {
		t.Fatalf("character should start as 1 model at 75 pts, got %+v", entry)
	}

	res, err := env.roster.MutateEntry(ctx, entry.ID, EntryMutation{Action: ActionEquipItem, ItemID: "helm-of-the-hunt"})
	if err != nil {
		t.Fatalf("MutateEntry equip: %v", err)
	}
	if !res.Applied || res.Entry.PtsCost != 95 {
		t.Fatalf("expected 95 pts with helm, got applied=%v pts=%d", res.Applied, res.Entry.PtsCost)
	}

	breakdown, err := env.roster.EntryCost(ctx, entry.ID)
	if err != nil {
		t.Fatalf("EntryCost: %v", err)
	}
	if breakdown.MagicItems != 20 || breakdown.Total != 95 {
		t.Fatalf("unexpected breakdown %+v", breakdown)
	}
}

func TestRosterEntryForRemovedUnit(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()

	list, err := env.roster.CreateList(ctx, ListInput{Name: "Muster", FactionID: "wood-realm"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	entry, err := env.roster.AddEntry(ctx, list.ID, "glade-guard")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	if err := env.dbs.DB().Where("id = ?", "glade-guard").Delete(&types.Unit{}).Error; err != nil {
		t.Fatalf("delete unit row: %v", err)
	}

	// Structural mutations are rejected; the entry keeps its cached
	// name and last computed cost.
	res, err := env.roster.MutateEntry(ctx, entry.ID, EntryMutation{Action: ActionSetModelCount, ModelCount: 20})
	if err != nil {
		t.Fatalf("MutateEntry: %v", err)
	}
	if res.Applied {
		t.Fatal("mutation against a removed unit must be rejected")
	}
	if res.Entry.UnitName != "Glade Guard" || res.Entry.PtsCost != 120 {
		t.Fatalf("cached entry fields lost: %+v", res.Entry)
	}

	// Notes still work without the unit definition.
	res, err = env.roster.MutateEntry(ctx, entry.ID, EntryMutation{Action: ActionSetNotes, Notes: "proxy models"})
	if err != nil {
		t.Fatalf("MutateEntry notes: %v", err)
	}
	if !res.Applied || res.Entry.Notes != "proxy models" {
		t.Fatalf("notes mutation failed: %+v", res.Entry)
	}
}

func TestBackupRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()

	list, err := env.roster.CreateList(ctx, ListInput{Name: "Muster", FactionID: "wood-realm", PointsLimit: 2000})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := env.roster.AddEntry(ctx, list.ID, "glade-guard"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if _, err := env.override.Set(ctx, "glade-guard", &override.Override{PtsOverride: "10"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	doc, err := env.backup.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(doc.Lists) != 1 || len(doc.Lists[0].Entries) != 1 || len(doc.Overrides) != 1 {
		t.Fatalf("unexpected document shape %+v", doc)
	}

	// Restore into a clean database.
	restored := newTestEnv(t)
	seedCatalog(t, restored)
	if err := restored.backup.Import(ctx, doc); err != nil {
		t.Fatalf("Import: %v", err)
	}

	views, err := restored.roster.GetLists(ctx)
	if err != nil {
		t.Fatalf("GetLists: %v", err)
	}
	if len(views) != 1 || views[0].List.Name != "Muster" || len(views[0].Entries) != 1 {
		t.Fatalf("restored lists wrong %+v", views)
	}
	if views[0].Total != 100 {
		t.Fatalf("restored total should honour the override, got %d", views[0].Total)
	}

	patch, err := restored.override.Get(ctx, "glade-guard")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if patch == nil || patch.PtsOverride != "10" {
		t.Fatalf("override not restored: %+v", patch)
	}
}

func TestBackupImportRejectsMismatchedEntries(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()

	list, err := env.roster.CreateList(ctx, ListInput{Name: "Muster", FactionID: "wood-realm"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := env.roster.AddEntry(ctx, list.ID, "glade-guard"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	doc, err := env.backup.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc.Lists[0].Entries[0].ListID = uuid.New()

	if err := env.backup.Import(ctx, doc); err == nil {
		t.Fatal("import with orphaned entry must fail")
	}
}
