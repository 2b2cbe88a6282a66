// Package catalogfile reads the YAML army book files used to seed the
// catalog tables. The YAML schema is file-format concern only; it is
// converted to domain unit definitions at the boundary.
package catalogfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wargrove/armybook-backend/internal/domain/units"
	"github.com/wargrove/armybook-backend/internal/types"
)

type File struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	SortOrder  int             `yaml:"sort_order"`
	Units      []UnitEntry     `yaml:"units"`
	MagicItems []MagicItemRow  `yaml:"magic_items"`
	Ammunition []AmmunitionRow `yaml:"ammunition"`
}

type UnitEntry struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Category    string       `yaml:"category"`
	IsCharacter bool         `yaml:"is_character"`
	PtsCost     int          `yaml:"pts_cost"`
	PtsPerModel int          `yaml:"pts_per_model"`
	MinSize     int          `yaml:"min_size"`
	MaxSize     int          `yaml:"max_size"`
	Profiles    []ProfileRow `yaml:"profiles"`
	Equipment   []string     `yaml:"equipment"`
	Rules       []string     `yaml:"rules"`
	Upgrades    []UpgradeRow `yaml:"upgrades"`
	Relic       *RelicRow    `yaml:"relic"`
	Slots       []string     `yaml:"slots"`
	ItemBudget  *int         `yaml:"item_budget"`
	Notes       string       `yaml:"notes"`
}

type ProfileRow struct {
	Name  string         `yaml:"name"`
	Stats map[string]any `yaml:"stats"`
}

type UpgradeRow struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Pts       int      `yaml:"pts"`
	PerModel  bool     `yaml:"per_model"`
	Type      string   `yaml:"type"`
	Exclusive bool     `yaml:"exclusive"`
	Magic     *struct {
		Slots     []string `yaml:"slots"`
		MaxPoints int      `yaml:"max_points"`
	} `yaml:"magic"`
	MountProfile   *ProfileRow `yaml:"mount_profile"`
	MountEquipment []string    `yaml:"mount_equipment"`
	MountArmour    string      `yaml:"mount_armour"`
	MountRules     []string    `yaml:"mount_rules"`
}

type RelicRow struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Basic    string `yaml:"basic"`
	Upgraded string `yaml:"upgraded"`
}

type MagicItemRow struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Slot        string `yaml:"slot"`
	Pts         int    `yaml:"pts"`
	Description string `yaml:"description"`
}

type AmmunitionRow struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	PtsPerModel int    `yaml:"pts_per_model"`
	PtsFlat     int    `yaml:"pts_flat"`
	Description string `yaml:"description"`
}

// Load parses one army book file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.ID == "" {
		return nil, fmt.Errorf("parse %s: missing faction id", path)
	}
	return &f, nil
}

// LoadDir parses every .yaml/.yml file in a directory, sorted by name
// so seeding is deterministic.
func LoadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make([]*File, 0, len(names))
	for _, name := range names {
		f, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Definition converts a unit entry into the domain definition.
func (u UnitEntry) Definition() *units.UnitDefinition {
	def := &units.UnitDefinition{
		ID:           u.ID,
		Name:         u.Name,
		Category:     u.Category,
		IsCharacter:  u.IsCharacter,
		PtsCost:      u.PtsCost,
		PtsPerModel:  u.PtsPerModel,
		MinSize:      u.MinSize,
		MaxSize:      u.MaxSize,
		Equipment:    u.Equipment,
		SpecialRules: u.Rules,
		AllowedSlots: u.Slots,
		Notes:        u.Notes,
	}
	for _, p := range u.Profiles {
		def.Profiles = append(def.Profiles, units.Profile{Name: p.Name, Stats: p.Stats})
	}
	for _, up := range u.Upgrades {
		opt := units.UpgradeOption{
			ID:             up.ID,
			Name:           up.Name,
			Pts:            up.Pts,
			PerModel:       up.PerModel,
			Type:           up.Type,
			Exclusive:      up.Exclusive,
			MountEquipment: up.MountEquipment,
			MountArmour:    up.MountArmour,
			MountRules:     up.MountRules,
		}
		if up.Magic != nil {
			opt.Magic = &units.MagicAllowance{Slots: up.Magic.Slots, MaxPoints: up.Magic.MaxPoints}
		}
		if up.MountProfile != nil {
			opt.MountProfile = &units.Profile{Name: up.MountProfile.Name, Stats: up.MountProfile.Stats}
		}
		def.Upgrades = append(def.Upgrades, opt)
	}
	if u.Relic != nil {
		def.Relic = &units.Relic{
			Name:     u.Relic.Name,
			Type:     u.Relic.Type,
			Basic:    u.Relic.Basic,
			Upgraded: u.Relic.Upgraded,
		}
	}
	if u.ItemBudget != nil {
		b := *u.ItemBudget
		def.MagicItemBudget = &b
	}
	return def
}

// Rows converts the file into catalog table rows ready for upsert.
func (f *File) Rows() (*types.Faction, []*types.Unit, []*types.MagicItem, []*types.AmmoItem, error) {
	faction := &types.Faction{ID: f.ID, Name: f.Name, SortOrder: f.SortOrder}

	unitRows := make([]*types.Unit, 0, len(f.Units))
	for _, u := range f.Units {
		def := u.Definition()
		payload, err := json.Marshal(def)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal unit %s: %w", u.ID, err)
		}
		unitRows = append(unitRows, &types.Unit{
			ID:          def.ID,
			FactionID:   f.ID,
			Name:        def.Name,
			Category:    def.Category,
			IsCharacter: def.IsCharacter,
			Data:        payload,
		})
	}

	itemRows := make([]*types.MagicItem, 0, len(f.MagicItems))
	for _, item := range f.MagicItems {
		itemRows = append(itemRows, &types.MagicItem{
			ID:          item.ID,
			FactionID:   f.ID,
			Name:        item.Name,
			Slot:        item.Slot,
			Pts:         item.Pts,
			Description: item.Description,
		})
	}

	ammoRows := make([]*types.AmmoItem, 0, len(f.Ammunition))
	for _, a := range f.Ammunition {
		ammoRows = append(ammoRows, &types.AmmoItem{
			ID:          a.ID,
			FactionID:   f.ID,
			Name:        a.Name,
			PtsPerModel: a.PtsPerModel,
			PtsFlat:     a.PtsFlat,
			Description: a.Description,
		})
	}

	return faction, unitRows, itemRows, ammoRows, nil
}
