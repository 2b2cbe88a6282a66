package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/catalogfile"
	"github.com/wargrove/armybook-backend/internal/clients/redis"
	"github.com/wargrove/armybook-backend/internal/db"
	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/units"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/repos"
	"github.com/wargrove/armybook-backend/internal/types"
)

const (
	cacheKeyFactions   = "catalog:factions"
	cacheKeyUnitPrefix = "catalog:units:"
)

// CatalogService serves the read side of the army books: factions,
// override-resolved units and the item/ammunition tables. Base unit
// definitions are cached; overrides are read fresh on every resolve so
// a house-rule edit is visible immediately.
type CatalogService interface {
	Factions(ctx context.Context) ([]*types.Faction, error)
	Units(ctx context.Context, factionID string) ([]*override.DerivedUnit, error)
	Unit(ctx context.Context, unitID string) (*override.DerivedUnit, error)
	UnitsByID(ctx context.Context, unitIDs []string) (map[string]*override.DerivedUnit, error)
	MagicItems(ctx context.Context, factionID string) ([]*types.MagicItem, error)
	MagicItem(ctx context.Context, itemID string) (*types.MagicItem, error)
	Ammunition(ctx context.Context, factionID string) ([]*types.AmmoItem, error)
	AmmoItem(ctx context.Context, ammoID string) (*types.AmmoItem, error)
	ImportFiles(ctx context.Context, files []*catalogfile.File) error
	InvalidateCache(ctx context.Context)
}

type catalogService struct {
	log          *logger.Logger
	dbs          *db.Service
	cache        redis.CatalogCache
	factionRepo  repos.FactionRepo
	unitRepo     repos.UnitRepo
	itemRepo     repos.MagicItemRepo
	ammoRepo     repos.AmmoItemRepo
	overrideRepo repos.UnitOverrideRepo
}

// NewCatalogService accepts a nil cache, in which case every read goes
// to the database.
func NewCatalogService(
	dbs *db.Service,
	cache redis.CatalogCache,
	factionRepo repos.FactionRepo,
	unitRepo repos.UnitRepo,
	itemRepo repos.MagicItemRepo,
	ammoRepo repos.AmmoItemRepo,
	overrideRepo repos.UnitOverrideRepo,
	baseLog *logger.Logger,
) CatalogService {
	return &catalogService{
		log:          baseLog.With("service", "CatalogService"),
		dbs:          dbs,
		cache:        cache,
		factionRepo:  factionRepo,
		unitRepo:     unitRepo,
		itemRepo:     itemRepo,
		ammoRepo:     ammoRepo,
		overrideRepo: overrideRepo,
	}
}

func (s *catalogService) Factions(ctx context.Context) ([]*types.Faction, error) {
	if s.cache != nil {
		var cached []*types.Faction
		if hit, err := s.cache.Get(ctx, cacheKeyFactions, &cached); err == nil && hit {
			return cached, nil
		}
	}
	factions, err := s.factionRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyFactions, factions); err != nil {
			s.log.Warn("Failed to cache factions", "error", err)
		}
	}
	return factions, nil
}

// baseDefinitions returns the decoded (pre-override) definitions for a
// faction, going through the cache.
func (s *catalogService) baseDefinitions(ctx context.Context, factionID string) ([]*units.UnitDefinition, error) {
	key := cacheKeyUnitPrefix + factionID
	if s.cache != nil {
		var cached []*units.UnitDefinition
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.unitRepo.GetByFaction(ctx, nil, factionID)
	if err != nil {
		return nil, err
	}
	defs := make([]*units.UnitDefinition, 0, len(rows))
	for _, row := range rows {
		def, err := decodeUnit(row)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, defs); err != nil {
			s.log.Warn("Failed to cache unit definitions", "faction", factionID, "error", err)
		}
	}
	return defs, nil
}

func (s *catalogService) overridePatches(ctx context.Context) (map[string]*override.Override, error) {
	rows, err := s.overrideRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	patches := make(map[string]*override.Override, len(rows))
	for _, row := range rows {
		ov, err := decodeOverride(row)
		if err != nil {
			s.log.Warn("Skipping undecodable override", "unit", row.UnitID, "error", err)
			continue
		}
		patches[row.UnitID] = ov
	}
	return patches, nil
}

func (s *catalogService) Units(ctx context.Context, factionID string) ([]*override.DerivedUnit, error) {
	defs, err := s.baseDefinitions(ctx, factionID)
	if err != nil {
		return nil, err
	}
	patches, err := s.overridePatches(ctx)
	if err != nil {
		return nil, err
	}
	return override.ResolveAll(defs, patches), nil
}

func (s *catalogService) Unit(ctx context.Context, unitID string) (*override.DerivedUnit, error) {
	rows, err := s.unitRepo.GetByIDs(ctx, nil, []string{unitID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	def, err := decodeUnit(rows[0])
	if err != nil {
		return nil, err
	}
	row, err := s.overrideRepo.GetByUnitID(ctx, nil, unitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return override.Resolve(def, nil), nil
	}
	ov, err := decodeOverride(row)
	if err != nil {
		return nil, err
	}
	return override.Resolve(def, ov), nil
}

func (s *catalogService) UnitsByID(ctx context.Context, unitIDs []string) (map[string]*override.DerivedUnit, error) {
	rows, err := s.unitRepo.GetByIDs(ctx, nil, unitIDs)
	if err != nil {
		return nil, err
	}
	defs := make([]*units.UnitDefinition, 0, len(rows))
	for _, row := range rows {
		def, err := decodeUnit(row)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	patches, err := s.overridePatches(ctx)
	if err != nil {
		return nil, err
	}
	resolved := override.ResolveAll(defs, patches)
	byID := make(map[string]*override.DerivedUnit, len(resolved))
	for _, d := range resolved {
		byID[d.ID] = d
	}
	return byID, nil
}

func (s *catalogService) MagicItems(ctx context.Context, factionID string) ([]*types.MagicItem, error) {
	return s.itemRepo.GetByFaction(ctx, nil, factionID)
}

func (s *catalogService) MagicItem(ctx context.Context, itemID string) (*types.MagicItem, error) {
	return s.itemRepo.GetByID(ctx, nil, itemID)
}

func (s *catalogService) Ammunition(ctx context.Context, factionID string) ([]*types.AmmoItem, error) {
	return s.ammoRepo.GetByFaction(ctx, nil, factionID)
}

func (s *catalogService) AmmoItem(ctx context.Context, ammoID string) (*types.AmmoItem, error) {
	return s.ammoRepo.GetByID(ctx, nil, ammoID)
}

// ImportFiles upserts every army book file in one transaction, then
// drops the affected cache keys.
func (s *catalogService) ImportFiles(ctx context.Context, files []*catalogfile.File) error {
	err := s.dbs.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range files {
			faction, unitRows, itemRows, ammoRows, err := f.Rows()
			if err != nil {
				return err
			}
			if err := s.factionRepo.Upsert(ctx, tx, []*types.Faction{faction}); err != nil {
				return fmt.Errorf("upsert faction %s: %w", faction.ID, err)
			}
			if err := s.unitRepo.Upsert(ctx, tx, unitRows); err != nil {
				return fmt.Errorf("upsert units for %s: %w", faction.ID, err)
			}
			if err := s.itemRepo.Upsert(ctx, tx, itemRows); err != nil {
				return fmt.Errorf("upsert magic items for %s: %w", faction.ID, err)
			}
			if err := s.ammoRepo.Upsert(ctx, tx, ammoRows); err != nil {
				return fmt.Errorf("upsert ammunition for %s: %w", faction.ID, err)
			}
			s.log.Info("Imported army book",
				"faction", faction.ID,
				"units", len(unitRows),
				"items", len(itemRows),
				"ammo", len(ammoRows))
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.InvalidateCache(ctx)
	return nil
}

func (s *catalogService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	keys := []string{cacheKeyFactions}
	factions, err := s.factionRepo.GetAll(ctx, nil)
	if err != nil {
		s.log.Warn("Failed to list factions for cache invalidation", "error", err)
	}
	for _, f := range factions {
		keys = append(keys, cacheKeyUnitPrefix+f.ID)
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("Failed to invalidate catalog cache", "error", err)
	}
}
