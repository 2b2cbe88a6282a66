package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/db"
	"github.com/wargrove/armybook-backend/internal/domain/cost"
	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/roster"
	"github.com/wargrove/armybook-backend/internal/domain/units"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/repos"
	"github.com/wargrove/armybook-backend/internal/types"
)

// OverrideService owns the stored house-rule patches. Every write goes
// through the same path: persist (or delete) the patch, then resync the
// cached name and points of every roster entry referencing the unit, in
// one transaction. An empty patch is never stored; it deletes the row.
type OverrideService interface {
	Get(ctx context.Context, unitID string) (*override.Override, error)
	GetAll(ctx context.Context) (map[string]*override.Override, error)
	Set(ctx context.Context, unitID string, patch *override.Override) (*override.DerivedUnit, error)
	Delete(ctx context.Context, unitID string) (*override.DerivedUnit, error)
}

type overrideService struct {
	log          *logger.Logger
	dbs          *db.Service
	catalog      CatalogService
	unitRepo     repos.UnitRepo
	overrideRepo repos.UnitOverrideRepo
	entryRepo    repos.RosterEntryRepo
}

func NewOverrideService(
	dbs *db.Service,
	catalog CatalogService,
	unitRepo repos.UnitRepo,
	overrideRepo repos.UnitOverrideRepo,
	entryRepo repos.RosterEntryRepo,
	baseLog *logger.Logger,
) OverrideService {
	return &overrideService{
		log:          baseLog.With("service", "OverrideService"),
		dbs:          dbs,
		catalog:      catalog,
		unitRepo:     unitRepo,
		overrideRepo: overrideRepo,
		entryRepo:    entryRepo,
	}
}

func (s *overrideService) Get(ctx context.Context, unitID string) (*override.Override, error) {
	row, err := s.overrideRepo.GetByUnitID(ctx, nil, unitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return decodeOverride(row)
}

func (s *overrideService) GetAll(ctx context.Context) (map[string]*override.Override, error) {
	rows, err := s.overrideRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	patches := make(map[string]*override.Override, len(rows))
	for _, row := range rows {
		ov, err := decodeOverride(row)
		if err != nil {
			return nil, err
		}
		patches[row.UnitID] = ov
	}
	return patches, nil
}

func (s *overrideService) Set(ctx context.Context, unitID string, patch *override.Override) (*override.DerivedUnit, error) {
	if patch == nil || patch.Empty() {
		return s.Delete(ctx, unitID)
	}

	base, err := s.baseDefinition(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("unknown unit %q", unitID)
	}

	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("marshal override for %s: %w", unitID, err)
	}

	derived := override.Resolve(base, patch)
	err = s.dbs.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.overrideRepo.Upsert(ctx, tx, &types.UnitOverride{UnitID: unitID, Patch: raw}); err != nil {
			return err
		}
		return s.resyncEntries(ctx, tx, unitID, derived)
	})
	if err != nil {
		return nil, err
	}

	s.catalog.InvalidateCache(ctx)
	s.log.Info("Stored unit override", "unit", unitID, "changes", len(derived.Changes))
	return derived, nil
}

func (s *overrideService) Delete(ctx context.Context, unitID string) (*override.DerivedUnit, error) {
	base, err := s.baseDefinition(ctx, unitID)
	if err != nil {
		return nil, err
	}

	var derived *override.DerivedUnit
	if base != nil {
		derived = override.Resolve(base, nil)
	}

	err = s.dbs.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.overrideRepo.Delete(ctx, tx, unitID); err != nil {
			return err
		}
		if derived == nil {
			return nil
		}
		return s.resyncEntries(ctx, tx, unitID, derived)
	})
	if err != nil {
		return nil, err
	}

	s.catalog.InvalidateCache(ctx)
	s.log.Info("Removed unit override", "unit", unitID)
	return derived, nil
}

// baseDefinition reads the unit row directly so the patch applies to
// the pristine definition, never to an already-overridden one.
func (s *overrideService) baseDefinition(ctx context.Context, unitID string) (*units.UnitDefinition, error) {
	rows, err := s.unitRepo.GetByIDs(ctx, nil, []string{unitID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return decodeUnit(rows[0])
}

// resyncEntries renames and re-prices every stored entry for the unit
// against its freshly resolved definition.
func (s *overrideService) resyncEntries(ctx context.Context, tx *gorm.DB, unitID string, derived *override.DerivedUnit) error {
	rows, err := s.entryRepo.GetAll(ctx, tx)
	if err != nil {
		return err
	}

	byUnitID := map[string]*override.DerivedUnit{unitID: derived}
	var touched []*types.RosterEntry
	for _, row := range rows {
		if row.UnitID != unitID {
			continue
		}
		e := toDomainEntry(row)
		roster.SyncEntryNames([]*roster.Entry{e}, byUnitID)
		e = cost.Recompute(derived, e)
		if err := applyDomainEntry(row, e); err != nil {
			return err
		}
		touched = append(touched, row)
	}
	if len(touched) == 0 {
		return nil
	}
	if err := s.entryRepo.UpdateAll(ctx, tx, touched); err != nil {
		return err
	}
	s.log.Info("Resynced roster entries after override change", "unit", unitID, "entries", len(touched))
	return nil
}
