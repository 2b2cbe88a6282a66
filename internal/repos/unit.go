package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/types"
)

type UnitRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, units []*types.Unit) error
	GetByFaction(ctx context.Context, tx *gorm.DB, factionID string) ([]*types.Unit, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Unit, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Unit, error)
}

type unitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
	return &unitRepo{db: db, log: baseLog.With("repo", "UnitRepo")}
}

func (r *unitRepo) Upsert(ctx context.Context, tx *gorm.DB, units []*types.Unit) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(units) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Save(&units).Error
}

func (r *unitRepo) GetByFaction(ctx context.Context, tx *gorm.DB, factionID string) ([]*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Unit
	if err := transaction.WithContext(ctx).
		Where("faction_id = ?", factionID).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *unitRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Unit
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *unitRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Unit
	if err := transaction.WithContext(ctx).
		Order("faction_id, name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
