package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/types"
)

type FactionRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, factions []*types.Faction) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Faction, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Faction, error)
}

type factionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFactionRepo(db *gorm.DB, baseLog *logger.Logger) FactionRepo {
	return &factionRepo{db: db, log: baseLog.With("repo", "FactionRepo")}
}

func (r *factionRepo) Upsert(ctx context.Context, tx *gorm.DB, factions []*types.Faction) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(factions) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Save(&factions).Error
}

func (r *factionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Faction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Faction
	if err := transaction.WithContext(ctx).
		Order("sort_order, name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *factionRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Faction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Faction
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
