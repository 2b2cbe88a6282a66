package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/types"
)

type MagicItemRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, items []*types.MagicItem) error
	GetByFaction(ctx context.Context, tx *gorm.DB, factionID string) ([]*types.MagicItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.MagicItem, error)
}

type magicItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMagicItemRepo(db *gorm.DB, baseLog *logger.Logger) MagicItemRepo {
	return &magicItemRepo{db: db, log: baseLog.With("repo", "MagicItemRepo")}
}

func (r *magicItemRepo) Upsert(ctx context.Context, tx *gorm.DB, items []*types.MagicItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Save(&items).Error
}

func (r *magicItemRepo) GetByFaction(ctx context.Context, tx *gorm.DB, factionID string) ([]*types.MagicItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.MagicItem
	if err := transaction.WithContext(ctx).
		Where("faction_id = ?", factionID).
		Order("slot, pts, name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *magicItemRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.MagicItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.MagicItem
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type AmmoItemRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, items []*types.AmmoItem) error
	GetByFaction(ctx context.Context, tx *gorm.DB, factionID string) ([]*types.AmmoItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.AmmoItem, error)
}

type ammoItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAmmoItemRepo(db *gorm.DB, baseLog *logger.Logger) AmmoItemRepo {
	return &ammoItemRepo{db: db, log: baseLog.With("repo", "AmmoItemRepo")}
}

func (r *ammoItemRepo) Upsert(ctx context.Context, tx *gorm.DB, items []*types.AmmoItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Save(&items).Error
}

func (r *ammoItemRepo) GetByFaction(ctx context.Context, tx *gorm.DB, factionID string) ([]*types.AmmoItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AmmoItem
	if err := transaction.WithContext(ctx).
		Where("faction_id = ?", factionID).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ammoItemRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.AmmoItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.AmmoItem
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
