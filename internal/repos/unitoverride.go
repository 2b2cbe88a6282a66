package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/types"
)

type UnitOverrideRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, override *types.UnitOverride) error
	Delete(ctx context.Context, tx *gorm.DB, unitID string) error
	GetByUnitID(ctx context.Context, tx *gorm.DB, unitID string) (*types.UnitOverride, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.UnitOverride, error)
	ReplaceAll(ctx context.Context, tx *gorm.DB, overrides []*types.UnitOverride) error
}

type unitOverrideRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnitOverrideRepo(db *gorm.DB, baseLog *logger.Logger) UnitOverrideRepo {
	return &unitOverrideRepo{db: db, log: baseLog.With("repo", "UnitOverrideRepo")}
}

func (r *unitOverrideRepo) Upsert(ctx context.Context, tx *gorm.DB, override *types.UnitOverride) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(override).Error
}

func (r *unitOverrideRepo) Delete(ctx context.Context, tx *gorm.DB, unitID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Delete(&types.UnitOverride{}).Error
}

func (r *unitOverrideRepo) GetByUnitID(ctx context.Context, tx *gorm.DB, unitID string) (*types.UnitOverride, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.UnitOverride
	err := transaction.WithContext(ctx).
		Where("unit_id = ?", unitID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *unitOverrideRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.UnitOverride, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.UnitOverride
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *unitOverrideRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, overrides []*types.UnitOverride) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.UnitOverride{}).Error; err != nil {
		return err
	}
	if len(overrides) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&overrides).Error
}
