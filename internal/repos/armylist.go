package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/types"
)

type ArmyListRepo interface {
	Create(ctx context.Context, tx *gorm.DB, list *types.ArmyList) error
	Update(ctx context.Context, tx *gorm.DB, list *types.ArmyList) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ArmyList, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ArmyList, error)
	ReplaceAll(ctx context.Context, tx *gorm.DB, lists []*types.ArmyList) error
}

type armyListRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArmyListRepo(db *gorm.DB, baseLog *logger.Logger) ArmyListRepo {
	return &armyListRepo{db: db, log: baseLog.With("repo", "ArmyListRepo")}
}

func (r *armyListRepo) Create(ctx context.Context, tx *gorm.DB, list *types.ArmyList) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(list).Error
}

func (r *armyListRepo) Update(ctx context.Context, tx *gorm.DB, list *types.ArmyList) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(list).Error
}

func (r *armyListRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.ArmyList{}).Error
}

func (r *armyListRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ArmyList, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ArmyList
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

func (r *armyListRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ArmyList, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ArmyList
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *armyListRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, lists []*types.ArmyList) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.ArmyList{}).Error; err != nil {
		return err
	}
	if len(lists) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&lists).Error
}
