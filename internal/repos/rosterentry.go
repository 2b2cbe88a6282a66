package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/types"
)

type RosterEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.RosterEntry) error
	Update(ctx context.Context, tx *gorm.DB, entry *types.RosterEntry) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RosterEntry, error)
	GetByList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]*types.RosterEntry, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.RosterEntry, error)
	UpdateAll(ctx context.Context, tx *gorm.DB, entries []*types.RosterEntry) error
}

type rosterEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRosterEntryRepo(db *gorm.DB, baseLog *logger.Logger) RosterEntryRepo {
	return &rosterEntryRepo{db: db, log: baseLog.With("repo", "RosterEntryRepo")}
}

func (r *rosterEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.RosterEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(entry).Error
}

func (r *rosterEntryRepo) Update(ctx context.Context, tx *gorm.DB, entry *types.RosterEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(entry).Error
}

func (r *rosterEntryRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.RosterEntry{}).Error
}

func (r *rosterEntryRepo) DeleteByList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("list_id = ?", listID).
		Delete(&types.RosterEntry{}).Error
}

func (r *rosterEntryRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.RosterEntry{}).Error
}

func (r *rosterEntryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RosterEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.RosterEntry
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

func (r *rosterEntryRepo) GetByList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]*types.RosterEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.RosterEntry
	if err := transaction.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("position, created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *rosterEntryRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.RosterEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.RosterEntry
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *rosterEntryRepo) UpdateAll(ctx context.Context, tx *gorm.DB, entries []*types.RosterEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	for _, entry := range entries {
		if err := transaction.WithContext(ctx).Save(entry).Error; err != nil {
			return err
		}
	}
	return nil
}
