package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/db"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/repos"
	"github.com/wargrove/armybook-backend/internal/types"
)

const backupVersion = 1

// BackupDocument is the single JSON document a user downloads and
// restores. It carries everything user-authored: lists with their
// entries, and the stored override patches. Catalog data is never part
// of a backup; it is reseeded from army book files.
type BackupDocument struct {
	Version    int                   `json:"version"`
	ExportedAt time.Time             `json:"exportedAt"`
	Lists      []*BackupList         `json:"lists"`
	Overrides  []*types.UnitOverride `json:"overrides"`
}

type BackupList struct {
	List    *types.ArmyList      `json:"list"`
	Entries []*types.RosterEntry `json:"entries"`
}

type BackupService interface {
	Export(ctx context.Context) (*BackupDocument, error)
	Import(ctx context.Context, doc *BackupDocument) error
}

type backupService struct {
	log          *logger.Logger
	dbs          *db.Service
	catalog      CatalogService
	listRepo     repos.ArmyListRepo
	entryRepo    repos.RosterEntryRepo
	overrideRepo repos.UnitOverrideRepo
}

func NewBackupService(
	dbs *db.Service,
	catalog CatalogService,
	listRepo repos.ArmyListRepo,
	entryRepo repos.RosterEntryRepo,
	overrideRepo repos.UnitOverrideRepo,
	baseLog *logger.Logger,
) BackupService {
	return &backupService{
		log:          baseLog.With("service", "BackupService"),
		dbs:          dbs,
		catalog:      catalog,
		listRepo:     listRepo,
		entryRepo:    entryRepo,
		overrideRepo: overrideRepo,
	}
}

func (s *backupService) Export(ctx context.Context) (*BackupDocument, error) {
	doc := &BackupDocument{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
	}

	lists, err := s.listRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, list := range lists {
		entries, err := s.entryRepo.GetByList(ctx, nil, list.ID)
		if err != nil {
			return nil, err
		}
		doc.Lists = append(doc.Lists, &BackupList{List: list, Entries: entries})
	}

	overrides, err := s.overrideRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	doc.Overrides = overrides

	s.log.Info("Exported backup", "lists", len(doc.Lists), "overrides", len(doc.Overrides))
	return doc, nil
}

// Import replaces all user data with the document's contents in one
// transaction. A failed import leaves the existing data untouched.
func (s *backupService) Import(ctx context.Context, doc *BackupDocument) error {
	if doc == nil {
		return fmt.Errorf("empty backup document")
	}
	if doc.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %d", doc.Version)
	}

	lists := make([]*types.ArmyList, 0, len(doc.Lists))
	var entries []*types.RosterEntry
	for _, bl := range doc.Lists {
		if bl == nil || bl.List == nil {
			return fmt.Errorf("backup document contains a list without a body")
		}
		lists = append(lists, bl.List)
		for _, e := range bl.Entries {
			if e.ListID != bl.List.ID {
				return fmt.Errorf("entry %s does not belong to list %s", e.ID, bl.List.ID)
			}
			entries = append(entries, e)
		}
	}

	err := s.dbs.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := s.listRepo.ReplaceAll(ctx, tx, lists); err != nil {
			return err
		}
		for _, e := range entries {
			if err := s.entryRepo.Create(ctx, tx, e); err != nil {
				return err
			}
		}
		return s.overrideRepo.ReplaceAll(ctx, tx, doc.Overrides)
	})
	if err != nil {
		return err
	}

	s.catalog.InvalidateCache(ctx)
	s.log.Info("Imported backup", "lists", len(lists), "entries", len(entries), "overrides", len(doc.Overrides))
	return nil
}
