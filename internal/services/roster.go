package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/db"
	"github.com/wargrove/armybook-backend/internal/domain/cost"
	"github.com/wargrove/armybook-backend/internal/domain/override"
	"github.com/wargrove/armybook-backend/internal/domain/roster"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/repos"
	"github.com/wargrove/armybook-backend/internal/types"
)

// Entry mutation actions. Every action routes through the matching
// cost-engine mutator, so a mutation either applies (and the entry's
// points are recomputed from scratch) or the entry is returned
// unchanged with Applied=false.
const (
	ActionSetModelCount      = "set_model_count"
	ActionToggleUpgrade      = "toggle_upgrade"
	ActionEquipItem          = "equip_item"
	ActionUnequipItem        = "unequip_item"
	ActionEquipCommandItem   = "equip_command_item"
	ActionUnequipCommandItem = "unequip_command_item"
	ActionSelectAmmo         = "select_ammo"
	ActionClearAmmo          = "clear_ammo"
	ActionSetRelicForm       = "set_relic_form"
	ActionSetNotes           = "set_notes"
)

type EntryMutation struct {
	Action     string `json:"action"`
	ModelCount int    `json:"modelCount,omitempty"`
	UpgradeID  string `json:"upgradeId,omitempty"`
	ItemID     string `json:"itemId,omitempty"`
	Slot       string `json:"slot,omitempty"`
	AmmoID     string `json:"ammoId,omitempty"`
	RelicForm  string `json:"relicForm,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ListView is a list with its entries and the derived total.
type ListView struct {
	List    *types.ArmyList      `json:"list"`
	Entries []*types.RosterEntry `json:"entries"`
	Total   int                  `json:"total"`
}

// MutationResult reports whether the action was applied. A rejected
// action is not an error: the entry simply did not change.
type MutationResult struct {
	Entry   *types.RosterEntry `json:"entry"`
	Applied bool               `json:"applied"`
}

type ListInput struct {
	Name        string `json:"name"`
	FactionID   string `json:"factionId"`
	PointsLimit int    `json:"pointsLimit"`
	Notes       string `json:"notes"`
}

type RosterService interface {
	CreateList(ctx context.Context, in ListInput) (*types.ArmyList, error)
	UpdateList(ctx context.Context, id uuid.UUID, in ListInput) (*types.ArmyList, error)
	DeleteList(ctx context.Context, id uuid.UUID) error
	GetLists(ctx context.Context) ([]*ListView, error)
	GetList(ctx context.Context, id uuid.UUID) (*ListView, error)

	AddEntry(ctx context.Context, listID uuid.UUID, unitID string) (*types.RosterEntry, error)
	RemoveEntry(ctx context.Context, entryID uuid.UUID) error
	MutateEntry(ctx context.Context, entryID uuid.UUID, m EntryMutation) (*MutationResult, error)
	EntryCost(ctx context.Context, entryID uuid.UUID) (*cost.Result, error)
}

type rosterService struct {
	log       *logger.Logger
	dbs       *db.Service
	catalog   CatalogService
	listRepo  repos.ArmyListRepo
	entryRepo repos.RosterEntryRepo
}

func NewRosterService(
	dbs *db.Service,
	catalog CatalogService,
	listRepo repos.ArmyListRepo,
	entryRepo repos.RosterEntryRepo,
	baseLog *logger.Logger,
) RosterService {
	return &rosterService{
		log:       baseLog.With("service", "RosterService"),
		dbs:       dbs,
		catalog:   catalog,
		listRepo:  listRepo,
		entryRepo: entryRepo,
	}
}

func (s *rosterService) CreateList(ctx context.Context, in ListInput) (*types.ArmyList, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("list name required")
	}
	if in.FactionID == "" {
		return nil, fmt.Errorf("faction id required")
	}
	list := &types.ArmyList{
		ID:          uuid.New(),
		Name:        in.Name,
		FactionID:   in.FactionID,
		PointsLimit: in.PointsLimit,
		Notes:       in.Notes,
	}
	if err := s.listRepo.Create(ctx, nil, list); err != nil {
		return nil, err
	}
	s.log.Info("Created army list", "list", list.ID, "faction", list.FactionID)
	return list, nil
}

func (s *rosterService) UpdateList(ctx context.Context, id uuid.UUID, in ListInput) (*types.ArmyList, error) {
	list, err := s.listRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("list %s not found", id)
	}
	if in.Name != "" {
		list.Name = in.Name
	}
	list.PointsLimit = in.PointsLimit
	list.Notes = in.Notes
	if err := s.listRepo.Update(ctx, nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *rosterService) DeleteList(ctx context.Context, id uuid.UUID) error {
	return s.dbs.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.DeleteByList(ctx, tx, id); err != nil {
			return err
		}
		return s.listRepo.Delete(ctx, tx, id)
	})
}

func (s *rosterService) GetLists(ctx context.Context) ([]*ListView, error) {
	lists, err := s.listRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	views := make([]*ListView, 0, len(lists))
	for _, list := range lists {
		view, err := s.buildView(ctx, list)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *rosterService) GetList(ctx context.Context, id uuid.UUID) (*ListView, error) {
	list, err := s.listRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}
	return s.buildView(ctx, list)
}

// buildView sums the stored entry costs. Totals are always derived,
// never persisted on the list row.
func (s *rosterService) buildView(ctx context.Context, list *types.ArmyList) (*ListView, error) {
	entries, err := s.entryRepo.GetByList(ctx, nil, list.ID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, e := range entries {
		total += e.PtsCost
	}
	return &ListView{List: list, Entries: entries, Total: total}, nil
}

// AddEntry creates an entry at the unit's minimum legal size with no
// selections, priced immediately.
func (s *rosterService) AddEntry(ctx context.Context, listID uuid.UUID, unitID string) (*types.RosterEntry, error) {
	list, err := s.listRepo.GetByID(ctx, nil, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("list %s not found", listID)
	}

	unit, err := s.catalog.Unit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, fmt.Errorf("unknown unit %q", unitID)
	}

	count := 1
	if !unit.IsCharacter && unit.MinSize > 1 {
		count = unit.MinSize
	}

	existing, err := s.entryRepo.GetByList(ctx, nil, listID)
	if err != nil {
		return nil, err
	}

	row := &types.RosterEntry{
		ID:          uuid.New(),
		ListID:      listID,
		UnitID:      unit.ID,
		UnitName:    unit.Name,
		ModelCount:  count,
		IsCharacter: unit.IsCharacter,
		Category:    unit.Category,
		Position:    len(existing),
	}
	e := toDomainEntry(row)
	e = cost.Recompute(unit, e)
	if err := applyDomainEntry(row, e); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Create(ctx, nil, row); err != nil {
		return nil, err
	}
	s.log.Info("Added roster entry", "list", listID, "unit", unitID, "pts", row.PtsCost)
	return row, nil
}

func (s *rosterService) RemoveEntry(ctx context.Context, entryID uuid.UUID) error {
	return s.entryRepo.Delete(ctx, nil, entryID)
}

func (s *rosterService) MutateEntry(ctx context.Context, entryID uuid.UUID, m EntryMutation) (*MutationResult, error) {
	row, err := s.entryRepo.GetByID(ctx, nil, entryID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("entry %s not found", entryID)
	}

	// Notes never need the unit definition, so they still work when the
	// unit has been removed from the catalog.
	if m.Action == ActionSetNotes {
		row.Notes = m.Notes
		if err := s.entryRepo.Update(ctx, nil, row); err != nil {
			return nil, err
		}
		return &MutationResult{Entry: row, Applied: true}, nil
	}

	unit, err := s.catalog.Unit(ctx, row.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		// The entry keeps its cached name and last computed cost.
		s.log.Warn("Mutation against removed unit rejected", "entry", entryID, "unit", row.UnitID)
		return &MutationResult{Entry: row, Applied: false}, nil
	}

	e := toDomainEntry(row)
	updated, applied, err := s.applyMutation(ctx, unit, e, m)
	if err != nil {
		return nil, err
	}
	if !applied {
		return &MutationResult{Entry: row, Applied: false}, nil
	}

	updated = cost.Recompute(unit, updated)
	if err := applyDomainEntry(row, updated); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return &MutationResult{Entry: row, Applied: true}, nil
}

func (s *rosterService) applyMutation(ctx context.Context, unit *override.DerivedUnit, e *roster.Entry, m EntryMutation) (*roster.Entry, bool, error) {
	switch m.Action {
	case ActionSetModelCount:
		updated, ok := cost.SetModelCount(unit, e, m.ModelCount)
		return updated, ok, nil

	case ActionToggleUpgrade:
		updated, ok := cost.ToggleUpgrade(unit, e, m.UpgradeID)
		return updated, ok, nil

	case ActionEquipItem:
		item, err := s.catalog.MagicItem(ctx, m.ItemID)
		if err != nil {
			return nil, false, err
		}
		if item == nil {
			return e, false, nil
		}
		slot := m.Slot
		if slot == "" {
			slot = item.Slot
		}
		updated, ok := cost.EquipMagicItem(unit, e, slot, domainMagicItem(item))
		return updated, ok, nil

	case ActionUnequipItem:
		updated, ok := cost.UnequipMagicItem(unit, e, m.Slot)
		return updated, ok, nil

	case ActionEquipCommandItem:
		item, err := s.catalog.MagicItem(ctx, m.ItemID)
		if err != nil {
			return nil, false, err
		}
		if item == nil {
			return e, false, nil
		}
		slot := m.Slot
		if slot == "" {
			slot = item.Slot
		}
		updated, ok := cost.EquipCommandItem(unit, e, m.UpgradeID, slot, domainMagicItem(item))
		return updated, ok, nil

	case ActionUnequipCommandItem:
		updated, ok := cost.UnequipCommandItem(unit, e, m.UpgradeID, m.Slot)
		return updated, ok, nil

	case ActionSelectAmmo:
		ammo, err := s.catalog.AmmoItem(ctx, m.AmmoID)
		if err != nil {
			return nil, false, err
		}
		if ammo == nil {
			return e, false, nil
		}
		updated, ok := cost.SelectAmmo(unit, e, domainAmmoItem(ammo))
		return updated, ok, nil

	case ActionClearAmmo:
		updated, ok := cost.SelectAmmo(unit, e, nil)
		return updated, ok, nil

	case ActionSetRelicForm:
		updated, ok := cost.SetRelicForm(unit, e, m.RelicForm)
		return updated, ok, nil

	default:
		return nil, false, fmt.Errorf("unknown mutation action %q", m.Action)
	}
}

// EntryCost exposes the full cost breakdown for one entry.
func (s *rosterService) EntryCost(ctx context.Context, entryID uuid.UUID) (*cost.Result, error) {
	row, err := s.entryRepo.GetByID(ctx, nil, entryID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("entry %s not found", entryID)
	}
	unit, err := s.catalog.Unit(ctx, row.UnitID)
	if err != nil {
		return nil, err
	}
	result := cost.Compute(unit, toDomainEntry(row))
	return &result, nil
}
