package app

import (
	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/repos"
)

type Repos struct {
	Faction      repos.FactionRepo
	Unit         repos.UnitRepo
	MagicItem    repos.MagicItemRepo
	AmmoItem     repos.AmmoItemRepo
	UnitOverride repos.UnitOverrideRepo
	ArmyList     repos.ArmyListRepo
	RosterEntry  repos.RosterEntryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Faction:      repos.NewFactionRepo(db, log),
		Unit:         repos.NewUnitRepo(db, log),
		MagicItem:    repos.NewMagicItemRepo(db, log),
		AmmoItem:     repos.NewAmmoItemRepo(db, log),
		UnitOverride: repos.NewUnitOverrideRepo(db, log),
		ArmyList:     repos.NewArmyListRepo(db, log),
		RosterEntry:  repos.NewRosterEntryRepo(db, log),
	}
}
