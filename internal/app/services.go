package app

import (
	"github.com/wargrove/armybook-backend/internal/clients/redis"
	"github.com/wargrove/armybook-backend/internal/db"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/services"
)

type Services struct {
	Catalog  services.CatalogService
	Override services.OverrideService
	Roster   services.RosterService
	Backup   services.BackupService
}

func wireServices(dbs *db.Service, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")

	// Redis is optional; without it the catalog reads straight from
	// the database.
	cache, err := redis.NewCatalogCache(log)
	if err != nil {
		log.Warn("Catalog cache disabled", "error", err)
		cache = nil
	}

	catalog := services.NewCatalogService(
		dbs,
		cache,
		reposet.Faction,
		reposet.Unit,
		reposet.MagicItem,
		reposet.AmmoItem,
		reposet.UnitOverride,
		log,
	)
	override := services.NewOverrideService(
		dbs,
		catalog,
		reposet.Unit,
		reposet.UnitOverride,
		reposet.RosterEntry,
		log,
	)
	roster := services.NewRosterService(
		dbs,
		catalog,
		reposet.ArmyList,
		reposet.RosterEntry,
		log,
	)
	backup := services.NewBackupService(
		dbs,
		catalog,
		reposet.ArmyList,
		reposet.RosterEntry,
		reposet.UnitOverride,
		log,
	)

	return Services{
		Catalog:  catalog,
		Override: override,
		Roster:   roster,
		Backup:   backup,
	}
}
