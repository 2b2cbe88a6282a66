package app

import (
	"github.com/wargrove/armybook-backend/internal/http/handlers"
	"github.com/wargrove/armybook-backend/internal/logger"
)

type Handlers struct {
	Catalog  *handlers.CatalogHandler
	Override *handlers.OverrideHandler
	Roster   *handlers.RosterHandler
	Backup   *handlers.BackupHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Catalog:  handlers.NewCatalogHandler(log, serviceset.Catalog),
		Override: handlers.NewOverrideHandler(log, serviceset.Override),
		Roster:   handlers.NewRosterHandler(log, serviceset.Roster),
		Backup:   handlers.NewBackupHandler(log, serviceset.Backup),
		Health:   handlers.NewHealthHandler(),
	}
}
