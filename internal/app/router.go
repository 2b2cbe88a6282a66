package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/wargrove/armybook-backend/internal/http"
	"github.com/wargrove/armybook-backend/internal/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:         log,
		ServiceName: cfg.ServiceName,
		CORSOrigins: cfg.CORSOrigins,

		CatalogHandler:  handlerset.Catalog,
		OverrideHandler: handlerset.Override,
		RosterHandler:   handlerset.Roster,
		BackupHandler:   handlerset.Backup,
		HealthHandler:   handlerset.Health,
	})
}
