package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/wargrove/armybook-backend/internal/http/handlers"
	httpMW "github.com/wargrove/armybook-backend/internal/http/middleware"
	"github.com/wargrove/armybook-backend/internal/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	CatalogHandler  *httpH.CatalogHandler
	OverrideHandler *httpH.OverrideHandler
	RosterHandler   *httpH.RosterHandler
	BackupHandler   *httpH.BackupHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Catalog (read side)
		if cfg.CatalogHandler != nil {
			api.GET("/factions", cfg.CatalogHandler.ListFactions)
			api.GET("/factions/:id/units", cfg.CatalogHandler.ListUnits)
			api.GET("/factions/:id/magic-items", cfg.CatalogHandler.ListMagicItems)
			api.GET("/factions/:id/ammunition", cfg.CatalogHandler.ListAmmunition)
			api.GET("/units/:id", cfg.CatalogHandler.GetUnit)
			api.POST("/catalog/invalidate", cfg.CatalogHandler.InvalidateCache)
		}

		// House-rule overrides
		if cfg.OverrideHandler != nil {
			api.GET("/overrides", cfg.OverrideHandler.ListOverrides)
			api.GET("/overrides/:unitId", cfg.OverrideHandler.GetOverride)
			api.PUT("/overrides/:unitId", cfg.OverrideHandler.SetOverride)
			api.DELETE("/overrides/:unitId", cfg.OverrideHandler.DeleteOverride)
		}

		// Lists and entries
		if cfg.RosterHandler != nil {
			api.GET("/lists", cfg.RosterHandler.ListLists)
			api.POST("/lists", cfg.RosterHandler.CreateList)
			api.GET("/lists/:id", cfg.RosterHandler.GetList)
			api.PUT("/lists/:id", cfg.RosterHandler.UpdateList)
			api.DELETE("/lists/:id", cfg.RosterHandler.DeleteList)
			api.POST("/lists/:id/entries", cfg.RosterHandler.AddEntry)
			api.DELETE("/entries/:id", cfg.RosterHandler.RemoveEntry)
			api.POST("/entries/:id/mutate", cfg.RosterHandler.MutateEntry)
			api.GET("/entries/:id/cost", cfg.RosterHandler.GetEntryCost)
		}

		// Backup and restore
		if cfg.BackupHandler != nil {
			api.GET("/backup", cfg.BackupHandler.Export)
			api.POST("/backup", cfg.BackupHandler.Import)
		}
	}

	return r
}
