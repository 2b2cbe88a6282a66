package app

import (
	"strings"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/utils"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	CORSOrigins []string
	CatalogDir  string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	serviceName := utils.GetEnv("SERVICE_NAME", "armybook-backend", log)
	environment := utils.GetEnv("ENVIRONMENT", "development", log)
	catalogDir := utils.GetEnv("CATALOG_DIR", "", log)

	var origins []string
	if raw := utils.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Port:        port,
		ServiceName: serviceName,
		Environment: environment,
		CORSOrigins: origins,
		CatalogDir:  catalogDir,
	}
}
