package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wargrove/armybook-backend/internal/app"
	"github.com/wargrove/armybook-backend/internal/catalogfile"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	// Seed on boot when a catalog directory is configured, so a fresh
	// database comes up with army books already loaded.
	if a.Cfg.CatalogDir != "" {
		files, err := catalogfile.LoadDir(a.Cfg.CatalogDir)
		if err != nil {
			a.Log.Error("Failed to load catalog directory", "dir", a.Cfg.CatalogDir, "error", err)
			os.Exit(1)
		}
		if err := a.Services.Catalog.ImportFiles(context.Background(), files); err != nil {
			a.Log.Error("Failed to import catalog", "error", err)
			os.Exit(1)
		}
	}

	a.Log.Info("Server listening", "port", a.Cfg.Port)
	if err := a.Run(":" + a.Cfg.Port); err != nil {
		a.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
