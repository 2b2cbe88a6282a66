// Command seed-catalog imports a directory of army book YAML files into
// the catalog tables and exits. It shares the server's configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/wargrove/armybook-backend/internal/app"
	"github.com/wargrove/armybook-backend/internal/catalogfile"
)

func main() {
	dir := flag.String("dir", "", "directory of army book YAML files")
	flag.Parse()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	target := *dir
	if target == "" {
		target = a.Cfg.CatalogDir
	}
	if target == "" {
		a.Log.Error("No catalog directory given (use -dir or CATALOG_DIR)")
		os.Exit(1)
	}

	files, err := catalogfile.LoadDir(target)
	if err != nil {
		a.Log.Error("Failed to load catalog directory", "dir", target, "error", err)
		os.Exit(1)
	}
	if err := a.Services.Catalog.ImportFiles(context.Background(), files); err != nil {
		a.Log.Error("Failed to import catalog", "error", err)
		os.Exit(1)
	}
	a.Log.Info("Catalog seeded", "files", len(files))
}
