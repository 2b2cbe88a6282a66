package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wargrove/armybook-backend/internal/catalogfile"
	"github.com/wargrove/armybook-backend/internal/db"
	httpH "github.com/wargrove/armybook-backend/internal/http/handlers"
	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/repos"
	"github.com/wargrove/armybook-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	dbs, err := db.NewTestService(log)
	if err != nil {
		t.Fatalf("db.NewTestService: %v", err)
	}
	if err := dbs.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}

	conn := dbs.DB()
	factionRepo := repos.NewFactionRepo(conn, log)
	unitRepo := repos.NewUnitRepo(conn, log)
	itemRepo := repos.NewMagicItemRepo(conn, log)
	ammoRepo := repos.NewAmmoItemRepo(conn, log)
	overrideRepo := repos.NewUnitOverrideRepo(conn, log)
	listRepo := repos.NewArmyListRepo(conn, log)
	entryRepo := repos.NewRosterEntryRepo(conn, log)

	catalog := services.NewCatalogService(dbs, nil, factionRepo, unitRepo, itemRepo, ammoRepo, overrideRepo, log)
	overrides := services.NewOverrideService(dbs, catalog, unitRepo, overrideRepo, entryRepo, log)
	roster := services.NewRosterService(dbs, catalog, listRepo, entryRepo, log)
	backup := services.NewBackupService(dbs, catalog, listRepo, entryRepo, overrideRepo, log)

	files, err := catalogfile.LoadDir("../catalogfile/testdata")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if err := catalog.ImportFiles(context.Background(), files); err != nil {
		t.Fatalf("ImportFiles: %v", err)
	}

	return NewRouter(RouterConfig{
		Log:             log,
		CatalogHandler:  httpH.NewCatalogHandler(log, catalog),
		OverrideHandler: httpH.NewOverrideHandler(log, overrides),
		RosterHandler:   httpH.NewRosterHandler(log, roster),
		BackupHandler:   httpH.NewBackupHandler(log, backup),
		HealthHandler:   httpH.NewHealthHandler(),
	})
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

func TestHealthcheck(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestListFactionsRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/factions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Factions []struct {
			ID string `json:"id"`
		} `json:"factions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Factions) != 1 || body.Factions[0].ID != "wood-realm" {
		t.Fatalf("unexpected factions %+v", body.Factions)
	}
}

func TestGetUnknownUnitIs404(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/units/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestUnitsRouteCarriesOverrideAnnotations(t *testing.T) {
	r := newTestRouter(t)

	// Store an override through the API, then read the faction units.
	putBody := `{"ptsOverride":"10","houseRuleNote":"house points"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/overrides/glade-guard", jsonBody(putBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("override PUT failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/factions/wood-realm/units", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("units GET failed: %d", rec.Code)
	}

	var body struct {
		Units []struct {
			ID          string   `json:"id"`
			PtsPerModel int      `json:"ptsPerModel"`
			HasOverride bool     `json:"_hasOverride"`
			Changes     []string `json:"_overrideChanges"`
		} `json:"units"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, u := range body.Units {
		switch u.ID {
		case "glade-guard":
			if !u.HasOverride || u.PtsPerModel != 10 || len(u.Changes) == 0 {
				t.Fatalf("override annotations missing: %+v", u)
			}
		case "glade-captain":
			if u.HasOverride {
				t.Fatalf("untouched unit flagged: %+v", u)
			}
		}
	}
}
