package db

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wargrove/armybook-backend/internal/logger"
	"github.com/wargrove/armybook-backend/internal/types"
	"github.com/wargrove/armybook-backend/internal/utils"
)

// Service owns the gorm connection. Sqlite is the default (the roster
// builder is a local-first app); DB_DRIVER=postgres switches to a
// shared server.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := utils.GetEnv("DB_DRIVER", "sqlite", log)
	var (
		conn *gorm.DB
		err  error
	)
	switch driver {
	case "postgres":
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "armybook", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		serviceLog.Info("Connecting to Postgres...", "host", host, "db", name)
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		path := utils.GetEnv("SQLITE_PATH", "armybook.db", log)
		serviceLog.Info("Opening sqlite database...", "path", path)
		conn, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	return &Service{db: conn, log: serviceLog}, nil
}

var testDBSeq atomic.Int64

// NewTestService opens a fresh in-memory sqlite database. Each call
// gets its own database so tests never see each other's rows.
func NewTestService(log *logger.Logger) (*Service, error) {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open in-memory sqlite: %w", err)
	}
	return &Service{db: conn, log: log.With("service", "DBService")}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := s.db.AutoMigrate(
		&types.Faction{},
		&types.Unit{},
		&types.MagicItem{},
		&types.AmmoItem{},
		&types.UnitOverride{},
		&types.ArmyList{},
		&types.RosterEntry{},
	); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
