package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/logging"

	// database/sql driver used by the postgres dialector below
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenDB opens the configured database and migrates the schema. The
// postgres dialector runs on lib/pq so hosted Postgres instances
// (Supabase included) work with a plain "postgres://" DSN.
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "":
		if err := ensureSQLiteDir(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	case DriverPostgres, "postgresql":
		dialector = postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if dialector.Name() == DriverSQLite {
		// SQLite allows a single writer; serialize connections so
		// concurrent requests queue instead of failing with SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	for _, table := range []interface{}{&game.User{}, &game.Character{}, &game.Battle{}} {
		if err := db.AutoMigrate(table); err != nil {
			return nil, fmt.Errorf("automigrate %T failed: %w", table, err)
		}
	}
	logging.Info("database ready", logging.Fields{"driver": dialector.Name()})
	return db, nil
}

func ensureSQLiteDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}
