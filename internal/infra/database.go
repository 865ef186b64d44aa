package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"caruma/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection and runs AutoMigrate. The backend is
// selected by the DSN scheme: postgres:// (or postgresql://) connects through
// pgx; anything else is treated as a SQLite file path, with an optional
// sqlite:// prefix. Both backends expose identical behavior through the
// repository layer.
func NewDatabase(dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var db *gorm.DB
	var err error
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	default:
		path := strings.TrimPrefix(dsn, "sqlite://")
		if dir := filepath.Dir(path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return nil, fmt.Errorf("database: create dir: %w", mkErr)
			}
		}
		// Busy timeout keeps concurrent writers from failing immediately.
		db, err = gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), gormCfg)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against a throwaway SQLite file.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Categoria{},
		&model.Insumo{},
		&model.Servicio{},
		&model.ServicioInsumo{},
		&model.Alerta{},
	)
}
