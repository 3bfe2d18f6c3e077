package config

import (
	"context"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"aircraft_manager/internal/apperrors"
	"aircraft_manager/internal/logger"
	"aircraft_manager/internal/models"
)

// InitDB opens the database selected by cfg.DBDriver. It does not create tables; see Migrate.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(cfg), &gorm.Config{
		Logger: logger.GormLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.DatabaseConnection, err, "")
	}

	if cfg.DBDriver == DriverSQLite && strings.Contains(cfg.DatabaseURL, "mode=memory") {
		// every new connection to a memory database would see an empty schema
		sqlDB, err := db.DB()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.DatabaseConnection, err, "")
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func dialector(cfg *Config) gorm.Dialector {
	switch cfg.DBDriver {
	case DriverSQLite:
		return sqlite.New(sqlite.Config{
			DriverName: "sqlite",
			DSN:        withForeignKeys(cfg.DatabaseURL),
		})
	case DriverPQ:
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        cfg.DatabaseURL,
		})
	default:
		return postgres.Open(cfg.DatabaseURL)
	}
}

// withForeignKeys makes sqlite enforce the ON DELETE CASCADE constraint.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates the aircrafts and aircrafts_data tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Aircraft{}, &models.AircraftPerformance{}); err != nil {
		return apperrors.Wrap(apperrors.DatabaseConnection, err, "table creation failed")
	}
	return nil
}

// Ping checks that the database answers a trivial query within timeout.
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return apperrors.Wrap(apperrors.DatabaseConnection, err, "")
	}
	return nil
}

// CloseDB releases the connection pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return apperrors.Wrap(apperrors.DatabaseConnection, err, "")
	}
	if err := sqlDB.Close(); err != nil {
		return apperrors.Wrap(apperrors.DatabaseConnection, err, "")
	}
	return nil
}
