package testutils

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"aircraft_manager/internal/config"
	"aircraft_manager/internal/models"
)

// NewTestDB returns a migrated, isolated in-memory sqlite database that is closed
// when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		DatabaseURL: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel:    logrus.ErrorLevel,
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := config.CloseDB(db); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// MockAircraft returns the C-152 sample used across tests.
func MockAircraft() models.Aircraft {
	return models.Aircraft{
		Name:         "C-152",
		Manufacturer: "Cessna",
		AircraftType: models.Trainer,
		FirstFlight:  String("1977-08-12"),
		Performance: models.AircraftPerformance{
			FuelConsumption: Float(15),
			Ceiling:         Float(2800),
			Weight:          Float(750),
			Fuel:            Float(120),
			MaxSpeed:        Float(270),
			CruiseSpeed:     Float(190),
		},
	}
}

// SeedAircraft inserts a MockAircraft with the given name directly, bypassing the repository.
func SeedAircraft(t *testing.T, db *gorm.DB, name string) models.Aircraft {
	t.Helper()

	aircraft := MockAircraft()
	aircraft.Name = name
	if err := db.Create(&aircraft).Error; err != nil {
		t.Fatalf("Failed to seed aircraft %q: %v", name, err)
	}
	return aircraft
}
