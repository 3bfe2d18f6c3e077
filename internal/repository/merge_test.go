package repository

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"aircraft_manager/internal/apperrors"
	"aircraft_manager/internal/models"
	"aircraft_manager/internal/testutils"
)

func storedAircraft() models.Aircraft {
	a := testutils.MockAircraft()
	a.ID = 100
	a.Performance.ID = 100
	a.Performance.AircraftID = 100
	return a
}

func TestMergePatch_EmptyPatchIsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		patch models.AircraftPatch
	}{
		{"no fields", models.AircraftPatch{}},
		{"empty performance", models.AircraftPatch{Performance: &models.PerformancePatch{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergePatch(storedAircraft(), tt.patch)
			if !apperrors.Is(err, apperrors.InvalidData) {
				t.Fatalf("MergePatch() error = %v, want InvalidData", err)
			}
			if apperrors.Message(err) != "no fields to update" {
				t.Errorf("message = %q", apperrors.Message(err))
			}
		})
	}
}

func TestMergePatch_OnlyPresentFields(t *testing.T) {
	current := storedAircraft()
	patch := models.AircraftPatch{
		Name:        testutils.String("C-182"),
		Performance: &models.PerformancePatch{CruiseSpeed: testutils.Float(170)},
	}

	m, err := MergePatch(current, patch)
	if err != nil {
		t.Fatalf("MergePatch() failed: %v", err)
	}

	if len(m.AircraftFields) != 1 || m.AircraftFields["name"] != "C-182" {
		t.Errorf("AircraftFields = %v", m.AircraftFields)
	}
	if len(m.PerformanceFields) != 1 || m.PerformanceFields["cruise_speed"] != 170.0 {
		t.Errorf("PerformanceFields = %v", m.PerformanceFields)
	}
	if m.Merged.Name != "C-182" || *m.Merged.Performance.CruiseSpeed != 170 {
		t.Errorf("Merged = %+v", m.Merged)
	}
	if m.Merged.Manufacturer != "Cessna" || *m.Merged.Performance.Weight != 750 {
		t.Error("untouched fields should keep their stored values")
	}
	if *current.Performance.CruiseSpeed != 190 {
		t.Error("MergePatch must not modify the current aggregate")
	}
}

func TestMergePatch_TypeAndDate(t *testing.T) {
	bomber := models.Bomber
	m, err := MergePatch(storedAircraft(), models.AircraftPatch{
		AircraftType: &bomber,
		FirstFlight:  testutils.String("1980-01-01"),
	})
	if err != nil {
		t.Fatalf("MergePatch() failed: %v", err)
	}
	if m.AircraftFields["aircraft_type"] != models.Bomber || m.AircraftFields["first_flight"] != "1980-01-01" {
		t.Errorf("AircraftFields = %v", m.AircraftFields)
	}
	if len(m.PerformanceFields) != 0 {
		t.Errorf("PerformanceFields should be empty, got %v", m.PerformanceFields)
	}

	bad := models.AircraftType(9)
	if _, err := MergePatch(storedAircraft(), models.AircraftPatch{AircraftType: &bad}); !apperrors.Is(err, apperrors.InvalidData) {
		t.Errorf("unknown type error = %v, want InvalidData", err)
	}
}

func TestMergePatch_BlankRequiredFields(t *testing.T) {
	for _, patch := range []models.AircraftPatch{
		{Name: testutils.String("")},
		{Manufacturer: testutils.String("   ")},
	} {
		if _, err := MergePatch(storedAircraft(), patch); !apperrors.Is(err, apperrors.InvalidData) {
			t.Errorf("MergePatch(%+v) error = %v, want InvalidData", patch, err)
		}
	}
}

func TestProperty_MergeNeverTouchesAbsentFields(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("fields absent from the patch keep their stored value", prop.ForAll(
		func(setName bool, name string, setWeight bool, weight float64, setFuel bool, fuel float64) bool {
			current := storedAircraft()
			patch := models.AircraftPatch{Performance: &models.PerformancePatch{}}
			if setName {
				patch.Name = &name
			}
			if setWeight {
				patch.Performance.Weight = &weight
			}
			if setFuel {
				patch.Performance.Fuel = &fuel
			}

			m, err := MergePatch(current, patch)
			if !setName && !setWeight && !setFuel {
				return apperrors.Is(err, apperrors.InvalidData)
			}
			if err != nil {
				return false
			}

			got := m.Merged
			if got.Manufacturer != current.Manufacturer || got.AircraftType != current.AircraftType ||
				*got.FirstFlight != *current.FirstFlight ||
				*got.Performance.CruiseSpeed != *current.Performance.CruiseSpeed ||
				*got.Performance.FuelConsumption != *current.Performance.FuelConsumption {
				return false
			}
			if !setName && got.Name != current.Name {
				return false
			}
			if !setWeight && *got.Performance.Weight != *current.Performance.Weight {
				return false
			}
			if !setFuel && *got.Performance.Fuel != *current.Performance.Fuel {
				return false
			}
			_, nameWritten := m.AircraftFields["name"]
			_, weightWritten := m.PerformanceFields["weight"]
			_, fuelWritten := m.PerformanceFields["fuel"]
			return nameWritten == setName && weightWritten == setWeight && fuelWritten == setFuel
		},
		gen.Bool(),
		gen.Identifier(),
		gen.Bool(),
		gen.Float64Range(0, 50000),
		gen.Bool(),
		gen.Float64Range(0, 20000),
	))

	properties.TestingRun(t)
}
