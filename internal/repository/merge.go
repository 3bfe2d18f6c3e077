package repository

import (
	"strings"

	"aircraft_manager/internal/apperrors"
	"aircraft_manager/internal/models"
)

// Merge is the result of applying a sparse patch to an existing aggregate.
type Merge struct {
	// AircraftFields and PerformanceFields map column names to new values and hold
	// only the fields present in the patch.
	AircraftFields    map[string]interface{}
	PerformanceFields map[string]interface{}
	// Merged is the aggregate as it reads once both field sets are written.
	Merged models.Aircraft
}

// MergePatch computes what an update must write. Nil patch fields are skipped, so
// they never overwrite stored values. A patch with nothing to write is InvalidData.
func MergePatch(current models.Aircraft, patch models.AircraftPatch) (Merge, error) {
	m := Merge{
		AircraftFields:    map[string]interface{}{},
		PerformanceFields: map[string]interface{}{},
		Merged:            current,
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return Merge{}, apperrors.New(apperrors.InvalidData, "name must not be empty")
		}
		m.AircraftFields["name"] = *patch.Name
		m.Merged.Name = *patch.Name
	}
	if patch.Manufacturer != nil {
		if strings.TrimSpace(*patch.Manufacturer) == "" {
			return Merge{}, apperrors.New(apperrors.InvalidData, "manufacturer must not be empty")
		}
		m.AircraftFields["manufacturer"] = *patch.Manufacturer
		m.Merged.Manufacturer = *patch.Manufacturer
	}
	if patch.AircraftType != nil {
		if !patch.AircraftType.Valid() {
			return Merge{}, apperrors.Newf(apperrors.InvalidData, "unknown aircraft_type %d", int(*patch.AircraftType))
		}
		m.AircraftFields["aircraft_type"] = *patch.AircraftType
		m.Merged.AircraftType = *patch.AircraftType
	}
	if patch.FirstFlight != nil {
		m.AircraftFields["first_flight"] = *patch.FirstFlight
		m.Merged.FirstFlight = copyString(patch.FirstFlight)
	}

	if p := patch.Performance; p != nil {
		perf := &m.Merged.Performance
		mergeFloat(m.PerformanceFields, "fuel_consumption", p.FuelConsumption, &perf.FuelConsumption)
		mergeFloat(m.PerformanceFields, "ceiling", p.Ceiling, &perf.Ceiling)
		mergeFloat(m.PerformanceFields, "weight", p.Weight, &perf.Weight)
		mergeFloat(m.PerformanceFields, "fuel", p.Fuel, &perf.Fuel)
		mergeFloat(m.PerformanceFields, "max_speed", p.MaxSpeed, &perf.MaxSpeed)
		mergeFloat(m.PerformanceFields, "cruise_speed", p.CruiseSpeed, &perf.CruiseSpeed)
	}

	if len(m.AircraftFields) == 0 && len(m.PerformanceFields) == 0 {
		return Merge{}, apperrors.New(apperrors.InvalidData, "no fields to update")
	}
	return m, nil
}

func mergeFloat(fields map[string]interface{}, column string, value *float64, target **float64) {
	if value == nil {
		return
	}
	v := *value
	fields[column] = v
	*target = &v
}

func copyString(s *string) *string {
	v := *s
	return &v
}
