// internal/models/aircraft_patch.go
package models

// AircraftPatch is a sparse update: nil (absent or JSON null) fields are left untouched.
type AircraftPatch struct {
	Name         *string           `json:"name" binding:"omitempty,min=1"`
	Manufacturer *string           `json:"manufacturer" binding:"omitempty,min=1"`
	AircraftType *AircraftType     `json:"aircraft_type"`
	FirstFlight  *string           `json:"first_flight" binding:"omitempty,datetime=2006-01-02"`
	Performance  *PerformancePatch `json:"aircraft_data"`
}

// PerformancePatch is the sparse counterpart of AircraftPerformance.
type PerformancePatch struct {
	FuelConsumption *float64 `json:"fuel_consumption" binding:"omitempty,gte=0"`
	Ceiling         *float64 `json:"ceiling" binding:"omitempty,gte=0"`
	Weight          *float64 `json:"weight" binding:"omitempty,gte=0"`
	Fuel            *float64 `json:"fuel" binding:"omitempty,gte=0"`
	MaxSpeed        *float64 `json:"max_speed" binding:"omitempty,gte=0"`
	CruiseSpeed     *float64 `json:"cruise_speed" binding:"omitempty,gte=0"`
}
