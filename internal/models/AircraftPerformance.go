// internal/models/aircraft_performance.go
package models

import "encoding/json"

// FuelMassRatio converts a fuel quantity into the mass it adds at take-off.
const FuelMassRatio = 0.7

// AircraftPerformance holds the technical data of one aircraft.
// AircraftID is unique, which keeps the relationship 1:1.
type AircraftPerformance struct {
	ID              uint     `gorm:"column:aircraft_data_id;primaryKey;autoIncrement" json:"aircraft_data_id"`
	FuelConsumption *float64 `json:"fuel_consumption" binding:"omitempty,gte=0"`
	Ceiling         *float64 `json:"ceiling" binding:"omitempty,gte=0"`
	Weight          *float64 `json:"weight" binding:"omitempty,gte=0"`
	Fuel            *float64 `json:"fuel" binding:"omitempty,gte=0"`
	MaxSpeed        *float64 `json:"max_speed" binding:"omitempty,gte=0"`
	CruiseSpeed     *float64 `json:"cruise_speed" binding:"omitempty,gte=0"`
	AircraftID      uint     `gorm:"uniqueIndex;not null" json:"-"`
}

func (AircraftPerformance) TableName() string {
	return "aircrafts_data"
}

// TakeOffWeight is weight plus the mass of the loaded fuel. Without fuel it equals
// weight; without weight it is unknown.
func (p AircraftPerformance) TakeOffWeight() *float64 {
	if p.Weight == nil {
		return nil
	}
	tow := *p.Weight
	if p.Fuel != nil {
		tow += *p.Fuel * FuelMassRatio
	}
	return &tow
}

// MarshalJSON adds the derived take_off_weight to the stored fields.
func (p AircraftPerformance) MarshalJSON() ([]byte, error) {
	type alias AircraftPerformance
	return json.Marshal(struct {
		alias
		TakeOffWeight *float64 `json:"take_off_weight"`
	}{
		alias:         alias(p),
		TakeOffWeight: p.TakeOffWeight(),
	})
}
