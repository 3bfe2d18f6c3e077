// Package performance computes derived flight metrics from stored aircraft data.
package performance

import (
	"context"
	"fmt"
	"math"

	"aircraft_manager/internal/apperrors"
	"aircraft_manager/internal/models"
)

const secondsPerHour = 3600

// maxEnduranceSeconds is the first value FormatDuration cannot hold in an int64.
const maxEnduranceSeconds = float64(math.MaxInt64)

// Range is the distance flown on fuel at cruise speed corrected by wind_speed
// (negative for headwind): (cruise_speed + wind_speed) * fuel / fuel_consumption.
func Range(cruiseSpeed, windSpeed, fuel, fuelConsumption float64) (float64, error) {
	if err := checkInputs(fuel, fuelConsumption); err != nil {
		return 0, err
	}
	return finite((cruiseSpeed + windSpeed) * fuel / fuelConsumption)
}

// EnduranceSeconds is how long fuel lasts at fuelConsumption per hour.
func EnduranceSeconds(fuel, fuelConsumption float64) (float64, error) {
	if err := checkInputs(fuel, fuelConsumption); err != nil {
		return 0, err
	}
	seconds, err := finite(fuel / (fuelConsumption / secondsPerHour))
	if err != nil {
		return 0, err
	}
	if seconds >= maxEnduranceSeconds {
		return 0, apperrors.New(apperrors.InvalidData, "endurance is too large to report")
	}
	return seconds, nil
}

// FormatDuration renders seconds as zero-padded total hours and minutes ("HH:MM").
// Hours are not wrapped at 24, so 30 hours reads "30:00". Partial minutes are truncated.
func FormatDuration(seconds float64) string {
	minutes := int64(seconds) / 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func checkInputs(fuel, fuelConsumption float64) error {
	if fuelConsumption == 0 {
		return apperrors.New(apperrors.InvalidData, "fuel_consumption is zero, cannot divide by it")
	}
	if fuelConsumption < 0 {
		return apperrors.New(apperrors.InvalidData, "fuel_consumption must be positive")
	}
	if fuel < 0 {
		return apperrors.New(apperrors.InvalidData, "fuel must not be negative")
	}
	return nil
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.New(apperrors.InvalidData, "calculation produced a non-finite result")
	}
	return v, nil
}

// AircraftReader loads an aircraft with its performance data.
type AircraftReader interface {
	Get(ctx context.Context, id uint) (models.Aircraft, error)
}

type RangeResult struct {
	Name  string  `json:"name"`
	Range float64 `json:"range"`
}

type EnduranceResult struct {
	Name      string `json:"name"`
	Endurance string `json:"endurance"`
}

// Calculator answers range and endurance queries for stored aircraft.
type Calculator struct {
	store AircraftReader
}

func NewCalculator(store AircraftReader) *Calculator {
	return &Calculator{store: store}
}

// Range computes the range of aircraftID for the given wind speed and fuel.
func (c *Calculator) Range(ctx context.Context, aircraftID uint, windSpeed, fuel float64) (RangeResult, error) {
	aircraft, err := c.load(ctx, aircraftID)
	if err != nil {
		return RangeResult{}, err
	}
	perf := aircraft.Performance
	if perf.CruiseSpeed == nil || perf.FuelConsumption == nil {
		return RangeResult{}, apperrors.Newf(apperrors.InvalidData,
			"aircraft %d has no cruise_speed or fuel_consumption recorded", aircraftID)
	}

	r, err := Range(*perf.CruiseSpeed, windSpeed, fuel, *perf.FuelConsumption)
	if err != nil {
		return RangeResult{}, err
	}
	return RangeResult{Name: aircraft.Name, Range: r}, nil
}

// Endurance computes how long aircraftID can stay airborne on fuel.
func (c *Calculator) Endurance(ctx context.Context, aircraftID uint, fuel float64) (EnduranceResult, error) {
	aircraft, err := c.load(ctx, aircraftID)
	if err != nil {
		return EnduranceResult{}, err
	}
	if aircraft.Performance.FuelConsumption == nil {
		return EnduranceResult{}, apperrors.Newf(apperrors.InvalidData,
			"aircraft %d has no fuel_consumption recorded", aircraftID)
	}

	seconds, err := EnduranceSeconds(fuel, *aircraft.Performance.FuelConsumption)
	if err != nil {
		return EnduranceResult{}, err
	}
	return EnduranceResult{Name: aircraft.Name, Endurance: FormatDuration(seconds)}, nil
}

func (c *Calculator) load(ctx context.Context, id uint) (models.Aircraft, error) {
	aircraft, err := c.store.Get(ctx, id)
	if err != nil {
		return models.Aircraft{}, err
	}
	if aircraft.Performance.ID == 0 {
		return models.Aircraft{}, apperrors.Newf(apperrors.NotFound, "Performance data for aircraft %d not found.", id)
	}
	return aircraft, nil
}
