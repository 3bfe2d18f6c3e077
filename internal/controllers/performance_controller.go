package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"aircraft_manager/internal/performance"
)

type PerformanceCalculator interface {
	Range(ctx context.Context, aircraftID uint, windSpeed, fuel float64) (performance.RangeResult, error)
	Endurance(ctx context.Context, aircraftID uint, fuel float64) (performance.EnduranceResult, error)
}

type PerformanceController struct {
	calc PerformanceCalculator
}

func NewPerformanceController(calc PerformanceCalculator) *PerformanceController {
	return &PerformanceController{calc: calc}
}

// GetRange answers GET /aircrafts/performance/range/:aircraft_id/:wind_speed/:fuel.
func (pc *PerformanceController) GetRange(c *gin.Context) {
	id, err := parseID(c, "aircraft_id")
	if err != nil {
		respondError(c, err)
		return
	}
	wind, err := parseFloat(c, "wind_speed")
	if err != nil {
		respondError(c, err)
		return
	}
	fuel, err := parseFloat(c, "fuel")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := pc.calc.Range(c.Request.Context(), id, wind, fuel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEndurance answers GET /aircrafts/performance/endurance/:aircraft_id/:fuel.
func (pc *PerformanceController) GetEndurance(c *gin.Context) {
	id, err := parseID(c, "aircraft_id")
	if err != nil {
		respondError(c, err)
		return
	}
	fuel, err := parseFloat(c, "fuel")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := pc.calc.Endurance(c.Request.Context(), id, fuel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
