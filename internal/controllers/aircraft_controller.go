package controllers

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"aircraft_manager/internal/apperrors"
	"aircraft_manager/internal/events"
	"aircraft_manager/internal/middleware"
	"aircraft_manager/internal/models"
)

// AircraftStore is the access layer the aircraft handlers depend on.
type AircraftStore interface {
	List(ctx context.Context) ([]models.Aircraft, error)
	Create(ctx context.Context, aircraft models.Aircraft) (models.Aircraft, error)
	Update(ctx context.Context, id uint, patch models.AircraftPatch) (models.Aircraft, error)
	Delete(ctx context.Context, id uint) (string, error)
}

type AircraftController struct {
	store  AircraftStore
	events events.Publisher
}

// NewAircraftController wires the CRUD handlers. A nil publisher discards events.
func NewAircraftController(store AircraftStore, publisher events.Publisher) *AircraftController {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &AircraftController{store: store, events: publisher}
}

// ListAircraft returns every stored aircraft with its performance data.
func (ac *AircraftController) ListAircraft(c *gin.Context) {
	aircraft, err := ac.store.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, aircraft)
}

// CreateAircraft stores a new aircraft. Ids in the body are ignored.
func (ac *AircraftController) CreateAircraft(c *gin.Context) {
	var input models.Aircraft
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.Wrap(apperrors.InvalidData, err, "Invalid aircraft input: "+err.Error()))
		return
	}

	created, err := ac.store.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.publish(c, events.NewEvent(events.Created, created.ID, &created))
	c.JSON(http.StatusCreated, created)
}

// UpdateAircraft applies a partial update; only fields present in the body change.
func (ac *AircraftController) UpdateAircraft(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var patch models.AircraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperrors.Wrap(apperrors.InvalidData, err, "Invalid update: "+err.Error()))
		return
	}

	updated, err := ac.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.publish(c, events.NewEvent(events.Updated, updated.ID, &updated))
	c.JSON(http.StatusOK, updated)
}

// DeleteAircraft removes an aircraft and its performance data.
func (ac *AircraftController) DeleteAircraft(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := ac.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	ac.publish(c, events.NewEvent(events.Deleted, id, nil))
	c.Status(http.StatusNoContent)
}

// publish runs after the write is committed, so a failure is only logged.
func (ac *AircraftController) publish(c *gin.Context, e events.Event) {
	if err := ac.events.Publish(c.Request.Context(), e); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event_id":    e.ID,
			"event_type":  e.Type,
			"aircraft_id": e.AircraftID,
			"request_id":  c.GetString(middleware.RequestIDKey),
		}).Warn("Failed to publish aircraft event")
	}
}

// respondError writes {"error": msg} with the status mapped from err's kind.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	entry := logrus.WithError(err).WithFields(logrus.Fields{
		"status":     status,
		"path":       c.FullPath(),
		"request_id": c.GetString(middleware.RequestIDKey),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Info("Request rejected")
	}
	c.JSON(status, gin.H{"error": apperrors.Message(err)})
}

func parseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 || id > math.MaxUint32 {
		return 0, apperrors.Newf(apperrors.InvalidData, "%s must be a positive integer, got %q", name, raw)
	}
	return uint(id), nil
}

func parseFloat(c *gin.Context, name string) (float64, error) {
	raw := c.Param(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.Newf(apperrors.InvalidData, "%s must be a number, got %q", name, raw)
	}
	return v, nil
}
