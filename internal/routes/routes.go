package routes

import (
	"io"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"aircraft_manager/internal/controllers"
	"aircraft_manager/internal/middleware"
)

// Dependencies are the handlers and settings the router is built from.
// Events and Auth are optional; nil leaves their routes unmounted.
type Dependencies struct {
	Aircraft    *controllers.AircraftController
	Performance *controllers.PerformanceController
	Health      *controllers.HealthController
	Events      *controllers.EventsController
	Auth        *controllers.AuthController

	// AuthSecret, when set, protects the mutating aircraft routes.
	AuthSecret []byte
	LogWriter  io.Writer
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	logWriter := deps.LogWriter
	if logWriter == nil {
		logWriter = gin.DefaultWriter
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(ginlog.SetLogger(
		ginlog.WithWriter(logWriter),
		ginlog.WithSkipPath([]string{"/health"}),
	))

	r.GET("/health", deps.Health.Check)
	AircraftRoutes(r, deps)
	if deps.Events != nil {
		WebSocketRoutes(r, deps.Events)
	}
	if deps.Auth != nil {
		AuthRoutes(r, deps.Auth)
	}

	return r
}
