package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"aircraft_manager/internal/config"
	"aircraft_manager/internal/controllers"
	"aircraft_manager/internal/events"
	"aircraft_manager/internal/logger"
	"aircraft_manager/internal/middleware"
	"aircraft_manager/internal/performance"
	"aircraft_manager/internal/repository"
	"aircraft_manager/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	// Initialize structured logging to file
	logWriter := logger.Setup(cfg.LogFile, cfg.LogLevel, cfg.LogStdout)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Database connection failed")
	}
	if err := config.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Table creation failed")
	}

	hub := events.NewHub(0)
	publishers := events.Fanout{hub}

	var nats *events.NATSPublisher
	if cfg.NATSURL != "" {
		nats, err = events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to NATS")
		}
		publishers = append(publishers, nats)
		logrus.WithField("url", cfg.NATSURL).Info("Publishing aircraft events to NATS")
	}

	repo := repository.NewAircraftRepository(db)
	deps := routes.Dependencies{
		Aircraft:    controllers.NewAircraftController(repo, publishers),
		Performance: controllers.NewPerformanceController(performance.NewCalculator(repo)),
		Health:      controllers.NewHealthController(db, controllers.DefaultHealthTimeout),
		Events:      controllers.NewEventsController(hub),
		LogWriter:   logWriter,
	}
	if cfg.AuthSecret != "" {
		deps.AuthSecret = []byte(cfg.AuthSecret)
		if cfg.AdminPasswordHash != "" {
			deps.Auth = controllers.NewAuthController(deps.AuthSecret, cfg.AdminUser, cfg.AdminPasswordHash, middleware.DefaultTokenTTL)
		}
	} else {
		logrus.Warn("AUTH_SECRET not set, aircraft write routes are unauthenticated")
	}

	// Wrap with CORS
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.EnableCORS(routes.SetupRouter(deps)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{"addr": cfg.Addr(), "env": cfg.Env, "db_driver": cfg.DBDriver}).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logrus.WithField("signal", sig.String()).Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}

	hub.Close()
	if nats != nil {
		nats.Close()
	}
	if err := config.CloseDB(db); err != nil {
		logrus.WithError(err).Error("Failed to close database connection")
	}
	logrus.Info("Server stopped")
}
