package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"aircraft_manager/internal/config"
)

const DefaultHealthTimeout = 2 * time.Second

type HealthController struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewHealthController(db *gorm.DB, timeout time.Duration) *HealthController {
	if timeout <= 0 {
		timeout = DefaultHealthTimeout
	}
	return &HealthController{db: db, timeout: timeout}
}

// Check reports whether the database answers a trivial query.
func (hc *HealthController) Check(c *gin.Context) {
	if err := config.Ping(c.Request.Context(), hc.db, hc.timeout); err != nil {
		logrus.WithError(err).Error("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "UNHEALTHY", "database": "DOWN"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "HEALTHY", "database": "OK"})
}
