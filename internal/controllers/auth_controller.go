package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"aircraft_manager/internal/middleware"
)

// AuthController exchanges the operator credentials for a bearer token.
type AuthController struct {
	secret       []byte
	user         string
	passwordHash []byte
	ttl          time.Duration
}

func NewAuthController(secret []byte, user, passwordHash string, ttl time.Duration) *AuthController {
	if ttl <= 0 {
		ttl = middleware.DefaultTokenTTL
	}
	return &AuthController{secret: secret, user: user, passwordHash: []byte(passwordHash), ttl: ttl}
}

// HashPassword returns the bcrypt hash stored in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (ac *AuthController) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(body.Username), []byte(ac.user)) == 1
	if err := bcrypt.CompareHashAndPassword(ac.passwordHash, []byte(body.Password)); err != nil || !userOK {
		logrus.WithFields(logrus.Fields{
			"username":   body.Username,
			"request_id": c.GetString(middleware.RequestIDKey),
		}).Warn("Rejected login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(ac.secret, body.Username, ac.ttl)
	if err != nil {
		logrus.WithError(err).Error("Could not generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int64(ac.ttl.Seconds()),
	})
}
