package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres" // gorm postgres dialector over pgx
	DriverPQ       = "pq"       // gorm postgres dialector over lib/pq
	DriverSQLite   = "sqlite"   // gorm sqlite dialector over modernc.org/sqlite
)

const defaultSQLitePath = "file:aircraft_manager?mode=memory&cache=shared"

// Config holds everything the server needs at startup. It is built once by Load
// and passed explicitly to the components that need it.
type Config struct {
	Env     string
	Host    string
	Port    int
	GinMode string

	DBDriver    string
	DatabaseURL string

	LogFile   string
	LogLevel  logrus.Level
	LogStdout bool

	AuthSecret        string
	AdminUser         string
	AdminPasswordHash string

	NATSURL           string
	NATSSubjectPrefix string

	WeatherAPIURL string
	WeatherAPIKey string
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether ENV=prod.
func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

// Load reads the configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, relying on env vars")
	}

	env := strings.ToLower(getEnv("ENV", "dev"))
	switch env {
	case "dev", "test", "prod":
	default:
		return nil, fmt.Errorf("invalid ENV %q: expected dev, test or prod", env)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	defaultDriver := DriverSQLite
	defaultLevel := "debug"
	if env == "prod" {
		defaultDriver = DriverPostgres
		defaultLevel = "info"
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", defaultDriver))
	if driver != DriverPostgres && driver != DriverPQ && driver != DriverSQLite {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: expected postgres, pq or sqlite", driver)
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", defaultLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	logStdout, err := strconv.ParseBool(getEnv("LOG_STDOUT", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_STDOUT: %w", err)
	}

	cfg := &Config{
		Env:               env,
		Host:              getEnv("HOST", "0.0.0.0"),
		Port:              port,
		GinMode:           getEnv("GIN_MODE", ""),
		DBDriver:          driver,
		LogFile:           getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:          level,
		LogStdout:         logStdout,
		AuthSecret:        os.Getenv("AUTH_SECRET"),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		NATSURL:           os.Getenv("NATS_URL"),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "aircraft"),
		WeatherAPIURL:     os.Getenv("WEATHER_API_URL"),
		WeatherAPIKey:     os.Getenv("WEATHER_API_KEY"),
	}
	cfg.DatabaseURL = databaseURL(driver)

	return cfg, nil
}

// databaseURL returns DATABASE_URL when set, otherwise a DSN assembled for the driver.
func databaseURL(driver string) string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	if driver == DriverSQLite {
		return getEnv("DB_PATH", defaultSQLitePath)
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "password"),
		getEnv("DB_NAME", "aircraft"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
		getEnv("DB_TIMEZONE", "UTC"),
	)
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
