package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
	Database                  DatabaseConfig
	Location                  *time.Location
	RequestTimeout            time.Duration
	AuthRateLimit             RateLimitConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
	DSN      string
}

// RateLimitConfig is a token bucket per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig, err := loadDatabase()
	if err != nil {
		return nil, err
	}

	jwtExpMinutes, err := getEnvInt("JWT_EXPIRATION_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	jwtRefreshExpHours, err := getEnvInt("JWT_REFRESH_EXPIRATION_HOURS", 168) // 7 days
	if err != nil {
		return nil, err
	}
	timeoutSeconds, err := getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("AUTH_RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}
	rps, err := strconv.ParseFloat(getEnv("AUTH_RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT_RPS: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg := &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:4200"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", ""),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", ""),
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		Database:                  dbConfig,
		Location:                  loc,
		RequestTimeout:            time.Duration(timeoutSeconds) * time.Second,
		AuthRateLimit:             RateLimitConfig{RPS: rps, Burst: burst},
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "default_jwt_secret"
	}
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = cfg.JWTSecret + "_refresh"
	}

	return cfg, nil
}

func loadDatabase() (DatabaseConfig, error) {
	db := DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", DriverMySQL),
		Host:     getEnv("DB_HOST", "localhost"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "office_hours"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	switch db.Driver {
	case DriverMySQL:
		db.Port = getEnv("DB_PORT", "3306")
		db.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			db.Username, db.Password, db.Host, db.Port, db.Name)
	case DriverPostgres:
		db.Port = getEnv("DB_PORT", "5432")
		db.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			db.Host, db.Port, db.Username, db.Password, db.Name, db.SSLMode)
	case DriverMemory:
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER %q: want mysql, postgres or memory", db.Driver)
	}
	return db, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
