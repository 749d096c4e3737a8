package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/srgjo27/carpool_booking/internal/platform/database"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	AppAddr   string
	GinMode   string
	LogLevel  string
	LogFormat string
	Store     string
	JWTSecret string

	// DriverProfilesFile seeds driver profiles into the memory store.
	DriverProfilesFile string

	Database database.Config

	RedisEnabled  bool
	RedisAddr     string
	RedisDB       int
	RideCacheTTL  time.Duration
	EventsChannel string
}

// Load reads an optional .env file and then the environment. Variables that
// are already set are never overridden by the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}

	cfg := Config{
		AppAddr:   getEnv("APP_ADDR", ":8080"),
		GinMode:   getEnv("GIN_MODE", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		Store:     strings.ToLower(getEnv("STORE", StorePostgres)),
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),

		DriverProfilesFile: getEnv("DRIVER_PROFILES", ""),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "carpool"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:     fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379")),
		EventsChannel: getEnv("EVENTS_CHANNEL", "booking.events"),
	}

	var err error
	if cfg.RedisEnabled, err = strconv.ParseBool(getEnv("REDIS_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.RideCacheTTL, err = time.ParseDuration(getEnv("RIDE_CACHE_TTL", "30s")); err != nil {
		return Config{}, fmt.Errorf("invalid RIDE_CACHE_TTL: %w", err)
	}

	switch cfg.Store {
	case StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORE %q: want %s or %s", cfg.Store, StorePostgres, StoreMemory)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
