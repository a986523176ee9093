package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environments
const ENV_PROD = "prod"
const ENV_DEV = "dev"

// HTTP server config
const DEFAULT_PORT = "8080"
const SERVER_SHUTDOWN_TIMEOUT = 5 * time.Second

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Session config
const SESSION_COOKIE_NAME = "wd_session"
const SESSION_TTL = 24 * time.Hour
const SESSION_SWEEP_INTERVAL = time.Minute

// Open-Meteo historical forecast API
const OPEN_METEO_ENDPOINT_BASE_V1 = "https://historical-forecast-api.open-meteo.com/v1"
const OPEN_METEO_TIMEOUT = 10 * time.Second
const OPEN_METEO_BREAKER_MAX_FAILURES = 5
const OPEN_METEO_BREAKER_OPEN_TIMEOUT = 30 * time.Second

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const DAILY_SERIES_RESPONSE_RESOURCE = "daily_series_response.json"

// AppConfig is the runtime configuration. Every field defaults to the constants above.
type AppConfig struct {
	Env  string
	Port string

	OpenMeteoBaseURL          string
	OpenMeteoTimeout          time.Duration
	OpenMeteoBreakerFailures  uint32
	OpenMeteoBreakerOpenAfter time.Duration
	// OpenMeteoFixture, when set outside prod, names a resource file the mock API replays.
	OpenMeteoFixture string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
}

// IsProd reports whether the real API and redis should be wired.
func (c *AppConfig) IsProd() bool {
	return c.Env == ENV_PROD
}

// Load reads configuration from the environment, after loading a .env file if present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Config] No .env file loaded: %v", err)
	}

	cfg := &AppConfig{
		Env:              getenvDefault("APP_ENV", ENV_DEV),
		Port:             getenvDefault("PORT", DEFAULT_PORT),
		OpenMeteoBaseURL: getenvDefault("OPEN_METEO_BASE_URL", OPEN_METEO_ENDPOINT_BASE_V1),
		OpenMeteoFixture: os.Getenv("OPEN_METEO_FIXTURE"),
		RedisAddress:     getenvDefault("REDIS_ADDR", REDIS_DB_ADDRESS),
		RedisPassword:    getenvDefault("REDIS_PASSWORD", REDIS_DB_PASSWORD),
	}

	var err error
	if cfg.OpenMeteoTimeout, err = getenvDuration("OPEN_METEO_TIMEOUT", OPEN_METEO_TIMEOUT); err != nil {
		return nil, err
	}
	if cfg.OpenMeteoBreakerOpenAfter, err = getenvDuration("BREAKER_OPEN_TIMEOUT", OPEN_METEO_BREAKER_OPEN_TIMEOUT); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getenvDuration("SESSION_TTL", SESSION_TTL); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getenvDuration("SESSION_SWEEP_INTERVAL", SESSION_SWEEP_INTERVAL); err != nil {
		return nil, err
	}

	failures, err := getenvInt("BREAKER_MAX_FAILURES", OPEN_METEO_BREAKER_MAX_FAILURES)
	if err != nil {
		return nil, err
	}
	if failures < 1 {
		return nil, fmt.Errorf("invalid BREAKER_MAX_FAILURES: must be at least 1, got %d", failures)
	}
	cfg.OpenMeteoBreakerFailures = uint32(failures)

	if cfg.RedisDB, err = getenvInt("REDIS_DB", REDIS_DB); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", key, v)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
