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
)

// Catalog modes. Local keeps the whole collection in memory and derives every
// view from it, remote asks the catalog for each page.
const (
	CatalogLocal  = "local"
	CatalogRemote = "remote"
)

type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

type Config struct {
	ListenAddr      string
	DebugAddr       string
	CatalogURL      string
	CatalogPageSize int
	CatalogMode     string
	DatabaseURL     string
	DataDir         string
	RedisURL        string
	RedisPassword   string
	RabbitURL       string
	Country         string
	SessionSecret   string
	RateLimit       RateLimitConfig
	CacheTTL        time.Duration
	ReloadInterval  time.Duration
	LogLevel        string
	LogFormat       string
}

// Load reads the given env files, or .env when none are given, and then the
// environment. A missing env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load env file %s: %w", file, err)
		}
	}

	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DebugAddr:     getEnv("DEBUG_ADDR", ":8081"),
		CatalogURL:    getEnv("CATALOG_URL", ""),
		CatalogMode:   strings.ToLower(getEnv("CATALOG_MODE", CatalogLocal)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DataDir:       getEnv("DATA_DIR", "data"),
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RabbitURL:     getEnv("RABBIT_URL", ""),
		Country:       getEnv("COUNTRY", "se"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.CatalogPageSize, err = strconv.Atoi(getEnv("CATALOG_PAGE_SIZE", "20")); err != nil || cfg.CatalogPageSize < 1 {
		return nil, fmt.Errorf("invalid CATALOG_PAGE_SIZE value %q", os.Getenv("CATALOG_PAGE_SIZE"))
	}
	if cfg.CatalogMode != CatalogLocal && cfg.CatalogMode != CatalogRemote {
		return nil, fmt.Errorf("invalid CATALOG_MODE value %q", cfg.CatalogMode)
	}
	if cfg.RateLimit, err = parseRateLimit(getEnv("RATE_LIMIT", "20/s")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT value: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "60s")); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL value: %w", err)
	}
	if cfg.ReloadInterval, err = time.ParseDuration(getEnv("RELOAD_INTERVAL", "5m")); err != nil {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL value: %w", err)
	}
	return cfg, nil
}

// parseRateLimit reads "<requests>/<unit>", for example "20/s" or "5/min".
// "off" disables limiting.
func parseRateLimit(value string) (RateLimitConfig, error) {
	if strings.EqualFold(strings.TrimSpace(value), "off") {
		return RateLimitConfig{}, nil
	}
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	var interval time.Duration
	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", parts[1])
	}
	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
