package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/vytor/sense/internal/logger"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr     string
	DBDriver string
	DBPath   string
	LogLevel string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	PuzzleCacheTTL time.Duration

	StrongMatchThreshold float64
	WeakMatchThreshold   float64

	ImportWorkerCount int
	ImportQueueSize   int
	PuzzleSeedPath    string
	PuzzleFeedURL     string
	PuzzleFeedTimeout time.Duration

	ShareURL string
	DevTools bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBDriver:             envOr("DB_DRIVER", DriverSQLite),
		DBPath:               envOr("DB_PATH", "file:sense.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              envIntOr("REDIS_DB", 0),
		PuzzleCacheTTL:       envDurationOr("PUZZLE_CACHE_TTL", time.Hour),
		StrongMatchThreshold: envFloatOr("STRONG_MATCH_THRESHOLD", 0.82),
		WeakMatchThreshold:   envFloatOr("WEAK_MATCH_THRESHOLD", 0.68),
		ImportWorkerCount:    envIntOr("IMPORT_WORKER_COUNT", 1),
		ImportQueueSize:      envIntOr("IMPORT_QUEUE_SIZE", 16),
		PuzzleSeedPath:       os.Getenv("PUZZLE_SEED_PATH"),
		PuzzleFeedURL:        os.Getenv("PUZZLE_FEED_URL"),
		PuzzleFeedTimeout:    envDurationOr("PUZZLE_FEED_TIMEOUT", 15*time.Second),
		ShareURL:             os.Getenv("SHARE_URL"),
		DevTools:             envBoolOr("DEV_TOOLS", false),
	}
}

// CacheEnabled reports whether a Redis address was configured.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Validate reports every configuration problem in a single error.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.DBDriver != DriverSQLite && c.DBDriver != DriverPostgres {
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver))
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.RedisDB < 0 {
		problems = append(problems, "REDIS_DB cannot be negative")
	}
	if c.PuzzleCacheTTL < 0 {
		problems = append(problems, "PUZZLE_CACHE_TTL cannot be negative")
	}
	if c.StrongMatchThreshold <= 0 || c.StrongMatchThreshold > 1 {
		problems = append(problems, fmt.Sprintf("STRONG_MATCH_THRESHOLD must be in (0, 1], got %v", c.StrongMatchThreshold))
	}
	if c.WeakMatchThreshold <= 0 || c.WeakMatchThreshold > 1 {
		problems = append(problems, fmt.Sprintf("WEAK_MATCH_THRESHOLD must be in (0, 1], got %v", c.WeakMatchThreshold))
	}
	if c.WeakMatchThreshold > c.StrongMatchThreshold {
		problems = append(problems, "WEAK_MATCH_THRESHOLD cannot exceed STRONG_MATCH_THRESHOLD")
	}
	if c.ImportWorkerCount < 1 {
		problems = append(problems, "IMPORT_WORKER_COUNT must be at least 1")
	}
	if c.ImportQueueSize < 1 {
		problems = append(problems, "IMPORT_QUEUE_SIZE must be at least 1")
	}
	if c.PuzzleFeedURL != "" && !strings.HasPrefix(c.PuzzleFeedURL, "http://") && !strings.HasPrefix(c.PuzzleFeedURL, "https://") {
		problems = append(problems, "PUZZLE_FEED_URL must be an http(s) URL")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid integer, using default")
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", v).Float64("default", def).Msg("invalid number, using default")
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", key).Str("value", v).Bool("default", def).Msg("invalid boolean, using default")
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", v).Dur("default", def).Msg("invalid duration, using default")
	}
	return def
}
