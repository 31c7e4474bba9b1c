package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Remote platform
	PlatformBaseURL string
	TrackPrefix     string
	TrainingMarker  string

	// Snapshot store
	SnapshotBackend string
	SQLiteDBPath    string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Workers
	RefreshInterval time.Duration
	TokenMargin     time.Duration

	// Dashboard cache
	CacheTTL     time.Duration
	CacheEntries int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		PlatformBaseURL: getEnv("PLATFORM_BASE_URL", "https://01.kood.tech"),
		TrackPrefix:     getEnv("TRACK_PATH_PREFIX", "/johvi/div-01/"),
		TrainingMarker:  getEnv("TRAINING_PATH_MARKER", "piscine"),

		SnapshotBackend: getEnv("SNAPSHOT_BACKEND", "memory"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/profilo.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "profilo"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_snapshots"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Metrics"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 30*time.Minute),
		TokenMargin:     getEnvDuration("TOKEN_MARGIN", 5*time.Minute),

		CacheTTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
		CacheEntries: getEnvInt("CACHE_ENTRIES", 100),
	}
}

// Validate checks the configuration and returns a combined error listing
// every problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if u, err := url.Parse(c.PlatformBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid platform base URL '%s'", c.PlatformBaseURL))
	}

	if c.TrackPrefix == "" {
		problems = append(problems, "track path prefix cannot be empty")
	}

	switch c.SnapshotBackend {
	case "memory", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("invalid snapshot backend '%s': must be one of [memory sqlite]", c.SnapshotBackend))
	}
	if c.SnapshotBackend == "sqlite" && c.SQLiteDBPath == "" {
		problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RefreshInterval < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid refresh interval %v: must be at least 1 minute", c.RefreshInterval))
	}
	if c.CacheEntries < 1 {
		problems = append(problems, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheEntries))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
