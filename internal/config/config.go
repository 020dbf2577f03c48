package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Projection engine
	ToleranceRatio float64

	// Digest worker
	DigestInterval time.Duration

	// Read cache
	CacheTTL     time.Duration
	CacheMaxSize int
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8082"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/nestegg.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "nestegg"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "goal_status"),

		ToleranceRatio: getEnvFloat("STATUS_TOLERANCE_RATIO", 0.10),

		DigestInterval: getEnvDuration("DIGEST_INTERVAL", time.Hour),

		CacheTTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
		CacheMaxSize: getEnvInt("CACHE_MAX_SIZE", 200),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate SQLite path and make sure its directory exists
	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate tolerance ratio
	if c.ToleranceRatio < 0 || c.ToleranceRatio > 1 {
		errors = append(errors, fmt.Sprintf("invalid status tolerance ratio %v: must be between 0 and 1", c.ToleranceRatio))
	}

	// Validate digest worker configuration
	if c.DigestInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid digest interval %v: must be at least 1 minute", c.DigestInterval))
	} else if c.DigestInterval > 7*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid digest interval %v: must be at most 7 days", c.DigestInterval))
	}

	// Validate cache configuration
	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}
	if c.CacheMaxSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache max size %d: must be at least 1", c.CacheMaxSize))
	} else if c.CacheMaxSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid cache max size %d: must be at most 10000", c.CacheMaxSize))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
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

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
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
