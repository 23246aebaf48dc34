package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"beatledger/database"

	"github.com/google/uuid"
)

// Config holds all service configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Ingestion configuration
	CollectIntervalSeconds int // How often the collector polls transaction sources

	// Distribution configuration
	DistributionRunDay  int // Day of month (UTC) the previous month's distribution runs
	DistributionRunHour int // Hour (UTC) the distribution run starts (0-23)

	// Compensation administration
	CompensationAdminIDs []uuid.UUID // Actors allowed to change compensation settings

	// OpenTelemetry configuration
	OTelEnabled  bool
	OTelEndpoint string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		CollectIntervalSeconds: 300,

		// Distribute the closed month on the 1st at 06:00 UTC
		DistributionRunDay:  1,
		DistributionRunHour: 6,

		OTelEnabled:  os.Getenv("OTEL_ENABLED") == "true",
		OTelEndpoint: getEnvWithDefault("OTEL_ENDPOINT", "localhost:4317"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if interval := os.Getenv("COLLECT_INTERVAL_SECONDS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.CollectIntervalSeconds = parsed
		}
	}
	if day := os.Getenv("DISTRIBUTION_RUN_DAY"); day != "" {
		if parsed, err := strconv.Atoi(day); err == nil && parsed >= 1 && parsed <= 28 {
			config.DistributionRunDay = parsed
		}
	}
	if hour := os.Getenv("DISTRIBUTION_RUN_HOUR"); hour != "" {
		if parsed, err := strconv.Atoi(hour); err == nil && parsed >= 0 && parsed <= 23 {
			config.DistributionRunHour = parsed
		}
	}

	// Parse compensation admin actor IDs
	if adminIDs := os.Getenv("COMPENSATION_ADMIN_IDS"); adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := uuid.Parse(idStr)
			if err != nil {
				return nil, fmt.Errorf("invalid COMPENSATION_ADMIN_IDS entry %q: %w", idStr, err)
			}
			config.CompensationAdminIDs = append(config.CompensationAdminIDs, id)
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:            "test",
		CollectIntervalSeconds: 1,
		DistributionRunDay:     1,
		DistributionRunHour:    6,
	}
}
