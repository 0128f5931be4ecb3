package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Gateway  GatewayConfig
	Store    StoreConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// Mode selects which set of processor credentials is active.
type Mode string

const (
	ModeLive Mode = "live"
	ModeTest Mode = "test"
)

// Credentials identify this store to the JazzyPay API.
type Credentials struct {
	ClientID     string
	ClientSecret string
	BasePath     string
}

// GatewayConfig holds JazzyPay processor configuration. Live and test
// credentials are both loaded; Mode picks the active set explicitly so
// tests can exercise either branch.
type GatewayConfig struct {
	Mode    Mode
	Live    Credentials
	Test    Credentials
	Timeout time.Duration
}

// Active returns the credentials selected by Mode.
func (g GatewayConfig) Active() Credentials {
	if g.Mode == ModeTest {
		return g.Test
	}
	return g.Live
}

// StoreConfig holds storefront configuration used to build buyer-facing
// URLs (cart, return, cancel) and this service's callback URL.
type StoreConfig struct {
	SiteURL string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 35*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "jazzypay_checkout"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "jazzypay-checkout"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Gateway: GatewayConfig{
			Mode: loadMode(),
			Live: Credentials{
				ClientID:     getEnv("JAZZYPAY_CLIENT_ID", ""),
				ClientSecret: getEnv("JAZZYPAY_CLIENT_SECRET", ""),
				BasePath:     getEnv("JAZZYPAY_BASE_PATH", ""),
			},
			Test: Credentials{
				ClientID:     getEnv("JAZZYPAY_TEST_CLIENT_ID", ""),
				ClientSecret: getEnv("JAZZYPAY_TEST_CLIENT_SECRET", ""),
				BasePath:     getEnv("JAZZYPAY_TEST_BASE_PATH", ""),
			},
			Timeout: getDurationEnv("JAZZYPAY_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			SiteURL: getEnv("STORE_SITE_URL", "http://localhost:8080"),
		},
	}
}

func loadMode() Mode {
	if getBoolEnv("JAZZYPAY_TEST_MODE", true) {
		return ModeTest
	}
	return ModeLive
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
