package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/yigit/edureach/internal/pkg/helpers"
	"gopkg.in/yaml.v3"
)

// Session storage drivers
const (
	SessionDriverMemory   = "memory"
	SessionDriverRedis    = "redis"
	SessionDriverPostgres = "postgres"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	// Backend is the external EduReach REST API the gateway talks to.
	Backend struct {
		BaseURL string `yaml:"base_url" env:"EDUREACH_BACKEND_URL"`
		Timeout string `yaml:"timeout" env:"BACKEND_TIMEOUT"`
		// AssetURL prefixes image paths; defaults to the origin of BaseURL.
		AssetURL string `yaml:"asset_url" env:"EDUREACH_ASSET_URL"`
	} `yaml:"backend"`

	Session struct {
		Driver       string `yaml:"driver" env:"SESSION_DRIVER"`
		CookieName   string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE"`
		CookieMaxAge int    `yaml:"cookie_max_age" env:"SESSION_COOKIE_MAX_AGE"`
	} `yaml:"session"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
		Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`

	// DevBackend configures the in-memory stand-in for the backend API.
	DevBackend struct {
		Port        string `yaml:"port" env:"DEVBACKEND_PORT"`
		JWTSecret   string `yaml:"jwt_secret" env:"DEVBACKEND_JWT_SECRET"`
		TokenTTL    string `yaml:"token_ttl" env:"DEVBACKEND_TOKEN_TTL"`
		StoragePath string `yaml:"storage_path" env:"DEVBACKEND_STORAGE_PATH"`
		SeedDemo    bool   `yaml:"seed_demo" env:"DEVBACKEND_SEED_DEMO"`
	} `yaml:"devbackend"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from .env files, a YAML file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	loadDotEnvs()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnvs loads .env files without overriding variables that are already set.
// .env.<EDUREACH_ENV>.local wins over .env.local, which wins over .env.<EDUREACH_ENV> and .env.
func loadDotEnvs() {
	env := os.Getenv("EDUREACH_ENV")
	if env == "" {
		env = "dev"
	}

	_ = godotenv.Load(".env." + env + ".local")
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load(".env")
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"

	config.Backend.BaseURL = "http://localhost:8080/api/"
	config.Backend.Timeout = "15s"

	config.Session.Driver = SessionDriverMemory
	config.Session.CookieName = "edureach_sid"
	config.Session.CookieMaxAge = 60 * 60 * 24 * 30

	config.Redis.Addr = "localhost:6379"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "edureach"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.RateLimit.RequestsPerSecond = 2
	config.RateLimit.Burst = 5

	config.DevBackend.Port = "8080"
	config.DevBackend.TokenTTL = "24h"
	config.DevBackend.StoragePath = "uploads"
	config.DevBackend.SeedDemo = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}

	if u, err := url.Parse(config.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend base URL %q", config.Backend.BaseURL)
	}

	if _, err := time.ParseDuration(config.Backend.Timeout); err != nil {
		return fmt.Errorf("invalid backend timeout format: %w", err)
	}

	switch config.Session.Driver {
	case SessionDriverMemory, SessionDriverRedis, SessionDriverPostgres:
	default:
		return fmt.Errorf("unknown session driver %q", config.Session.Driver)
	}

	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if config.Session.Driver == SessionDriverPostgres {
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection lifetime format: %w", err)
		}
	}

	if config.RateLimit.RequestsPerSecond <= 0 || config.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	if _, err := time.ParseDuration(config.DevBackend.TokenTTL); err != nil {
		return fmt.Errorf("invalid dev backend token ttl format: %w", err)
	}

	return nil
}

// BackendTimeout returns the parsed outbound request timeout.
func (c *Config) BackendTimeout() time.Duration {
	return helpers.ParseDuration(c.Backend.Timeout, 15*time.Second)
}

// DevBackendTokenTTL returns the parsed lifetime of dev backend tokens.
func (c *Config) DevBackendTokenTTL() time.Duration {
	return helpers.ParseDuration(c.DevBackend.TokenTTL, 24*time.Hour)
}

// AssetBaseURL returns the origin image paths are resolved against.
func (c *Config) AssetBaseURL() string {
	if c.Backend.AssetURL != "" {
		return c.Backend.AssetURL
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
