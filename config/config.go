package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Profile store backends selectable through PROFILE_BACKEND.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	JWTSecretKey   string        `env:"JWT_SECRET_KEY"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	ProfileBackend string        `env:"PROFILE_BACKEND" envDefault:"sqlite"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"uplift.db"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	ModelPath      string        `env:"MODEL_PATH"`
	ModelEndpoint  string        `env:"MODEL_ENDPOINT"`
	ModelTimeout   time.Duration `env:"MODEL_TIMEOUT" envDefault:"5s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`
	SeedEnabled    bool          `env:"SEED_ENABLED" envDefault:"false"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads an optional .env file and parses the environment into a Config.
// A missing .env file is reported through warn and is not an error.
func Load(warn func(string, ...any)) (Config, error) {
	if err := godotenv.Load(); err != nil && warn != nil {
		if errors.Is(err, os.ErrNotExist) {
			warn("Warning: .env file not found: %v", err)
		} else {
			warn("Warning: .env file not loaded: %v", err)
		}
	}
	return Parse()
}

// Parse parses the current environment into a Config and validates it.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that depend on each other.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("required environment variable JWT_SECRET_KEY is not set")
	}
	switch c.ProfileBackend {
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite profile backend")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres profile backend")
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis profile backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown PROFILE_BACKEND %q", c.ProfileBackend)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
