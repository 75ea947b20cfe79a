package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything read from the environment at startup.
type Config struct {
	AppEnv  string
	AppPort string

	DBDriver      string // postgres, sqlite or mongo
	DatabaseDSN   string
	MongoURI      string
	MongoDBName   string
	DBTimeout     time.Duration
	TokenLifetime time.Duration

	JWTSecret   string
	FrontendURL string
	AMQPURL     string

	// ConsumeEvents starts the in-process consumer that logs and acks events.
	// Leave it off when another service reads the events queue.
	ConsumeEvents bool

	RateLimitMax    int
	RateLimitWindow time.Duration

	LogLevel  string
	LogFormat string
}

const devJWTSecret = "agritrack-dev-secret-change-me"

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":3001")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "agritrack.db")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DB_NAME", "agritrack")
	v.SetDefault("DB_TIMEOUT", "5s")
	v.SetDefault("TOKEN_LIFETIME", "168h")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_CONSUME_EVENTS", false)
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads a .env file when one exists and then the process environment.
func Load() (*Config, error) {
	// A missing .env is the normal case in containers.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:          strings.ToLower(v.GetString("APP_ENV")),
		AppPort:         v.GetString("APP_PORT"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		MongoURI:        v.GetString("MONGODB_URI"),
		MongoDBName:     v.GetString("MONGODB_DB_NAME"),
		DBTimeout:       v.GetDuration("DB_TIMEOUT"),
		TokenLifetime:   v.GetDuration("TOKEN_LIFETIME"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		FrontendURL:     v.GetString("FRONTEND_URL"),
		AMQPURL:         v.GetString("AMQP_URL"),
		ConsumeEvents:   v.GetBool("AMQP_CONSUME_EVENTS"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
	}

	if !strings.HasPrefix(cfg.AppPort, ":") && !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite", "mongo":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "development" && cfg.AppEnv != "test" {
			return nil, errors.New("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = devJWTSecret
	}

	if cfg.DBTimeout <= 0 {
		return nil, fmt.Errorf("DB_TIMEOUT must be positive, got %s", cfg.DBTimeout)
	}
	if cfg.TokenLifetime <= 0 {
		return nil, fmt.Errorf("TOKEN_LIFETIME must be positive, got %s", cfg.TokenLifetime)
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, errors.New("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	return cfg, nil
}
