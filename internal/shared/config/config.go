// Package config resolves runtime configuration once at startup. Values come
// from the environment (with .env autoload for local runs) and are injected
// into services; business logic never branches on raw env vars.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	// ModeLocal wires the in-memory store and broker (no external services),
	// with the order worker embedded in the API process.
	ModeLocal = "local"
	// ModeProduction wires Postgres and RabbitMQ.
	ModeProduction = "production"
)

type Config struct {
	Mode string

	HTTPPort int

	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
	}

	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}

	Worker struct {
		BatchSize       int
		Prefetch        int
		ProcessingDelay time.Duration
	}
}

// Load collects configuration from the environment, applies defaults, and
// validates required fields.
func Load() (*Config, error) {
	var cfg Config

	cfg.Mode = strings.ToLower(getenv("MODE", ModeProduction))
	cfg.HTTPPort = atoienv("HTTP_PORT", 3000)

	cfg.Database.Host = getenv("DB_HOST", "localhost")
	cfg.Database.Port = atoienv("DB_PORT", 5432)
	cfg.Database.User = os.Getenv("DB_USER")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Name = os.Getenv("DB_NAME")

	cfg.RabbitMQ.Host = getenv("RABBITMQ_HOST", "localhost")
	cfg.RabbitMQ.Port = atoienv("RABBITMQ_PORT", 5672)
	cfg.RabbitMQ.User = os.Getenv("RABBITMQ_USER")
	cfg.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")

	cfg.Worker.BatchSize = atoienv("WORKER_BATCH_SIZE", 10)
	cfg.Worker.Prefetch = atoienv("WORKER_PREFETCH", 10)
	cfg.Worker.ProcessingDelay = time.Duration(atoienv("PROCESSING_DELAY_MS", 1000)) * time.Millisecond

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks required fields and basic ranges.
func (c *Config) validate() error {
	var problems []string

	if c.Mode != ModeLocal && c.Mode != ModeProduction {
		problems = append(problems, "MODE must be 'local' or 'production'")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		problems = append(problems, "HTTP_PORT must be in 1..65535")
	}
	if c.Worker.BatchSize <= 0 {
		problems = append(problems, "WORKER_BATCH_SIZE must be > 0")
	}
	if c.Worker.Prefetch <= 0 {
		problems = append(problems, "WORKER_PREFETCH must be > 0")
	}
	if c.Worker.ProcessingDelay < 0 {
		problems = append(problems, "PROCESSING_DELAY_MS must be >= 0")
	}

	// external endpoints only matter outside local mode
	if c.Mode == ModeProduction {
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			problems = append(problems, "DB_PORT must be in 1..65535")
		}
		if c.Database.User == "" {
			problems = append(problems, "DB_USER is required")
		}
		if c.Database.Password == "" {
			problems = append(problems, "DB_PASSWORD is required")
		}
		if c.Database.Name == "" {
			problems = append(problems, "DB_NAME is required")
		}
		if c.RabbitMQ.Port <= 0 || c.RabbitMQ.Port > 65535 {
			problems = append(problems, "RABBITMQ_PORT must be in 1..65535")
		}
		if c.RabbitMQ.User == "" {
			problems = append(problems, "RABBITMQ_USER is required")
		}
		if c.RabbitMQ.Password == "" {
			problems = append(problems, "RABBITMQ_PASSWORD is required")
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
