// Package config loads the service's environment-driven configuration, the
// way replay-api's ioc.ContainerBuilder loads EnvironmentConfig (spec.md §6
// "Configuration (environment)").
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config bundles every environment-sourced value the core or its bootstrap
// needs. Of the four core-visible values spec.md §6 names, only WorkerInterval
// lives here; PlayerTTL, MatchTTL and MaxPlayers are fixed constants in
// internal/ingress, internal/worker and internal/queue. The rest are
// bootstrap-only (store coordinates, skill-oracle credentials, token key,
// log level, listen ports).
type Config struct {
	// RedisAddr is the store connection coordinate (spec.md §1 "shared store
	// ... is assumed"), read as a host:port from REDIS_ADDR.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SkillOracleBaseURL string
	SkillOracleAPIKey  string
	SkillOracleSalt    string

	SessionTokenKey []byte

	LogLevel string

	GRPCHealthPort int
	HTTPPort       int

	WorkerInterval time.Duration
}

// Load reads environment variables, optionally populated from a .env file
// when DEV_ENV=true (replay-api's WithEnvFile gate), applying the defaults
// spec.md §6 and §4 call out explicitly.
func Load() (Config, error) {
	if os.Getenv("DEV_ENV") == "true" {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("config: load .env: %w", err)
		}
	}

	cfg := Config{
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		SkillOracleBaseURL: getEnv("SKILL_ORACLE_URL", "http://localhost:8090"),
		SkillOracleAPIKey:  os.Getenv("SKILL_ORACLE_API_KEY"),
		SkillOracleSalt:    os.Getenv("SKILL_ORACLE_SALT"),
		SessionTokenKey:    []byte(os.Getenv("SESSION_TOKEN_KEY")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.RedisDB = redisDB

	grpcPort, err := getEnvInt("GRPC_HEALTH_PORT", 8081)
	if err != nil {
		return Config{}, err
	}
	cfg.GRPCHealthPort = grpcPort

	httpPort, err := getEnvInt("HTTP_PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTPPort = httpPort

	interval, err := getEnvDuration("WORKER_INTERVAL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.WorkerInterval = interval

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
