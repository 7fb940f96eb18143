package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/matchmaker/internal/config"
)

// envVars is every variable config.Load reads. Tests clear all of them before
// each case so a developer's shell environment can't leak into a result.
var envVars = []string{
	"DEV_ENV",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"SKILL_ORACLE_URL", "SKILL_ORACLE_API_KEY", "SKILL_ORACLE_SALT",
	"SESSION_TOKEN_KEY",
	"LOG_LEVEL",
	"GRPC_HEALTH_PORT", "HTTP_PORT",
	"WORKER_INTERVAL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		orig, had := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		if had {
			t.Cleanup(func() { os.Setenv(k, orig) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cases := []struct {
		name string
		get  func(config.Config) interface{}
		want interface{}
	}{
		{"RedisAddr", func(c config.Config) interface{} { return c.RedisAddr }, "localhost:6379"},
		{"RedisDB", func(c config.Config) interface{} { return c.RedisDB }, 0},
		{"SkillOracleBaseURL", func(c config.Config) interface{} { return c.SkillOracleBaseURL }, "http://localhost:8090"},
		{"LogLevel", func(c config.Config) interface{} { return c.LogLevel }, "info"},
		{"GRPCHealthPort", func(c config.Config) interface{} { return c.GRPCHealthPort }, 8081},
		{"HTTPPort", func(c config.Config) interface{} { return c.HTTPPort }, 8080},
		{"WorkerInterval", func(c config.Config) interface{} { return c.WorkerInterval }, 30 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)

			cfg, err := config.Load()
			require.NoError(t, err)
			require.Equal(t, tc.want, tc.get(cfg))
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WORKER_INTERVAL", "15s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, 15*time.Second, cfg.WorkerInterval)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MalformedIntFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_MalformedDurationFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKER_INTERVAL", "not-a-duration")

	_, err := config.Load()
	require.Error(t, err)
}
