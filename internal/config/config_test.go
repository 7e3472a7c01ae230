package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withEnvFile(t *testing.T, path string) {
	t.Helper()
	old := envFile
	envFile = path
	t.Cleanup(func() { envFile = old })
}

// unset clears key for the test and restores it afterwards.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	withEnvFile(t, filepath.Join(t.TempDir(), "missing.env"))
	for _, k := range []string{"SERVER_PORT", "DEFAULT_LANG", "STATS_BACKEND", "JOIN_POLICY", "MOCK_SEED", "POSTGRES_URL"} {
		unset(t, k)
	}

	cfg := Load()
	if cfg.ServerPort != ":8080" {
		t.Fatalf("expected default server port, got %q", cfg.ServerPort)
	}
	if cfg.DefaultLang != "it" || cfg.StatsBackend != StatsMemory || cfg.JoinPolicy != "reject" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MockSeed != 0 || cfg.PostgresURL != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	withEnvFile(t, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MOCK_SEED", "42")
	t.Setenv("STATS_BACKEND", "redis")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" || cfg.RedisPassword != "hunter2" {
		t.Fatalf("expected override redis")
	}
	if cfg.JWTSecret != "secret" {
		t.Fatalf("expected override secret")
	}
	if cfg.MockSeed != 42 || cfg.StatsBackend != StatsRedis {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("DEFAULT_LANG=en\nJOIN_POLICY=dedupe\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	withEnvFile(t, path)
	unset(t, "DEFAULT_LANG")
	t.Setenv("JOIN_POLICY", "allow")

	cfg := Load()
	if cfg.DefaultLang != "en" {
		t.Fatalf("expected lang from env file, got %q", cfg.DefaultLang)
	}
	if cfg.JoinPolicy != "allow" {
		t.Fatalf("expected process env to win, got %q", cfg.JoinPolicy)
	}
}
