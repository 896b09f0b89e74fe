package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"PLAYHOUSE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PLAYHOUSE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFrom(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, map[string]string{"PLAYHOUSE_TEST_PORT": "8000"}); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 8000 {
		t.Fatalf("Port = %d, want 8000", cfg.Port)
	}
}
