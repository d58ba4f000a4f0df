package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func defaultTestConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("failed to unmarshal defaults: %v", err)
	}
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultTestConfig(t)

	if cfg.AI.Provider != "gemini" {
		t.Errorf("ai provider = %q, want gemini", cfg.AI.Provider)
	}
	if len(cfg.AI.Models) == 0 {
		t.Fatal("expected a default model fallback list")
	}
	if cfg.AI.Models[0] != "gemini-2.0-flash" {
		t.Errorf("primary model = %q, want gemini-2.0-flash", cfg.AI.Models[0])
	}
	if cfg.Auth.SessionTTL != 8*time.Hour {
		t.Errorf("session TTL = %v, want 8h", cfg.Auth.SessionTTL)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("server port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.App.DefaultFormat != "json" {
		t.Errorf("default format = %q, want json", cfg.App.DefaultFormat)
	}
	if !cfg.AI.CircuitBreaker.Enabled {
		t.Error("circuit breaker should be enabled by default")
	}
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		cfg := defaultTestConfig(t)
		cfg.AI.APIKey = "test-key"
		return cfg
	}

	t.Run("valid config", func(t *testing.T) {
		if err := valid(t).Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := defaultTestConfig(t)
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing API key")
		}
	})

	t.Run("empty model list", func(t *testing.T) {
		cfg := valid(t)
		cfg.AI.Models = nil
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty model list")
		}
	})

	t.Run("zero session TTL", func(t *testing.T) {
		cfg := valid(t)
		cfg.Auth.SessionTTL = 0
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for zero session TTL")
		}
	})

	t.Run("unsupported default format", func(t *testing.T) {
		cfg := valid(t)
		cfg.App.DefaultFormat = "xml"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for unsupported format")
		}
	})

	t.Run("tls enabled without files", func(t *testing.T) {
		cfg := valid(t)
		cfg.Server.TLS.Enabled = true
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for TLS without cert files")
		}
	})
}
