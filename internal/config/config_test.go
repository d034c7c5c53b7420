package config

import (
	"testing"
	"time"
)

func TestReadServerEnvironment(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "127.0.0.1:9090")
	t.Setenv("API_BASE_URL", "http://gateway:8085")
	t.Setenv("TOKEN_SECRET", "test-key")
	t.Setenv("TIMEZONE", "America/Lima")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg := &Config{}
	ReadServerEnvironment(cfg)

	if cfg.RunAddress != "127.0.0.1:9090" {
		t.Errorf("unexpected RunAddress: got %s", cfg.RunAddress)
	}
	if cfg.APIBaseURL != "http://gateway:8085" {
		t.Errorf("unexpected APIBaseURL: got %s", cfg.APIBaseURL)
	}
	if cfg.TokenSecret != "test-key" {
		t.Errorf("unexpected TokenSecret: got %s", cfg.TokenSecret)
	}
	if cfg.Timezone != "America/Lima" {
		t.Errorf("unexpected Timezone: got %s", cfg.Timezone)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("unexpected RequestTimeout: got %s", cfg.RequestTimeout)
	}
}

func TestReadServerEnvironmentKeepsDefaults(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := &Config{RunAddress: "localhost:8080", RequestTimeout: 10 * time.Second}
	ReadServerEnvironment(cfg)

	if cfg.RunAddress != "localhost:8080" {
		t.Errorf("unexpected RunAddress: got %s", cfg.RunAddress)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("invalid timeout must be ignored, got %s", cfg.RequestTimeout)
	}
}
