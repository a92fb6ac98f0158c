package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("got %q", cfg.APIPort)
	}
	if cfg.MaxBatchSize != 50 || cfg.AsyncThreshold != 10 {
		t.Fatalf("got batch %d threshold %d", cfg.MaxBatchSize, cfg.AsyncThreshold)
	}
	if cfg.ConfidenceThreshold != 0.65 || cfg.EarlyExitConfidence != 0.95 {
		t.Fatalf("got %v/%v", cfg.ConfidenceThreshold, cfg.EarlyExitConfidence)
	}
	if len(cfg.AllowedExtensions) != 9 {
		t.Fatalf("got %v", cfg.AllowedExtensions)
	}
	if len(cfg.AllowedAPIKeys) != 0 {
		t.Fatalf("auth should be disabled by default, got %v", cfg.AllowedAPIKeys)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_BATCH_SIZE", "20")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.8")
	t.Setenv("ALLOWED_EXTENSIONS", "pdf, txt")
	t.Setenv("ALLOWED_API_KEYS", "key-1,key-2")

	cfg := Load()
	if cfg.MaxBatchSize != 20 {
		t.Fatalf("got %d", cfg.MaxBatchSize)
	}
	if cfg.ConfidenceThreshold != 0.8 {
		t.Fatalf("got %v", cfg.ConfidenceThreshold)
	}
	if len(cfg.AllowedExtensions) != 2 || cfg.AllowedExtensions[1] != "txt" {
		t.Fatalf("got %v", cfg.AllowedExtensions)
	}
	if len(cfg.AllowedAPIKeys) != 2 {
		t.Fatalf("got %v", cfg.AllowedAPIKeys)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_BATCH_SIZE", "not-a-number")
	t.Setenv("CONFIDENCE_THRESHOLD", "high")

	cfg := Load()
	if cfg.MaxBatchSize != 50 || cfg.ConfidenceThreshold != 0.65 {
		t.Fatalf("malformed values must fall back to defaults, got %d/%v",
			cfg.MaxBatchSize, cfg.ConfidenceThreshold)
	}
}
