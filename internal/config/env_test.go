package config

import (
	"os"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", `
# comment
export SPEECHALIGN_TEST_A=plain
SPEECHALIGN_TEST_B="quoted \"value\""
SPEECHALIGN_TEST_C='single'
not a pair
`)
	t.Setenv("SPEECHALIGN_TEST_A", "")
	t.Setenv("SPEECHALIGN_TEST_B", "")
	t.Setenv("SPEECHALIGN_TEST_C", "keep")

	LoadEnv(false, path, "", "/nonexistent/.env")

	if got := os.Getenv("SPEECHALIGN_TEST_A"); got != "" {
		t.Errorf("A = %q, want existing empty value kept", got)
	}
	if got := os.Getenv("SPEECHALIGN_TEST_C"); got != "keep" {
		t.Errorf("C = %q, want keep", got)
	}

	LoadEnv(true, path)
	if got := os.Getenv("SPEECHALIGN_TEST_A"); got != "plain" {
		t.Errorf("A = %q, want plain", got)
	}
	if got := os.Getenv("SPEECHALIGN_TEST_B"); got != `quoted "value"` {
		t.Errorf("B = %q", got)
	}
	if got := os.Getenv("SPEECHALIGN_TEST_C"); got != "single" {
		t.Errorf("C = %q, want single", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SPEECHALIGN_STRICT", "true")
	t.Setenv("SPEECHALIGN_PUNCT_MODE", "rules")
	t.Setenv("SPEECHALIGN_MAX_CONCURRENT", "8")
	t.Setenv("SPEECHALIGN_LOG_LEVEL", "warn")

	cfg := Default()
	cfg.ApplyEnv()

	if !cfg.Align.Strict || cfg.Punct.Mode != PunctRules || cfg.Worker.MaxConcurrent != 8 || cfg.Logging.Level != "warn" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
