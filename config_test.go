package booksclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{BaseURL: "https://api.example.com"}
	cfg.ApplyDefaults()

	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.LegacyBaseURL != cfg.BaseURL {
		t.Errorf("legacy base should default to base URL, got %q", cfg.LegacyBaseURL)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{BaseURL: "https://api.example.com", Timeout: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := Config{Timeout: time.Second}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing base URL")
	} else if !IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}

	notURL := Config{BaseURL: "not a url", Timeout: time.Second}
	if err := notURL.Validate(); err == nil {
		t.Error("expected error for malformed base URL")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `base_url: https://api.example.com/v3/company/123
timeout: 5s
verbose: true
headers:
  x-tenant: acme
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "https://api.example.com/v3/company/123" {
		t.Errorf("unexpected base URL: %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Timeout)
	}
	if !cfg.Verbose {
		t.Error("expected verbose to be set")
	}
	if cfg.Headers["x-tenant"] != "acme" {
		t.Errorf("unexpected headers: %#v", cfg.Headers)
	}
	if cfg.LegacyBaseURL != cfg.BaseURL {
		t.Error("defaults should be applied on load")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("timeout: 5s\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error for missing base URL")
	}
}
