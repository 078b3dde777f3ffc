package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Fatalf("default api base = %q", cfg.APIBaseURL)
	}
	if !cfg.Dev() {
		t.Fatalf("default env should be development, got %q", cfg.Env)
	}
	if cfg.APIRequestTimeout() != 15*time.Second {
		t.Fatalf("default timeout = %v", cfg.APIRequestTimeout())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CRM_API_URL", "https://crm.example.com/api")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9999" || cfg.Dev() || cfg.APIBaseURL != "https://crm.example.com/api" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}
