package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseAPIUrl != "https://api.openweathermap.org/data/2.5/weather" {
		t.Errorf("unexpected base url %q", cfg.BaseAPIUrl)
	}
	if cfg.Port != "8086" {
		t.Errorf("expected port 8086, got %q", cfg.Port)
	}
	if cfg.SplashDuration != 2*time.Second {
		t.Errorf("expected 2s splash, got %v", cfg.SplashDuration)
	}
	if cfg.APIKey != "abc" {
		t.Errorf("expected api key abc, got %q", cfg.APIKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BASE_API_URL", "http://localhost:9999/weather")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("SPLASH_DURATION", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseAPIUrl != "http://localhost:9999/weather" || cfg.DBPath != "/tmp/x.db" || cfg.SplashDuration != 0 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SPLASH_DURATION", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9191\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	LoadDotEnv(path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9191" {
		t.Fatalf("expected port from .env, got %q", cfg.Port)
	}
}
