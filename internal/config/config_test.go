package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bookingslots/internal/config"
)

// Point CONFIG_FILE somewhere empty so a developer's local config.yaml
// cannot leak into the assertions.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg := config.Load()

	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != "file" {
		t.Errorf("StoreBackend = %q, want file", cfg.StoreBackend)
	}
	if cfg.StorePath != "data/bookingEvents.json" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.AdminSecret != "admin123" {
		t.Errorf("AdminSecret = %q", cfg.AdminSecret)
	}
	if cfg.NotificationTTL != 4*time.Second {
		t.Errorf("NotificationTTL = %v, want 4s", cfg.NotificationTTL)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want 12h", cfg.SessionTTL)
	}
	if cfg.TracingEnabled {
		t.Error("TracingEnabled = true, want false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("ADMIN_SECRET", "s3cret")
	t.Setenv("NOTIFICATION_TTL", "250ms")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := config.Load()

	if cfg.Env != "production" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.StoreBackend != "sqlite" {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	// the sqlite backend must not inherit the JSON default path
	if cfg.StorePath != "data/bookingEvents.db" {
		t.Errorf("StorePath = %q, want data/bookingEvents.db", cfg.StorePath)
	}
	if cfg.AdminSecret != "s3cret" {
		t.Errorf("AdminSecret = %q", cfg.AdminSecret)
	}
	if cfg.NotificationTTL != 250*time.Millisecond {
		t.Errorf("NotificationTTL = %v", cfg.NotificationTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadMalformedEnvFallsBack(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("NOTIFICATION_TTL", "soon")
	t.Setenv("TRACING_ENABLED", "maybe")

	cfg := config.Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Port)
	}
	if cfg.NotificationTTL != 4*time.Second {
		t.Errorf("NotificationTTL = %v, want default 4s", cfg.NotificationTTL)
	}
	if cfg.TracingEnabled {
		t.Error("TracingEnabled = true, want default false")
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "env: staging\nport: 7070\nstoreBackend: sqlite\nstorePath: /tmp/slots.db\nnotificationTTL: 2s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	// env still wins over the file
	t.Setenv("PORT", "7171")

	cfg := config.Load()

	if cfg.Env != "staging" {
		t.Errorf("Env = %q, want staging", cfg.Env)
	}
	if cfg.Port != 7171 {
		t.Errorf("Port = %d, want env override 7171", cfg.Port)
	}
	if cfg.StorePath != "/tmp/slots.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.NotificationTTL != 2*time.Second {
		t.Errorf("NotificationTTL = %v, want 2s", cfg.NotificationTTL)
	}
}
