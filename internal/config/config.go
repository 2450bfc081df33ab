package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env  string
	Port int

	// StoreBackend selects the durable slot implementation: "file" or
	// "sqlite".
	StoreBackend string
	StorePath    string

	// AdminSecret is the demo gate secret. Not a credential system.
	AdminSecret string
	// SessionSecret signs the gate's session tokens. Left empty, main
	// generates a per-process one, which is all a single-session demo
	// gate needs.
	SessionSecret string
	SessionTTL    time.Duration

	NotificationTTL time.Duration

	AllowedOrigins []string
	OTLPEndpoint   string
	TracingEnabled bool
}

// fileConfig is the optional YAML overlay. Env vars still win over the file.
type fileConfig struct {
	Env             string   `yaml:"env"`
	Port            int      `yaml:"port"`
	StoreBackend    string   `yaml:"storeBackend"`
	StorePath       string   `yaml:"storePath"`
	AdminSecret     string   `yaml:"adminSecret"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
	OTLPEndpoint    string   `yaml:"otlpEndpoint"`
	TracingEnabled  *bool    `yaml:"tracingEnabled"`
	SessionTTL      string   `yaml:"sessionTTL"`
	NotificationTTL string   `yaml:"notificationTTL"`
}

// Load resolves configuration as defaults <- config file <- environment.
// A .env file is picked up when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:             "dev",
		Port:            8080,
		StoreBackend:    "file",
		StorePath:       "data/bookingEvents.json",
		AdminSecret:     "admin123", // demo default from the original build
		SessionTTL:      12 * time.Hour,
		NotificationTTL: 4 * time.Second,
		AllowedOrigins:  []string{"http://localhost:5173"},
		OTLPEndpoint:    "localhost:4317",
		TracingEnabled:  false,
	}

	applyFile(&cfg, getEnv("CONFIG_FILE", "config.yaml"))

	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.Port = getEnvInt("PORT", cfg.Port)
	cfg.StoreBackend = getEnv("STORE_BACKEND", cfg.StoreBackend)
	cfg.StorePath = getEnv("STORE_PATH", defaultStorePath(cfg.StoreBackend, cfg.StorePath))
	cfg.AdminSecret = getEnv("ADMIN_SECRET", cfg.AdminSecret)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.NotificationTTL = getEnvDuration("NOTIFICATION_TTL", cfg.NotificationTTL)
	cfg.OTLPEndpoint = getEnv("OTLP_ENDPOINT", cfg.OTLPEndpoint)
	cfg.TracingEnabled = getEnvBool("TRACING_ENABLED", cfg.TracingEnabled)

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	}

	return cfg
}

func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		// the file is optional
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Printf("config file %s ignored: %v", path, err)
		return
	}

	if fc.Env != "" {
		cfg.Env = fc.Env
	}
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.StoreBackend != "" {
		cfg.StoreBackend = fc.StoreBackend
	}
	if fc.StorePath != "" {
		cfg.StorePath = fc.StorePath
	}
	if fc.AdminSecret != "" {
		cfg.AdminSecret = fc.AdminSecret
	}
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = fc.OTLPEndpoint
	}
	if fc.TracingEnabled != nil {
		cfg.TracingEnabled = *fc.TracingEnabled
	}
	if d, err := time.ParseDuration(fc.SessionTTL); err == nil && fc.SessionTTL != "" {
		cfg.SessionTTL = d
	}
	if d, err := time.ParseDuration(fc.NotificationTTL); err == nil && fc.NotificationTTL != "" {
		cfg.NotificationTTL = d
	}
}

// defaultStorePath keeps the sqlite backend from writing its database into
// the JSON default.
func defaultStorePath(backend, current string) string {
	if backend == "sqlite" && current == "data/bookingEvents.json" {
		return "data/bookingEvents.db"
	}
	return current
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("env %s: %v", key, err)
			return fallback
		}
		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("env %s: %v", key, err)
			return fallback
		}
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("env %s: %v", key, err)
			return fallback
		}
		return d
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
