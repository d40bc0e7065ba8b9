package config

import (
	"testing"
	"time"
)

// clearEnv removes every variable the loader reads so tests start clean.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT",
		"IDLE_TIMEOUT", "MAX_HEADER_BYTES", "GIN_MODE",
		"LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED", "API_BASE_PATH",
		"DB_PATH", "STORAGE_ROOT", "STORAGE_BASE_URL",
		"MAX_ATTACHMENTS", "MAX_UPLOAD_BYTES",
		"RATE_RPS", "RATE_BURST", "CORS_ALLOWED_ORIGINS",
		"ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_INSECURE", "OTEL_SERVICE_NAME",
		"OTEL_TRACES_SAMPLER_ARG",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q; want 8080", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q; want release", cfg.GinMode)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want info", cfg.LogLevel)
	}
	if cfg.APIBasePath != "/api" {
		t.Errorf("APIBasePath = %q; want /api", cfg.APIBasePath)
	}
	if cfg.DBPath != "issues.db" {
		t.Errorf("DBPath = %q; want issues.db", cfg.DBPath)
	}
	if cfg.Storage.Root != "data/blobs" {
		t.Errorf("Storage.Root = %q", cfg.Storage.Root)
	}
	if cfg.Storage.BaseURL != "http://localhost:8080/blobs" {
		t.Errorf("Storage.BaseURL = %q", cfg.Storage.BaseURL)
	}
	if cfg.MaxAttachments != 10 {
		t.Errorf("MaxAttachments = %d; want 10", cfg.MaxAttachments)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d; want %d", cfg.MaxUploadBytes, int64(32<<20))
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v; want 15s", cfg.ReadTimeout)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Errorf("rate defaults = (%v, %d)", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.OTEL.Enabled {
		t.Errorf("OTEL should default to disabled")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("GIN_MODE", "TEST")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("API_BASE_PATH", "api/v2/")
	t.Setenv("STORAGE_BASE_URL", "https://storage.example.com/bucket/")
	t.Setenv("MAX_ATTACHMENTS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.GinMode != "test" {
		t.Errorf("GinMode = %q; want test (lowercased)", cfg.GinMode)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want warn (normalized)", cfg.LogLevel)
	}
	if cfg.APIBasePath != "/api/v2" {
		t.Errorf("APIBasePath = %q; want /api/v2", cfg.APIBasePath)
	}
	if cfg.Storage.BaseURL != "https://storage.example.com/bucket" {
		t.Errorf("Storage.BaseURL = %q; trailing slash must be stripped", cfg.Storage.BaseURL)
	}
	if cfg.MaxAttachments != 3 {
		t.Errorf("MaxAttachments = %d", cfg.MaxAttachments)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v; want 2 entries", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		k, v string
	}{
		{"bad_log_level", "LOG_LEVEL", "verbose"},
		{"zero_attachments", "MAX_ATTACHMENTS", "0"},
		{"negative_rps", "RATE_RPS", "-1"},
		{"zero_burst", "RATE_BURST", "0"},
		{"bad_sampler", "OTEL_TRACES_SAMPLER_ARG", "1.5"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.k, tc.v)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", tc.k, tc.v)
			}
		})
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_BURST", "0")
	defer func() {
		if recover() == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api/":   "/api",
		"/api/v1": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}
