package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "INFO" {
		t.Errorf("expected LOG_LEVEL INFO, got %s", cfg.LogLevel)
	}
	if cfg.OutputDir != "." {
		t.Errorf("expected OUTPUT_DIR '.', got %s", cfg.OutputDir)
	}
	if cfg.Resampler != "bilinear" || cfg.ExportBackend != "native" {
		t.Errorf("unexpected backends %s / %s", cfg.Resampler, cfg.ExportBackend)
	}
	if !cfg.PreviewEnabled || cfg.PreviewWidth != 80 || cfg.PreviewColored {
		t.Errorf("unexpected preview settings %+v", cfg)
	}
	if cfg.OtelEnabled {
		t.Error("expected otel disabled by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"LOG_LEVEL":                    "debug",
		"OUTPUT_DIR":                   "/tmp/out",
		"RESAMPLER":                    " NFNT ",
		"EXPORT_BACKEND":               "lilliput",
		"PREVIEW_ENABLED":              "false",
		"PREVIEW_WIDTH":                "120",
		"PREVIEW_COLORED":              "true",
		"OTEL_ENABLED":                 "true",
		"OTEL_COLLECTOR_GRPC_ENDPOINT": "localhost:4317",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputDir != "/tmp/out" || cfg.Resampler != "nfnt" || cfg.ExportBackend != "lilliput" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.PreviewEnabled || cfg.PreviewWidth != 120 || !cfg.PreviewColored {
		t.Errorf("unexpected preview settings %+v", cfg)
	}
	if !cfg.OtelEnabled || cfg.OtelCollectorEndpoint != "localhost:4317" {
		t.Errorf("unexpected otel settings %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"resampler":     {"RESAMPLER": "lanczos9"},
		"backend":       {"EXPORT_BACKEND": "gpu"},
		"preview width": {"PREVIEW_WIDTH": "0"},
		"not a number":  {"PREVIEW_WIDTH": "wide"},
		"otel endpoint": {"OTEL_ENABLED": "true"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(vars); err == nil {
				t.Fatalf("expected error for %v", vars)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	if err := LoadEnvFile(filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("missing .env file should not be an error: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("IMGRESIZE_TEST_VAR=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IMGRESIZE_TEST_VAR", "")
	os.Unsetenv("IMGRESIZE_TEST_VAR")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv("IMGRESIZE_TEST_VAR"); got != "from-file" {
		t.Fatalf("expected variable from .env file, got %q", got)
	}
}
