package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/giobyte8/imgresize/internal/export"
	"github.com/giobyte8/imgresize/internal/raster"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	// Directory downloads are written to
	OutputDir string `env:"OUTPUT_DIR" envDefault:"."`

	Resampler     string `env:"RESAMPLER" envDefault:"bilinear"`
	ExportBackend string `env:"EXPORT_BACKEND" envDefault:"native"`

	PreviewEnabled bool `env:"PREVIEW_ENABLED" envDefault:"true"`
	PreviewWidth   int  `env:"PREVIEW_WIDTH" envDefault:"80"`
	PreviewColored bool `env:"PREVIEW_COLORED" envDefault:"false"`

	OtelEnabled           bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OtelCollectorEndpoint string `env:"OTEL_COLLECTOR_GRPC_ENDPOINT"`
}

// Loads variables from a .env file in the working directory, if any.
// Variables already set in the environment take precedence.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("No .env file found, using environment variables directly.")
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s file: %w", path, err)
	}

	return nil
}

// Parses the process environment into a validated Config
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, cfg.Validate()
}

// Parses vars instead of the process environment
func LoadFrom(vars map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: vars})
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	c.Resampler = strings.ToLower(strings.TrimSpace(c.Resampler))
	if _, err := raster.NewResampler(c.Resampler); err != nil {
		return fmt.Errorf("invalid RESAMPLER: %w", err)
	}

	c.ExportBackend = strings.ToLower(strings.TrimSpace(c.ExportBackend))
	switch c.ExportBackend {
	case export.BackendNative, export.BackendLilliput:
	default:
		return fmt.Errorf(
			"invalid EXPORT_BACKEND %q, expected %s or %s",
			c.ExportBackend,
			export.BackendNative,
			export.BackendLilliput,
		)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}

	if c.PreviewWidth <= 0 {
		return fmt.Errorf(
			"PREVIEW_WIDTH must be a positive integer, got %d",
			c.PreviewWidth,
		)
	}

	if c.OtelEnabled && c.OtelCollectorEndpoint == "" {
		return fmt.Errorf(
			"OTEL_COLLECTOR_GRPC_ENDPOINT is required when OTEL_ENABLED is true",
		)
	}

	return nil
}
