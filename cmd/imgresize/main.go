package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/giobyte8/imgresize/internal/cli"
	"github.com/giobyte8/imgresize/internal/config"
	"github.com/giobyte8/imgresize/internal/export"
	"github.com/giobyte8/imgresize/internal/preview"
	"github.com/giobyte8/imgresize/internal/raster"
	"github.com/giobyte8/imgresize/internal/session"
	"github.com/giobyte8/imgresize/internal/telemetry"
)

// Logs go to stderr so they never interleave with previews on stdout
func setupLogging(level string) {
	var log_level slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		log_level = slog.LevelDebug
	case "WARN":
		log_level = slog.LevelWarn
	case "ERROR":
		log_level = slog.LevelError
	default:
		log_level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     log_level,
		AddSource: false,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {

			// Format time to show only the time (HH:MM:SS)
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format("15:04:05"))
			}

			return a
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
	slog.SetDefault(logger)
}

func loadConfig() config.Config {
	if err := config.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

func prepareSession(
	cfg config.Config,
	telemetry *telemetry.TelemetrySvc,
	presenter session.Presenter,
) (*session.Session, error) {
	resampler, err := raster.NewResampler(cfg.Resampler)
	if err != nil {
		return nil, err
	}

	exporter, err := export.NewExporter(cfg.ExportBackend, resampler, telemetry)
	if err != nil {
		return nil, err
	}

	return session.New(session.Options{
		Resampler: resampler,
		Exporter:  exporter,
		Sink:      export.NewDirSink(cfg.OutputDir),
		Presenter: presenter,
		Telemetry: telemetry,
	}), nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func main() {
	cfg := loadConfig()
	setupLogging(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init telemetry services
	telemetry, err := telemetry.NewTelemetrySvc(ctx, telemetry.Config{
		OtelEnabled:       cfg.OtelEnabled,
		CollectorEndpoint: cfg.OtelCollectorEndpoint,
	})
	if err != nil {
		slog.Error("Failed to initialize Telemetry services", "error", err)
		os.Exit(1)
	}

	var renderer *preview.Renderer
	if cfg.PreviewEnabled {
		renderer = preview.NewRenderer(cfg.PreviewWidth, cfg.PreviewColored)
	}

	shell := cli.NewShell(os.Stdout, renderer)
	sess, err := prepareSession(cfg, telemetry, shell)
	if err != nil {
		slog.Error("Failed to create resizer session", "error", err)
		os.Exit(1)
	}
	shell.Attach(sess)

	slog.Info(
		"Image resizer ready",
		"session", sess.ID(),
		"output_dir", cfg.OutputDir,
		"resampler", cfg.Resampler,
		"backend", cfg.ExportBackend,
	)

	// Graceful shutdown (listen for OS signals)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigChan:
			slog.Info("Received OS signal, shutting down...", "signal", s.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	// An image given on the command line is loaded before the first prompt
	if len(os.Args) > 1 {
		sess.LoadFile(ctx, os.Args[1])
		sess.Wait()
	}

	interactive := isTerminal(os.Stdin)
	if interactive {
		shell.Execute(ctx, "help")
	}

	if err := shell.Run(ctx, os.Stdin, interactive); err != nil && ctx.Err() == nil {
		slog.Error("Shell stopped", "error", err)
	}

	// --- --- --- --- --- --- --- --- --- --- --- ---
	// Perform graceful shutdown operations
	// before cancelling context

	sess.Wait()
	if err := telemetry.Shutdown(context.Background()); err != nil {
		slog.Error("Failed to shutdown telemetry services", "error", err)
	}

	cancel()
	slog.Debug("Image resizer exited.")
}
