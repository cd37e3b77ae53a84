package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dsapatterns/dsatrack/internal/activity"
	"github.com/dsapatterns/dsatrack/internal/catalog"
	"github.com/dsapatterns/dsatrack/internal/config"
	"github.com/dsapatterns/dsatrack/internal/progress"
	"github.com/dsapatterns/dsatrack/internal/remote"
	"github.com/dsapatterns/dsatrack/internal/storage/local"
)

// app wires the configured services for one command invocation.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	logFile *os.File

	client   *remote.Client
	activity *activity.Store
	progress *progress.Service
	catalog  *catalog.Service
	tags     *catalog.TagIndex
}

// newApp loads configuration and constructs the service graph.
func newApp() (*app, error) {
	dir, err := config.EnsureDir()
	if err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logFile, err := setupLogging(dir, parseLogLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	blob, err := local.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	resilience := remote.DefaultResilienceConfig()
	resilience.Logger = logger
	client := remote.NewClient(remote.Config{
		BaseURL: cfg.API.BaseURL,
		UserID:  cfg.API.UserID,
		Token:   cfg.API.Token,
	}).WithResilience(resilience)

	act := activity.NewStore(blob, logger)

	return &app{
		cfg:      cfg,
		log:      logger,
		logFile:  logFile,
		client:   client,
		activity: act,
		progress: progress.NewService(act, client, blob, logger),
		catalog:  catalog.NewService(client, blob, logger),
		tags:     catalog.NewTagIndex(client, blob, logger),
	}, nil
}

// Close releases the log file handle.
func (a *app) Close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogging writes structured logs to ~/.dsatrack/logs/dsatrack.log at
// the configured level; warnings and errors also reach stderr so offline
// fallbacks are visible without drowning command output.
func setupLogging(dir string, level slog.Level) (*slog.Logger, *os.File, error) {
	logPath := filepath.Join(dir, "logs", "dsatrack.log")

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := &multiHandler{
		handlers: []slog.Handler{
			slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level}),
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
		},
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, logFile, nil
}

// multiHandler logs to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
