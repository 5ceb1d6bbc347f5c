package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	alertlog "predixaai-alerts"
	"predixaai-alerts/internal/bus"
	"predixaai-alerts/internal/config"
	"predixaai-alerts/internal/metrics"
	"predixaai-alerts/internal/pipeline"
	"predixaai-alerts/internal/shell"
)

// app wires the models, alert log and optional publisher into a pipeline.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	store     alertlog.AlertLog
	publisher *bus.Publisher
	metrics   *metrics.Metrics
	pipeline  *pipeline.Pipeline
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// newApp loads the models and resets the alert log. Model load failures are
// fatal to the caller.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	models, err := pipeline.LoadModels(cfg.Models.Dir, cfg.Models.Files)
	if err != nil {
		logger.Error("failed to load models", slog.String("dir", cfg.Models.Dir), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("models loaded", slog.String("dir", cfg.Models.Dir), slog.Int("features", models.Features()))

	store, err := openAlertLog(ctx, cfg)
	if err != nil {
		logger.Error("failed to open alert log", slog.String("type", cfg.AlertLog.Type), slog.String("error", err.Error()))
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		logger.Error("failed to reset alert log", slog.String("error", err.Error()))
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, store: store, metrics: metrics.New()}
	a.pipeline = &pipeline.Pipeline{
		Models:  models,
		Log:     store,
		Metrics: a.metrics,
		Logger:  logger,
	}
	if cfg.NATS.URL != "" {
		publisher, err := bus.NewPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			// alerts are still logged locally without the event copy
			logger.Warn("alert events disabled", slog.String("url", cfg.NATS.URL), slog.String("error", err.Error()))
		} else {
			a.publisher = publisher
			a.pipeline.Publisher = publisher
		}
	}
	return a, nil
}

func openAlertLog(ctx context.Context, cfg config.Config) (alertlog.AlertLog, error) {
	store, err := alertlog.New(cfg.AlertLog)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("connect alert log: %w", err)
	}
	return store, nil
}

func (a *app) newShell(display shell.Display) *shell.Shell {
	return shell.New(a.pipeline, display)
}

func (a *app) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
}
