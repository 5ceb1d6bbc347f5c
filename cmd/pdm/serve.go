package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"predixaai-alerts/internal/config"
	"predixaai-alerts/internal/ingest"
	"predixaai-alerts/internal/sensor"
	"predixaai-alerts/internal/shell"
)

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	sh := a.newShell(shell.Discard)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.MQTT.Broker != "" {
		sub, err := ingest.NewSubscriber(ingest.ClientConfig{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Topic:    cfg.MQTT.Topic,
		}, submitReading(sh, logger), logger)
		if err != nil {
			logger.Error("failed to connect to mqtt", slog.String("error", err.Error()))
			return err
		}
		defer sub.Close()
		if err := sub.Start(ctx); err != nil {
			logger.Error("failed to subscribe to readings", slog.String("error", err.Error()))
			return err
		}
	}

	h := NewHandler(sh, a.store, a.metrics.Handler())
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
		cancel()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	logger.Info("pdm listening", slog.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}
	return <-shutdownErr
}

// submitReading runs every ingested reading through the shell and logs the
// outcome per device.
func submitReading(sh *shell.Shell, logger *slog.Logger) ingest.ReadingHandler {
	return func(ctx context.Context, deviceID string, reading sensor.Reading) {
		out, err := sh.Submit(ctx, reading)
		if err != nil {
			logger.Warn("ingested reading failed", slog.String("device", deviceID), slog.String("error", err.Error()))
			return
		}
		logger.Info("ingested reading", slog.String("device", deviceID), slog.String("category", out.Category.String()), slog.Bool("persisted", out.Persisted))
	}
}
