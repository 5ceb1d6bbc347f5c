// Command pdm runs the predictive-maintenance alert demo: generate a sensor
// reading, predict the failure mode and time to failure, log the alert.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"predixaai-alerts/internal/config"
	"predixaai-alerts/internal/model"
	"predixaai-alerts/internal/sensor"
	"predixaai-alerts/internal/shell"
)

// errReported marks failures the display has already shown.
var errReported = errors.New("prediction failed")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pdm",
		Short:         "Predictive maintenance failure alerts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runShell,
	}
	root.AddCommand(shellCmd(), predictCmd(), serveCmd(), modelsCmd(), alertsCmd())
	return root
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive console with the generate and predict actions",
		RunE:  runShell,
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	sh := a.newShell(shell.Console{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()})
	if err := sh.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func predictCmd() *cobra.Command {
	var values string
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Generate a reading and predict once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)
			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			sh := a.newShell(shell.Console{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()})
			if values == "" {
				sh.GenerateReading()
			} else {
				reading, err := sensor.Parse(values)
				if err != nil {
					return err
				}
				sh.SetReading(reading)
			}
			if _, err := sh.RunPrediction(cmd.Context()); err != nil {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&values, "reading", "", "comma separated sensor values instead of the generated sample")
	return cmd
}

func modelsCmd() *cobra.Command {
	models := &cobra.Command{
		Use:   "models",
		Short: "Model artifact helpers",
	}
	var dir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sample scaler, classifier and regressor artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Models.Dir
			}
			if err := model.WriteSampleArtifacts(dir, cfg.Models.Files); err != nil {
				return err
			}
			files := cfg.Models.Files
			for _, name := range []string{files.Scaler, files.Classifier, files.Regressor} {
				fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, name))
			}
			return nil
		},
	}
	initCmd.Flags().StringVar(&dir, "dir", "", "target directory (defaults to PDM_MODEL_DIR)")
	models.AddCommand(initCmd)
	return models
}

func alertsCmd() *cobra.Command {
	alerts := &cobra.Command{
		Use:   "alerts",
		Short: "Alert log helpers",
	}
	alerts.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the number of alerts logged since the last start",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := openAlertLog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	})
	return alerts
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generate and predict actions over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(os.Stdout, cfg)
			slog.SetDefault(logger)
			return serve(cmd.Context(), cfg, logger)
		},
	}
}
