package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zadania-app/task-manager/internal/app/taskmanager"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("starting task-manager", slog.String("env", cfg.Env))
		logger.Debug("loaded config", slog.String("config", cfg.String()))

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := taskmanager.New(ctx, cfg, logger)
		if err != nil {
			return err
		}

		if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		logger.Info("task-manager stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
