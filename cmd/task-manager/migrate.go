package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zadania-app/task-manager/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := migrations.Up(cfg.StorageConnectionString, cfg.MigrationsPath); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := migrations.Down(cfg.StorageConnectionString, cfg.MigrationsPath); err != nil {
			return err
		}
		logger.Info("migrations rolled back")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, ok, err := migrations.Version(cfg.StorageConnectionString, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("no migrations applied")
			return nil
		}
		logger.Info("schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
