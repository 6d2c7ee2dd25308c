package main

import (
	"context"
	"log/slog"

	"noteful/config"
	logs "noteful/internal/infra/log"
	"noteful/internal/infra/persistence/migrations"
	"noteful/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand and its up/down/status children.
func NewMigrateCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
		Long:  `Apply or roll back the embedded SQL migrations against the configured PostgreSQL database.`,
	}

	for _, sub := range []struct {
		direction string
		short     string
	}{
		{direction: migrations.DirectionUp, short: "Apply all pending migrations"},
		{direction: migrations.DirectionDown, short: "Roll back the most recent migration"},
		{direction: migrations.DirectionStatus, short: "Print the status of every migration"},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   sub.direction,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context(), *configFile, sub.direction)
			},
		})
	}

	return cmd
}

func runMigrate(ctx context.Context, configFile, direction string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return errors.Errorf("migrate requires store.driver %q, got %q", config.StoreDriverPostgres, cfg.Store.Driver)
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	defer sqlDB.Close()

	logger.Info("Running migrations", slog.String("direction", direction))

	return migrations.Run(ctx, sqlDB, direction)
}
