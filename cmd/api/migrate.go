package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/config"
	"github.com/infrastructure-search/internal/pkg/logger"
	"github.com/infrastructure-search/internal/query"
	"github.com/infrastructure-search/internal/repository/sqlstore"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrator(*configPath, func(mg *sqlstore.Migrator) error {
				return mg.Up()
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive")
			}
			return withMigrator(*configPath, func(mg *sqlstore.Migrator) error {
				return mg.Down(steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func withMigrator(configPath string, fn func(*sqlstore.Migrator) error) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	log, _, err := logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	dialect, err := query.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}

	mg, err := sqlstore.NewMigrator(dialect, cfg.GetMigrationDSN(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Error("Failed to close migrator", zap.Error(err))
		}
	}()

	return fn(mg)
}
