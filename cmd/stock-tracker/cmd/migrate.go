package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/stock-tracker/internal/config"
	"github.com/donaldgifford/stock-tracker/pkg/logger"
)

const migrateTimeout = 60 * time.Second

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: "Create the equipment table and add the status column when missing.\n" +
			"Safe to run repeatedly; other commands do the same on startup unless\n" +
			"database.auto_migrate is false.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), opts)
		},
	}
}

func runMigrate(ctx context.Context, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	db := cfg.Database
	auto := false
	db.AutoMigrate = &auto

	s, err := openStore(ctx, &db, log)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info("running migrations", "driver", db.Driver, "host", db.Host)

	if err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info("migrations complete")
	return nil
}
