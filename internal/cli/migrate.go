package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"space-stem-quiz/internal/config"
	pgloader "space-stem-quiz/internal/infra/postgres"
)

// NewMigrateCmd applies database migrations and optionally seeds the quiz bank.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "upsert the quiz bank (bank.dir or built-in quizzes) after migrating")
	return cmd
}

func runMigrations(ctx context.Context, configPath string, seed bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return runMigrationsWithConfig(ctx, cfg, seed)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config, seed bool) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	db := pgloader.OpenBun(cfg.Postgres.URL)
	defer db.Close()

	if err := pgloader.Migrate(ctx, db); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	quizzes, err := bankQuizzes(cfg)
	if err != nil {
		return err
	}
	if err := pgloader.Seed(ctx, db, quizzes); err != nil {
		return err
	}
	return invalidateCachedQuizzes(ctx, cfg, quizzes)
}
