package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/bank"
	"space-stem-quiz/internal/config"
	"space-stem-quiz/internal/domain"
	"space-stem-quiz/internal/infra/memory"
	pgloader "space-stem-quiz/internal/infra/postgres"
	redisinfra "space-stem-quiz/internal/infra/redis"
)

// quizSource loads single quizzes and lists the catalog.
type quizSource interface {
	memory.QuizLoader
	app.QuizCatalog
}

// bankQuizzes returns the quizzes of the configured bank directory, or the built-in set.
func bankQuizzes(cfg config.Config) ([]domain.Quiz, error) {
	if cfg.Bank.Dir == "" {
		return bank.Builtin(), nil
	}
	quizzes, err := bank.LoadDir(cfg.Bank.Dir)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return nil, fmt.Errorf("quiz bank %s has no quizzes", cfg.Bank.Dir)
	}
	log.Printf("loaded %d quizzes from %s", len(quizzes), cfg.Bank.Dir)
	return quizzes, nil
}

// openQuizSource prefers Postgres when configured. The returned close func is never nil.
func openQuizSource(ctx context.Context, cfg config.Config) (quizSource, func(), error) {
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgloader.NewQuizLoader(pool), pool.Close, nil
	}

	quizzes, err := bankQuizzes(cfg)
	if err != nil {
		return nil, nil, err
	}
	return memory.NewStaticQuizLoader(quizzes...), func() {}, nil
}

// openRedis returns nil when no redis address is configured.
func openRedis(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// invalidateCachedQuizzes drops the redis copies of quizzes so running servers load the
// re-seeded content on their next read.
func invalidateCachedQuizzes(ctx context.Context, cfg config.Config, quizzes []domain.Quiz) error {
	client := openRedis(cfg)
	if client == nil {
		return nil
	}
	defer client.Close()

	ids := make([]string, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}
	if err := redisinfra.NewQuizRepository(client, nil, 0).Invalidate(ctx, ids...); err != nil {
		return fmt.Errorf("invalidate cached quizzes: %w", err)
	}
	log.Printf("invalidated %d cached quizzes", len(ids))
	return nil
}
