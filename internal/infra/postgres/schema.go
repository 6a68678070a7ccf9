package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"space-stem-quiz/internal/domain"
	pgmigrations "space-stem-quiz/internal/infra/postgres/migrations"
)

// QuizSet is the bun model of one row in quiz_sets.
type QuizSet struct {
	bun.BaseModel `bun:"table:quiz_sets"`

	ID        string      `bun:"id,pk"`
	Title     string      `bun:"title,notnull"`
	Position  int         `bun:"position,notnull"`
	Data      domain.Quiz `bun:"data,type:jsonb,notnull"`
	UpdatedAt time.Time   `bun:"updated_at,notnull"`
}

// OpenBun opens a bun handle over the pg driver.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Printf("no new migrations")
		return nil
	}
	log.Printf("migrated to %s", group)
	return nil
}

// Seed upserts quizzes, keeping the given order as catalog position.
func Seed(ctx context.Context, db *bun.DB, quizzes []domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]QuizSet, 0, len(quizzes))
	for i, quiz := range quizzes {
		if err := domain.ValidateQuiz(quiz); err != nil {
			return err
		}
		rows = append(rows, QuizSet{ID: quiz.ID, Title: quiz.Title, Position: i, Data: quiz, UpdatedAt: now})
	}
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("position = EXCLUDED.position").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("seed quizzes: %w", err)
	}
	log.Printf("seeded %d quizzes", len(rows))
	return nil
}
