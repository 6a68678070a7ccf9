package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/bank"
	"space-stem-quiz/internal/domain"
	pgloader "space-stem-quiz/internal/infra/postgres"
	infraredis "space-stem-quiz/internal/infra/redis"
)

func TestPlayQuizEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBank(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewQuizLoader(pool)
	catalog, err := loader.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(catalog) != 3 || catalog[0].ID != bank.SpaceBasicsID {
		t.Fatalf("unexpected catalog %+v", catalog)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	quizRepo := infraredis.NewQuizRepository(redisClient, loader, 5*time.Minute)
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	service := app.NewQuizService(sessionStore, quizRepo)

	user := domain.User{ID: "1", Name: "Alex Space Explorer", Role: domain.RoleStudent}
	opened, err := service.Open(ctx, bank.SpaceMathID, user)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := service.Start(ctx, opened.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Submit(ctx, opened.ID, domain.TextAnswer{Text: " 8.33 "}); err != nil {
		t.Fatalf("submit short answer: %v", err)
	}
	result, err := service.Submit(ctx, opened.ID, domain.ChoiceAnswer{Index: 2})
	if err != nil {
		t.Fatalf("submit choice: %v", err)
	}
	if !result.Correct || result.XPEarned != 45 {
		t.Fatalf("expected correct answer worth 45xp, got %+v", result)
	}

	summary, err := service.Summary(ctx, opened.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalXP != 95 || summary.CorrectCount != 2 || summary.Tier != domain.TierOutstanding {
		t.Fatalf("unexpected summary %+v", summary)
	}

	if _, err := service.Open(ctx, "black-hole", user); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "stem", "POSTGRES_PASSWORD": "stempass", "POSTGRES_DB": "stemdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://stem:stempass@%s:%s/stemdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedBank(t *testing.T, ctx context.Context, dsn string) {
	db := pgloader.OpenBun(dsn)
	defer db.Close()

	if err := pgloader.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := pgloader.Seed(ctx, db, bank.Builtin()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Seeding twice must upsert, not fail.
	if err := pgloader.Seed(ctx, db, bank.Builtin()); err != nil {
		t.Fatalf("reseed: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
