package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/auth"
	"space-stem-quiz/internal/config"
	"space-stem-quiz/internal/event"
	"space-stem-quiz/internal/infra/memory"
	redisinfra "space-stem-quiz/internal/infra/redis"
	"space-stem-quiz/internal/metrics"
	transport "space-stem-quiz/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, false); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}
	if cfg.Server.JWTSecret == "" {
		return errors.New("server.jwtSecret (or JWT_SECRET) must be set")
	}

	source, closeSource, err := openQuizSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	redisClient := openRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)
	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)

	var quizRepo app.QuizRepository
	var store app.SessionRepository
	if redisClient != nil {
		quizRepo = redisinfra.NewQuizRepository(redisClient, source, quizTTL)
		store = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		quizRepo = memory.NewQuizRepository(source, quizTTL)
		store = memory.NewSessionStore()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	sinks := event.Multi{event.NewLogSink(nil)}
	if cfg.Events.AMQPURL != "" {
		publisher, err := event.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
	}

	service := app.NewQuizService(store, quizRepo,
		app.WithMetrics(m),
		app.WithCompletionSink(sinks),
	)

	handler := transport.NewRouter(transport.Deps{
		Service:        service,
		Quizzes:        quizRepo,
		Catalog:        source,
		Directory:      auth.DefaultDirectory(),
		Tokens:         auth.NewTokenService(cfg.Server.JWTSecret, config.TTLDuration(cfg.Server.TokenTTL, 12*time.Hour)),
		Metrics:        m,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
