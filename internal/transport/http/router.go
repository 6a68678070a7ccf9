package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/auth"
	"space-stem-quiz/internal/metrics"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Service        *app.QuizService
	Quizzes        app.QuizRepository
	Catalog        app.QuizCatalog
	Directory      *auth.Directory
	Tokens         *auth.TokenService
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// NewRouter mounts the JSON API, the play socket and the operational endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", d.Metrics.Handler())

	api := NewAPIHandler(d.Directory, d.Tokens, d.Quizzes, d.Catalog, d.Metrics)
	ws := NewWSHandler(d.Service, d.Directory, d.Tokens, d.Metrics)
	r.Get("/ws", ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", api.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(d.Tokens, d.Directory))
			r.Get("/me", api.Me)
			r.Get("/quizzes", api.ListQuizzes)
			r.Get("/quizzes/{id}", api.GetQuiz)
			r.Get("/students", api.ListStudents)
		})
	})

	return r
}
