package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/auth"
	"space-stem-quiz/internal/domain"
	"space-stem-quiz/internal/metrics"
)

type APIHandler struct {
	directory *auth.Directory
	tokens    *auth.TokenService
	quizzes   app.QuizRepository
	catalog   app.QuizCatalog
	metrics   *metrics.Metrics
}

func NewAPIHandler(dir *auth.Directory, tokens *auth.TokenService, quizzes app.QuizRepository, catalog app.QuizCatalog, m *metrics.Metrics) *APIHandler {
	return &APIHandler{directory: dir, tokens: tokens, quizzes: quizzes, catalog: catalog, metrics: m}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"`
	User      domain.User `json:"user"`
}

// quizDetail is a quiz as shown to players, without answers.
type quizDetail struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description,omitempty"`
	Level            string                  `json:"level,omitempty"`
	EstimatedMinutes int                     `json:"estimatedMinutes"`
	MaxXP            int                     `json:"maxXp"`
	Questions        []domain.PublicQuestion `json:"questions"`
}

func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.directory.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		h.metrics.LoginAttempt("unknown_user")
		writeError(w, http.StatusNotFound, "user not found")
		return
	case errors.Is(err, domain.ErrInvalidPassword):
		h.metrics.LoginAttempt("bad_password")
		writeError(w, http.StatusUnauthorized, "invalid password")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token, ttl, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("issue token for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	h.metrics.LoginAttempt("ok")
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresIn: int(ttl.Seconds()), User: user})
}

func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

func (h *APIHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.ListQuizzes(r.Context())
	if err != nil {
		log.Printf("list quizzes: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list quizzes")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *APIHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.GetQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrQuizNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		log.Printf("get quiz: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load quiz")
		return
	}

	detail := quizDetail{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		Level:            quiz.Level,
		EstimatedMinutes: quiz.CatalogEntry().EstimatedMinutes,
		MaxXP:            quiz.MaxXP(),
		Questions:        make([]domain.PublicQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		detail.Questions = append(detail.Questions, q.Public())
	}
	writeJSON(w, http.StatusOK, detail)
}

// ListStudents is the teacher's roster.
func (h *APIHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	if !auth.RequireRole(&user, domain.RoleTeacher) {
		writeError(w, http.StatusForbidden, "teachers only")
		return
	}
	students := []domain.User{}
	for _, u := range h.directory.Users() {
		if u.Role == domain.RoleStudent {
			students = append(students, u)
		}
	}
	writeJSON(w, http.StatusOK, students)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
