package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"space-stem-quiz/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// QuizCatalog lists the quizzes a player can pick from.
type QuizCatalog interface {
	ListQuizzes(ctx context.Context) ([]domain.CatalogEntry, error)
}

// CompletionSink receives the summary of every completed session.
type CompletionSink interface {
	Completed(ctx context.Context, summary domain.Summary) error
}

// Metrics observes engine activity.
type Metrics interface {
	SessionOpened(quizID string)
	AnswerRecorded(quizID string, questionType domain.QuestionType, correct bool)
	SessionCompleted(quizID string, tier domain.PerformanceTier)
}

type nopMetrics struct{}

func (nopMetrics) SessionOpened(string)                             {}
func (nopMetrics) AnswerRecorded(string, domain.QuestionType, bool) {}
func (nopMetrics) SessionCompleted(string, domain.PerformanceTier)  {}

// Option configures a QuizService.
type Option func(*QuizService)

func WithCompletionSink(sink CompletionSink) Option {
	return func(s *QuizService) { s.sink = sink }
}

func WithMetrics(m Metrics) Option {
	return func(s *QuizService) { s.metrics = m }
}

// WithSessionFactory replaces how sessions are built; tests use it to inject a clock.
func WithSessionFactory(fn func(id string, quiz domain.Quiz, user domain.User) *Session) Option {
	return func(s *QuizService) { s.newSession = fn }
}

// QuizService contains the quiz use cases shared by the websocket and terminal front-ends.
type QuizService struct {
	sessions   SessionRepository
	quizzes    QuizRepository
	sink       CompletionSink
	metrics    Metrics
	newSession func(id string, quiz domain.Quiz, user domain.User) *Session
}

func NewQuizService(store SessionRepository, quizzes QuizRepository, opts ...Option) *QuizService {
	s := &QuizService{
		sessions:   store,
		quizzes:    quizzes,
		metrics:    nopMetrics{},
		newSession: NewSession,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads a quiz and creates a not yet started session for user.
func (s *QuizService) Open(ctx context.Context, quizID string, user domain.User) (SessionState, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return SessionState{}, err
	}
	if err := domain.ValidateQuiz(quiz); err != nil {
		return SessionState{}, err
	}

	session := s.newSession(uuid.NewString(), quiz, user)
	s.sessions.Put(session)
	s.metrics.SessionOpened(quiz.ID)
	return session.State(), nil
}

func (s *QuizService) Start(ctx context.Context, sessionID string) (SessionState, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionState{}, err
	}
	if err := session.Start(); err != nil {
		return SessionState{}, err
	}
	s.afterRecord(ctx, session)
	return session.State(), nil
}

// Current returns the question being presented; ok is false once the session is complete.
func (s *QuizService) Current(_ context.Context, sessionID string) (domain.Question, bool, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.Question{}, false, err
	}
	q, ok := session.Current()
	return q, ok, nil
}

// Present returns the question being shown to the player and stamps when it was first shown.
// Front-ends call it once any feedback for the previous answer has finished.
func (s *QuizService) Present(_ context.Context, sessionID string) (domain.Question, bool, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.Question{}, false, err
	}
	q, ok := session.Present()
	return q, ok, nil
}

// Submit answers the current question.
func (s *QuizService) Submit(ctx context.Context, sessionID string, answer domain.Answer) (domain.Result, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.Result{}, err
	}
	current, _ := session.Current()
	result, err := session.Submit(answer)
	if err != nil {
		return domain.Result{}, err
	}
	s.metrics.AnswerRecorded(session.Quiz().ID, current.Type, result.Correct)
	s.afterRecord(ctx, session)
	return result, nil
}

// Place reports one drag-drop placement. It returns the pending items and, once the last
// item is placed, the auto-submitted Result.
func (s *QuizService) Place(ctx context.Context, sessionID, itemID, targetID string) (*domain.Result, []string, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	result, err := session.Place(itemID, targetID)
	if err != nil {
		return nil, nil, err
	}
	if result != nil {
		s.metrics.AnswerRecorded(session.Quiz().ID, domain.TypeDragDrop, result.Correct)
		s.afterRecord(ctx, session)
	}
	return result, session.Pending(), nil
}

// Restart replaces a session with a fresh one over the same quiz and user.
func (s *QuizService) Restart(_ context.Context, sessionID string) (SessionState, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionState{}, err
	}
	fresh := session.Restart()
	s.sessions.Put(fresh)
	s.sessions.Delete(sessionID)
	s.metrics.SessionOpened(fresh.Quiz().ID)
	return fresh.State(), nil
}

// Abandon discards a session. Unknown ids are ignored.
func (s *QuizService) Abandon(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

func (s *QuizService) State(_ context.Context, sessionID string) (SessionState, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionState{}, err
	}
	return session.State(), nil
}

// Summary returns the final snapshot of a completed session.
func (s *QuizService) Summary(_ context.Context, sessionID string) (domain.Summary, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	summary, ok := session.Summary()
	if !ok {
		return domain.Summary{}, fmt.Errorf("session %s is not complete: %w", sessionID, domain.ErrInvalidState)
	}
	return summary, nil
}

func (s *QuizService) session(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// afterRecord reports completion. Start, Submit and Place only succeed on a session that is
// not complete yet, so a summary seen here was produced by that call.
func (s *QuizService) afterRecord(ctx context.Context, session *Session) {
	summary, ok := session.Summary()
	if !ok {
		return
	}
	s.metrics.SessionCompleted(summary.QuizID, summary.Tier)
	if s.sink == nil {
		return
	}
	if err := s.sink.Completed(ctx, summary); err != nil {
		log.Printf("completion sink failed for session %s: %v", summary.SessionID, err)
	}
}
