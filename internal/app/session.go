package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"space-stem-quiz/internal/domain"
)

// Phase is the lifecycle state of a Session.
type Phase string

const (
	PhaseNotStarted Phase = "not-started"
	PhaseInProgress Phase = "in-progress"
	PhaseComplete   Phase = "complete"
)

// Session tracks one player's run through a quiz.
type Session struct {
	id   string
	quiz domain.Quiz
	user domain.User
	now  func() time.Time

	mu          sync.Mutex
	phase       Phase
	seq         *Sequencer
	results     []domain.Result
	correct     int
	xp          int
	startedAt   time.Time
	presentedAt time.Time
	presented   bool // the question under the cursor has been shown
	summary     *domain.Summary
}

// SessionState is a point-in-time copy of a session.
type SessionState struct {
	ID           string          `json:"id"`
	QuizID       string          `json:"quizId"`
	UserID       string          `json:"userId"`
	Phase        Phase           `json:"phase"`
	Cursor       int             `json:"cursor"`
	Total        int             `json:"total"`
	CorrectCount int             `json:"correctCount"`
	XP           int             `json:"xp"`
	Results      []domain.Result `json:"results"`
	StartedAt    time.Time       `json:"startedAt,omitempty"`
}

func NewSession(id string, quiz domain.Quiz, user domain.User) *Session {
	return NewSessionWithClock(id, quiz, user, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(id string, quiz domain.Quiz, user domain.User, now func() time.Time) *Session {
	return &Session{
		id:    id,
		quiz:  quiz,
		user:  user,
		now:   now,
		phase: PhaseNotStarted,
		seq:   NewSequencer(quiz.Questions),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Quiz() domain.Quiz { return s.quiz }

func (s *Session) User() domain.User { return s.user }

// Start moves a fresh session into progress and presents the first question.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseNotStarted {
		return fmt.Errorf("start session %s in phase %s: %w", s.id, s.phase, domain.ErrInvalidState)
	}
	now := s.now()
	s.phase = PhaseInProgress
	s.results = nil
	s.startedAt = now
	s.presentedAt = now
	s.presented = true
	if s.seq.Exhausted() {
		s.completeLocked()
	}
	return nil
}

// Current returns the question being presented.
func (s *Session) Current() (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return domain.Question{}, false
	}
	return s.seq.Current()
}

// Present returns the current question and stamps the moment it was shown. Only the first call
// per question stamps, so elapsed time runs from when the player first saw it. Without a call the
// clock runs from the previous answer.
func (s *Session) Present() (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return domain.Question{}, false
	}
	if !s.presented {
		s.presentedAt = s.now()
		s.presented = true
	}
	return s.seq.Current()
}

// Pending lists unplaced drag-drop items of the current question.
func (s *Session) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Pending()
}

// Submit answers the current question.
func (s *Session) Submit(answer domain.Answer) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress {
		return domain.Result{}, fmt.Errorf("submit to session %s in phase %s: %w", s.id, s.phase, domain.ErrInvalidState)
	}
	now := s.now()
	result, err := s.seq.Submit(answer, domain.RoundSeconds(now.Sub(s.presentedAt)))
	if err != nil {
		return domain.Result{}, err
	}
	s.presentedAt = now
	s.presented = false
	if err := s.recordLocked(result); err != nil {
		return domain.Result{}, err
	}
	return result, nil
}

// Place reports one drag-drop placement. The Result is non-nil once the last item is placed.
func (s *Session) Place(itemID, targetID string) (*domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress {
		return nil, fmt.Errorf("place in session %s in phase %s: %w", s.id, s.phase, domain.ErrInvalidState)
	}
	now := s.now()
	result, err := s.seq.Place(itemID, targetID, domain.RoundSeconds(now.Sub(s.presentedAt)))
	if err != nil || result == nil {
		return nil, err
	}
	s.presentedAt = now
	s.presented = false
	if err := s.recordLocked(*result); err != nil {
		return nil, err
	}
	return result, nil
}

// RecordResult folds a result into the running totals and completes the session once the
// sequencer is exhausted. Submit and Place call it for every answer. A direct call is only
// accepted for a question the sequencer has already moved past without a result, so there are
// never more results than answered questions. A session that is not in progress is left untouched.
func (s *Session) RecordResult(result domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordLocked(result)
}

func (s *Session) recordLocked(result domain.Result) error {
	if s.phase != PhaseInProgress {
		return fmt.Errorf("record result in session %s in phase %s: %w", s.id, s.phase, domain.ErrInvalidState)
	}
	if len(s.results) >= s.seq.Cursor() {
		return fmt.Errorf("record result in session %s: no answered question is missing a result: %w", s.id, domain.ErrInvalidState)
	}
	s.results = append(s.results, result)
	if result.Correct {
		s.correct++
	}
	s.xp += result.XPEarned
	if s.seq.Exhausted() {
		s.completeLocked()
	}
	return nil
}

func (s *Session) completeLocked() {
	now := s.now()
	summary := domain.NewSummary(s.id, s.quiz, s.user.ID, s.results, now.Sub(s.startedAt), now)
	s.summary = &summary
	s.phase = PhaseComplete
}

// Summary is available once the session is complete.
func (s *Session) Summary() (domain.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return domain.Summary{}, false
	}
	return *s.summary, true
}

// Restart returns a new, not yet started session over the same quiz and user.
// The receiver keeps its results.
func (s *Session) Restart() *Session {
	return NewSessionWithClock(uuid.NewString(), s.quiz, s.user, s.now)
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ID:           s.id,
		QuizID:       s.quiz.ID,
		UserID:       s.user.ID,
		Phase:        s.phase,
		Cursor:       s.seq.Cursor(),
		Total:        s.seq.Len(),
		CorrectCount: s.correct,
		XP:           s.xp,
		Results:      append([]domain.Result(nil), s.results...),
		StartedAt:    s.startedAt,
	}
}
