package event

import (
	"context"
	"errors"
	"log"
	"time"

	"space-stem-quiz/internal/domain"
)

// TypeQuizCompleted is the routing key of completion events.
const TypeQuizCompleted = "quiz.completed"

// Envelope is the wire shape of a published event.
type Envelope struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    domain.Summary `json:"payload"`
}

// LogSink writes a one-line trace of every completed quiz.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Completed(_ context.Context, summary domain.Summary) error {
	s.logger.Printf("quiz completed: session=%s quiz=%s user=%s score=%d/%d xp=%d/%d accuracy=%d%% time=%s",
		summary.SessionID, summary.QuizID, summary.UserID,
		summary.CorrectCount, summary.TotalQuestions,
		summary.TotalXP, summary.MaxXP,
		summary.Accuracy, domain.FormatClock(summary.ElapsedSeconds))
	return nil
}

// Sink is anything that accepts completion summaries.
type Sink interface {
	Completed(ctx context.Context, summary domain.Summary) error
}

// Multi fans a summary out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Completed(ctx context.Context, summary domain.Summary) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Completed(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
