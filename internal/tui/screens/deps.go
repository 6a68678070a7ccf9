package screens

import (
	"time"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/domain"
)

// DefaultFeedbackDelay is how long answer feedback stays up before the next question.
const DefaultFeedbackDelay = 2500 * time.Millisecond

// Deps are shared by every screen. User is the logged-in player; screens never look it up.
type Deps struct {
	Service       *app.QuizService
	User          domain.User
	FeedbackDelay time.Duration
}

func (d Deps) feedbackDelay() time.Duration {
	if d.FeedbackDelay <= 0 {
		return DefaultFeedbackDelay
	}
	return d.FeedbackDelay
}
