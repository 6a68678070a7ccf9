package tui

import "time"

type runConfig struct {
	quizID        string
	feedbackDelay time.Duration
}

// Option tunes Run.
type Option func(*runConfig)

// WithQuiz opens the intro of the given quiz instead of the menu.
func WithQuiz(quizID string) Option {
	return func(c *runConfig) { c.quizID = quizID }
}

// WithFeedbackDelay sets how long answer feedback stays on screen.
func WithFeedbackDelay(d time.Duration) Option {
	return func(c *runConfig) { c.feedbackDelay = d }
}
