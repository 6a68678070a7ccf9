package domain

import (
	"fmt"
	"math"
	"time"
)

type PerformanceTier string

const (
	TierOutstanding  PerformanceTier = "outstanding"
	TierGreat        PerformanceTier = "great"
	TierGood         PerformanceTier = "good"
	TierKeepLearning PerformanceTier = "keep-learning"
)

// Message is the encouragement shown on the results screen.
func (t PerformanceTier) Message() string {
	switch t {
	case TierOutstanding:
		return "Outstanding! You're a true space explorer!"
	case TierGreat:
		return "Great job! You know your way around the cosmos!"
	case TierGood:
		return "Not bad! Keep exploring to learn more!"
	default:
		return "Keep learning! Every explorer starts somewhere!"
	}
}

// TierFor maps an accuracy percentage onto a performance tier.
func TierFor(accuracy int) PerformanceTier {
	switch {
	case accuracy >= 90:
		return TierOutstanding
	case accuracy >= 70:
		return TierGreat
	case accuracy >= 50:
		return TierGood
	default:
		return TierKeepLearning
	}
}

// Summary is the final snapshot of a completed session.
type Summary struct {
	SessionID      string          `json:"sessionId"`
	QuizID         string          `json:"quizId"`
	UserID         string          `json:"userId"`
	TotalQuestions int             `json:"totalQuestions"`
	CorrectCount   int             `json:"correctCount"`
	TotalXP        int             `json:"totalXp"`
	MaxXP          int             `json:"maxXp"`
	Accuracy       int             `json:"accuracy"`
	ElapsedSeconds int             `json:"elapsedSeconds"`
	AverageSeconds int             `json:"averageSeconds"`
	Tier           PerformanceTier `json:"tier"`
	Message        string          `json:"message"`
	Results        []Result        `json:"results"`
	CompletedAt    time.Time       `json:"completedAt"`
}

// NewSummary derives the statistics from the results of a finished quiz.
func NewSummary(sessionID string, quiz Quiz, userID string, results []Result, elapsed time.Duration, completedAt time.Time) Summary {
	s := Summary{
		SessionID:      sessionID,
		QuizID:         quiz.ID,
		UserID:         userID,
		TotalQuestions: len(quiz.Questions),
		MaxXP:          quiz.MaxXP(),
		ElapsedSeconds: RoundSeconds(elapsed),
		Results:        append([]Result(nil), results...),
		CompletedAt:    completedAt,
	}
	for _, r := range results {
		if r.Correct {
			s.CorrectCount++
		}
		s.TotalXP += r.XPEarned
	}
	if s.TotalQuestions > 0 {
		s.Accuracy = roundDiv(s.CorrectCount*100, s.TotalQuestions)
		s.AverageSeconds = roundDiv(s.ElapsedSeconds, s.TotalQuestions)
	} else {
		s.Accuracy = 100
	}
	s.Tier = TierFor(s.Accuracy)
	s.Message = s.Tier.Message()
	return s
}

// RoundSeconds rounds a duration to whole seconds, half away from zero.
func RoundSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(math.Round(d.Seconds()))
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func roundDiv(num, den int) int {
	return int(math.Round(float64(num) / float64(den)))
}
