package app

import (
	"strings"

	"space-stem-quiz/internal/domain"
)

// CheckAnswer reports whether answer is correct for q. An answer whose variant does not
// match the question type is incorrect, never an error.
func CheckAnswer(q domain.Question, answer domain.Answer) bool {
	switch q.Type {
	case domain.TypeMultipleChoice:
		choice, ok := answer.(domain.ChoiceAnswer)
		return ok && choice.Index == q.CorrectAnswer
	case domain.TypeShortAnswer:
		text, ok := answer.(domain.TextAnswer)
		if !ok {
			return false
		}
		got := Normalize(text.Text)
		for _, accepted := range q.CorrectAnswers {
			if got == Normalize(accepted) {
				return true
			}
		}
		return false
	case domain.TypeDragDrop:
		placement, ok := answer.(domain.PlacementAnswer)
		if !ok {
			return false
		}
		for _, item := range q.Items {
			if placement.Placements[item.ID] != item.CorrectTargetID {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Normalize trims surrounding whitespace and lower-cases s. Comparison stays exact after
// normalizing, so "11.0" does not match "11".
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
