package domain

import (
	"fmt"
	"strings"
)

// ValidateQuestion checks the authoring invariants of a single question.
func ValidateQuestion(q Question) error {
	if q.XPReward <= 0 {
		return fmt.Errorf("%w: question %d: xpReward must be positive", ErrInvalidQuestion, q.ID)
	}
	if q.Prompt == "" {
		return fmt.Errorf("%w: question %d: prompt is empty", ErrInvalidQuestion, q.ID)
	}

	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d: needs at least two options", ErrInvalidQuestion, q.ID)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %d: correctAnswer %d out of range", ErrInvalidQuestion, q.ID, q.CorrectAnswer)
		}
	case TypeShortAnswer:
		if len(q.CorrectAnswers) == 0 {
			return fmt.Errorf("%w: question %d: no accepted answers", ErrInvalidQuestion, q.ID)
		}
		for _, accepted := range q.CorrectAnswers {
			if strings.TrimSpace(accepted) == "" {
				return fmt.Errorf("%w: question %d: blank accepted answer", ErrInvalidQuestion, q.ID)
			}
		}
		switch q.AnswerKind {
		case "", AnswerKindText, AnswerKindNumber:
		default:
			return fmt.Errorf("%w: question %d: unknown answerType %q", ErrInvalidQuestion, q.ID, q.AnswerKind)
		}
	case TypeDragDrop:
		targets := make(map[string]struct{}, len(q.Targets))
		for _, t := range q.Targets {
			if _, dup := targets[t.ID]; dup {
				return fmt.Errorf("%w: question %d: duplicate target %q", ErrInvalidQuestion, q.ID, t.ID)
			}
			targets[t.ID] = struct{}{}
		}
		items := make(map[string]struct{}, len(q.Items))
		for _, item := range q.Items {
			if _, dup := items[item.ID]; dup {
				return fmt.Errorf("%w: question %d: duplicate item %q", ErrInvalidQuestion, q.ID, item.ID)
			}
			items[item.ID] = struct{}{}
			if _, ok := targets[item.CorrectTargetID]; !ok {
				return fmt.Errorf("%w: question %d: item %q points at unknown target %q", ErrInvalidQuestion, q.ID, item.ID, item.CorrectTargetID)
			}
		}
	default:
		return fmt.Errorf("%w: question %d: unknown type %q", ErrInvalidQuestion, q.ID, q.Type)
	}
	return nil
}

// ValidateQuiz checks every question plus quiz-level invariants.
func ValidateQuiz(quiz Quiz) error {
	if quiz.ID == "" {
		return fmt.Errorf("%w: quiz id is empty", ErrInvalidQuestion)
	}
	if len(quiz.Questions) == 0 {
		return fmt.Errorf("%w: quiz %s has no questions", ErrInvalidQuestion, quiz.ID)
	}
	seen := make(map[int]struct{}, len(quiz.Questions))
	for _, q := range quiz.Questions {
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: quiz %s: duplicate question id %d", ErrInvalidQuestion, quiz.ID, q.ID)
		}
		seen[q.ID] = struct{}{}
		if err := ValidateQuestion(q); err != nil {
			return fmt.Errorf("quiz %s: %w", quiz.ID, err)
		}
	}
	return nil
}
