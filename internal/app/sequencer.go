package app

import (
	"fmt"

	"space-stem-quiz/internal/domain"
)

// Sequencer walks an ordered list of questions, producing one Result per question.
// The order is fixed at construction.
type Sequencer struct {
	questions []domain.Question
	cursor    int
	// working holds drag-drop placements for the current question.
	working map[string]string
}

func NewSequencer(questions []domain.Question) *Sequencer {
	return &Sequencer{
		questions: questions,
		working:   make(map[string]string),
	}
}

// Current returns the question under the cursor; ok is false once every question is answered.
func (s *Sequencer) Current() (domain.Question, bool) {
	if s.Exhausted() {
		return domain.Question{}, false
	}
	return s.questions[s.cursor], true
}

func (s *Sequencer) Cursor() int { return s.cursor }

func (s *Sequencer) Len() int { return len(s.questions) }

func (s *Sequencer) Exhausted() bool { return s.cursor >= len(s.questions) }

// Submit checks answer against the current question and advances.
func (s *Sequencer) Submit(answer domain.Answer, elapsedSeconds int) (domain.Result, error) {
	q, ok := s.Current()
	if !ok {
		return domain.Result{}, fmt.Errorf("submit after question %d: %w", s.cursor, domain.ErrInvalidState)
	}

	correct := CheckAnswer(q, answer)
	result := domain.Result{
		QuestionID:     q.ID,
		Correct:        correct,
		Answer:         answer,
		ElapsedSeconds: elapsedSeconds,
	}
	if correct {
		result.XPEarned = q.XPReward
	}

	s.cursor++
	s.working = make(map[string]string)
	return result, nil
}

// Place records a single drag-drop placement for the current question. Placing an item
// again moves it. Once every item has a target the placements are submitted and the
// Result is returned; until then the Result is nil.
func (s *Sequencer) Place(itemID, targetID string, elapsedSeconds int) (*domain.Result, error) {
	q, ok := s.Current()
	if !ok {
		return nil, fmt.Errorf("place after question %d: %w", s.cursor, domain.ErrInvalidState)
	}
	if q.Type != domain.TypeDragDrop {
		return nil, fmt.Errorf("place on %s question %d: %w", q.Type, q.ID, domain.ErrInvalidState)
	}
	if !hasItem(q, itemID) {
		return nil, fmt.Errorf("%w: unknown item %q", domain.ErrInvalidPlacement, itemID)
	}
	if !hasTarget(q, targetID) {
		return nil, fmt.Errorf("%w: unknown target %q", domain.ErrInvalidPlacement, targetID)
	}

	s.working[itemID] = targetID
	if len(s.working) < len(q.Items) {
		return nil, nil
	}

	result, err := s.Submit(domain.PlacementAnswer{Placements: s.Placements()}, elapsedSeconds)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Pending lists the items of the current drag-drop question that have not been placed yet.
func (s *Sequencer) Pending() []string {
	q, ok := s.Current()
	if !ok || q.Type != domain.TypeDragDrop {
		return nil
	}
	pending := make([]string, 0, len(q.Items))
	for _, item := range q.Items {
		if _, placed := s.working[item.ID]; !placed {
			pending = append(pending, item.ID)
		}
	}
	return pending
}

// Placements returns a copy of the working drag-drop mapping.
func (s *Sequencer) Placements() map[string]string {
	out := make(map[string]string, len(s.working))
	for item, target := range s.working {
		out[item] = target
	}
	return out
}

func hasItem(q domain.Question, id string) bool {
	for _, item := range q.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func hasTarget(q domain.Question, id string) bool {
	for _, target := range q.Targets {
		if target.ID == id {
			return true
		}
	}
	return false
}
