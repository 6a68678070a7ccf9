package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDecodeAnswer(t *testing.T) {
	choice, err := DecodeAnswer(TypeMultipleChoice, json.RawMessage(`{"choice":2}`))
	if err != nil {
		t.Fatalf("decode choice: %v", err)
	}
	if choice != (ChoiceAnswer{Index: 2}) {
		t.Fatalf("unexpected choice %#v", choice)
	}

	text, err := DecodeAnswer(TypeShortAnswer, json.RawMessage(`{"text":" Eleven "}`))
	if err != nil {
		t.Fatalf("decode text: %v", err)
	}
	if text != (TextAnswer{Text: " Eleven "}) {
		t.Fatalf("unexpected text %#v", text)
	}

	placement, err := DecodeAnswer(TypeDragDrop, json.RawMessage(`{"placements":{"earth":"target-earth"}}`))
	if err != nil {
		t.Fatalf("decode placements: %v", err)
	}
	if got := placement.(PlacementAnswer).Placements["earth"]; got != "target-earth" {
		t.Fatalf("unexpected placement %q", got)
	}

	empty, err := DecodeAnswer(TypeDragDrop, nil)
	if err != nil {
		t.Fatalf("decode empty placements: %v", err)
	}
	if len(empty.(PlacementAnswer).Placements) != 0 {
		t.Fatalf("expected no placements")
	}
}

func TestDecodeAnswerRejectsMalformed(t *testing.T) {
	cases := []struct {
		kind QuestionType
		raw  string
	}{
		{TypeMultipleChoice, `{"text":"1"}`},
		{TypeShortAnswer, `{"choice":1}`},
		{TypeMultipleChoice, `{"choice":"one"}`},
		{"essay", `{"text":"x"}`},
		{TypeShortAnswer, `not json`},
	}
	for _, tc := range cases {
		if _, err := DecodeAnswer(tc.kind, json.RawMessage(tc.raw)); !errors.Is(err, ErrMalformedAnswer) {
			t.Fatalf("%s %s: expected ErrMalformedAnswer, got %v", tc.kind, tc.raw, err)
		}
	}
}

func TestResultJSONKeepsAnswerVariant(t *testing.T) {
	in := Result{QuestionID: 2, Correct: true, Answer: PlacementAnswer{Placements: map[string]string{"mars": "target-mars"}}, XPEarned: 40, ElapsedSeconds: 12}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Result
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, ok := out.Answer.(PlacementAnswer)
	if !ok || got.Placements["mars"] != "target-mars" {
		t.Fatalf("expected placement answer, got %#v", out.Answer)
	}
	if out.XPEarned != 40 || out.ElapsedSeconds != 12 || !out.Correct {
		t.Fatalf("unexpected result %+v", out)
	}
}

func TestValidateQuestion(t *testing.T) {
	valid := Question{ID: 1, Type: TypeMultipleChoice, Prompt: "?", Options: []string{"a", "b"}, CorrectAnswer: 1, XPReward: 5}
	if err := ValidateQuestion(valid); err != nil {
		t.Fatalf("expected valid question, got %v", err)
	}

	broken := []Question{
		{ID: 1, Type: TypeMultipleChoice, Prompt: "?", Options: []string{"a", "b"}, CorrectAnswer: 2, XPReward: 5},
		{ID: 1, Type: TypeMultipleChoice, Prompt: "?", Options: []string{"a"}, XPReward: 5},
		{ID: 1, Type: TypeShortAnswer, Prompt: "?", XPReward: 5},
		{ID: 1, Type: TypeShortAnswer, Prompt: "?", CorrectAnswers: []string{"a"}, XPReward: 0},
		{ID: 1, Type: TypeShortAnswer, Prompt: "?", CorrectAnswers: []string{"a", "  "}, XPReward: 5},
		{ID: 1, Type: TypeDragDrop, Prompt: "?", XPReward: 5,
			Items:   []DragItem{{ID: "a", CorrectTargetID: "t2"}},
			Targets: []DropTarget{{ID: "t1"}}},
		{ID: 1, Type: TypeDragDrop, Prompt: "?", XPReward: 5,
			Items:   []DragItem{{ID: "a", CorrectTargetID: "t1"}, {ID: "a", CorrectTargetID: "t1"}},
			Targets: []DropTarget{{ID: "t1"}}},
	}
	for i, q := range broken {
		if err := ValidateQuestion(q); !errors.Is(err, ErrInvalidQuestion) {
			t.Fatalf("case %d: expected ErrInvalidQuestion, got %v", i, err)
		}
	}
}

func TestValidateQuizRejectsDuplicateIDs(t *testing.T) {
	q := Question{ID: 7, Type: TypeShortAnswer, Prompt: "?", CorrectAnswers: []string{"x"}, XPReward: 1}
	err := ValidateQuiz(Quiz{ID: "dup", Questions: []Question{q, q}})
	if !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
	if err := ValidateQuiz(Quiz{ID: "empty"}); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected empty quiz rejected, got %v", err)
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := map[int]PerformanceTier{
		100: TierOutstanding, 90: TierOutstanding, 89: TierGreat, 70: TierGreat,
		69: TierGood, 50: TierGood, 49: TierKeepLearning, 0: TierKeepLearning,
	}
	for accuracy, want := range cases {
		if got := TierFor(accuracy); got != want {
			t.Fatalf("accuracy %d: expected %s, got %s", accuracy, want, got)
		}
	}
	if TierOutstanding.Message() != "Outstanding! You're a true space explorer!" {
		t.Fatalf("unexpected message %q", TierOutstanding.Message())
	}
}

func TestNewSummary(t *testing.T) {
	quiz := Quiz{ID: "q", Questions: []Question{{ID: 1, XPReward: 10}, {ID: 2, XPReward: 20}, {ID: 3, XPReward: 30}}}
	results := []Result{
		{QuestionID: 1, Correct: true, XPEarned: 10},
		{QuestionID: 2, Correct: false},
		{QuestionID: 3, Correct: true, XPEarned: 30},
	}
	completed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s := NewSummary("s-1", quiz, "u-1", results, 125*time.Second, completed)
	if s.CorrectCount != 2 || s.TotalXP != 40 || s.MaxXP != 60 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if s.Accuracy != 67 || s.AverageSeconds != 42 || s.ElapsedSeconds != 125 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s.Tier != TierGood || s.Message != TierGood.Message() {
		t.Fatalf("unexpected tier %s", s.Tier)
	}
	if FormatClock(s.ElapsedSeconds) != "2:05" {
		t.Fatalf("unexpected clock %s", FormatClock(s.ElapsedSeconds))
	}
}
