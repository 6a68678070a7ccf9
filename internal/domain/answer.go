package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Answer is a player's response to a question. The set of implementations is closed:
// ChoiceAnswer, TextAnswer and PlacementAnswer, one per QuestionType.
type Answer interface {
	Kind() QuestionType
	String() string
	isAnswer()
}

// ChoiceAnswer selects an option of a multiple-choice question by index.
type ChoiceAnswer struct {
	Index int
}

// TextAnswer is free text typed for a short-answer question.
type TextAnswer struct {
	Text string
}

// PlacementAnswer maps drag-drop item ids to target ids.
type PlacementAnswer struct {
	Placements map[string]string
}

func (ChoiceAnswer) Kind() QuestionType    { return TypeMultipleChoice }
func (TextAnswer) Kind() QuestionType      { return TypeShortAnswer }
func (PlacementAnswer) Kind() QuestionType { return TypeDragDrop }

func (ChoiceAnswer) isAnswer()    {}
func (TextAnswer) isAnswer()      {}
func (PlacementAnswer) isAnswer() {}

func (a ChoiceAnswer) String() string { return fmt.Sprintf("option %d", a.Index) }
func (a TextAnswer) String() string   { return fmt.Sprintf("%q", a.Text) }

func (a PlacementAnswer) String() string {
	items := make([]string, 0, len(a.Placements))
	for item := range a.Placements {
		items = append(items, item)
	}
	sort.Strings(items)
	pairs := make([]string, 0, len(items))
	for _, item := range items {
		pairs = append(pairs, item+"->"+a.Placements[item])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// answerWire is the JSON shape shared by every answer variant.
type answerWire struct {
	Type       QuestionType      `json:"type"`
	Choice     *int              `json:"choice,omitempty"`
	Text       *string           `json:"text,omitempty"`
	Placements map[string]string `json:"placements,omitempty"`
}

func (a ChoiceAnswer) MarshalJSON() ([]byte, error) {
	idx := a.Index
	return json.Marshal(answerWire{Type: TypeMultipleChoice, Choice: &idx})
}

func (a TextAnswer) MarshalJSON() ([]byte, error) {
	text := a.Text
	return json.Marshal(answerWire{Type: TypeShortAnswer, Text: &text})
}

func (a PlacementAnswer) MarshalJSON() ([]byte, error) {
	placements := a.Placements
	if placements == nil {
		placements = map[string]string{}
	}
	return json.Marshal(answerWire{Type: TypeDragDrop, Placements: placements})
}

// DecodeAnswer builds the answer variant for kind from a wire payload.
func DecodeAnswer(kind QuestionType, raw json.RawMessage) (Answer, error) {
	var wire answerWire
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
		}
	}

	switch kind {
	case TypeMultipleChoice:
		if wire.Choice == nil {
			return nil, fmt.Errorf("%w: choice is required", ErrMalformedAnswer)
		}
		return ChoiceAnswer{Index: *wire.Choice}, nil
	case TypeShortAnswer:
		if wire.Text == nil {
			return nil, fmt.Errorf("%w: text is required", ErrMalformedAnswer)
		}
		return TextAnswer{Text: *wire.Text}, nil
	case TypeDragDrop:
		placements := make(map[string]string, len(wire.Placements))
		for item, target := range wire.Placements {
			placements[item] = target
		}
		return PlacementAnswer{Placements: placements}, nil
	default:
		return nil, fmt.Errorf("%w: unknown answer type %q", ErrMalformedAnswer, kind)
	}
}

// Unanswered returns an answer of the variant for kind that a valid question never accepts,
// unless it is a drag-drop question without items. It stands in for payloads that could not
// be decoded.
func Unanswered(kind QuestionType) Answer {
	switch kind {
	case TypeShortAnswer:
		return TextAnswer{}
	case TypeDragDrop:
		return PlacementAnswer{Placements: map[string]string{}}
	default:
		return ChoiceAnswer{Index: -1}
	}
}

// ParseAnswer decodes a self-describing answer whose "type" field selects the variant.
func ParseAnswer(raw json.RawMessage) (Answer, error) {
	var head struct {
		Type QuestionType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}
	return DecodeAnswer(head.Type, raw)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	type plain Result
	var aux struct {
		plain
		Answer json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Result(aux.plain)
	if len(aux.Answer) == 0 || string(aux.Answer) == "null" {
		r.Answer = nil
		return nil
	}
	answer, err := ParseAnswer(aux.Answer)
	if err != nil {
		return err
	}
	r.Answer = answer
	return nil
}
