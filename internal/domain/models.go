package domain

import "time"

// QuestionType discriminates the question variants.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeShortAnswer    QuestionType = "short-answer"
	TypeDragDrop       QuestionType = "drag-drop"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Subject string

const (
	SubjectScience     Subject = "science"
	SubjectTechnology  Subject = "technology"
	SubjectEngineering Subject = "engineering"
	SubjectMathematics Subject = "mathematics"
)

// AnswerKind is an input hint for short-answer questions. It never changes how answers are compared.
type AnswerKind string

const (
	AnswerKindText   AnswerKind = "text"
	AnswerKindNumber AnswerKind = "number"
)

// DragItem is a draggable piece; it belongs on exactly one target.
type DragItem struct {
	ID              string `json:"id" yaml:"id"`
	Content         string `json:"content" yaml:"content"`
	CorrectTargetID string `json:"correctTargetId" yaml:"correctTargetId"`
}

// DropTarget is a slot that items are dropped onto.
type DropTarget struct {
	ID          string `json:"id" yaml:"id"`
	Content     string `json:"content" yaml:"content"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Question is an authored unit of assessment. Type selects which variant fields are meaningful:
// Options/CorrectAnswer for multiple-choice, CorrectAnswers/AnswerKind for short-answer and
// Items/Targets for drag-drop. Questions are shared reference data and must not be mutated.
type Question struct {
	ID          int          `json:"id" yaml:"id"`
	Type        QuestionType `json:"type" yaml:"type"`
	Prompt      string       `json:"prompt" yaml:"prompt"`
	XPReward    int          `json:"xpReward" yaml:"xpReward"`
	Difficulty  Difficulty   `json:"difficulty" yaml:"difficulty"`
	Subject     Subject      `json:"subject" yaml:"subject"`
	Explanation string       `json:"explanation,omitempty" yaml:"explanation,omitempty"`

	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`

	CorrectAnswers []string   `json:"correctAnswers,omitempty" yaml:"correctAnswers,omitempty"`
	AnswerKind     AnswerKind `json:"answerType,omitempty" yaml:"answerType,omitempty"`
	Placeholder    string     `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	Items   []DragItem   `json:"items,omitempty" yaml:"items,omitempty"`
	Targets []DropTarget `json:"targets,omitempty" yaml:"targets,omitempty"`
}

// Quiz is an ordered collection of questions.
type Quiz struct {
	ID               string     `json:"id" yaml:"id"`
	Title            string     `json:"title" yaml:"title"`
	Description      string     `json:"description,omitempty" yaml:"description,omitempty"`
	Level            string     `json:"level,omitempty" yaml:"level,omitempty"`
	EstimatedMinutes int        `json:"estimatedMinutes,omitempty" yaml:"estimatedMinutes,omitempty"`
	Questions        []Question `json:"questions" yaml:"questions"`
}

// MaxXP is the XP a player earns by answering every question correctly.
func (q Quiz) MaxXP() int {
	total := 0
	for _, question := range q.Questions {
		total += question.XPReward
	}
	return total
}

// EstimatedDuration falls back to two minutes per question when no estimate was authored.
func (q Quiz) EstimatedDuration() time.Duration {
	if q.EstimatedMinutes > 0 {
		return time.Duration(q.EstimatedMinutes) * time.Minute
	}
	return time.Duration(len(q.Questions)*2) * time.Minute
}

// CatalogEntry is a listing-friendly view of a quiz.
type CatalogEntry struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Level            string `json:"level,omitempty"`
	Questions        int    `json:"questions"`
	MaxXP            int    `json:"maxXp"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

func (q Quiz) CatalogEntry() CatalogEntry {
	return CatalogEntry{
		ID:               q.ID,
		Title:            q.Title,
		Description:      q.Description,
		Level:            q.Level,
		Questions:        len(q.Questions),
		MaxXP:            q.MaxXP(),
		EstimatedMinutes: int(q.EstimatedDuration() / time.Minute),
	}
}

// PublicQuestion is what a player sees: the question without its correct answers.
type PublicQuestion struct {
	ID          int          `json:"id"`
	Type        QuestionType `json:"type"`
	Prompt      string       `json:"prompt"`
	XPReward    int          `json:"xpReward"`
	Difficulty  Difficulty   `json:"difficulty"`
	Subject     Subject      `json:"subject"`
	Options     []string     `json:"options,omitempty"`
	AnswerKind  AnswerKind   `json:"answerType,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Items       []PublicItem `json:"items,omitempty"`
	Targets     []DropTarget `json:"targets,omitempty"`
}

type PublicItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

func (q Question) Public() PublicQuestion {
	pq := PublicQuestion{
		ID:          q.ID,
		Type:        q.Type,
		Prompt:      q.Prompt,
		XPReward:    q.XPReward,
		Difficulty:  q.Difficulty,
		Subject:     q.Subject,
		Options:     q.Options,
		AnswerKind:  q.AnswerKind,
		Placeholder: q.Placeholder,
		Targets:     q.Targets,
	}
	for _, item := range q.Items {
		pq.Items = append(pq.Items, PublicItem{ID: item.ID, Content: item.Content})
	}
	return pq
}

// Result is the immutable outcome of evaluating one submitted answer.
type Result struct {
	QuestionID     int    `json:"questionId"`
	Correct        bool   `json:"correct"`
	Answer         Answer `json:"answer"`
	XPEarned       int    `json:"xpEarned"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
}
