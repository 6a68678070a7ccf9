package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"space-stem-quiz/internal/domain"
	"space-stem-quiz/internal/tui/router"
	"space-stem-quiz/internal/tui/screen"
	"space-stem-quiz/internal/tui/theme"
)

// feedbackDoneMsg ends the feedback display for the given session.
type feedbackDoneMsg struct {
	sessionID string
}

// QuestionScreen presents the current question of an in-progress session.
type QuestionScreen struct {
	deps      Deps
	sessionID string
	quizTitle string

	question domain.Question
	number   int
	total    int
	xp       int

	choice int
	input  textinput.Model

	// drag-drop
	pending []string
	item    int
	placed  map[string]string

	feedback *domain.Result
	errMsg   string
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)

// NewQuestion builds the screen for a started session.
func NewQuestion(deps Deps, sessionID, quizTitle string) (*QuestionScreen, error) {
	s := &QuestionScreen{deps: deps, sessionID: sessionID, quizTitle: quizTitle}
	if err := s.load(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *QuestionScreen) load(ctx context.Context) error {
	state, err := s.deps.Service.State(ctx, s.sessionID)
	if err != nil {
		return err
	}
	q, ok, err := s.deps.Service.Present(ctx, s.sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s has no current question: %w", s.sessionID, domain.ErrInvalidState)
	}

	s.question = q
	s.number = state.Cursor + 1
	s.total = state.Total
	s.xp = state.XP
	s.choice = 0
	s.item = 0
	s.placed = make(map[string]string)
	s.pending = nil
	s.feedback = nil
	s.errMsg = ""

	if q.Type == domain.TypeDragDrop {
		for _, it := range q.Items {
			s.pending = append(s.pending, it.ID)
		}
	}
	if q.Type == domain.TypeShortAnswer {
		s.input = textinput.New()
		s.input.Placeholder = q.Placeholder
		if s.input.Placeholder == "" {
			s.input.Placeholder = "Type your answer..."
		}
		s.input.CharLimit = 40
	}
	return nil
}

func (s *QuestionScreen) Init() tea.Cmd {
	if s.question.Type == domain.TypeShortAnswer {
		return s.input.Focus()
	}
	return nil
}

func (s *QuestionScreen) Title() string {
	return fmt.Sprintf("%s · %d/%d", s.quizTitle, s.number, s.total)
}

func (s *QuestionScreen) KeyHints() []screen.KeyHint {
	if s.feedback != nil {
		return []screen.KeyHint{{Key: "…", Description: "Next question coming up"}}
	}
	switch s.question.Type {
	case domain.TypeMultipleChoice:
		return []screen.KeyHint{{Key: "↑↓", Description: "Choose"}, {Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Leave"}}
	case domain.TypeDragDrop:
		return []screen.KeyHint{{Key: "↑↓", Description: "Pick item"}, {Key: "1-9", Description: "Place on target"}, {Key: "Esc", Description: "Leave"}}
	default:
		return []screen.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Leave"}}
	}
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if msg.sessionID != s.sessionID || s.feedback == nil {
			return s, nil
		}
		return s.advance()

	case tea.KeyMsg:
		if s.feedback != nil {
			return s, nil
		}
		if msg.String() == "esc" {
			s.deps.Service.Abandon(context.Background(), s.sessionID)
			return s, router.Back()
		}
		switch s.question.Type {
		case domain.TypeMultipleChoice:
			return s.handleChoiceKey(msg)
		case domain.TypeShortAnswer:
			return s.handleTextKey(msg)
		case domain.TypeDragDrop:
			return s.handleDragKey(msg)
		}
		return s, nil
	}

	if s.question.Type == domain.TypeShortAnswer && s.feedback == nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuestionScreen) handleChoiceKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch key := msg.String(); key {
	case "up", "k":
		if s.choice > 0 {
			s.choice--
		}
	case "down", "j":
		if s.choice < len(s.question.Options)-1 {
			s.choice++
		}
	case "enter":
		return s, s.submit(domain.ChoiceAnswer{Index: s.choice})
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(s.question.Options) {
			s.choice = n - 1
		}
	}
	return s, nil
}

func (s *QuestionScreen) handleTextKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		if strings.TrimSpace(s.input.Value()) == "" {
			return s, nil
		}
		s.input.Blur()
		return s, s.submit(domain.TextAnswer{Text: s.input.Value()})
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuestionScreen) handleDragKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch key := msg.String(); key {
	case "up", "k":
		if s.item > 0 {
			s.item--
		}
	case "down", "j":
		if s.item < len(s.pending)-1 {
			s.item++
		}
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(s.question.Targets) || len(s.pending) == 0 {
			return s, nil
		}
		itemID := s.pending[s.item]
		targetID := s.question.Targets[n-1].ID
		result, pending, err := s.deps.Service.Place(context.Background(), s.sessionID, itemID, targetID)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.placed[itemID] = targetID
		s.pending = pending
		if s.item >= len(s.pending) && s.item > 0 {
			s.item = len(s.pending) - 1
		}
		if result != nil {
			return s, s.showFeedback(*result)
		}
	}
	return s, nil
}

func (s *QuestionScreen) submit(answer domain.Answer) tea.Cmd {
	result, err := s.deps.Service.Submit(context.Background(), s.sessionID, answer)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.showFeedback(result)
}

func (s *QuestionScreen) showFeedback(result domain.Result) tea.Cmd {
	s.feedback = &result
	s.xp += result.XPEarned
	id := s.sessionID
	return tea.Tick(s.deps.feedbackDelay(), func(time.Time) tea.Msg {
		return feedbackDoneMsg{sessionID: id}
	})
}

// advance moves to the next question, or to the summary once the session is complete.
func (s *QuestionScreen) advance() (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	if _, ok, err := s.deps.Service.Current(ctx, s.sessionID); err == nil && ok {
		if err := s.load(ctx); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, s.Init()
	}

	summary, err := s.deps.Service.Summary(ctx, s.sessionID)
	if err != nil {
		s.feedback = nil
		s.errMsg = err.Error()
		return s, nil
	}
	return s, router.Replace(NewSummary(s.deps, summary, s.quizTitle))
}

func (s *QuestionScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(renderProgress(s.number, s.total, min(width-4, 40)))
	b.WriteString("  ")
	b.WriteString(theme.XP.Render(fmt.Sprintf("⭐ %d XP", s.xp)))
	b.WriteString("\n\n")

	q := s.question
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s · %d XP", q.Subject, q.Difficulty, q.XPReward)))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(q.Prompt))
	b.WriteString("\n\n")

	switch q.Type {
	case domain.TypeMultipleChoice:
		b.WriteString(s.viewChoices())
	case domain.TypeShortAnswer:
		b.WriteString(s.input.View())
		b.WriteString("\n")
	case domain.TypeDragDrop:
		b.WriteString(s.viewDragDrop())
	}

	if s.feedback != nil {
		b.WriteString("\n")
		b.WriteString(s.viewFeedback())
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}
	return b.String()
}

func (s *QuestionScreen) viewChoices() string {
	var b strings.Builder
	for i, opt := range s.question.Options {
		prefix := "  "
		style := theme.Unselected
		if i == s.choice {
			prefix = "▸ "
			style = theme.Selected
		}
		if s.feedback != nil {
			switch {
			case i == s.question.CorrectAnswer:
				style = theme.Correct
			case i == s.choice:
				style = theme.Incorrect
			default:
				style = theme.Subtitle
			}
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d) %s", prefix, i+1, opt)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *QuestionScreen) viewDragDrop() string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Items"))
	b.WriteString("\n")
	for _, it := range s.question.Items {
		if target, ok := s.placed[it.ID]; ok {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %s → %s", it.Content, s.targetContent(target))))
			b.WriteString("\n")
			continue
		}
		prefix := "  "
		style := theme.Unselected
		if idx := indexOf(s.pending, it.ID); idx == s.item {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix + it.Content))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Targets"))
	b.WriteString("\n")
	for i, t := range s.question.Targets {
		line := fmt.Sprintf("  %d) %s", i+1, t.Content)
		if t.Description != "" {
			line += theme.Hint.Render("  " + t.Description)
		}
		b.WriteString(theme.Body.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *QuestionScreen) viewFeedback() string {
	r := s.feedback
	var headline string
	if r.Correct {
		headline = theme.Correct.Render(fmt.Sprintf("✅ Correct! +%d XP", r.XPEarned))
	} else {
		headline = theme.Incorrect.Render("❌ Not quite!")
		if s.question.Type == domain.TypeShortAnswer && len(s.question.CorrectAnswers) > 0 {
			headline += theme.Body.Render(" The answer is " + s.question.CorrectAnswers[0] + ".")
		}
	}
	if s.question.Explanation == "" {
		return headline
	}
	return theme.Card.Render(headline + "\n" + theme.Body.Render(s.question.Explanation))
}

func (s *QuestionScreen) targetContent(id string) string {
	for _, t := range s.question.Targets {
		if t.ID == id {
			return t.Content
		}
	}
	return id
}

func renderProgress(number, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}
	filled := width * (number - 1) / total
	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled))
	return bar + theme.Subtitle.Render(fmt.Sprintf(" Question %d of %d", number, total))
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
