package screens

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"space-stem-quiz/internal/domain"
	"space-stem-quiz/internal/tui/router"
	"space-stem-quiz/internal/tui/screen"
	"space-stem-quiz/internal/tui/theme"
)

// IntroScreen describes a quiz before it starts.
type IntroScreen struct {
	deps   Deps
	entry  domain.CatalogEntry
	errMsg string
}

var _ screen.Screen = (*IntroScreen)(nil)

func NewIntro(deps Deps, entry domain.CatalogEntry) *IntroScreen {
	return &IntroScreen{deps: deps, entry: entry}
}

func (s *IntroScreen) Init() tea.Cmd { return nil }

func (s *IntroScreen) Title() string { return s.entry.Title }

func (s *IntroScreen) KeyHints() []screen.KeyHint {
	return []screen.KeyHint{
		{Key: "Enter", Description: "Launch"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, router.Back()
	case "enter":
		question, err := s.launch(context.Background())
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, router.Replace(question)
	}
	return s, nil
}

func (s *IntroScreen) launch(ctx context.Context) (*QuestionScreen, error) {
	state, err := s.deps.Service.Open(ctx, s.entry.ID, s.deps.User)
	if err != nil {
		return nil, err
	}
	if _, err := s.deps.Service.Start(ctx, state.ID); err != nil {
		return nil, err
	}
	return NewQuestion(s.deps, state.ID, s.entry.Title)
}

func (s *IntroScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("🚀 " + s.entry.Title))
	b.WriteString("\n")
	if s.entry.Description != "" {
		b.WriteString(theme.Subtitle.Render(s.entry.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	stats := fmt.Sprintf("Questions: %d    Max XP: %d    Est. time: %d min",
		s.entry.Questions, s.entry.MaxXP, s.entry.EstimatedMinutes)
	b.WriteString(theme.Card.Render(theme.Body.Render(stats)))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render(s.errMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Hint.Render("Press Enter to launch the quiz."))
	return b.String()
}
