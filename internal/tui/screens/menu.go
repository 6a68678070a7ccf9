package screens

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"space-stem-quiz/internal/auth"
	"space-stem-quiz/internal/domain"
	"space-stem-quiz/internal/tui/router"
	"space-stem-quiz/internal/tui/screen"
	"space-stem-quiz/internal/tui/theme"
)

// MenuScreen lists the available quizzes.
type MenuScreen struct {
	deps     Deps
	entries  []domain.CatalogEntry
	selected int
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

func NewMenu(deps Deps, entries []domain.CatalogEntry) *MenuScreen {
	return &MenuScreen{deps: deps, entries: entries}
}

func (m *MenuScreen) Init() tea.Cmd { return nil }

func (m *MenuScreen) Title() string { return "Mission Control" }

func (m *MenuScreen) KeyHints() []screen.KeyHint {
	return []screen.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.entries) == 0 {
		return m, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
	case "enter":
		return m, router.Push(NewIntro(m.deps, m.entries[m.selected]))
	}
	return m, nil
}

func (m *MenuScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Welcome back, %s!", auth.DisplayName(m.deps.User))))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Pick a quiz to start your mission."))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(theme.Hint.Render("No quizzes are available yet."))
		return b.String()
	}

	for i, e := range m.entries {
		prefix := "  "
		style := theme.Unselected
		if i == m.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix + e.Title))
		b.WriteString("  ")
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %d questions · ", e.Level, e.Questions)))
		b.WriteString(theme.XP.Render(fmt.Sprintf("%d XP", e.MaxXP)))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}
