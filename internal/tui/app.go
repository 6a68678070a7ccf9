package tui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/auth"
	"space-stem-quiz/internal/domain"
	"space-stem-quiz/internal/tui/router"
	"space-stem-quiz/internal/tui/screen"
	"space-stem-quiz/internal/tui/screens"
	"space-stem-quiz/internal/tui/theme"
)

// Model is the root Bubble Tea model.
type Model struct {
	router *router.Router
	user   domain.User
	width  int
	height int
}

// New builds the model with the quiz menu as the bottom screen. When quizID names a catalog
// entry its intro screen is pushed on top.
func New(deps screens.Deps, entries []domain.CatalogEntry, quizID string) Model {
	r := router.New(screens.NewMenu(deps, entries))
	for _, e := range entries {
		if e.ID == quizID {
			r.Push(screens.NewIntro(deps, e))
			break
		}
	}
	return Model{router: r, user: deps.User}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	active := m.router.Active()
	header := renderHeader(active.Title(), auth.DisplayName(m.user), m.width)
	footer := renderFooter(hintsFor(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	content := lipgloss.NewStyle().
		Padding(1, 2).
		Height(contentHeight).
		Render(m.router.View(m.width-4, contentHeight))

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
	return v
}

func hintsFor(s screen.Screen) []screen.KeyHint {
	if p, ok := s.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	return []screen.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func renderHeader(title, player string, width int) string {
	left := theme.Title.Render("🌌 Space STEM")
	center := theme.Body.Render(title)
	right := theme.Subtitle.Render(player)

	gap := width - 4 - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	content := left + strings.Repeat(" ", gap/2) + center + strings.Repeat(" ", gap-gap/2) + right
	return theme.Header.Width(width).Render(content)
}

func renderFooter(hints []screen.KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.Selected.Render(h.Key)+" "+h.Description)
	}
	return theme.Footer.Width(width).Render(strings.Join(parts, "   "))
}

// Run starts the terminal front-end for user.
func Run(ctx context.Context, service *app.QuizService, catalog app.QuizCatalog, user domain.User, opts ...Option) error {
	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	entries, err := catalog.ListQuizzes(ctx)
	if err != nil {
		return fmt.Errorf("list quizzes: %w", err)
	}

	deps := screens.Deps{Service: service, User: user, FeedbackDelay: cfg.feedbackDelay}
	p := tea.NewProgram(New(deps, entries, cfg.quizID), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
