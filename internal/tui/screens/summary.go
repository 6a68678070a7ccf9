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

// SummaryScreen shows the results of a completed session.
type SummaryScreen struct {
	deps      Deps
	summary   domain.Summary
	quizTitle string
	errMsg    string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func NewSummary(deps Deps, summary domain.Summary, quizTitle string) *SummaryScreen {
	return &SummaryScreen{deps: deps, summary: summary, quizTitle: quizTitle}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Mission Complete" }

func (s *SummaryScreen) KeyHints() []screen.KeyHint {
	return []screen.KeyHint{
		{Key: "R", Description: "Try again"},
		{Key: "Esc", Description: "Quiz menu"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	ctx := context.Background()
	switch kmsg.String() {
	case "r", "R":
		next, err := s.restart(ctx)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, router.Replace(next)
	case "esc", "enter":
		s.deps.Service.Abandon(ctx, s.summary.SessionID)
		return s, router.Back()
	}
	return s, nil
}

func (s *SummaryScreen) restart(ctx context.Context) (*QuestionScreen, error) {
	state, err := s.deps.Service.Restart(ctx, s.summary.SessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.deps.Service.Start(ctx, state.ID); err != nil {
		return nil, err
	}
	return NewQuestion(s.deps, state.ID, s.quizTitle)
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(theme.Title.Render("🏆 " + sum.Message))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(s.quizTitle))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Score: %d/%d    Accuracy: %d%%    Time: %s    Avg: %ds per question",
		sum.CorrectCount, sum.TotalQuestions, sum.Accuracy,
		domain.FormatClock(sum.ElapsedSeconds), sum.AverageSeconds)
	b.WriteString(theme.Body.Render(stats))
	b.WriteString("\n")
	b.WriteString(theme.XP.Render(fmt.Sprintf("⭐ %d / %d XP", sum.TotalXP, sum.MaxXP)))
	b.WriteString("\n\n")

	for i, r := range sum.Results {
		mark := theme.Correct.Render("✓")
		if !r.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf(" Question %d   +%d XP   %ds", i+1, r.XPEarned, r.ElapsedSeconds)
		b.WriteString(mark + theme.Body.Render(line))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}
	return b.String()
}
