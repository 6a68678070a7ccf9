package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"space-stem-quiz/internal/tui/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPushAndPop(t *testing.T) {
	r := New(&stubScreen{title: "menu"})

	intro := &stubScreen{title: "intro"}
	r.Update(PushScreenMsg{Screen: intro})
	if r.Depth() != 2 || r.Active().Title() != "intro" {
		t.Fatalf("expected intro on top, got %q at depth %d", r.Active().Title(), r.Depth())
	}
	if !intro.initRan {
		t.Error("expected Init() to run on pushed screen")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "menu" {
		t.Fatalf("expected menu after pop, got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "menu"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "menu"})
	r.Push(&stubScreen{title: "intro"})

	question := &stubScreen{title: "question"}
	r.Update(ReplaceScreenMsg{Screen: question})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "question" || !question.initRan {
		t.Errorf("expected initialised question on top, got %q", r.Active().Title())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	menu := &stubScreen{title: "menu"}
	r := New(menu)
	r.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	if menu.updates != 1 {
		t.Errorf("expected one forwarded update, got %d", menu.updates)
	}
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "x"}
	if _, ok := Push(s)().(PushScreenMsg); !ok {
		t.Error("Push should produce PushScreenMsg")
	}
	if _, ok := Replace(s)().(ReplaceScreenMsg); !ok {
		t.Error("Replace should produce ReplaceScreenMsg")
	}
	if _, ok := Back()().(PopScreenMsg); !ok {
		t.Error("Back should produce PopScreenMsg")
	}
}
