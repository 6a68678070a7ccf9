package screen

import (
	tea "charm.land/bubbletea/v2"
)

// Screen is one page of the terminal front-end.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title names the screen in the header.
	Title() string
}

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []KeyHint
}
