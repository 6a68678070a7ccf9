package domain

import "errors"

var (
	// ErrInvalidState is returned when a caller drives a sequencer or session out of order,
	// e.g. submitting after the last question or recording into a completed session.
	ErrInvalidState = errors.New("invalid quiz state")
	// ErrSessionNotFound is returned when a quiz session has not been opened.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidQuestion indicates authored quiz content breaks a question invariant.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrMalformedAnswer indicates a wire answer payload could not be decoded.
	ErrMalformedAnswer = errors.New("malformed answer")
	// ErrInvalidPlacement indicates a drag-drop placement names an unknown item or target.
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrUserNotFound is returned by login when no user has the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned by login when the password is rejected.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrUnauthorized indicates a missing, expired or forged token.
	ErrUnauthorized = errors.New("unauthorized")
)
