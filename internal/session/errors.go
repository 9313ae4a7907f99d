package session

import "errors"

var (
	// ErrUnknownCommand indicates a control message with an unrecognised command name.
	ErrUnknownCommand = errors.New("session: unknown command")

	// ErrMalformedCommand indicates a control message that is not valid JSON.
	ErrMalformedCommand = errors.New("session: malformed command")

	// ErrUnknownStartMode indicates a start mode name other than top or offset.
	ErrUnknownStartMode = errors.New("session: unknown start mode")
)
