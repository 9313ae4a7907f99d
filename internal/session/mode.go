package session

import "fmt"

// StartMode selects where Start places the page.
type StartMode int

const (
	// StartAtTop snaps the page to offset 0.
	StartAtTop StartMode = iota
	// StartAtOffset begins from the current scroll offset.
	StartAtOffset
)

func (m StartMode) String() string {
	if m == StartAtOffset {
		return "offset"
	}
	return "top"
}

func ParseStartMode(s string) (StartMode, error) {
	switch s {
	case "", "top":
		return StartAtTop, nil
	case "offset":
		return StartAtOffset, nil
	}
	return StartAtTop, fmt.Errorf("%w: %q", ErrUnknownStartMode, s)
}
