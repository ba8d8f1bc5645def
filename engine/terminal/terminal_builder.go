package terminal

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TerminalBuilderOption is a functional option for configuring a Terminal during construction.
type TerminalBuilderOption func(*terminal)

// WithTitle sets the header text.
//
// Parameters:
//   - title: the header text
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithTitle(title string) TerminalBuilderOption {
	return func(t *terminal) {
		t.title = title
	}
}

// WithHoldTime sets how long a key counts as held after its last press.
// Zero turns each press into a single-update tap.
//
// Parameters:
//   - d: hold duration
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithHoldTime(d time.Duration) TerminalBuilderOption {
	return func(t *terminal) {
		t.holdFor = max(d, 0)
	}
}

// WithProgramOptions appends bubbletea program options, e.g. custom input and output streams.
//
// Parameters:
//   - options: the program options
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithProgramOptions(options ...tea.ProgramOption) TerminalBuilderOption {
	return func(t *terminal) {
		t.programOptions = append(t.programOptions, options...)
	}
}
