// Package terminal presents rendered frames in a terminal as braille characters and turns
// key presses into engine input.
package terminal

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/input"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNotRunning is returned by Present once the terminal program has exited.
var ErrNotRunning = errors.New("terminal is not running")

// terminal is the implementation of the Terminal interface.
type terminal struct {
	mu sync.Mutex

	program        *tea.Program
	programOptions []tea.ProgramOption
	input          input.Manager
	title          string
	holdFor        time.Duration

	resizeCallback func(width, height int)
	quitCallback   func()

	done     chan struct{}
	doneOnce sync.Once
}

// Terminal runs a bubbletea program that shows the latest frame and forwards keys to an input.Manager.
// Terminals report key presses but not releases, so a pressed key stays held for a short window
// that key auto-repeat keeps extending.
type Terminal interface {
	// Present converts the framebuffer to braille and hands it to the program.
	// Blocks until the program accepts the frame.
	//
	// Parameters:
	//   - fb: the frame to display
	//
	// Returns:
	//   - error: ErrNotRunning after the program has exited
	Present(fb *framebuffer.Framebuffer) error

	// Resize is a no-op: the terminal dictates the canvas size and reports it via the resize callback.
	Resize(width, height int)

	// Close stops the program. Safe to call more than once.
	Close()

	// Run starts the program and blocks until it exits.
	//
	// Returns:
	//   - error: the program error, if any
	Run() error

	// SetResizeCallback sets the function that receives the framebuffer size matching the terminal.
	//
	// Parameters:
	//   - callback: function receiving the canvas size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetQuitCallback sets the function called when the user quits.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetQuitCallback(callback func())
}

var _ Terminal = &terminal{}

// NewTerminal creates a Terminal feeding the given input manager.
//
// Parameters:
//   - in: the input manager that receives key and zoom events
//   - options: functional options to configure the terminal
//
// Returns:
//   - Terminal: the newly created terminal
func NewTerminal(in input.Manager, options ...TerminalBuilderOption) Terminal {
	t := &terminal{
		input:   in,
		title:   "oxy-raster",
		holdFor: 150 * time.Millisecond,
		done:    make(chan struct{}),
	}
	for _, opt := range options {
		opt(t)
	}
	if t.input == nil {
		t.input = input.NewManager()
	}

	t.program = tea.NewProgram(newModel(t, time.Now), append([]tea.ProgramOption{tea.WithAltScreen()}, t.programOptions...)...)
	return t
}

func (t *terminal) Present(fb *framebuffer.Framebuffer) error {
	select {
	case <-t.done:
		return ErrNotRunning
	default:
	}

	width, height := fb.Size()
	msg := frameMsg{lines: Braille(fb), width: width, height: height}

	t.program.Send(msg)

	select {
	case <-t.done:
		return ErrNotRunning
	default:
		return nil
	}
}

func (t *terminal) Resize(int, int) {}

func (t *terminal) Close() {
	select {
	case <-t.done:
	default:
		t.program.Quit()
	}
}

func (t *terminal) Run() error {
	defer t.markDone()
	common.Logger().Info("terminal started")
	_, err := t.program.Run()
	return err
}

func (t *terminal) SetResizeCallback(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeCallback = callback
}

func (t *terminal) SetQuitCallback(callback func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.quitCallback = callback
}

func (t *terminal) markDone() {
	t.doneOnce.Do(func() { close(t.done) })
}

// resized forwards a new canvas size to the resize callback.
func (t *terminal) resized(width, height int) {
	t.mu.Lock()
	cb := t.resizeCallback
	t.mu.Unlock()
	if cb != nil {
		cb(width, height)
	}
}

// quit runs the quit callback.
func (t *terminal) quit() {
	t.mu.Lock()
	cb := t.quitCallback
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}
