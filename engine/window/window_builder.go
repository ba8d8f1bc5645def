package window

import (
	"github.com/Carmen-Shannon/oxy-raster/engine/input"
)

// WindowBuilderOption is a functional option for configuring a Window before it is created.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSizeLimits bounds interactive resizing. A zero bound leaves that side unlimited.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size in screen coordinates
//   - maxWidth, maxHeight: largest allowed size in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width.Store(int32(width))
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height.Store(int32(height))
	}
}

// WithInput attaches an input manager at construction, equivalent to calling SetInput.
//
// Parameters:
//   - in: the input manager that receives key and scroll events
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithInput(in input.Manager) WindowBuilderOption {
	return func(w *engineWindow) {
		w.input = in
	}
}
