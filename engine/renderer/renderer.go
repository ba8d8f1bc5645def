// Package renderer presents CPU framebuffers on a window surface through WebGPU.
package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/window"
)

// ErrClosed is returned by Present after Close.
var ErrClosed = errors.New("renderer is closed")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	closed      bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	filterMode           FilterMode
}

// Renderer copies a framebuffer into a GPU texture each frame and draws it over the whole
// window surface. It performs no rasterization of its own.
type Renderer interface {
	// Present uploads the framebuffer and displays it. Empty framebuffers are skipped.
	//
	// Parameters:
	//   - fb: the frame to display
	//
	// Returns:
	//   - error: ErrClosed after Close, or a wrapped backend error
	Present(fb *framebuffer.Framebuffer) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Close releases GPU resources. Safe to call more than once.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the window's surface.
// Panics when no GPU adapter or device is available, unless a backend is supplied with WithBackend.
//
// Parameters:
//   - backendType: the GPU API to use
//   - window: the window whose surface receives frames
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: PresentModeUncapped,
		filterMode:  FilterNearest,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, r.filterMode)
		}
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(window.Width(), window.Height())
	common.Logger().Info("renderer ready", "width", window.Width(), "height", window.Height())
	return r
}

func (r *renderer) Present(fb *framebuffer.Framebuffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	var uploadErr error
	uploaded := false
	fb.Draw(func(pixels []uint32, width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		uploadErr = r.backend.Upload(common.SliceToBytes(pixels), width, height)
		uploaded = uploadErr == nil
	})
	if uploadErr != nil {
		return fmt.Errorf("upload frame: %w", uploadErr)
	}
	if !uploaded {
		return nil
	}

	if err := r.backend.Blit(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.backend.Release()
}
