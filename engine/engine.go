package engine

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/profiler"
	"github.com/Carmen-Shannon/oxy-raster/engine/raster"
	"github.com/Carmen-Shannon/oxy-raster/engine/scene"
	"github.com/Carmen-Shannon/oxy-raster/engine/window"
)

// DefaultClearColor is the framebuffer background: opaque dark grey.
const DefaultClearColor uint32 = 0xFF1A1A1A

const (
	// dragOrbitScale converts cursor pixels into orbit input.
	dragOrbitScale = 0.01
	// idleFrameDelay paces the render loop while no scene is active.
	idleFrameDelay = 10 * time.Millisecond
)

// Presenter shows a finished frame somewhere: a GPU surface, a terminal, a file.
type Presenter interface {
	// Present displays the frame. Called from the render goroutine only.
	Present(fb *framebuffer.Framebuffer) error
	// Resize informs the presenter of a new output size in pixels.
	Resize(width, height int)
	// Close releases the presenter's resources.
	Close()
}

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window    window.Window
	presenter Presenter

	framebuffer *framebuffer.Framebuffer
	clearColor  uint32
	pixelScale  int
	width       int
	height      int

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32, stats raster.Stats)

	scenesMu sync.RWMutex
	scenes   map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	frames           atomic.Uint64
}

// Engine is the main entry point for the engine.
// It runs a fixed-rate tick loop that updates scenes and a render loop that rasterizes the
// active scene into an engine-owned framebuffer and hands it to a Presenter.
type Engine interface {
	// Window returns the underlying window, or nil for headless engines.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Framebuffer returns the framebuffer frames are rendered into.
	//
	// Returns:
	//   - *framebuffer.Framebuffer: the engine framebuffer
	Framebuffer() *framebuffer.Framebuffer

	// SetPresenter replaces the presenter. Nil disables presentation.
	//
	// Parameters:
	//   - p: the presenter
	SetPresenter(p Presenter)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick after scenes update.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds and the frame's raster statistics
	SetRenderCallback(callback func(deltaTime float32, stats raster.Stats))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// The active scene with the lowest key is the one rendered.
	//
	// Parameters:
	//   - key: the z-index determining priority (lower wins)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// ActiveScene returns the active scene with the lowest key, or nil.
	//
	// Returns:
	//   - scene.Scene: the scene that renders and receives input
	ActiveScene() scene.Scene

	// Resize changes the output size. The framebuffer becomes width/pixelScale x height/pixelScale;
	// the presenter receives the full size.
	//
	// Parameters:
	//   - width, height: output size in pixels
	Resize(width, height int)

	// Update advances every active scene by dt and runs the tick callback.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Update(dt float32)

	// RenderFrame renders the active scene into the framebuffer.
	//
	// Returns:
	//   - raster.Stats: counters for the frame
	//   - bool: false when there is no active scene
	RenderFrame() (raster.Stats, bool)

	// Frames returns the number of frames rendered by the render loop.
	//
	// Returns:
	//   - uint64: frame count
	Frames() uint64

	// Start launches the tick and render goroutines and returns immediately.
	Start()

	// Wait blocks until Quit has been called and all goroutines have exited.
	Wait()

	// Run starts the engine and blocks. With a window it pumps window messages on the calling
	// thread until the window closes; headless, it waits for Quit.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed by Quit.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
// With a window, the framebuffer follows the window size and the window's key and drag
// events are routed to the active scene.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		clearColor:      DefaultClearColor,
		pixelScale:      1,
		width:           640,
		height:          400,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.width, e.height = e.window.Width(), e.window.Height()
	}
	fw, fh := e.framebufferSize(e.width, e.height)
	e.framebuffer = framebuffer.New(fw, fh, e.clearColor)

	if e.window != nil {
		e.window.SetResizeCallback(e.Resize)
		e.window.SetDragCallback(func(dx, dy float32) {
			s := e.ActiveScene()
			if s == nil || s.Camera() == nil || s.Camera().Controller() == nil {
				return
			}
			s.Camera().Controller().Orbit(-dx*dragOrbitScale, dy*dragOrbitScale)
		})
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				e.window.RequestClose()
			default:
			}
		})
		e.bindInput()
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Framebuffer() *framebuffer.Framebuffer {
	return e.framebuffer
}

func (e *engine) SetPresenter(p Presenter) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	e.presenter = p
}

func (e *engine) Run() {
	e.Start()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.Wait()
}

func (e *engine) Start() {
	if e.running.Swap(true) {
		return
	}
	e.bindInput()
	e.handle()
}

func (e *engine) Wait() {
	<-e.quitChannel
	e.wg.Wait()
	if p := e.currentPresenter(); p != nil {
		p.Close()
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
		common.Logger().Info("engine stopping", "frames", e.frames.Load())
	})
}

// handle launches the engine and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Updates scenes at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Update(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Each frame rasterizes the active scene and presents the framebuffer.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		stats, ok := e.RenderFrame()
		if ok {
			if p := e.currentPresenter(); p != nil {
				if err := p.Present(e.framebuffer); err != nil {
					common.Logger().Warn("present failed", "err", err)
				}
			}
			e.frames.Add(1)
		}

		if e.renderCallback != nil {
			e.renderCallback(dt, stats)
		}

		if e.profilingEnabled.Load() && e.profiler != nil {
			e.profiler.Tick(stats)
		}

		limit := e.renderFrameLimit
		if !ok && limit == 0 {
			limit = idleFrameDelay
		}
		if limit > 0 {
			if remaining := limit - time.Since(now); remaining > 0 {
				select {
				case <-e.quitChannel:
					return
				case <-time.After(remaining):
				}
			}
		}
	}
}

func (e *engine) Update(dt float32) {
	for _, s := range e.activeScenes() {
		s.Update(dt)
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
}

func (e *engine) RenderFrame() (raster.Stats, bool) {
	s := e.ActiveScene()
	if s == nil {
		return raster.Stats{}, false
	}
	return s.Render(e.framebuffer), true
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.scenesMu.Lock()
	e.width, e.height = width, height
	p := e.presenter
	e.scenesMu.Unlock()

	fw, fh := e.framebufferSize(width, height)
	e.framebuffer.Resize(fw, fh)
	if p != nil {
		p.Resize(width, height)
	}
	common.Logger().Debug("engine resized", "width", width, "height", height, "fb_width", fw, "fb_height", fh)
}

// framebufferSize divides the output size by the pixel scale, keeping at least one pixel.
func (e *engine) framebufferSize(width, height int) (int, int) {
	scale := max(e.pixelScale, 1)
	return max(width/scale, 1), max(height/scale, 1)
}

func (e *engine) currentPresenter() Presenter {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	return e.presenter
}

// bindInput points the window's input routing at the active scene.
func (e *engine) bindInput() {
	if e.window == nil {
		return
	}
	if s := e.ActiveScene(); s != nil {
		e.window.SetInput(s.Input())
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32, stats raster.Stats)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenesMu.Lock()
	e.scenes[key] = s
	e.scenesMu.Unlock()
	e.bindInput()
}

func (e *engine) RemoveScene(key int) {
	e.scenesMu.Lock()
	delete(e.scenes, key)
	e.scenesMu.Unlock()
	e.bindInput()
}

func (e *engine) Scene(key int) scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func (e *engine) ActiveScene() scene.Scene {
	active := e.activeScenes()
	if len(active) == 0 {
		return nil
	}
	return active[0]
}

// activeScenes returns active scenes in ascending key order.
func (e *engine) activeScenes() []scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			out = append(out, s)
		}
	}
	return out
}
