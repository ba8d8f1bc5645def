// Package config loads the window, engine, camera and scene settings of an oxy-raster run.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/chewxy/math32"
)

// Presenter names.
const (
	PresenterWindow   = "window"
	PresenterTerminal = "terminal"
	PresenterSnapshot = "snapshot"
)

// Sampling filter names shared by the window presenter and snapshots.
const (
	FilterNearest = "nearest"
	FilterLinear  = "linear"
)

var (
	// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")
	// ErrInvalidPresenter is returned for a presenter name other than window, terminal or snapshot.
	ErrInvalidPresenter = errors.New("invalid presenter")
	// ErrInvalidSize is returned for non-positive window dimensions or scale factors.
	ErrInvalidSize = errors.New("invalid size")
	// ErrInvalidCamera is returned for a non-positive fov or near plane, or far not beyond near.
	ErrInvalidCamera = errors.New("invalid camera")
	// ErrInvalidObject is returned for an object without a mesh.
	ErrInvalidObject = errors.New("invalid object")
	// ErrInvalidColor is returned for colors not written as #RRGGBB or #AARRGGBB.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidLogLevel is returned for a level slog cannot parse.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidFilter is returned for a filter other than nearest or linear.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Config is the full run configuration.
type Config struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	Presenter string `toml:"presenter" yaml:"presenter"`

	Window   WindowConfig   `toml:"window" yaml:"window"`
	Engine   EngineConfig   `toml:"engine" yaml:"engine"`
	Camera   CameraConfig   `toml:"camera" yaml:"camera"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
	Snapshot SnapshotConfig `toml:"snapshot" yaml:"snapshot"`
	Objects  []ObjectConfig `toml:"objects" yaml:"objects"`
}

// WindowConfig sizes the output surface. Headless presenters use Width and Height too.
type WindowConfig struct {
	Title    string `toml:"title" yaml:"title"`
	Width    int    `toml:"width" yaml:"width"`
	Height   int    `toml:"height" yaml:"height"`
	VSync    bool   `toml:"vsync" yaml:"vsync"`
	Filter   string `toml:"filter" yaml:"filter"`
	Software bool   `toml:"software" yaml:"software"`
}

// EngineConfig controls the frame loop and rasterizer.
type EngineConfig struct {
	TickRate       float64 `toml:"tick_rate" yaml:"tick_rate"`
	FrameLimit     float64 `toml:"frame_limit" yaml:"frame_limit"`
	Profiling      bool    `toml:"profiling" yaml:"profiling"`
	ComputeWorkers int     `toml:"compute_workers" yaml:"compute_workers"`
	PixelScale     int     `toml:"pixel_scale" yaml:"pixel_scale"`
	ClearColor     string  `toml:"clear_color" yaml:"clear_color"`
	FillColor      string  `toml:"fill_color" yaml:"fill_color"`
}

// CameraConfig sets the perspective and the orbit controller.
type CameraConfig struct {
	Fov        float32    `toml:"fov" yaml:"fov"`
	Near       float32    `toml:"near" yaml:"near"`
	Far        float32    `toml:"far" yaml:"far"`
	Radius     float32    `toml:"radius" yaml:"radius"`
	Azimuth    float32    `toml:"azimuth" yaml:"azimuth"`
	Elevation  float32    `toml:"elevation" yaml:"elevation"`
	Target     [3]float32 `toml:"target" yaml:"target"`
	PanSpeed   float32    `toml:"pan_speed" yaml:"pan_speed"`
	OrbitSpeed float32    `toml:"orbit_speed" yaml:"orbit_speed"`
	ZoomSpeed  float32    `toml:"zoom_speed" yaml:"zoom_speed"`
}

// TerminalConfig tunes the terminal presenter.
type TerminalConfig struct {
	// HoldMillis is how long a key counts as held after its last press. Zero makes presses taps.
	HoldMillis int `toml:"hold_ms" yaml:"hold_ms"`
}

// SnapshotConfig controls PNG output.
type SnapshotConfig struct {
	Path   string `toml:"path" yaml:"path"`
	Scale  int    `toml:"scale" yaml:"scale"`
	Filter string `toml:"filter" yaml:"filter"`
	// Ticks is the number of scene updates run before the frame is captured.
	Ticks int `toml:"ticks" yaml:"ticks"`
}

// ObjectConfig places one mesh in the scene.
type ObjectConfig struct {
	Name string `toml:"name" yaml:"name"`
	// Mesh is a built-in name (cube, tetrahedron, quad) or a .gltf/.glb path.
	Mesh          string     `toml:"mesh" yaml:"mesh"`
	Position      [3]float32 `toml:"position" yaml:"position"`
	Rotation      [3]float32 `toml:"rotation" yaml:"rotation"`
	Scale         [3]float32 `toml:"scale" yaml:"scale"`
	RotationSpeed [3]float32 `toml:"rotation_speed" yaml:"rotation_speed"`
	Disabled      bool       `toml:"disabled" yaml:"disabled"`
}

// Default returns the configuration used when no file is given: one spinning cube in a window.
//
// Returns:
//   - *Config: the default configuration
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Presenter: PresenterWindow,
		Window: WindowConfig{
			Title:  "oxy-raster",
			Width:  1280,
			Height: 720,
			Filter: FilterNearest,
		},
		Engine: EngineConfig{
			TickRate:   60,
			PixelScale: 1,
			ClearColor: "#FF1A1A1A",
			FillColor:  "#FFFFFFFF",
		},
		Camera: CameraConfig{
			Fov:        1.5,
			Near:       0.01,
			Far:        1000,
			Radius:     5,
			Azimuth:    math32.Pi,
			PanSpeed:   1,
			OrbitSpeed: 1,
			ZoomSpeed:  0.5,
		},
		Terminal: TerminalConfig{HoldMillis: 150},
		Snapshot: SnapshotConfig{
			Path:   "frame.png",
			Scale:  1,
			Filter: FilterNearest,
		},
		Objects: []ObjectConfig{
			{Name: "cube", Mesh: "cube", Scale: [3]float32{1, 1, 1}, RotationSpeed: [3]float32{0, 0.6, 0}},
		},
	}
}

// ApplyDefaults fills zero values left by a partial file with the defaults.
func (c *Config) ApplyDefaults() {
	d := Default()
	c.LogLevel = common.Coalesce(c.LogLevel, d.LogLevel)
	c.Presenter = strings.ToLower(common.Coalesce(c.Presenter, d.Presenter))

	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = common.Coalesce(c.Window.Width, d.Window.Width)
	c.Window.Height = common.Coalesce(c.Window.Height, d.Window.Height)
	c.Window.Filter = strings.ToLower(common.Coalesce(c.Window.Filter, d.Window.Filter))

	c.Engine.TickRate = common.Coalesce(c.Engine.TickRate, d.Engine.TickRate)
	c.Engine.PixelScale = common.Coalesce(c.Engine.PixelScale, d.Engine.PixelScale)
	c.Engine.ClearColor = common.Coalesce(c.Engine.ClearColor, d.Engine.ClearColor)
	c.Engine.FillColor = common.Coalesce(c.Engine.FillColor, d.Engine.FillColor)

	c.Camera.Fov = common.Coalesce(c.Camera.Fov, d.Camera.Fov)
	c.Camera.Near = common.Coalesce(c.Camera.Near, d.Camera.Near)
	c.Camera.Far = common.Coalesce(c.Camera.Far, d.Camera.Far)
	c.Camera.Radius = common.Coalesce(c.Camera.Radius, d.Camera.Radius)
	c.Camera.PanSpeed = common.Coalesce(c.Camera.PanSpeed, d.Camera.PanSpeed)
	c.Camera.OrbitSpeed = common.Coalesce(c.Camera.OrbitSpeed, d.Camera.OrbitSpeed)
	c.Camera.ZoomSpeed = common.Coalesce(c.Camera.ZoomSpeed, d.Camera.ZoomSpeed)

	c.Snapshot.Path = common.Coalesce(c.Snapshot.Path, d.Snapshot.Path)
	c.Snapshot.Scale = common.Coalesce(c.Snapshot.Scale, d.Snapshot.Scale)
	c.Snapshot.Filter = strings.ToLower(common.Coalesce(c.Snapshot.Filter, d.Snapshot.Filter))

	for i := range c.Objects {
		o := &c.Objects[i]
		o.Scale = common.Coalesce(o.Scale, [3]float32{1, 1, 1})
		o.Name = common.Coalesce(o.Name, o.Mesh)
	}
}

// Validate reports the first invalid setting.
//
// Returns:
//   - error: a wrapped sentinel error, or nil
func (c *Config) Validate() error {
	switch c.Presenter {
	case PresenterWindow, PresenterTerminal, PresenterSnapshot:
	default:
		return fmt.Errorf("presenter %q: %w", c.Presenter, ErrInvalidPresenter)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalidSize)
	}
	if c.Engine.PixelScale < 1 || c.Snapshot.Scale < 1 {
		return fmt.Errorf("pixel_scale %d, snapshot scale %d: %w", c.Engine.PixelScale, c.Snapshot.Scale, ErrInvalidSize)
	}
	for _, f := range []string{c.Window.Filter, c.Snapshot.Filter} {
		if f != FilterNearest && f != FilterLinear {
			return fmt.Errorf("filter %q: %w", f, ErrInvalidFilter)
		}
	}
	for _, col := range []string{c.Engine.ClearColor, c.Engine.FillColor} {
		if _, err := ParseColor(col); err != nil {
			return err
		}
	}

	if c.Camera.Fov <= 0 || c.Camera.Fov >= math32.Pi {
		return fmt.Errorf("fov %v: %w", c.Camera.Fov, ErrInvalidCamera)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("near %v far %v: %w", c.Camera.Near, c.Camera.Far, ErrInvalidCamera)
	}

	for i, o := range c.Objects {
		if strings.TrimSpace(o.Mesh) == "" {
			return fmt.Errorf("object %d (%s): missing mesh: %w", i, o.Name, ErrInvalidObject)
		}
	}
	return nil
}

// Level parses LogLevel.
//
// Returns:
//   - slog.Level: the parsed level
//   - error: ErrInvalidLogLevel when unparseable
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, ErrInvalidLogLevel)
	}
	return l, nil
}

// ParseColor parses #RRGGBB (opaque) or #AARRGGBB into a packed 0xAARRGGBB value.
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - uint32: the packed color
//   - error: ErrInvalidColor when malformed
func ParseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return 0, fmt.Errorf("color %q: %w", s, ErrInvalidColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, ErrInvalidColor)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return uint32(v), nil
}
