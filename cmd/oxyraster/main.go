// Command oxyraster renders a scene of triangle meshes with the software rasterizer and shows it in
// a window, in the terminal, or writes a single frame to a PNG file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/config"
	"github.com/Carmen-Shannon/oxy-raster/engine"
	"github.com/Carmen-Shannon/oxy-raster/engine/loader"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/snapshot"
	"github.com/Carmen-Shannon/oxy-raster/engine/terminal"
	"github.com/Carmen-Shannon/oxy-raster/engine/window"
)

// errNoFrame is returned in snapshot mode when no scene produced a frame.
var errNoFrame = errors.New("no active scene to render")

type flags struct {
	config  string
	mode    string
	out     string
	logFile string
	width   int
	height  int
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("oxyraster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "path to a .toml or .yaml config file")
	fs.StringVar(&f.mode, "mode", "", "presenter override: window, terminal or snapshot")
	fs.StringVar(&f.out, "out", "", "snapshot output path override")
	fs.StringVar(&f.logFile, "log", "", "write logs to this file (terminal mode discards logs otherwise)")
	fs.IntVar(&f.width, "width", 0, "output width override")
	fs.IntVar(&f.height, "height", 0, "output height override")
	return f, fs.Parse(args)
}

// loadConfig loads the config file and applies the command line overrides.
func loadConfig(f flags) (*config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	cfg.Presenter = common.Coalesce(f.mode, cfg.Presenter)
	cfg.Snapshot.Path = common.Coalesce(f.out, cfg.Snapshot.Path)
	cfg.Window.Width = common.Coalesce(f.width, cfg.Window.Width)
	cfg.Window.Height = common.Coalesce(f.height, cfg.Window.Height)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "oxyraster:", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logOut := stderr
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer file.Close()
		logOut = file
	} else if cfg.Presenter == config.PresenterTerminal {
		// The terminal owns the screen.
		logOut = io.Discard
	}
	logger, err := newLogger(logOut, cfg)
	if err != nil {
		return err
	}
	common.SetLogger(logger)
	defer common.SetLogger(nil)

	ldr := loader.NewLoader(loader.BackendTypeGLTF)
	switch cfg.Presenter {
	case config.PresenterTerminal:
		return runTerminal(cfg, ldr)
	case config.PresenterSnapshot:
		return runSnapshot(cfg, ldr)
	default:
		return runWindow(cfg, ldr)
	}
}

func runWindow(cfg *config.Config, ldr loader.Loader) error {
	opts, err := engineOptions(cfg)
	if err != nil {
		return err
	}
	s, err := buildScene(cfg, ldr, nil)
	if err != nil {
		return err
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	eng := engine.NewEngine(append(opts, engine.WithWindow(win), engine.WithScene(0, s))...)
	eng.SetPresenter(renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOptions(cfg.Window)...))

	common.Logger().Info("starting", "presenter", cfg.Presenter, "objects", s.Count())
	eng.Run()
	return nil
}

func runTerminal(cfg *config.Config, ldr loader.Loader) error {
	opts, err := engineOptions(cfg)
	if err != nil {
		return err
	}
	s, err := buildScene(cfg, ldr, nil)
	if err != nil {
		return err
	}

	term := terminal.NewTerminal(s.Input(),
		terminal.WithTitle(cfg.Window.Title),
		terminal.WithHoldTime(holdTime(cfg.Terminal)),
	)
	// Braille dots map one to one onto framebuffer pixels.
	opts = append(opts,
		engine.WithPixelScale(1),
		engine.WithSize(cfg.Window.Width, cfg.Window.Height),
		engine.WithScene(0, s),
		engine.WithPresenter(term),
	)
	eng := engine.NewEngine(opts...)
	term.SetResizeCallback(eng.Resize)
	term.SetQuitCallback(eng.Quit)

	eng.Start()
	runErr := term.Run()
	eng.Quit()
	eng.Wait()
	return runErr
}

// runSnapshot advances the scene a fixed number of ticks and writes one frame.
func runSnapshot(cfg *config.Config, ldr loader.Loader) error {
	opts, err := engineOptions(cfg)
	if err != nil {
		return err
	}
	s, err := buildScene(cfg, ldr, nil)
	if err != nil {
		return err
	}
	eng := engine.NewEngine(append(opts, engine.WithSize(cfg.Window.Width, cfg.Window.Height), engine.WithScene(0, s))...)

	dt := float32(1 / cfg.Engine.TickRate)
	for range cfg.Snapshot.Ticks {
		eng.Update(dt)
	}
	stats, ok := eng.RenderFrame()
	if !ok {
		return errNoFrame
	}
	if err := snapshot.Write(cfg.Snapshot.Path, eng.Framebuffer(), snapshotOptions(cfg.Snapshot)); err != nil {
		return err
	}
	common.Logger().Info("snapshot written", "path", cfg.Snapshot.Path,
		"triangles", stats.Triangles, "written", stats.Written)
	return nil
}
