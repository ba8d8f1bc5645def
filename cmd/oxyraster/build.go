package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/config"
	"github.com/Carmen-Shannon/oxy-raster/engine"
	"github.com/Carmen-Shannon/oxy-raster/engine/camera"
	"github.com/Carmen-Shannon/oxy-raster/engine/game_object"
	"github.com/Carmen-Shannon/oxy-raster/engine/input"
	"github.com/Carmen-Shannon/oxy-raster/engine/loader"
	"github.com/Carmen-Shannon/oxy-raster/engine/raster"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/scene"
	"github.com/Carmen-Shannon/oxy-raster/engine/snapshot"
)

// newLogger builds the text logger installed with common.SetLogger.
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// buildCamera creates the perspective camera and its orbit controller.
func buildCamera(cfg config.CameraConfig, width, height int) camera.Camera {
	return camera.NewCamera(
		camera.WithFov(cfg.Fov),
		camera.WithNear(cfg.Near),
		camera.WithFar(cfg.Far),
		camera.WithScreenDimensions(width, height),
		camera.WithController(camera.NewCameraController(
			camera.WithRadius(cfg.Radius),
			camera.WithAzimuth(cfg.Azimuth),
			camera.WithElevation(cfg.Elevation),
			camera.WithTarget(cfg.Target[0], cfg.Target[1], cfg.Target[2]),
			camera.WithPanSpeed(cfg.PanSpeed),
			camera.WithOrbitSpeed(cfg.OrbitSpeed),
			camera.WithZoomSpeed(cfg.ZoomSpeed),
		)),
	)
}

// buildScene resolves every configured mesh and places it in a new active scene.
//
// Parameters:
//   - cfg: the loaded configuration
//   - ldr: the loader that resolves built-in names and model files
//   - in: the input manager driving the camera, or nil for a fresh one
//
// Returns:
//   - scene.Scene: the active scene
//   - error: mesh resolution or color errors
func buildScene(cfg *config.Config, ldr loader.Loader, in input.Manager) (scene.Scene, error) {
	fill, err := config.ParseColor(cfg.Engine.FillColor)
	if err != nil {
		return nil, err
	}

	objects := make([]game_object.GameObject, 0, len(cfg.Objects))
	for _, o := range cfg.Objects {
		m, err := ldr.Resolve(o.Mesh)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", o.Name, err)
		}
		objects = append(objects, game_object.NewGameObject(
			game_object.WithName(o.Name),
			game_object.WithModel(m),
			game_object.WithEnabled(!o.Disabled),
			game_object.WithPosition(o.Position[0], o.Position[1], o.Position[2]),
			game_object.WithRotation(o.Rotation[0], o.Rotation[1], o.Rotation[2]),
			game_object.WithScale(o.Scale[0], o.Scale[1], o.Scale[2]),
			game_object.WithRotationSpeed(o.RotationSpeed[0], o.RotationSpeed[1], o.RotationSpeed[2]),
		))
	}

	options := []scene.SceneBuilderOption{
		scene.WithActive(true),
		scene.WithObjects(objects...),
		scene.WithRasterizer(raster.NewRasterizer(raster.WithFill(fill))),
	}
	if in != nil {
		options = append(options, scene.WithInput(in))
	}
	if cfg.Engine.ComputeWorkers > 0 {
		options = append(options, scene.WithComputeWorkers(cfg.Engine.ComputeWorkers))
	}

	cam := buildCamera(cfg.Camera, cfg.Window.Width, cfg.Window.Height)
	return scene.NewScene(cfg.Window.Title, cam, options...), nil
}

// engineOptions maps the engine section onto builder options.
func engineOptions(cfg *config.Config) ([]engine.EngineBuilderOption, error) {
	clearColor, err := config.ParseColor(cfg.Engine.ClearColor)
	if err != nil {
		return nil, err
	}
	return []engine.EngineBuilderOption{
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithPixelScale(cfg.Engine.PixelScale),
		engine.WithClearColor(clearColor),
	}, nil
}

func rendererOptions(cfg config.WindowConfig) []renderer.RendererBuilderOption {
	mode := renderer.PresentModeUncapped
	if cfg.VSync {
		mode = renderer.PresentModeVSync
	}
	filter := renderer.FilterNearest
	if cfg.Filter == config.FilterLinear {
		filter = renderer.FilterLinear
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithFilterMode(filter),
		renderer.WithForceSoftwareRenderer(cfg.Software),
	}
}

func snapshotOptions(cfg config.SnapshotConfig) snapshot.Options {
	opts := snapshot.Options{Scale: cfg.Scale}
	if cfg.Filter == config.FilterLinear {
		opts.Scaler = snapshot.ScalerBilinear
	}
	return opts
}

func holdTime(cfg config.TerminalConfig) time.Duration {
	return time.Duration(cfg.HoldMillis) * time.Millisecond
}
