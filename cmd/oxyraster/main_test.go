package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/config"
	"github.com/Carmen-Shannon/oxy-raster/engine/loader"
	"github.com/Carmen-Shannon/oxy-raster/engine/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagOverrides(t *testing.T) {
	f, err := parseFlags([]string{"-mode", "snapshot", "-width", "32", "-out", "x.png"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg, err := loadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, config.PresenterSnapshot, cfg.Presenter)
	assert.Equal(t, 32, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "x.png", cfg.Snapshot.Path)

	_, err = loadConfig(flags{mode: "fax"})
	assert.ErrorIs(t, err, config.ErrInvalidPresenter)
}

func TestBuildScene(t *testing.T) {
	cfg := config.Default()
	cfg.Objects = append(cfg.Objects, config.ObjectConfig{Name: "floor", Mesh: "quad", Scale: [3]float32{2, 1, 2}})

	s, err := buildScene(cfg, loader.NewLoader(loader.BackendTypeGLTF), nil)
	require.NoError(t, err)
	assert.True(t, s.Active())
	assert.Equal(t, 2, s.Count())
	assert.NotNil(t, s.Camera().Controller())

	cfg.Objects[1].Mesh = "missing.obj"
	_, err = buildScene(cfg, loader.NewLoader(loader.BackendTypeGLTF), nil)
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestOptionMapping(t *testing.T) {
	w := config.Default().Window
	w.VSync = true
	w.Filter = config.FilterLinear
	assert.Len(t, rendererOptions(w), 3)

	opts := snapshotOptions(config.SnapshotConfig{Scale: 3, Filter: config.FilterLinear})
	assert.Equal(t, snapshot.Options{Scale: 3, Scaler: snapshot.ScalerBilinear}, opts)

	cfg := config.Default()
	cfg.Engine.ClearColor = "nope"
	_, err := engineOptions(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidColor)
}

func TestRunSnapshot(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "scene.toml")
	doc := `
log_level = "warn"

[snapshot]
ticks = 3
scale = 2

[[objects]]
mesh = "cube"
rotation_speed = [0.0, 0.5, 0.0]
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))
	out := filepath.Join(dir, "shots", "frame.png")

	var stderr bytes.Buffer
	err := run([]string{"-config", cfgPath, "-mode", "snapshot", "-out", out, "-width", "40", "-height", "30"}, &stderr)
	require.NoError(t, err, stderr.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestRunRejectsBadFlags(t *testing.T) {
	assert.Error(t, run([]string{"-nope"}, &bytes.Buffer{}))
}
