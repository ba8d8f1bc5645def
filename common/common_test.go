package common

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerspectiveDepthRange(t *testing.T) {
	var m [16]float32
	Perspective(m[:], 1.5, 2, 0.5, 100)

	ndc, w := ProjectPoint(&m, Vec3{Z: -0.5})
	assert.InDelta(t, 0, ndc.Z, 1e-6)
	assert.InDelta(t, 0.5, w, 1e-6)

	ndc, w = ProjectPoint(&m, Vec3{Z: -100})
	assert.InDelta(t, 1, ndc.Z, 1e-5)
	assert.InDelta(t, 100, w, 1e-4)

	// Points behind the eye have negative w.
	_, w = ProjectPoint(&m, Vec3{Z: 1})
	assert.Negative(t, w)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	var m [16]float32
	LookAt(m[:], 0, 0, -5, 0, 0, 0, 0, 1, 0)

	eye := Vec3{Z: -5}.TransformPoint(&m)
	assert.InDelta(t, 0, eye.X, 1e-6)
	assert.InDelta(t, 0, eye.Y, 1e-6)
	assert.InDelta(t, 0, eye.Z, 1e-6)

	target := Vec3{}.TransformPoint(&m)
	assert.InDelta(t, -5, target.Z, 1e-5)
}

func TestBuildModelMatrix(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0, math32.Pi/2, 0, 2, 2, 2)

	p := Vec3{X: 1}.TransformPoint(&m)
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 1, p.Z, 1e-5)

	tri := Triangle3{V0: Vec3{}, V1: Vec3{Y: 1}, V2: Vec3{Z: 1}}.ApplyTransform(&m)
	assert.InDelta(t, 4, tri.V1.Y, 1e-5)
	assert.InDelta(t, 3, tri.V2.X, 1e-5)
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], 4, 5, 6, 0.3, 0.2, 0.1, 1, 2, 3)
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
}

func TestCoalesceAndClamp(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, [3]float32{1, 1, 1}, Coalesce([3]float32{}, [3]float32{1, 1, 1}))

	assert.Equal(t, 5, Clamp(9, 1, 5))
	assert.Equal(t, float32(-1), Clamp(float32(-3), -1, 1))
	assert.Equal(t, 2, Clamp(2, 1, 5))
}

func TestSliceToBytes(t *testing.T) {
	b := SliceToBytes([]uint32{1, 2})
	assert.Len(t, b, 8)
	assert.Nil(t, SliceToBytes[uint32](nil))
}

func TestLoggerDefaultsToSilent(t *testing.T) {
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Info("hello", "n", 1)
	require.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "n=1")
}
