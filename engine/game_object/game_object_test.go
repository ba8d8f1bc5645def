package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	obj := NewGameObject()
	assert.True(t, obj.Enabled())
	sx, sy, sz := obj.Scale()
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32{sx, sy, sz})
	assert.Nil(t, obj.Model())

	var identity [16]float32
	common.Identity(identity[:])
	assert.Equal(t, identity, obj.Transform())
}

func TestBuilderOptions(t *testing.T) {
	cube := model.Cube()
	obj := NewGameObject(
		WithID(7),
		WithName("crate"),
		WithModel(cube),
		WithEnabled(false),
		WithPosition(1, 2, 3),
		WithRotation(0, 0.5, 0),
		WithScale(2, 2, 2),
		WithRotationSpeed(0, 1, 0),
	)
	assert.Equal(t, uint64(7), obj.ID())
	assert.Equal(t, "crate", obj.Name())
	assert.Same(t, cube, obj.Model())
	assert.False(t, obj.Enabled())

	x, y, z := obj.Position()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{x, y, z})
	_, ry, _ := obj.Rotation()
	assert.Equal(t, float32(0.5), ry)
}

func TestTransformPlacesVertices(t *testing.T) {
	obj := NewGameObject(WithPosition(1, 2, 3), WithScale(2, 2, 2))
	m := obj.Transform()
	p := common.Vec3{X: 0.5, Y: 0, Z: -0.5}.TransformPoint(&m)
	assert.InDelta(t, 2, p.X, 1e-6)
	assert.InDelta(t, 2, p.Y, 1e-6)
	assert.InDelta(t, 2, p.Z, 1e-6)

	obj.SetRotation(0, math32.Pi/2, 0)
	m = obj.Transform()
	p = common.Vec3{X: 1, Y: 0, Z: 0}.TransformPoint(&m)
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 1, p.Z, 1e-5, "+X rotates onto -Z about Y")
}

func TestUpdateSpins(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(0, 0.6, 0))
	for range 10 {
		obj.Update(0.1)
	}
	_, ry, _ := obj.Rotation()
	assert.InDelta(t, 0.6, ry, 1e-5)

	obj.SetRotationSpeed(0, 2*math32.Pi, 0)
	obj.Update(1.25)
	_, ry, _ = obj.Rotation()
	assert.InDelta(t, math32.Mod(0.6+2.5*math32.Pi, 2*math32.Pi), ry, 1e-4)
	assert.Less(t, ry, 2*math32.Pi)

	still := NewGameObject(WithRotation(1, 2, 3))
	still.Update(5)
	rx, ry2, rz := still.Rotation()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{rx, ry2, rz})
}
