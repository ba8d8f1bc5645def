package input

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/stretchr/testify/assert"
)

func TestHeldKeys(t *testing.T) {
	m := NewManager()
	m.KeyDown(common.KeyW)
	m.KeyDown(common.KeyA)
	assert.True(t, m.IsHeld(common.KeyW))
	assert.Equal(t, []uint32{common.KeyA, common.KeyW}, m.Held())

	m.KeyUp(common.KeyW)
	assert.False(t, m.IsHeld(common.KeyW))
	m.EndUpdate()
	assert.True(t, m.IsHeld(common.KeyA), "held keys survive updates")
}

func TestTapLastsOneUpdate(t *testing.T) {
	m := NewManager()
	m.Tap(common.KeyD)
	assert.True(t, m.IsHeld(common.KeyD))
	m.EndUpdate()
	assert.False(t, m.IsHeld(common.KeyD))
}

func TestAxis(t *testing.T) {
	m := NewManager()
	assert.Equal(t, float32(0), m.Axis(common.KeyS, common.KeyW))
	m.KeyDown(common.KeyW)
	assert.Equal(t, float32(1), m.Axis(common.KeyS, common.KeyW))
	m.KeyDown(common.KeyS)
	assert.Equal(t, float32(0), m.Axis(common.KeyS, common.KeyW))
	m.KeyUp(common.KeyW)
	assert.Equal(t, float32(-1), m.Axis(common.KeyS, common.KeyW))
}

func TestScrollAccumulatesAndResets(t *testing.T) {
	m := NewManager()
	m.Scroll(1)
	m.Scroll(0.5)
	assert.Equal(t, float32(1.5), m.ConsumeScroll())
	assert.Equal(t, float32(0), m.ConsumeScroll())

	m.Scroll(2)
	m.KeyDown(common.KeySpace)
	m.Reset()
	assert.Equal(t, float32(0), m.ConsumeScroll())
	assert.Empty(t, m.Held())
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(code uint32) {
			defer wg.Done()
			for range 100 {
				m.KeyDown(code)
				_ = m.IsHeld(code)
				m.KeyUp(code)
			}
		}(uint32(common.KeyA + i))
	}
	wg.Wait()
	assert.Empty(t, m.Held())
}
