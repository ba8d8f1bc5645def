package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/input"
	"github.com/stretchr/testify/assert"
)

// headless builds an engineWindow without a platform window so dispatch can be tested.
func headless(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{}
	for _, opt := range options {
		opt(w)
	}
	w.running.Store(true)
	return w
}

func TestKeyEventsReachInputAndCallbacks(t *testing.T) {
	in := input.NewManager()
	w := headless(WithInput(in))

	var down, up []uint32
	w.SetKeyDownCallback(func(k uint32) { down = append(down, k) })
	w.SetKeyUpCallback(func(k uint32) { up = append(up, k) })

	w.keyDown(common.KeyW)
	assert.True(t, in.IsHeld(common.KeyW))
	w.keyUp(common.KeyW)
	assert.False(t, in.IsHeld(common.KeyW))
	assert.Equal(t, []uint32{common.KeyW}, down)
	assert.Equal(t, []uint32{common.KeyW}, up)
}

func TestScrollAndFocusLoss(t *testing.T) {
	in := input.NewManager()
	w := headless()
	w.SetInput(in)

	var scrolled float32
	w.SetScrollCallback(func(d float32) { scrolled += d })
	w.scroll(2)
	assert.Equal(t, float32(2), scrolled)

	w.keyDown(common.KeyA)
	w.focusLost()
	assert.Empty(t, in.Held())
	assert.Zero(t, in.ConsumeScroll())
}

func TestResizeUpdatesDimensions(t *testing.T) {
	w := headless(WithWidth(640), WithHeight(480))
	assert.Equal(t, 640, w.Width())

	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })
	w.resized(800, 600)
	assert.Equal(t, [2]int{800, 600}, got)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
}

func TestRequestCloseWithoutPlatform(t *testing.T) {
	w := headless()
	assert.True(t, w.IsRunning())
	w.RequestClose()
	assert.False(t, w.IsRunning())

	assert.ErrorIs(t, w.Close(), errNotInitialized)
	assert.Nil(t, w.SurfaceDescriptor())

	w.running.Store(true)
	w.ProcessMessages()
	assert.False(t, w.IsRunning(), "loop stops when there is no platform window")
}

func TestBuilderOptions(t *testing.T) {
	w := headless(WithTitle("demo"), WithWidth(320), WithHeight(200), WithSizeLimits(100, 80, 0, 0))
	assert.Equal(t, "demo", w.title)
	assert.Equal(t, 320, w.Width())
	assert.Equal(t, 200, w.Height())
	assert.Equal(t, [4]int{100, 80, 0, 0}, [4]int{w.minWidth, w.minHeight, w.maxWidth, w.maxHeight})
}
