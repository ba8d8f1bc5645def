package framebuffer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const background = 0xFF000000

func TestNewIsCleared(t *testing.T) {
	fb := New(4, 3, background)
	w, h := fb.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
	require.Len(t, fb.Pixels(), 12)
	for _, p := range fb.Pixels() {
		assert.Equal(t, uint32(background), p)
	}
}

func TestResizeClears(t *testing.T) {
	fb := New(2, 2, background)
	fb.Pixels()[0] = 0xFFFFFFFF
	assert.True(t, fb.Lit(0, 0))

	fb.Resize(3, 5)
	assert.Equal(t, 3, fb.Width())
	assert.Equal(t, 5, fb.Height())
	assert.Len(t, fb.Pixels(), 15)
	assert.False(t, fb.Lit(0, 0))

	fb.Resize(-1, 4)
	assert.Equal(t, 0, fb.Width())
	assert.Empty(t, fb.Pixels())
}

func TestAtAndLitOutOfRange(t *testing.T) {
	fb := New(2, 2, background)
	assert.Zero(t, fb.At(-1, 0))
	assert.Zero(t, fb.At(2, 0))
	assert.False(t, fb.Lit(0, 5))
	assert.Equal(t, uint32(background), fb.At(1, 1))
}

func TestPackUnpack(t *testing.T) {
	c := color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}
	assert.Equal(t, uint32(0x78123456), Pack(c))
	assert.Equal(t, c, Unpack(0x78123456))
}

func TestBytesLittleEndianBGRA(t *testing.T) {
	fb := New(1, 1, 0xFF102030)
	b := fb.Bytes()
	require.Len(t, b, 4)
	assert.Equal(t, []byte{0x30, 0x20, 0x10, 0xFF}, b)
}

func TestImage(t *testing.T) {
	fb := New(2, 1, background)
	fb.Pixels()[1] = 0xFFFFFFFF

	img := fb.Image()
	assert.Equal(t, color.RGBA{A: 0xFF}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, img.RGBAAt(1, 0))
}

func TestClearValue(t *testing.T) {
	fb := New(2, 2, background)
	fb.SetClearValue(0xFF0000FF)
	fb.Clear()
	assert.Equal(t, uint32(0xFF0000FF), fb.At(1, 1))
	assert.Equal(t, uint32(0xFF0000FF), fb.ClearValue())
}

func TestDrawExposesPixels(t *testing.T) {
	fb := New(4, 3, 0)
	fb.Draw(func(pixels []uint32, width, height int) {
		assert.Equal(t, 4, width)
		assert.Equal(t, 3, height)
		require.Len(t, pixels, 12)
		pixels[1*width+2] = 0xFFFFFFFF
	})
	assert.True(t, fb.Lit(2, 1))
	assert.False(t, fb.Lit(1, 2))
}
