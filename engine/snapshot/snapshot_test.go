package snapshot

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() *framebuffer.Framebuffer {
	fb := framebuffer.New(3, 2, 0xFF000000)
	fb.Draw(func(pixels []uint32, width, _ int) {
		pixels[1*width+2] = 0xFFFF8000
	})
	return fb
}

func TestEncodeRoundTripsPixels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testFrame(), Options{}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}, color.RGBAModel.Convert(img.At(2, 1)))
	assert.Equal(t, color.RGBA{A: 0xFF}, color.RGBAModel.Convert(img.At(0, 0)))
}

func TestImageNearestUpscale(t *testing.T) {
	img, err := Image(testFrame(), Options{Scale: 4})
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())

	lit := color.RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}
	for y := 4; y < 8; y++ {
		for x := 8; x < 12; x++ {
			assert.Equal(t, lit, img.RGBAAt(x, y), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, color.RGBA{A: 0xFF}, img.RGBAAt(7, 4))
}

func TestImageErrors(t *testing.T) {
	_, err := Image(framebuffer.New(0, 0, 0), Options{})
	assert.ErrorIs(t, err, ErrEmptyFrame)

	_, err = Image(testFrame(), Options{Scale: -2})
	assert.ErrorIs(t, err, ErrInvalidScale)
}

func TestWriteCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frame.png")
	require.NoError(t, Write(path, testFrame(), Options{Scale: 2, Scaler: ScalerBilinear}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}
