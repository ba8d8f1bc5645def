// Package framebuffer holds the color buffer the rasterizer draws into and converts it for presentation.
package framebuffer

import (
	"image"
	"image/color"
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

// Framebuffer is a width x height grid of packed 0xAARRGGBB pixels stored row-major.
// The pixel slice is handed to the rasterizer each frame and read back by presenters.
type Framebuffer struct {
	mu *sync.Mutex

	width, height int
	pixels        []uint32
	clear         uint32
}

// New allocates a framebuffer cleared to the given background value.
//
// Parameters:
//   - width, height: dimensions in pixels; negative values are treated as 0
//   - clear: packed 0xAARRGGBB value used by Clear
//
// Returns:
//   - *Framebuffer: the new framebuffer
func New(width, height int, clear uint32) *Framebuffer {
	fb := &Framebuffer{mu: &sync.Mutex{}, clear: clear}
	fb.resize(width, height)
	return fb
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.width
}

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.height
}

// Size returns width and height together so they are read consistently.
func (fb *Framebuffer) Size() (int, int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.width, fb.height
}

// Pixels returns the backing pixel slice. It is replaced by Resize, so callers should not keep it across frames.
func (fb *Framebuffer) Pixels() []uint32 {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.pixels
}

// At returns the pixel at (x, y), or 0 outside the buffer.
func (fb *Framebuffer) At(x, y int) uint32 {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 0
	}
	return fb.pixels[y*fb.width+x]
}

// Resize changes the dimensions and clears the buffer. Resizing to the current size only clears.
//
// Parameters:
//   - width, height: new dimensions in pixels
func (fb *Framebuffer) Resize(width, height int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.resize(width, height)
}

// Draw runs fn with the pixel slice and dimensions while holding the buffer lock,
// so a concurrent Resize cannot swap the slice out from under a frame.
//
// Parameters:
//   - fn: receives the row-major pixels and the dimensions
func (fb *Framebuffer) Draw(fn func(pixels []uint32, width, height int)) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fn(fb.pixels, fb.width, fb.height)
}

// Clear fills every pixel with the background value.
func (fb *Framebuffer) Clear() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fill(fb.pixels, fb.clear)
}

// ClearValue returns the background value.
func (fb *Framebuffer) ClearValue() uint32 {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.clear
}

// SetClearValue changes the background value used by later Clear calls.
func (fb *Framebuffer) SetClearValue(clear uint32) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.clear = clear
}

// Bytes returns a byte view of the pixels. On little-endian hosts each pixel reads as B, G, R, A,
// which matches the BGRA8Unorm texture format used for GPU upload.
// The view aliases the pixel slice and must not be modified.
//
// Returns:
//   - []byte: 4*width*height bytes
func (fb *Framebuffer) Bytes() []byte {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return common.SliceToBytes(fb.pixels)
}

// Lit reports whether the pixel at (x, y) differs from the background value.
func (fb *Framebuffer) Lit(x, y int) bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return false
	}
	return fb.pixels[y*fb.width+x] != fb.clear
}

// Image copies the framebuffer into a new RGBA image.
//
// Returns:
//   - *image.RGBA: the converted image
func (fb *Framebuffer) Image() *image.RGBA {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, p := range fb.pixels {
		c := Unpack(p)
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}

// Pack converts a color to the 0xAARRGGBB layout used by the framebuffer.
func Pack(c color.RGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack converts a 0xAARRGGBB pixel to a color.
func Unpack(p uint32) color.RGBA {
	return color.RGBA{
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
		A: uint8(p >> 24),
	}
}

// resize reallocates when growing and always clears. Caller must hold the mutex.
func (fb *Framebuffer) resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	n := width * height
	if cap(fb.pixels) < n {
		fb.pixels = make([]uint32, n)
	}
	fb.pixels = fb.pixels[:n]
	fb.width, fb.height = width, height
	fill(fb.pixels, fb.clear)
}

func fill(p []uint32, v uint32) {
	for i := range p {
		p[i] = v
	}
}
