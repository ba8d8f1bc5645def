package terminal

import (
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
)

// Each braille cell covers a 2x4 block of framebuffer pixels.
const (
	cellWidth  = 2
	cellHeight = 4
)

// brailleBits maps a dot position [row][column] inside a cell to its bit in the U+2800 block.
var brailleBits = [cellHeight][cellWidth]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type brailleBuf struct {
	w, h int     // in cells
	m    []uint8 // per-cell 8-bit mask, row-major
}

func newBrailleBuf(w, h int) *brailleBuf {
	return &brailleBuf{w: w, h: h, m: make([]uint8, w*h)}
}

// setPixel sets a dot at pixel coords (2x4 per cell).
func (b *brailleBuf) setPixel(px, py int) {
	if px < 0 || py < 0 {
		return
	}
	cx, cy := px/cellWidth, py/cellHeight
	if cx >= b.w || cy >= b.h {
		return
	}
	b.m[cy*b.w+cx] |= brailleBits[py%cellHeight][px%cellWidth]
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	row := make([]rune, b.w)
	for y := range b.h {
		for x := range b.w {
			mask := b.m[y*b.w+x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

// Braille converts a framebuffer into lines of braille characters. A dot is raised for every
// pixel that differs from the framebuffer's clear value.
//
// Parameters:
//   - fb: the frame to convert
//
// Returns:
//   - []string: one string per row of cells
func Braille(fb *framebuffer.Framebuffer) []string {
	clear := fb.ClearValue()
	var lines []string
	fb.Draw(func(pixels []uint32, width, height int) {
		buf := newBrailleBuf(cellsFor(width, cellWidth), cellsFor(height, cellHeight))
		for y := range height {
			row := pixels[y*width : (y+1)*width]
			for x, p := range row {
				if p != clear {
					buf.setPixel(x, y)
				}
			}
		}
		lines = buf.toLines()
	})
	return lines
}

// CanvasSize returns the framebuffer size that maps exactly onto cols x rows cells.
//
// Parameters:
//   - cols, rows: terminal cells available for the canvas
//
// Returns:
//   - width, height: framebuffer dimensions in pixels
func CanvasSize(cols, rows int) (width, height int) {
	return max(cols, 0) * cellWidth, max(rows, 0) * cellHeight
}

func cellsFor(pixels, per int) int {
	return (pixels + per - 1) / per
}
