// Package snapshot writes rendered frames to PNG files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"golang.org/x/image/draw"
)

var (
	// ErrEmptyFrame is returned when the framebuffer has no pixels.
	ErrEmptyFrame = errors.New("framebuffer is empty")
	// ErrInvalidScale is returned for a scale factor below 1.
	ErrInvalidScale = errors.New("scale must be at least 1")
)

// Scaler resamples the frame when Scale is above 1.
type Scaler int

const (
	// ScalerNearest keeps hard pixel edges.
	ScalerNearest Scaler = iota
	// ScalerBilinear smooths edges when upscaling.
	ScalerBilinear
)

// Options configure Encode and Write.
type Options struct {
	// Scale is an integer upscale factor. Zero means 1.
	Scale int
	// Scaler picks the resampling filter.
	Scaler Scaler
}

// Image converts the framebuffer to an RGBA image, upscaled by opts.Scale.
//
// Parameters:
//   - fb: the frame to convert
//   - opts: scaling options
//
// Returns:
//   - *image.RGBA: the converted image
//   - error: ErrEmptyFrame or ErrInvalidScale
func Image(fb *framebuffer.Framebuffer, opts Options) (*image.RGBA, error) {
	scale := common.Coalesce(opts.Scale, 1)
	if scale < 1 {
		return nil, fmt.Errorf("scale %d: %w", opts.Scale, ErrInvalidScale)
	}

	src := fb.Image()
	if src.Bounds().Empty() {
		return nil, ErrEmptyFrame
	}
	if scale == 1 {
		return src, nil
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	interp := draw.Interpolator(draw.NearestNeighbor)
	if opts.Scaler == ScalerBilinear {
		interp = draw.ApproxBiLinear
	}
	interp.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// Encode writes the framebuffer as PNG.
//
// Parameters:
//   - w: destination
//   - fb: the frame to encode
//   - opts: scaling options
//
// Returns:
//   - error: conversion or encoding failure
func Encode(w io.Writer, fb *framebuffer.Framebuffer, opts Options) error {
	img, err := Image(fb, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Write encodes the framebuffer to a PNG file, creating parent directories as needed.
//
// Parameters:
//   - path: output file path
//   - fb: the frame to encode
//   - opts: scaling options
//
// Returns:
//   - error: file or encoding failure
func Write(path string, fb *framebuffer.Framebuffer, opts Options) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()

	if err := Encode(f, fb, opts); err != nil {
		return err
	}
	w, h := fb.Size()
	common.Logger().Info("snapshot written", "path", path, "width", w, "height", h, "scale", common.Coalesce(opts.Scale, 1))
	return nil
}
