package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based presentation backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how presented frames are delivered to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// FilterMode controls how the framebuffer texture is sampled when it is stretched to the surface.
type FilterMode int

const (
	// FilterNearest keeps hard pixel edges. This is the default.
	FilterNearest FilterMode = iota

	// FilterLinear blends neighbouring pixels when the surface is larger than the framebuffer.
	FilterLinear
)

// blitVertexCount is the vertex count of the fullscreen triangle drawn by the blit shader.
const blitVertexCount = 3

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// wgpuPresentMode maps a PresentMode to the surface present mode.
func wgpuPresentMode(mode PresentMode) wgpu.PresentMode {
	switch mode {
	case PresentModeVSync:
		return wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		return wgpu.PresentModeImmediate
	}
}

// wgpuFilterMode maps a FilterMode to the sampler filter.
func wgpuFilterMode(mode FilterMode) wgpu.FilterMode {
	if mode == FilterLinear {
		return wgpu.FilterModeLinear
	}
	return wgpu.FilterModeNearest
}

// frameExtent converts framebuffer dimensions to a texture extent.
// The second result is false when either dimension is empty and nothing can be uploaded.
func frameExtent(width, height int) (wgpu.Extent3D, bool) {
	if width <= 0 || height <= 0 {
		return wgpu.Extent3D{}, false
	}
	return wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}, true
}
