package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-raster/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	window.Window
	width, height int
}

func (w *fakeWindow) Width() int  { return w.width }
func (w *fakeWindow) Height() int { return w.height }

type fakeBackend struct {
	configured  [][2]int
	presentMode PresentMode
	uploads     [][]byte
	sizes       [][2]int
	blits       int
	releases    int
	blitErr     error
}

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.configured = append(f.configured, [2]int{width, height})
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }

func (f *fakeBackend) Upload(pixels []byte, width, height int) error {
	f.uploads = append(f.uploads, append([]byte(nil), pixels...))
	f.sizes = append(f.sizes, [2]int{width, height})
	return nil
}

func (f *fakeBackend) Blit() error {
	f.blits++
	return f.blitErr
}

func (f *fakeBackend) Release() { f.releases++ }

func newFakeRenderer(t *testing.T, options ...RendererBuilderOption) (Renderer, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	r := NewRenderer(BackendTypeWGPU, &fakeWindow{width: 320, height: 200}, append([]RendererBuilderOption{WithBackend(fb)}, options...)...)
	return r, fb
}

func TestNewRendererConfiguresSurface(t *testing.T) {
	_, fb := newFakeRenderer(t, WithPresentMode(PresentModeVSync))
	assert.Equal(t, [][2]int{{320, 200}}, fb.configured)
	assert.Equal(t, PresentModeVSync, fb.presentMode)
}

func TestPresentUploadsBGRA(t *testing.T) {
	r, backend := newFakeRenderer(t)
	frame := framebuffer.New(2, 1, 0xFF000000)
	frame.Draw(func(pixels []uint32, _, _ int) {
		pixels[1] = 0xFF112233
	})

	require.NoError(t, r.Present(frame))
	require.Len(t, backend.uploads, 1)
	assert.Equal(t, [2]int{2, 1}, backend.sizes[0])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xFF, 0x33, 0x22, 0x11, 0xFF}, backend.uploads[0])
	assert.Equal(t, 1, backend.blits)
}

func TestPresentSkipsEmptyFrame(t *testing.T) {
	r, backend := newFakeRenderer(t)
	require.NoError(t, r.Present(framebuffer.New(0, 0, 0)))
	assert.Empty(t, backend.uploads)
	assert.Zero(t, backend.blits)
}

func TestPresentWrapsBackendError(t *testing.T) {
	r, backend := newFakeRenderer(t)
	backend.blitErr = errSurfaceNotConfigured

	err := r.Present(framebuffer.New(1, 1, 0))
	assert.True(t, errors.Is(err, errSurfaceNotConfigured))
}

func TestCloseIsIdempotent(t *testing.T) {
	r, backend := newFakeRenderer(t)
	r.Close()
	r.Close()
	assert.Equal(t, 1, backend.releases)

	assert.ErrorIs(t, r.Present(framebuffer.New(1, 1, 0)), ErrClosed)

	r.Resize(10, 10)
	assert.Len(t, backend.configured, 1, "resize after close is ignored")
}

func TestModeMapping(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, wgpuPresentMode(PresentModeVSync))
	assert.Equal(t, wgpu.PresentModeImmediate, wgpuPresentMode(PresentModeUncapped))
	assert.Equal(t, wgpu.FilterModeNearest, wgpuFilterMode(FilterNearest))
	assert.Equal(t, wgpu.FilterModeLinear, wgpuFilterMode(FilterLinear))

	extent, ok := frameExtent(4, 3)
	require.True(t, ok)
	assert.Equal(t, wgpu.Extent3D{Width: 4, Height: 3, DepthOrArrayLayers: 1}, extent)

	_, ok = frameExtent(0, 3)
	assert.False(t, ok)
}

func TestBlitPipelineFromEmbeddedShaders(t *testing.T) {
	blit := newBlitPipeline()
	require.NoError(t, blit.Validate())

	assert.Equal(t, "vs_main", blit.Shader(shader.ShaderTypeVertex).EntryPoint())
	assert.Equal(t, "fs_main", blit.Shader(shader.ShaderTypeFragment).EntryPoint())
	assert.Equal(t, wgpu.CullModeNone, blit.CullMode())
	assert.Nil(t, blit.BlendState())

	layouts := blit.BindGroupLayoutDescriptors()
	require.Len(t, layouts, 1)
	entries := layouts[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[1].Sampler.Type)
	for _, e := range entries {
		assert.Equal(t, wgpu.ShaderStageFragment, e.Visibility)
	}

	desc := blit.Descriptor(nil, nil, nil, frameTextureFormat)
	require.Len(t, desc.Fragment.Targets, 1)
	assert.Equal(t, frameTextureFormat, desc.Fragment.Targets[0].Format)
	assert.Equal(t, wgpu.ColorWriteMaskAll, desc.Fragment.Targets[0].WriteMask)
}

func TestFrameBindGroupEntriesFollowShaderBindings(t *testing.T) {
	entries, err := frameBindGroupEntries(newBlitPipeline(), nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, uint32(1), entries[1].Binding)
}
