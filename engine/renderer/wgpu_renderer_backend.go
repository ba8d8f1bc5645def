package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// blitVertexSource emits one oversized triangle covering the whole render target.
//
//go:embed assets/blit_vs.wgsl
var blitVertexSource string

// blitFragmentSource samples the frame texture.
//
//go:embed assets/blit_fs.wgsl
var blitFragmentSource string

const (
	blitPipelineKey = "blit"
	blitTextureVar  = "frameTexture"
	blitSamplerVar  = "frameSampler"
)

// frameTextureFormat matches framebuffer.Framebuffer.Bytes on little-endian hosts.
const frameTextureFormat = wgpu.TextureFormatBGRA8Unorm

var errSurfaceNotConfigured = errors.New("surface not configured")

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	surfaceWidth  uint32
	surfaceHeight uint32
	configured    bool

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	filterMode  wgpu.FilterMode

	// Blit pipeline, created once the surface format is known.
	blit            pipeline.Pipeline
	bindGroupLayout *wgpu.BindGroupLayout
	sampler         *wgpu.Sampler

	// Frame texture, recreated whenever the framebuffer size changes.
	frameTexture   *wgpu.Texture
	frameView      *wgpu.TextureView
	frameBindGroup *wgpu.BindGroup
	frameExtent    wgpu.Extent3D
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	// Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Upload writes BGRA pixel bytes into the frame texture, recreating it when the size changes.
	//
	// Parameters:
	//   - pixels: width*height*4 bytes, row-major
	//   - width, height: dimensions in pixels
	//
	// Returns:
	//   - error: an error if the texture could not be created
	Upload(pixels []byte, width, height int) error

	// Blit acquires the next swapchain texture, draws the frame texture over it, submits and presents.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired or the commands could not be encoded
	Blit() error

	// Release frees every GPU object held by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, filter FilterMode) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		filterMode:  wgpuFilterMode(filter),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = wgpuPresentMode(mode)
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.surfaceWidth, b.surfaceHeight = uint32(width), uint32(height)
	b.configured = true

	if b.blit == nil {
		if err := b.createBlitPipeline(); err != nil {
			panic(fmt.Errorf("failed to create blit pipeline: %w", err))
		}
	}
}

// newBlitPipeline describes the fullscreen blit: no culling, one triangle list, no blending.
//
// Returns:
//   - pipeline.Pipeline: the pipeline configuration, not yet created on the device
func newBlitPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(blitPipelineKey,
		pipeline.WithVertexShader(shader.NewShader("blit_vs", shader.ShaderTypeVertex, blitVertexSource)),
		pipeline.WithFragmentShader(shader.NewShader("blit_fs", shader.ShaderTypeFragment, blitFragmentSource)),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithBlendEnabled(false),
	)
}

// createBlitPipeline creates the shader modules, bind group layout, sampler and render pipeline
// for the fullscreen blit. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createBlitPipeline() error {
	blit := newBlitPipeline()
	if err := blit.Validate(); err != nil {
		return err
	}
	vertexShader := blit.Shader(shader.ShaderTypeVertex)
	fragmentShader := blit.Shader(shader.ShaderTypeFragment)

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return fmt.Errorf("vertex module: %w", err)
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return fmt.Errorf("fragment module: %w", err)
	}
	defer fs.Release()

	// The blit samples a single group.
	desc := blit.BindGroupLayoutDescriptors()[0]
	desc.Label = "Blit Bind Group Layout"
	layout, err := b.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return fmt.Errorf("bind group layout: %w", err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            blit.PipelineKey() + " Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		layout.Release()
		return fmt.Errorf("pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(blit.Descriptor(pipelineLayout, vs, fs, b.surfaceFormat))
	if err != nil {
		layout.Release()
		return fmt.Errorf("render pipeline: %w", err)
	}
	blit.SetRenderPipeline(created)

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Blit Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     b.filterMode,
		MinFilter:     b.filterMode,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		blit.Release()
		layout.Release()
		return fmt.Errorf("sampler: %w", err)
	}

	b.blit = blit
	b.bindGroupLayout = layout
	b.sampler = samp
	return nil
}

// frameBindGroupEntries binds the frame view and sampler at the slots the fragment shader declares.
func frameBindGroupEntries(blit pipeline.Pipeline, view *wgpu.TextureView, samp *wgpu.Sampler) ([]wgpu.BindGroupEntry, error) {
	fragmentShader := blit.Shader(shader.ShaderTypeFragment)
	texBinding, ok := fragmentShader.BindGroupFromVarName(0, blitTextureVar)
	if !ok {
		return nil, fmt.Errorf("blit shader declares no %s", blitTextureVar)
	}
	sampBinding, ok := fragmentShader.BindGroupFromVarName(0, blitSamplerVar)
	if !ok {
		return nil, fmt.Errorf("blit shader declares no %s", blitSamplerVar)
	}
	return []wgpu.BindGroupEntry{
		{Binding: uint32(texBinding), TextureView: view},
		{Binding: uint32(sampBinding), Sampler: samp},
	}, nil
}

func (b *wgpuRendererBackendImpl) Upload(pixels []byte, width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	extent, ok := frameExtent(width, height)
	if !ok {
		return nil
	}
	if len(pixels) < width*height*4 {
		return fmt.Errorf("upload %dx%d: got %d bytes", width, height, len(pixels))
	}
	if b.bindGroupLayout == nil {
		return errSurfaceNotConfigured
	}

	if b.frameTexture == nil || b.frameExtent != extent {
		if err := b.recreateFrameTexture(extent); err != nil {
			return err
		}
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  b.frameTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  extent.Width * 4,
			RowsPerImage: extent.Height,
		},
		&extent,
	)
	return nil
}

// recreateFrameTexture swaps the frame texture, its view and bind group for a new size.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) recreateFrameTexture(extent wgpu.Extent3D) error {
	b.releaseFrameTexture()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Framebuffer Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          extent,
		Format:        frameTextureFormat,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("frame texture: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("frame texture view: %w", err)
	}

	entries, err := frameBindGroupEntries(b.blit, view, b.sampler)
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Framebuffer Bind Group",
		Layout:  b.bindGroupLayout,
		Entries: entries,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("frame bind group: %w", err)
	}

	b.frameTexture = tex
	b.frameView = view
	b.frameBindGroup = bindGroup
	b.frameExtent = extent
	common.Logger().Debug("frame texture resized", "width", extent.Width, "height", extent.Height)
	return nil
}

func (b *wgpuRendererBackendImpl) Blit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured || b.frameBindGroup == nil {
		return errSurfaceNotConfigured
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	pass.SetPipeline(b.blit.RenderPipeline())
	pass.SetBindGroup(0, b.frameBindGroup, nil)
	pass.Draw(blitVertexCount, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

// releaseFrameTexture frees the current frame texture objects. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseFrameTexture() {
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
		b.frameBindGroup = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameTexture != nil {
		b.frameTexture.Release()
		b.frameTexture = nil
	}
	b.frameExtent = wgpu.Extent3D{}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameTexture()
	if b.sampler != nil {
		b.sampler.Release()
		b.sampler = nil
	}
	if b.blit != nil {
		b.blit.Release()
		b.blit = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	b.configured = false
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
