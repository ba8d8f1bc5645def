package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fragmentSource = `
// @group(3) @binding(0) var ignored: texture_2d<f32>;
@group(0) @binding(1) var frameSampler: sampler;
@group(0) @binding(0) var frameTexture: texture_2d<f32>;
@group(1) @binding(0) var<uniform> params: Params;
/* @group(2) @binding(0) var /* nested */ hidden: sampler; */
@group(1) @binding(1) var<storage, read> counts: array<u32>;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(frameTexture, frameSampler, uv);
}
`

func TestNewShaderParsesEntryPointAndModule(t *testing.T) {
	s := NewShader("blit_fs", ShaderTypeFragment, fragmentSource)

	assert.Equal(t, "blit_fs", s.Key())
	assert.Equal(t, ShaderTypeFragment, s.ShaderType())
	assert.Equal(t, "fs_main", s.EntryPoint())
	require.NotNil(t, s.Module())
	assert.Equal(t, "blit_fs", s.Module().Label)
	require.NotNil(t, s.Module().WGSLDescriptor)
	assert.Equal(t, fragmentSource, s.Module().WGSLDescriptor.Code)
}

func TestEntryPointIsPerStage(t *testing.T) {
	s := NewShader("frag", ShaderTypeVertex, fragmentSource)
	assert.Empty(t, s.EntryPoint())

	vs := NewShader("vert", ShaderTypeVertex, "@vertex\nfn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }")
	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Empty(t, vs.BindGroupLayoutDescriptors())
}

func TestBindGroupLayoutsFromSource(t *testing.T) {
	s := NewShader("blit_fs", ShaderTypeFragment, fragmentSource)

	layouts := s.BindGroupLayoutDescriptors()
	require.Len(t, layouts, 2, "commented declarations are ignored")

	g0 := s.BindGroupLayoutDescriptor(0).Entries
	require.Len(t, g0, 2)
	assert.Equal(t, uint32(0), g0[0].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, g0[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, g0[0].Texture.ViewDimension)
	assert.Equal(t, uint32(1), g0[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, g0[1].Sampler.Type)
	for _, e := range g0 {
		assert.Equal(t, wgpu.ShaderStageFragment, e.Visibility)
	}

	g1 := s.BindGroupLayoutDescriptor(1).Entries
	require.Len(t, g1, 2)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, g1[0].Buffer.Type)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, g1[1].Buffer.Type)

	assert.Empty(t, s.BindGroupLayoutDescriptor(2).Entries)
}

func TestBindGroupVarNames(t *testing.T) {
	s := NewShader("blit_fs", ShaderTypeFragment, fragmentSource)

	assert.Equal(t, "frameTexture", s.BindGroupVarName(0, 0))
	assert.Equal(t, "frameSampler", s.BindGroupVarName(0, 1))
	assert.Empty(t, s.BindGroupVarName(0, 7))
	assert.Empty(t, s.BindGroupVarName(9, 0))

	binding, ok := s.BindGroupFromVarName(1, "counts")
	assert.True(t, ok)
	assert.Equal(t, 1, binding)

	_, ok = s.BindGroupFromVarName(0, "hidden")
	assert.False(t, ok)
}

func TestClassifyResourceTextures(t *testing.T) {
	depth := classifyResource(0, wgpu.ShaderStageFragment, "", "texture_depth_2d")
	assert.Equal(t, wgpu.TextureSampleTypeDepth, depth.Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, depth.Texture.ViewDimension)

	ms := classifyResource(0, wgpu.ShaderStageFragment, "", "texture_multisampled_2d<u32>")
	assert.True(t, ms.Texture.Multisampled)
	assert.Equal(t, wgpu.TextureSampleTypeUint, ms.Texture.SampleType)

	cmp := classifyResource(0, wgpu.ShaderStageFragment, "", "sampler_comparison")
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, cmp.Sampler.Type)

	rw := classifyResource(0, wgpu.ShaderStageFragment, "storage, read_write", "array<f32>")
	assert.Equal(t, wgpu.BufferBindingTypeStorage, rw.Buffer.Type)
}

func TestNewShaderPanicsWithoutSource(t *testing.T) {
	assert.Panics(t, func() { NewShader("empty", ShaderTypeVertex, "") })
}

func TestShaderTypeString(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.Equal(t, "ShaderType(9)", ShaderType(9).String())
}
