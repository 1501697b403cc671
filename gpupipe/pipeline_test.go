package gpupipe

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeviceCompiler struct {
	failBindGroupLayout bool
	failPipeline        bool
}

func (f *fakeDeviceCompiler) CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	return &wgpu.ShaderModule{}, nil
}

func (f *fakeDeviceCompiler) CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	if f.failBindGroupLayout {
		return nil, errors.New("boom")
	}
	return &wgpu.BindGroupLayout{}, nil
}

func (f *fakeDeviceCompiler) CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	return &wgpu.PipelineLayout{}, nil
}

func (f *fakeDeviceCompiler) CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	if f.failPipeline {
		return nil, errors.New("boom")
	}
	return &wgpu.RenderPipeline{}, nil
}

func TestRenderPipelineRegisterSucceeds(t *testing.T) {
	vs := NewShader(WindowVertex, StageVertex, "fn main() {}")
	fs := NewShader(WindowFragment, StageFragment, "fn main() {}")
	p := NewRenderPipeline(WindowPass, vs, fs)

	err := p.Register(&fakeDeviceCompiler{}, &wgpu.BindGroupLayoutDescriptor{}, wgpu.TextureFormatRGBA8UnormSrgb)
	require.NoError(t, err)
	assert.NotNil(t, p.Compiled())
}

func TestRenderPipelineRegisterPropagatesBindGroupLayoutError(t *testing.T) {
	vs := NewShader(WindowVertex, StageVertex, "fn main() {}")
	fs := NewShader(WindowFragment, StageFragment, "fn main() {}")
	p := NewRenderPipeline(WindowPass, vs, fs)

	err := p.Register(&fakeDeviceCompiler{failBindGroupLayout: true}, &wgpu.BindGroupLayoutDescriptor{}, wgpu.TextureFormatRGBA8UnormSrgb)
	require.Error(t, err)
	assert.Nil(t, p.Compiled())
}

func TestRenderPipelineRegisterPropagatesPipelineError(t *testing.T) {
	vs := NewShader(WindowVertex, StageVertex, "fn main() {}")
	fs := NewShader(WindowFragment, StageFragment, "fn main() {}")
	p := NewRenderPipeline(WindowPass, vs, fs)

	err := p.Register(&fakeDeviceCompiler{failPipeline: true}, &wgpu.BindGroupLayoutDescriptor{}, wgpu.TextureFormatRGBA8UnormSrgb)
	require.Error(t, err)
}
