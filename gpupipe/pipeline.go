package gpupipe

import "github.com/cogentcore/webgpu/wgpu"

// PipelineKey names one of the fixed render passes the effects engine runs
// every frame, in the order the passes execute: shadow (SDF drop-shadow
// quad), then blur (two-pass ping-pong Gaussian), then window (the textured
// window quad with rounded-corner SDF clipping).
type PipelineKey int

const (
	ShadowPass PipelineKey = iota
	BlurHorizontalPass
	BlurVerticalPass
	WindowPass
)

func (k PipelineKey) String() string {
	switch k {
	case ShadowPass:
		return "shadow"
	case BlurHorizontalPass:
		return "blur-horizontal"
	case BlurVerticalPass:
		return "blur-vertical"
	case WindowPass:
		return "window"
	default:
		return "unknown"
	}
}

// RenderPipeline pairs a vertex and fragment Shader with the fixed-function
// state a render pass needs, plus the compiled *wgpu.RenderPipeline once
// Register has built it. Adapted from the teacher's pipeline.Pipeline: the
// compute-pipeline half of that interface is dropped since none of Axiom's
// fixed passes need one, and depth testing is always off (the compositor
// draws 2D quads back-to-front, never depth-tested geometry).
type RenderPipeline struct {
	key      PipelineKey
	vertex   *Shader
	fragment *Shader

	blendEnabled bool
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
	blendState   *wgpu.BlendState

	compiled *wgpu.RenderPipeline
}

// RenderPipelineOption configures a RenderPipeline at construction time.
type RenderPipelineOption func(*RenderPipeline)

// WithBlend enables straight-alpha compositing blend for this pass. All of
// Axiom's passes except the opaque shadow-clear step use this.
func WithBlend(enabled bool) RenderPipelineOption {
	return func(p *RenderPipeline) { p.blendEnabled = enabled }
}

// WithTopology overrides the default triangle-list topology.
func WithTopology(t wgpu.PrimitiveTopology) RenderPipelineOption {
	return func(p *RenderPipeline) { p.topology = t }
}

// NewRenderPipeline builds an unregistered RenderPipeline for the given pass
// key and vertex/fragment shader pair, with Axiom's fixed defaults: no
// culling (every quad faces the viewer), straight-alpha blend on, triangle
// list topology.
func NewRenderPipeline(key PipelineKey, vertex, fragment *Shader, opts ...RenderPipelineOption) *RenderPipeline {
	p := &RenderPipeline{
		key:          key,
		vertex:       vertex,
		fragment:     fragment,
		blendEnabled: true,
		cullMode:     wgpu.CullModeNone,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		writeMask:    wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the pass this pipeline implements.
func (p *RenderPipeline) Key() PipelineKey { return p.key }

// Compiled returns the underlying GPU pipeline, or nil before Register runs.
func (p *RenderPipeline) Compiled() *wgpu.RenderPipeline { return p.compiled }

// PipelineDeviceCompiler is the subset of *wgpu.Device a RenderPipeline
// needs to register against, narrowed the same way ModuleCompiler narrows
// shader compilation.
type PipelineDeviceCompiler interface {
	ModuleCompiler
	CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)
	CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)
	CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)
}

// Register compiles this pipeline's vertex and fragment modules (if not
// already compiled by a Manager) and creates the underlying GPU render
// pipeline against surfaceFormat, the swapchain's texture format. Grounded
// on wgpu_renderer_backend.go's RegisterRenderPipeline, trimmed to Axiom's
// single-bind-group-per-shader layout (no cross-shader layout merge, since
// every Axiom fragment shader owns its whole bind group 0) and with depth
// testing permanently disabled.
func (p *RenderPipeline) Register(compiler PipelineDeviceCompiler, bindGroupLayout *wgpu.BindGroupLayoutDescriptor, surfaceFormat wgpu.TextureFormat) error {
	vs, fs := p.vertex.module, p.fragment.module
	var err error
	if vs == nil {
		if vs, err = compiler.CreateShaderModule(p.vertex.descriptor()); err != nil {
			return err
		}
	}
	if fs == nil {
		if fs, err = compiler.CreateShaderModule(p.fragment.descriptor()); err != nil {
			return err
		}
	}

	layout, err := compiler.CreateBindGroupLayout(bindGroupLayout)
	if err != nil {
		return err
	}
	pipelineLayout, err := compiler.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.key.String(),
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return err
	}

	colorTarget := wgpu.ColorTargetState{
		Format:    surfaceFormat,
		WriteMask: p.writeMask,
	}
	if p.blendEnabled {
		colorTarget.Blend = p.blendState
	}

	created, err := compiler.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.key.String() + " pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: p.vertex.EntryPoint(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: p.fragment.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{colorTarget},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}
	p.compiled = created
	return nil
}
