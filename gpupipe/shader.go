// Package gpupipe manages the fixed set of WGSL shaders and GPU pipelines the
// effects engine renders with. Unlike the teacher engine's open-ended
// material/shader system (arbitrary WGSL parsed for bind-group annotations),
// Axiom's shader set is a small closed registry keyed by ShaderKind — every
// kind this package knows about is compiled eagerly, once, at startup.
//
// Grounded on the teacher's engine/renderer/shader and engine/renderer/pipeline
// packages (shader.Shader / pipeline.Pipeline interfaces, the pre-compile
// panic-on-failure contract), simplified because Axiom has no arbitrary
// model-material binding scheme to reflect out of WGSL source: bind group
// layouts for each kind are declared in Go, not parsed from source comments.
package gpupipe

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Stage identifies which programmable stage a shader occupies.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

// ShaderKind is the closed set of shader roles the effects pipeline uses.
type ShaderKind int

const (
	WindowVertex ShaderKind = iota
	WindowFragment
	BlurHorizontal
	BlurVertical
	DropShadow
	RoundedCorners
	AnimationTransform
)

func (k ShaderKind) String() string {
	switch k {
	case WindowVertex:
		return "window-vertex"
	case WindowFragment:
		return "window-fragment"
	case BlurHorizontal:
		return "blur-horizontal"
	case BlurVertical:
		return "blur-vertical"
	case DropShadow:
		return "drop-shadow"
	case RoundedCorners:
		return "rounded-corners"
	case AnimationTransform:
		return "animation-transform"
	default:
		return "unknown"
	}
}

// entryPoint is fixed across every Axiom shader: WGSL sources in this
// codebase always expose a single "main" entry point per stage, so unlike
// the teacher's shader package this one never has to parse it out of source.
const entryPoint = "main"

// Shader is one compiled-or-compilable WGSL unit: a kind, a stage, raw
// source, and (once CompileAll has run) the resulting GPU module.
type Shader struct {
	kind   ShaderKind
	stage  Stage
	source string
	module *wgpu.ShaderModule
}

// NewShader constructs a Shader from raw WGSL source. It panics if source is
// empty, mirroring the teacher's shader.NewShader panic-on-missing-source:
// a shader kind with no source is a programming error, not a runtime one.
func NewShader(kind ShaderKind, stage Stage, source string) *Shader {
	if source == "" {
		panic(fmt.Sprintf("gpupipe: shader kind %s has no WGSL source", kind))
	}
	return &Shader{kind: kind, stage: stage, source: source}
}

// Kind returns the shader's role.
func (s *Shader) Kind() ShaderKind { return s.kind }

// Stage returns the shader's programmable stage.
func (s *Shader) Stage() Stage { return s.stage }

// Source returns the shader's raw WGSL text.
func (s *Shader) Source() string { return s.source }

// EntryPoint returns the shader's entry point function name.
func (s *Shader) EntryPoint() string { return entryPoint }

// Module returns the compiled GPU shader module, or nil before CompileAll
// has run.
func (s *Shader) Module() *wgpu.ShaderModule { return s.module }

// descriptor builds the wgpu module descriptor used to compile this shader.
func (s *Shader) descriptor() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: s.kind.String(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
}

func (s *Stage) wgpuStage() wgpu.ShaderStage {
	switch *s {
	case StageVertex:
		return wgpu.ShaderStageVertex
	case StageFragment:
		return wgpu.ShaderStageFragment
	case StageCompute:
		return wgpu.ShaderStageCompute
	default:
		return wgpu.ShaderStageNone
	}
}
