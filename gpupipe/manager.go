package gpupipe

import (
	"sort"

	"github.com/axiom-wm/axiom/internal/axerr"
	"github.com/axiom-wm/axiom/internal/axlog"
	"github.com/cogentcore/webgpu/wgpu"
)

// ModuleCompiler is the subset of *wgpu.Device this package needs. Captured
// as an interface so CompileAll can be exercised against a fake in tests
// without a real GPU context — the teacher never had to do this because it
// shipped no tests, but the same device methods
// (engine/renderer/wgpu_renderer_backend.go's RegisterRenderPipeline) are
// what this interface narrows down to.
type ModuleCompiler interface {
	CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)
}

// Source is one shader kind's stage and WGSL text, as registered with
// NewManager before compilation.
type Source struct {
	Stage Stage
	Code  string
}

// Manager owns the fixed shader-kind registry: it compiles every registered
// kind exactly once, eagerly, and hands out the compiled Shader by kind
// afterward. Per spec, a compile failure here is the one fatal GPU error in
// the whole system — callers are expected to treat a non-nil CompileAll
// error as unrecoverable startup failure, not a retry candidate.
type Manager struct {
	log     axlog.Logger
	shaders map[ShaderKind]*Shader
}

// NewManager constructs a Manager from a fixed kind -> source map. It does
// not compile anything yet; call CompileAll once a GPU device is available.
func NewManager(sources map[ShaderKind]Source) *Manager {
	m := &Manager{
		log:     axlog.New("gpupipe"),
		shaders: make(map[ShaderKind]*Shader, len(sources)),
	}
	for kind, src := range sources {
		m.shaders[kind] = NewShader(kind, src.Stage, src.Code)
	}
	return m
}

// CompileAll compiles every registered shader kind against compiler, in a
// deterministic order (sorted by kind), so that the first failure is always
// reported for the same kind given the same input. Returns a
// KindGPUAllocationFailure axerr.Error on the first failure and stops. It
// never panics: this package does not decide process lifetime, so treating
// the error as fatal is up to the caller.
func (m *Manager) CompileAll(compiler ModuleCompiler) error {
	kinds := make([]ShaderKind, 0, len(m.shaders))
	for k := range m.shaders {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, k := range kinds {
		s := m.shaders[k]
		mod, err := compiler.CreateShaderModule(s.descriptor())
		if err != nil {
			m.log.Error(err).Str("shader_kind", k.String()).Msg("shader compile failed")
			return axerr.Wrap(axerr.KindGPUAllocationFailure, err, "compiling shader kind %s", k)
		}
		s.module = mod
		m.log.Debug().Str("shader_kind", k.String()).Msg("shader compiled")
	}
	return nil
}

// Shader returns the shader registered for kind, or nil if kind was never
// registered with NewManager.
func (m *Manager) Shader(kind ShaderKind) *Shader {
	return m.shaders[kind]
}

// MustShader returns the shader registered for kind, panicking if it was
// never registered — used from pipeline wiring code where an unregistered
// kind is a programming error, not a runtime condition.
func (m *Manager) MustShader(kind ShaderKind) *Shader {
	s := m.shaders[kind]
	if s == nil {
		panic("gpupipe: shader kind " + kind.String() + " was never registered")
	}
	return s
}

// Compiled reports whether every registered shader has a compiled module,
// i.e. whether CompileAll has run successfully.
func (m *Manager) Compiled() bool {
	for _, s := range m.shaders {
		if s.module == nil {
			return false
		}
	}
	return true
}
