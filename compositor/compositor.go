// Package compositor wires the workspace model, effects engine,
// damage/texture frontend, window stack, shader/pipeline manager, and
// protocol validator into the three logical actors spec.md §5 describes:
// protocol-dispatch, renderer, and input. Compositor itself owns no
// goroutines or scheduling loop — per the core's Non-goals, a host process
// drives it, calling SubmitBuffer/HandleInputEvent from its own dispatch
// path and RenderFrame from its own render path at whatever cadence it
// chooses. RunHostLoop is an optional convenience driver in the teacher's
// fixed-tick-rate style for hosts that want one.
package compositor

import (
	"sync"
	"time"

	"github.com/axiom-wm/axiom/config"
	"github.com/axiom-wm/axiom/effects"
	"github.com/axiom-wm/axiom/gpupipe"
	"github.com/axiom-wm/axiom/input"
	"github.com/axiom-wm/axiom/internal/axerr"
	"github.com/axiom-wm/axiom/internal/axlog"
	"github.com/axiom-wm/axiom/internal/axprof"
	"github.com/axiom-wm/axiom/pixconv"
	"github.com/axiom-wm/axiom/protocol"
	"github.com/axiom-wm/axiom/renderframe"
	"github.com/axiom-wm/axiom/window"
	"github.com/axiom-wm/axiom/workspace"
)

// inputQueueDepth bounds the input-event channel between the input actor
// and the dispatch actor (spec.md §5: "a bounded input-event channel").
const inputQueueDepth = 256

// DrawCall is one entry in a composed Frame: a window's effect state paired
// with the workspace rect it was laid out into this frame. The renderer
// actor's GPU backend (wired separately through gpupipe.Manager /
// gpupipe.RenderPipeline) consumes these to issue actual draw commands;
// Compositor itself stays GPU-API-agnostic so it can be exercised without a
// real device, the same separation gpupipe.ModuleCompiler draws between
// shader compilation and its callers. Texture and Damage are only populated
// on the "window" pass, carrying this frame's drained pixel upload (if any)
// and damage regions for the GPU backend to actually upload and blit.
type DrawCall struct {
	Pass    string
	ID      window.ID
	Rect    workspace.Rect
	State   effects.EffectState
	Texture *renderframe.TextureUpdate
	Damage  []renderframe.Rect
}

// Frame is the fully composed, ordered set of draw calls for one render
// pass cycle, handed to the host's present callback once assembled.
type Frame struct {
	Calls []DrawCall
}

// PerformanceStats is the extended get_performance_stats record from
// spec.md §6: the effects engine's PerformanceStats plus the workspace's
// focused column, which the effects engine has no notion of.
type PerformanceStats struct {
	effects.PerformanceStats
	FocusedColumn int `json:"focused_column"`
}

// Compositor is the assembled compositor core. Not safe for concurrent use
// except where individual fields (renderframe.Frontend, the input channel)
// document their own locking.
type Compositor struct {
	cfg config.Config
	log axlog.Logger

	validator *protocol.Validator
	stack     window.Stack
	model     *workspace.Model
	fx        *effects.Engine
	frontend  *renderframe.Frontend
	shaders   *gpupipe.Manager

	inputCh chan input.Event

	mu            sync.Mutex
	surfaceWindow map[protocol.SurfaceID]window.ID
	nextWindowID  window.ID

	profiler *axprof.Profiler
}

// New constructs a Compositor from cfg, wiring a fresh Validator, window
// Stack, workspace Model, effects Engine, renderframe Frontend, and shader
// Manager loaded with Axiom's fixed shader set.
func New(cfg config.Config) *Compositor {
	stack := window.NewStack()
	return &Compositor{
		cfg:           cfg,
		log:           axlog.New("compositor"),
		validator:     protocol.NewValidator(),
		stack:         stack,
		model:         workspace.NewModel(cfg.Workspace),
		fx:            effects.NewEngine(cfg.Effects),
		frontend:      renderframe.NewFrontend(stack),
		shaders:       gpupipe.NewManager(shaderSources()),
		inputCh:       make(chan input.Event, inputQueueDepth),
		surfaceWindow: make(map[protocol.SurfaceID]window.ID),
		nextWindowID:  1,
		profiler:      axprof.New(axlog.New("profiler"), time.Second),
	}
}

// Shaders exposes the shader/pipeline manager so a host can call
// CompileAll against a real GPU device once one is available.
func (c *Compositor) Shaders() *gpupipe.Manager {
	return c.shaders
}

// Validator exposes the protocol validator for the dispatch actor's
// surface-lifecycle calls (RegisterSurface, AddConfigure, AckConfigure)
// that do not themselves affect workspace or effects state.
func (c *Compositor) Validator() *protocol.Validator {
	return c.validator
}

// AssignRole assigns role to surface via the protocol validator. When role
// is protocol.RoleToplevel and assignment succeeds, a window id is minted
// and the window is added to the workspace's focused column, the window
// stack, and an open animation is started — mirroring how a real client's
// first toplevel role assignment brings a window into existence across
// every component at once.
func (c *Compositor) AssignRole(id protocol.SurfaceID, role protocol.Role) (window.ID, error) {
	if err := c.validator.AssignRole(id, role); err != nil {
		return 0, err
	}
	if role != protocol.RoleToplevel {
		return 0, nil
	}

	c.mu.Lock()
	wid := c.nextWindowID
	c.nextWindowID++
	c.surfaceWindow[id] = wid
	c.mu.Unlock()

	c.stack.Push(wid)
	c.model.AddWindow(wid)
	c.fx.AnimateWindowOpen(wid)
	c.log.Info().Uint64("window_id", uint64(wid)).Uint64("surface_id", uint64(id)).Msg("toplevel mapped")
	return wid, nil
}

// DestroySurface tears down surface across the validator, window stack,
// workspace model, and effects engine at once. It starts no close
// animation: the window's EffectState and any running animations are
// dropped immediately. To let the close animation play, call CloseWindow
// first and DestroySurface once it has finished.
func (c *Compositor) DestroySurface(id protocol.SurfaceID) {
	c.validator.DestroySurface(id)

	c.mu.Lock()
	wid, ok := c.surfaceWindow[id]
	delete(c.surfaceWindow, id)
	c.mu.Unlock()
	if !ok {
		return
	}

	c.stack.Remove(wid)
	c.model.RemoveWindow(wid)
	c.fx.RemoveWindow(wid)
}

// CloseWindow starts wid's close animation without yet removing it from the
// stack or workspace; the caller (typically after the close animation's
// configured duration has elapsed) should follow up with DestroySurface.
func (c *Compositor) CloseWindow(wid window.ID) {
	c.fx.AnimateWindowClose(wid)
}

// SubmitBuffer is the buffer-ingress operation from spec.md §6: validates
// the commit, converts the raw pixel buffer to canonical RGBA, and queues
// it on the damage/texture frontend for the renderer actor to pick up.
func (c *Compositor) SubmitBuffer(surfaceID protocol.SurfaceID, bytes []byte, width, height, stride int, format pixconv.SourceFormat) error {
	if err := c.validator.ValidateCommit(surfaceID, true); err != nil {
		return err
	}

	c.mu.Lock()
	wid, ok := c.surfaceWindow[surfaceID]
	c.mu.Unlock()
	if !ok {
		return axerr.New(axerr.KindProtocolError, "submit_buffer: surface %d has no mapped window", surfaceID)
	}

	rgba, warning, err := pixconv.Convert(bytes, width, height, stride, 0, format, true)
	if err != nil {
		return err
	}
	if warning != nil {
		c.log.Warn().Str("kind", warning.Kind.String()).Uint64("window_id", uint64(wid)).Msg("pixel conversion fell back to placeholder pattern")
	}

	c.frontend.QueueTextureUpdate(wid, rgba, width, height)
	c.frontend.MarkWindowDamaged(wid, width, height)
	return nil
}

// HandleInputEvent is the input actor's half of the bounded input channel:
// a non-blocking send, so a slow dispatch actor never stalls input
// handling. Returns false if the queue is full and the event was dropped.
func (c *Compositor) HandleInputEvent(ev input.Event) bool {
	select {
	case c.inputCh <- ev:
		return true
	default:
		c.log.Warn().Msg("input queue full, dropping event")
		return false
	}
}

// DrainInputEvents is the dispatch actor's half of the bounded input
// channel: pulls every event currently queued without blocking.
func (c *Compositor) DrainInputEvents() []input.Event {
	var events []input.Event
	for {
		select {
		case ev := <-c.inputCh:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// Model exposes the workspace model for scroll/move/layout-mode operations
// the dispatch actor drives in response to bound input (spec.md §4.3).
func (c *Compositor) Model() *workspace.Model {
	return c.model
}

// frameSink accumulates DrawCalls in the fixed shadow/blur/window order
// effects.Engine.Render issues them, pairing each with the workspace rect
// computed for this frame and, for the window pass, this frame's drained
// texture upload and damage regions for that window.
type frameSink struct {
	rects    map[window.ID]workspace.Rect
	textures map[window.ID]renderframe.TextureUpdate
	damage   map[window.ID][]renderframe.Rect
	frame    Frame
}

func (s *frameSink) DrawShadow(state effects.EffectState) {
	s.frame.Calls = append(s.frame.Calls, DrawCall{Pass: "shadow", ID: state.ID, Rect: s.rects[state.ID], State: state})
}

func (s *frameSink) DrawBlur(state effects.EffectState) {
	s.frame.Calls = append(s.frame.Calls, DrawCall{Pass: "blur", ID: state.ID, Rect: s.rects[state.ID], State: state})
}

func (s *frameSink) DrawWindow(state effects.EffectState) {
	call := DrawCall{Pass: "window", ID: state.ID, Rect: s.rects[state.ID], State: state, Damage: s.damage[state.ID]}
	if tex, ok := s.textures[state.ID]; ok {
		call.Texture = &tex
	}
	s.frame.Calls = append(s.frame.Calls, call)
}

// RenderFrame runs one renderer-actor frame cycle exactly in the order
// spec.md §2's data-flow paragraph lists: advance workspace scroll and
// column reaping, evaluate effects animations, drain this frame's queued
// texture uploads and damage regions, compute window layout rects, issue
// the shadow/blur/window passes (the window pass carries each window's
// drained texture and damage), hand the composed Frame to present, then
// clear the frame's damage. Returns the composed Frame so tests can
// inspect it without a present callback.
func (c *Compositor) RenderFrame(now time.Time, present func(Frame)) Frame {
	c.profiler.Tick(now)
	c.model.UpdateAnimations(now)
	c.fx.Update(now)

	drained := c.frontend.Drain()
	textures := make(map[window.ID]renderframe.TextureUpdate, len(drained.Updates))
	for _, update := range drained.Updates {
		textures[update.ID] = update
	}

	rects := c.model.CalculateWorkspaceLayouts()
	order := c.frontend.GetWindowRenderOrder()

	sink := &frameSink{rects: rects, textures: textures, damage: drained.Damage}
	c.fx.Render(order, sink)

	if present != nil {
		present(sink.frame)
	}
	c.frontend.ClearFrameDamage()
	return sink.frame
}

// GetPerformanceStats is the telemetry-egress operation from spec.md §6.
func (c *Compositor) GetPerformanceStats() PerformanceStats {
	return PerformanceStats{
		PerformanceStats: c.fx.GetPerformanceStats(),
		FocusedColumn:    int(c.model.FocusedIndex()),
	}
}

// RunHostLoop is an optional convenience driver in the teacher engine's
// fixed-tick-rate style (engine/engine.go's handleEngine/handleRender):
// it calls tick at tickRate for input/workspace bookkeeping and RenderFrame
// once per loop iteration, until quit is closed. A host is free to ignore
// this and drive Compositor from its own loop instead; nothing else in
// this package depends on RunHostLoop being used.
func (c *Compositor) RunHostLoop(quit <-chan struct{}, tickRate time.Duration, present func(Frame), tick func(dt time.Duration)) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-quit:
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if tick != nil {
				tick(dt)
			}
			c.RenderFrame(now, present)
		}
	}
}
