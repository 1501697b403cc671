// Package renderframe implements the damage/texture frontend: the
// process-wide, mutex-guarded contract by which producer actors (the
// protocol-dispatch side) hand pixel updates and damage regions to the
// renderer actor without either side touching the GPU context directly.
package renderframe

import (
	"sync"

	"github.com/axiom-wm/axiom/window"
)

// maxDamageRegionsPerWindow caps the per-window damage region list; once
// reached, each further region is unioned into one existing region (the
// first it overlaps, else the last) rather than grown unbounded.
const maxDamageRegionsPerWindow = 8

// Rect is an integer-pixel damage rectangle in window-local coordinates.
type Rect struct {
	X, Y, W, H int
}

// union returns the smallest Rect containing both a and b.
func union(a, b Rect) Rect {
	x0 := min(a.X, b.X)
	y0 := min(a.Y, b.Y)
	x1 := max(a.X+a.W, b.X+b.W)
	y1 := max(a.Y+a.H, b.Y+b.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// TextureUpdate is a pending pixel upload for one window, queued by a
// producer and drained by the renderer actor at frame start.
type TextureUpdate struct {
	ID   window.ID
	RGBA []byte
	W, H int
}

// Frontend is the shared damage/texture queue plus the window stack it
// renders against. Grounded on the teacher's
// bind_group_provider.BufferWrite (a pending GPU write described as a small
// value type and drained in batch) and Scene's single-mutex discipline over
// renderer-facing shared state.
type Frontend struct {
	mu sync.Mutex

	stack window.Stack

	updates []TextureUpdate
	damage  map[window.ID][]Rect
	pending bool
}

// NewFrontend creates a Frontend backed by stack. stack's own internal
// locking continues to guard stack mutation and queries independently; the
// Frontend's mutex guards only the texture-update queue and damage state,
// so get_window_render_order never blocks on a producer mid-queue-push and
// vice versa.
func NewFrontend(stack window.Stack) *Frontend {
	return &Frontend{
		stack:  stack,
		damage: make(map[window.ID][]Rect),
	}
}

// QueueTextureUpdate enqueues a pixel upload for id. Safe to call from a
// producer actor without holding the GPU context.
func (f *Frontend) QueueTextureUpdate(id window.ID, rgba []byte, w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, TextureUpdate{ID: id, RGBA: rgba, W: w, H: h})
	f.pending = true
}

// MarkWindowDamaged marks the entirety of id's current size as damaged,
// replacing any previously queued partial regions for id. To add a region
// alongside the ones already queued, use AddWindowDamageRegion instead.
func (f *Frontend) MarkWindowDamaged(id window.ID, w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.damage[id] = []Rect{{X: 0, Y: 0, W: w, H: h}}
	f.pending = true
}

// AddWindowDamageRegion adds a damage rectangle for id. Once id has
// maxDamageRegionsPerWindow regions queued, the new region is merged into
// the existing list by unioning it with whichever existing region it
// overlaps (or, failing that, the last one), keeping the list bounded
// rather than growing it further.
func (f *Frontend) AddWindowDamageRegion(id window.ID, x, y, w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := Rect{X: x, Y: y, W: w, H: h}
	regions := f.damage[id]

	if len(regions) < maxDamageRegionsPerWindow {
		f.damage[id] = append(regions, r)
		f.pending = true
		return
	}

	for i, existing := range regions {
		if overlaps(existing, r) {
			regions[i] = union(existing, r)
			f.pending = true
			return
		}
	}
	regions[len(regions)-1] = union(regions[len(regions)-1], r)
	f.pending = true
}

func overlaps(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// HasPendingDamage reports whether any texture update or damage region is
// currently queued.
func (f *Frontend) HasPendingDamage() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// GetWindowRenderOrder returns a snapshot of the window stack bottom to
// top.
func (f *Frontend) GetWindowRenderOrder() []window.ID {
	return f.stack.RenderOrder()
}

// DrainedFrame is the renderer actor's frame-start snapshot of everything
// queued since the previous ClearFrameDamage.
type DrainedFrame struct {
	Updates []TextureUpdate
	Damage  map[window.ID][]Rect
}

// Drain returns the queued texture updates and per-window damage regions
// without clearing them; the renderer actor calls ClearFrameDamage once it
// has finished consuming this frame's data.
func (f *Frontend) Drain() DrainedFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	damage := make(map[window.ID][]Rect, len(f.damage))
	for id, regions := range f.damage {
		cp := make([]Rect, len(regions))
		copy(cp, regions)
		damage[id] = cp
	}
	updates := make([]TextureUpdate, len(f.updates))
	copy(updates, f.updates)
	return DrainedFrame{Updates: updates, Damage: damage}
}

// ClearFrameDamage clears the texture update queue and all per-window
// damage regions, called by the renderer actor once a frame has been
// presented.
func (f *Frontend) ClearFrameDamage() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = f.updates[:0]
	for id := range f.damage {
		delete(f.damage, id)
	}
	f.pending = false
}
