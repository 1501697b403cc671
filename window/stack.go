// Package window holds the window identifier type and the Z-order stack
// (spec.md §4.2). A window id is assigned once by the protocol layer and
// never reused within a session; the stack tracks only ordering, not window
// content or geometry.
package window

import "sync"

// ID is a window identifier, assigned once and never reused within a
// session.
type ID uint64

// Stack maintains the Z-order of windows bottom-to-top with O(1) membership
// lookup. Push is O(1) amortised; Remove, RaiseToTop, LowerToBottom and
// RaiseAbove are O(n), since each shifts the order slice and reindexes the
// positions it moved.
type Stack interface {
	// Push inserts id on top of the stack. No-op if id is already present.
	//
	// Returns:
	//   - bool: true if id was inserted, false if it was already present
	Push(id ID) bool

	// Remove removes id from the stack.
	//
	// Returns:
	//   - int: the id's prior position
	//   - bool: true if id was present and removed
	Remove(id ID) (int, bool)

	// RaiseToTop moves id to the top of the stack. No-op if id is absent.
	RaiseToTop(id ID)

	// LowerToBottom moves id to the bottom of the stack. No-op if id is absent.
	LowerToBottom(id ID)

	// RaiseAbove moves id to directly above target. Requires target to exist;
	// otherwise this is a no-op. id == target is also a no-op.
	RaiseAbove(id, target ID)

	// Top returns the topmost id and true, or the zero value and false if the
	// stack is empty.
	Top() (ID, bool)

	// Bottom returns the bottommost id and true, or the zero value and false
	// if the stack is empty.
	Bottom() (ID, bool)

	// Position returns id's zero-based index from the bottom, and true if
	// present.
	Position(id ID) (int, bool)

	// Contains reports whether id is present in the stack.
	Contains(id ID) bool

	// RenderOrder returns a snapshot of the stack bottom-to-top.
	RenderOrder() []ID

	// WindowsAbove returns the ids stacked above id, bottom-to-top, excluding
	// id itself. Returns nil if id is absent.
	WindowsAbove(id ID) []ID

	// WindowsBelow returns the ids stacked below id, bottom-to-top, excluding
	// id itself. Returns nil if id is absent.
	WindowsBelow(id ID) []ID

	// Len returns the number of windows currently on the stack.
	Len() int
}

// stack is the implementation of Stack. order holds ids bottom-to-top; index
// maps id to its current position in order. The invariant tested throughout
// this package's tests: after every mutation, for every id in order,
// index[id] equals its actual slice position.
type stack struct {
	mu    sync.Mutex
	order []ID
	index map[ID]int
}

var _ Stack = (*stack)(nil)

// NewStack creates an empty window Stack.
func NewStack() Stack {
	return &stack{index: make(map[ID]int)}
}

func (s *stack) Push(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
	return true
}

func (s *stack) Remove(id ID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	if !ok {
		return 0, false
	}
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	delete(s.index, id)
	s.reindexFrom(pos)
	return pos, true
}

func (s *stack) RaiseToTop(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	if !ok || pos == len(s.order)-1 {
		return
	}
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	s.order = append(s.order, id)
	s.reindexFrom(pos)
}

func (s *stack) LowerToBottom(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	if !ok || pos == 0 {
		return
	}
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	s.order = append([]ID{id}, s.order...)
	s.reindexFrom(0)
}

func (s *stack) RaiseAbove(id, target ID) {
	if id == target {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	srcPos, ok := s.index[id]
	if !ok {
		return
	}
	if _, ok := s.index[target]; !ok {
		return
	}

	targetPos := s.index[target]
	if targetPos > srcPos {
		targetPos--
	}
	s.order = append(s.order[:srcPos], s.order[srcPos+1:]...)
	insertAt := targetPos + 1
	s.order = append(s.order[:insertAt], append([]ID{id}, s.order[insertAt:]...)...)

	start := srcPos
	if targetPos < start {
		start = targetPos
	}
	s.reindexFrom(start)
}

func (s *stack) Top() (ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return 0, false
	}
	return s.order[len(s.order)-1], true
}

func (s *stack) Bottom() (ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return 0, false
	}
	return s.order[0], true
}

func (s *stack) Position(id ID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	return pos, ok
}

func (s *stack) Contains(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

func (s *stack) RenderOrder() []ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}

func (s *stack) WindowsAbove(id ID) []ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	if !ok {
		return nil
	}
	out := make([]ID, len(s.order)-pos-1)
	copy(out, s.order[pos+1:])
	return out
}

func (s *stack) WindowsBelow(id ID) []ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	if !ok {
		return nil
	}
	out := make([]ID, pos)
	copy(out, s.order[:pos])
	return out
}

func (s *stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// reindexFrom rebuilds index entries for order[from:]. Must be called with
// mu held.
func (s *stack) reindexFrom(from int) {
	for i := from; i < len(s.order); i++ {
		s.index[s.order[i]] = i
	}
}
