package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertConsistent(t *testing.T, s Stack) {
	t.Helper()
	order := s.RenderOrder()
	for i, id := range order {
		pos, ok := s.Position(id)
		require.True(t, ok)
		assert.Equal(t, i, pos)
		assert.True(t, s.Contains(id))
	}
}

func TestStackOrderingScenario(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, []ID{1, 2, 3}, s.RenderOrder())
	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, ID(3), top)

	s.RaiseToTop(1)
	assert.Equal(t, []ID{2, 3, 1}, s.RenderOrder())

	pos, ok := s.Remove(3)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.Equal(t, []ID{2, 1}, s.RenderOrder())

	pos, ok = s.Position(1)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	assertConsistent(t, s)
}

func TestStackPushNoopWhenPresent(t *testing.T) {
	s := NewStack()
	assert.True(t, s.Push(1))
	assert.False(t, s.Push(1))
	assert.Equal(t, 1, s.Len())
}

func TestStackPushRemoveRoundTrip(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	s.Push(3)
	before := s.RenderOrder()

	s.Push(9)
	s.Remove(9)

	assert.Equal(t, before, s.RenderOrder())
}

func TestStackRaiseAboveSelfNoop(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	before := s.RenderOrder()
	s.RaiseAbove(1, 1)
	assert.Equal(t, before, s.RenderOrder())
}

func TestStackRaiseAboveMissingTargetNoop(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	before := s.RenderOrder()
	s.RaiseAbove(1, 99)
	assert.Equal(t, before, s.RenderOrder())
}

func TestStackRaiseAbove(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	s.Push(3)
	s.Push(4)
	s.RaiseAbove(1, 3)
	assert.Equal(t, []ID{2, 3, 1, 4}, s.RenderOrder())
	assertConsistent(t, s)
}

func TestStackLowerToBottom(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	s.Push(3)
	s.LowerToBottom(3)
	assert.Equal(t, []ID{3, 1, 2}, s.RenderOrder())
	assertConsistent(t, s)
}

func TestStackWindowsAboveBelow(t *testing.T) {
	s := NewStack()
	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, []ID{2, 3}, s.WindowsAbove(1))
	assert.Equal(t, []ID{1, 2}, s.WindowsBelow(3))
	assert.Nil(t, s.WindowsAbove(99))
}

func TestStackEmptyTopBottom(t *testing.T) {
	s := NewStack()
	_, ok := s.Top()
	assert.False(t, ok)
	_, ok = s.Bottom()
	assert.False(t, ok)
}
