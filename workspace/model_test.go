package workspace

import (
	"testing"
	"time"

	"github.com/axiom-wm/axiom/config"
	"github.com/axiom-wm/axiom/internal/axwork"
	"github.com/axiom-wm/axiom/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Workspace {
	return config.Workspace{
		WorkspaceWidth:  1000,
		Gaps:            10,
		ScrollSpeed:     0.18,
		SmoothScrolling: true,
		MaxColumns:      16,
		ColumnGraceMs:   2000,
	}
}

// TestWorkspaceScenario replicates spec.md §8 scenario 2 exactly: starting
// empty, add_window(10) lands in column 0; scroll_right focuses a new empty
// column 1; add_window(20) lands there; move_window_left(20) merges both
// windows into column 0 and leaves column 1 empty; after the grace interval
// elapses and update_animations runs, column 1 is reaped.
func TestWorkspaceScenario(t *testing.T) {
	cfg := testConfig()
	m := NewModel(cfg)
	start := time.Now()
	m.clock = func() time.Time { return start }

	m.AddWindow(window.ID(10))
	windows, _, ok := m.Column(0)
	require.True(t, ok)
	assert.Equal(t, []window.ID{10}, windows)

	require.NoError(t, m.ScrollRight())
	assert.Equal(t, Index(1), m.FocusedIndex())
	windows, _, ok = m.Column(1)
	require.True(t, ok)
	assert.Empty(t, windows)

	m.AddWindow(window.ID(20))
	windows, _, ok = m.Column(1)
	require.True(t, ok)
	assert.Equal(t, []window.ID{20}, windows)

	require.NoError(t, m.MoveWindowLeft(window.ID(20)))
	windows, _, ok = m.Column(0)
	require.True(t, ok)
	assert.Equal(t, []window.ID{10, 20}, windows)
	windows, _, ok = m.Column(1)
	require.True(t, ok)
	assert.Empty(t, windows)

	afterGrace := start.Add(cfg.ColumnGrace() + time.Millisecond)
	m.clock = func() time.Time { return afterGrace }
	m.UpdateAnimations(afterGrace)

	_, _, ok = m.Column(1)
	assert.False(t, ok, "column 1 should have been reaped after its grace interval elapsed")
	_, _, ok = m.Column(0)
	assert.True(t, ok, "column 0 must never be reaped while non-empty")
}

func TestMoveWindowRoundTrip(t *testing.T) {
	m := NewModel(testConfig())
	m.AddWindow(window.ID(1))

	require.NoError(t, m.MoveWindowRight(window.ID(1)))
	windows, _, _ := m.Column(1)
	assert.Equal(t, []window.ID{1}, windows)

	require.NoError(t, m.MoveWindowLeft(window.ID(1)))
	windows, _, _ = m.Column(0)
	assert.Equal(t, []window.ID{1}, windows)
}

func TestScrollingLeftMaterialisesNegativeColumn(t *testing.T) {
	m := NewModel(testConfig())
	require.NoError(t, m.ScrollLeft())
	assert.Equal(t, Index(-1), m.FocusedIndex())
	_, _, ok := m.Column(-1)
	assert.True(t, ok)
}

func TestScrollBackReapsEmptyColumnAfterGrace(t *testing.T) {
	cfg := testConfig()
	m := NewModel(cfg)
	start := time.Now()
	m.clock = func() time.Time { return start }

	require.NoError(t, m.ScrollRight())
	require.NoError(t, m.ScrollLeft())
	_, _, ok := m.Column(1)
	require.True(t, ok, "column 1 still exists immediately after scrolling away")

	afterGrace := start.Add(cfg.ColumnGrace() + time.Millisecond)
	m.clock = func() time.Time { return afterGrace }
	m.UpdateAnimations(afterGrace)

	_, _, ok = m.Column(1)
	assert.False(t, ok)
}

func TestOutOfBoundsScrollFailsSoftlyWithoutChangingFocus(t *testing.T) {
	cfg := testConfig()
	cfg.MaxColumns = 1
	m := NewModel(cfg)

	err := m.ScrollRight()
	require.Error(t, err)
	assert.Equal(t, Index(0), m.FocusedIndex(), "focus must not change on a failed scroll")
}

func TestEveryWindowAppearsInExactlyOneColumn(t *testing.T) {
	m := NewModel(testConfig())
	m.AddWindow(window.ID(1))
	require.NoError(t, m.ScrollRight())
	m.AddWindow(window.ID(2))
	require.NoError(t, m.MoveWindowToColumn(window.ID(1), 1))

	seen := map[window.ID]int{}
	for idx := Index(-2); idx <= 2; idx++ {
		windows, _, ok := m.Column(idx)
		if !ok {
			continue
		}
		for _, id := range windows {
			seen[id]++
		}
	}
	assert.Equal(t, 1, seen[window.ID(1)])
	assert.Equal(t, 1, seen[window.ID(2)])
}

func TestAddWindowToColumnMovesExistingWindowRatherThanDuplicating(t *testing.T) {
	m := NewModel(testConfig())
	m.AddWindow(window.ID(1))
	require.NoError(t, m.AddWindowToColumn(window.ID(1), 2))

	windows, _, _ := m.Column(0)
	assert.Empty(t, windows)
	windows, _, _ = m.Column(2)
	assert.Equal(t, []window.ID{1}, windows)
}

func TestFocusNextWindowInColumnCyclesWithWrap(t *testing.T) {
	m := NewModel(testConfig())
	m.AddWindow(window.ID(1))
	m.AddWindow(window.ID(2))
	m.AddWindow(window.ID(3))

	id, ok := m.FocusedWindowInColumn()
	require.True(t, ok)
	assert.Equal(t, window.ID(1), id)

	m.FocusNextWindowInColumn()
	id, _ = m.FocusedWindowInColumn()
	assert.Equal(t, window.ID(2), id)

	m.FocusNextWindowInColumn()
	id, _ = m.FocusedWindowInColumn()
	assert.Equal(t, window.ID(3), id)

	m.FocusNextWindowInColumn()
	id, _ = m.FocusedWindowInColumn()
	assert.Equal(t, window.ID(1), id, "focus cursor must wrap back to the first window")
}

func TestCycleLayoutModeAppliesToFocusedColumn(t *testing.T) {
	m := NewModel(testConfig())
	_, layout, _ := m.Column(0)
	assert.Equal(t, LayoutVertical, layout)

	m.CycleLayoutMode()
	_, layout, _ = m.Column(0)
	assert.Equal(t, LayoutHorizontal, layout)
}

func TestCalculateWorkspaceLayoutsWithPoolMatchesSequential(t *testing.T) {
	cfg := testConfig()
	cfg.SmoothScrolling = false
	pool := axwork.New(4, 16, time.Second)
	m := NewModel(cfg, WithLayoutPool(pool))
	seq := NewModel(cfg)
	for _, model := range []*Model{m, seq} {
		model.SetViewportSize(4000, 800)
		for i := 0; i < 5; i++ {
			require.NoError(t, model.AddWindowToColumn(window.ID(i+1), Index(i)))
		}
	}

	layouts := m.CalculateWorkspaceLayouts()
	for i := 0; i < 5; i++ {
		_, ok := layouts[window.ID(i+1)]
		assert.True(t, ok, "window %d should have a computed layout rect", i+1)
	}
	assert.Equal(t, seq.CalculateWorkspaceLayouts(), layouts)
}

func TestCalculateWorkspaceLayoutsOnlyIncludesVisibleColumns(t *testing.T) {
	cfg := testConfig()
	cfg.SmoothScrolling = false
	m := NewModel(cfg)
	m.SetViewportSize(1000, 800)
	m.AddWindow(window.ID(1))
	require.NoError(t, m.ScrollRight())
	m.AddWindow(window.ID(2))
	require.NoError(t, m.ScrollRight())
	m.AddWindow(window.ID(3))

	layouts := m.CalculateWorkspaceLayouts()
	_, visible1 := layouts[window.ID(1)]
	_, visible3 := layouts[window.ID(3)]
	assert.False(t, visible1, "column 0 has scrolled fully out of view")
	assert.True(t, visible3, "the focused column must always be visible")
}
