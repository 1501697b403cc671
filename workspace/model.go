package workspace

import (
	"sync"
	"time"

	"github.com/axiom-wm/axiom/config"
	"github.com/axiom-wm/axiom/internal/axerr"
	"github.com/axiom-wm/axiom/internal/axwork"
	"github.com/axiom-wm/axiom/window"
)

// Model is the scrollable workspace: a signed-index-addressed map of
// columns, a focused index and focused-window-within-column cursor, and
// animated horizontal scroll. Not safe for concurrent use — per spec.md §5
// the workspace model is owned by a single actor.
type Model struct {
	cfg config.Workspace

	columns      map[Index]*Column
	focused      Index
	focusInCol   map[Index]int
	layoutCursor LayoutMode

	scroll scrollState

	viewportW, viewportH int
	insetTop, insetRight, insetBottom, insetLeft int

	windowColumn map[window.ID]Index

	lastUpdate   time.Time
	haveLastTime bool

	clock func() time.Time
	pool  *axwork.Pool
}

// ModelOption configures a Model at construction time.
type ModelOption func(*Model)

// WithLayoutPool enables fanning CalculateWorkspaceLayouts' per-column
// layout computation out across pool's workers instead of computing every
// visible column's layout sequentially. Worthwhile once a workspace has
// enough simultaneously visible columns that per-column layout math stops
// being dominated by map/slice allocation overhead.
func WithLayoutPool(pool *axwork.Pool) ModelOption {
	return func(m *Model) {
		m.pool = pool
	}
}

// NewModel constructs an empty Model with column 0 as the initial focus,
// per spec.md §3 ("zero is initial focus").
func NewModel(cfg config.Workspace, opts ...ModelOption) *Model {
	now := time.Now()
	m := &Model{
		cfg:          cfg,
		columns:      make(map[Index]*Column),
		focusInCol:   make(map[Index]int),
		windowColumn: make(map[window.ID]Index),
		clock:        time.Now,
	}
	m.columns[0] = newColumn(now)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) now() time.Time {
	return m.clock()
}

// outOfBounds reports whether idx exceeds the configured max_columns span
// from the origin.
func (m *Model) outOfBounds(idx Index) bool {
	bound := Index(m.cfg.MaxColumns)
	return idx > bound || idx < -bound
}

// ensureColumn returns the column at idx, creating it if absent. Fails
// softly with an OutOfBounds axerr.Error (no state change) if idx is out of
// the configured range, or if creating a new column would exceed the
// materialised-column cap.
func (m *Model) ensureColumn(idx Index, now time.Time) (*Column, error) {
	if c, ok := m.columns[idx]; ok {
		return c, nil
	}
	if m.outOfBounds(idx) {
		return nil, axerr.New(axerr.KindOutOfBounds, "column index %d exceeds max_columns %d", idx, m.cfg.MaxColumns)
	}
	if len(m.columns) >= m.cfg.MaxColumns {
		return nil, axerr.New(axerr.KindOutOfBounds, "materialised column count would exceed max_columns %d", m.cfg.MaxColumns)
	}
	c := newColumn(now)
	c.layout = m.layoutCursor
	m.columns[idx] = c
	return c, nil
}

// retargetScroll points the scroll spring at focused*WorkspaceWidth, the
// offset that puts the focused column's left edge at the viewport's left
// inset. The column is not centred in the viewport.
func (m *Model) retargetScroll() {
	target := float64(m.focused) * float64(m.cfg.WorkspaceWidth)
	if !m.cfg.SmoothScrolling {
		m.scroll.jumpTo(target)
		return
	}
	m.scroll.setTarget(target)
}

// ScrollLeft decrements the focused column index, materialising the column
// there if it does not exist yet. Returns an OutOfBounds error (no state
// change) if the new index is out of range.
func (m *Model) ScrollLeft() error {
	return m.focusIndex(m.focused - 1)
}

// ScrollRight increments the focused column index, materialising the
// column there if it does not exist yet.
func (m *Model) ScrollRight() error {
	return m.focusIndex(m.focused + 1)
}

func (m *Model) focusIndex(idx Index) error {
	if _, err := m.ensureColumn(idx, m.now()); err != nil {
		return err
	}
	m.focused = idx
	m.retargetScroll()
	return nil
}

// AddWindow adds id to the focused column. If id is already present in a
// different column, it is moved rather than duplicated, preserving the
// invariant that every window id appears in exactly one column.
func (m *Model) AddWindow(id window.ID) {
	m.AddWindowToColumn(id, m.focused)
}

// AddWindowToColumn adds id to the column at idx, creating it if absent.
// Returns an OutOfBounds error (no state change) if idx is out of range.
func (m *Model) AddWindowToColumn(id window.ID, idx Index) error {
	c, err := m.ensureColumn(idx, m.now())
	if err != nil {
		return err
	}
	if oldIdx, ok := m.windowColumn[id]; ok {
		if oldIdx == idx {
			return nil
		}
		m.removeFromColumn(id, oldIdx)
	}
	c.add(id, m.now())
	m.windowColumn[id] = idx
	return nil
}

// RemoveWindow removes id from whichever column holds it. No-op if id is
// not present in any column.
func (m *Model) RemoveWindow(id window.ID) {
	idx, ok := m.windowColumn[id]
	if !ok {
		return
	}
	m.removeFromColumn(id, idx)
}

func (m *Model) removeFromColumn(id window.ID, idx Index) {
	if c, ok := m.columns[idx]; ok {
		c.remove(id, m.now())
	}
	delete(m.windowColumn, id)
}

// MoveWindowLeft moves id from its current column to the column one to the
// left, appending it to that column's window order.
func (m *Model) MoveWindowLeft(id window.ID) error {
	return m.moveWindowBy(id, -1)
}

// MoveWindowRight moves id from its current column to the column one to
// the right, appending it to that column's window order.
func (m *Model) MoveWindowRight(id window.ID) error {
	return m.moveWindowBy(id, 1)
}

func (m *Model) moveWindowBy(id window.ID, delta Index) error {
	idx, ok := m.windowColumn[id]
	if !ok {
		return axerr.New(axerr.KindOutOfBounds, "window %d is not in any column", id)
	}
	return m.MoveWindowToColumn(id, idx+delta)
}

// MoveWindowToColumn moves id to the column at idx, appending it to that
// column's window order. If id was in the focused column, focus moves to
// idx with it, so the column it left can be reaped once empty. Returns an
// OutOfBounds error (no state change) if idx is out of range; id's current
// column is left untouched in that case.
func (m *Model) MoveWindowToColumn(id window.ID, idx Index) error {
	if _, err := m.ensureColumn(idx, m.now()); err != nil {
		return err
	}
	if oldIdx, ok := m.windowColumn[id]; ok {
		m.removeFromColumn(id, oldIdx)
		if oldIdx == m.focused && oldIdx != idx {
			m.focused = idx
			m.retargetScroll()
		}
	}
	c := m.columns[idx]
	c.add(id, m.now())
	m.windowColumn[id] = idx
	return nil
}

// FocusNextWindowInColumn cycles (with wrap) the focus cursor within the
// focused column. No-op if the focused column is empty.
func (m *Model) FocusNextWindowInColumn() {
	c, ok := m.columns[m.focused]
	if !ok || c.Empty() {
		return
	}
	m.focusInCol[m.focused] = (m.focusInCol[m.focused] + 1) % len(c.windows)
}

// FocusedWindowInColumn returns the window id currently focused within the
// focused column, and whether one exists.
func (m *Model) FocusedWindowInColumn() (window.ID, bool) {
	c, ok := m.columns[m.focused]
	if !ok || c.Empty() {
		return 0, false
	}
	return c.windows[m.focusInCol[m.focused]%len(c.windows)], true
}

// CycleLayoutMode advances the focused column's layout strategy to the
// next one in the fixed cycle order, and advances the workspace's global
// layout-mode cursor to match — new columns are created at whatever mode
// the cursor currently holds.
func (m *Model) CycleLayoutMode() {
	m.layoutCursor = m.layoutCursor.Next()
	if c, ok := m.columns[m.focused]; ok {
		c.layout = m.layoutCursor
	}
}

// SetViewportSize sets the workspace's visible viewport size in logical
// pixels.
func (m *Model) SetViewportSize(w, h int) {
	m.viewportW, m.viewportH = w, h
}

// SetReservedInsets sets the space reserved on each edge of the viewport
// (for panels, bars, etc.) that columns must not be laid out under.
func (m *Model) SetReservedInsets(top, right, bottom, left int) {
	m.insetTop, m.insetRight, m.insetBottom, m.insetLeft = top, right, bottom, left
}

// UpdateAnimations advances the scroll spring toward its target and reaps
// any empty column (other than the focused one, which must always exist)
// that has been empty for at least the configured grace interval.
func (m *Model) UpdateAnimations(now time.Time) {
	if m.haveLastTime {
		dt := now.Sub(m.lastUpdate).Seconds()
		if dt > 0 {
			m.scroll.step(dt, m.cfg.ScrollSpeed)
		}
	}
	m.lastUpdate = now
	m.haveLastTime = true

	grace := m.cfg.ColumnGrace()
	for idx, c := range m.columns {
		if idx == m.focused {
			continue
		}
		if c.expired(now, grace) {
			delete(m.columns, idx)
			delete(m.focusInCol, idx)
		}
	}
}

// IsScrolling reports whether the scroll offset is still animating toward
// its target.
func (m *Model) IsScrolling() bool {
	return m.scroll.isScrolling()
}

// ScrollProgress returns the normalised [0,1] progress of the current
// scroll animation segment.
func (m *Model) ScrollProgress() float64 {
	return m.scroll.progress()
}

// FocusedIndex returns the currently focused column index.
func (m *Model) FocusedIndex() Index {
	return m.focused
}

// Column returns a snapshot of the column at idx and whether it exists.
func (m *Model) Column(idx Index) (windows []window.ID, layout LayoutMode, ok bool) {
	c, ok := m.columns[idx]
	if !ok {
		return nil, 0, false
	}
	return c.Windows(), c.layout, true
}

// CalculateWorkspaceLayouts returns a window id -> Rect map for every
// window in every materialised column whose horizontal extent intersects
// the current viewport, given the current scroll offset.
func (m *Model) CalculateWorkspaceLayouts() map[window.ID]Rect {
	out := make(map[window.ID]Rect)
	innerW := m.viewportW - m.insetLeft - m.insetRight
	innerH := m.viewportH - m.insetTop - m.insetBottom
	if innerW <= 0 || innerH <= 0 {
		return out
	}

	type visibleColumn struct {
		layout LayoutMode
		ids    []window.ID
		bounds Rect
	}
	var visible []visibleColumn
	for idx, c := range m.columns {
		colX := float64(idx)*float64(m.cfg.WorkspaceWidth) - m.scroll.current
		left := colX
		right := colX + float64(m.cfg.WorkspaceWidth)
		if right < 0 || left > float64(innerW) {
			continue
		}
		visible = append(visible, visibleColumn{
			layout: c.layout,
			ids:    c.Windows(),
			bounds: Rect{X: m.insetLeft + int(colX), Y: m.insetTop, W: m.cfg.WorkspaceWidth, H: innerH},
		})
	}

	var mu sync.Mutex
	merge := func(vc visibleColumn) {
		rects := computeLayout(vc.layout, vc.ids, vc.bounds, m.cfg.Gaps)
		mu.Lock()
		for id, r := range rects {
			out[id] = r
		}
		mu.Unlock()
	}

	if m.pool != nil && len(visible) > 1 {
		axwork.Run(m.pool, visible, merge)
	} else {
		for _, vc := range visible {
			merge(vc)
		}
	}
	return out
}
