package workspace

import (
	"time"

	"github.com/axiom-wm/axiom/window"
)

// Index is a signed column index. Zero is the initial focus; negative
// indices extend the workspace to the left, positive to the right.
type Index int

// Column is an ordered sequence of window ids under one layout strategy, per
// spec.md §3. A column is either active (non-empty, or empty-but-within its
// grace window) or garbage-collected by update_animations once the grace
// interval elapses while empty.
type Column struct {
	windows       []window.ID
	layout        LayoutMode
	lastNonEmpty  time.Time
}

// newColumn creates an empty column in the default layout mode, considered
// non-empty as of now (so a freshly created column always gets a full
// grace window before it can be reaped).
func newColumn(now time.Time) *Column {
	return &Column{lastNonEmpty: now}
}

// Windows returns a snapshot of the column's window ids in order.
func (c *Column) Windows() []window.ID {
	out := make([]window.ID, len(c.windows))
	copy(out, c.windows)
	return out
}

// Layout returns the column's current layout strategy.
func (c *Column) Layout() LayoutMode {
	return c.layout
}

// Empty reports whether the column currently holds no windows.
func (c *Column) Empty() bool {
	return len(c.windows) == 0
}

// indexOf returns the position of id in the column, or -1 if absent.
func (c *Column) indexOf(id window.ID) int {
	for i, w := range c.windows {
		if w == id {
			return i
		}
	}
	return -1
}

// add appends id to the column and marks it non-empty as of now. No-op if
// id is already present (two columns never share a window id, and a column
// never holds a duplicate of its own id either).
func (c *Column) add(id window.ID, now time.Time) {
	if c.indexOf(id) >= 0 {
		return
	}
	c.windows = append(c.windows, id)
	c.lastNonEmpty = now
}

// remove removes id from the column, returning true if it was present. If
// the removal leaves the column empty, lastNonEmpty is set to now, starting
// the cleanup grace window from the moment of emptying rather than from
// some earlier add.
func (c *Column) remove(id window.ID, now time.Time) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}
	c.windows = append(c.windows[:idx], c.windows[idx+1:]...)
	if c.Empty() {
		c.lastNonEmpty = now
	}
	return true
}

// expired reports whether the column has been continuously empty for at
// least grace, as of now.
func (c *Column) expired(now time.Time, grace time.Duration) bool {
	return c.Empty() && now.Sub(c.lastNonEmpty) >= grace
}
