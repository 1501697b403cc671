// Package workspace implements the scrollable, column-based workspace
// model: a signed-index-addressed sequence of columns, each holding an
// ordered set of window ids under one layout strategy, plus animated
// viewport scrolling and empty-column garbage collection.
package workspace

import "github.com/axiom-wm/axiom/window"

// LayoutMode is a column's layout strategy. Implemented as a tagged variant
// (an enum plus a switch in compute) rather than a polymorphic interface,
// per the Design Note "Dynamic dispatch for layout strategies... not a
// polymorphic interface" — there is a small, fixed, cyclable set of
// strategies, not an open extension point.
type LayoutMode int

const (
	LayoutVertical LayoutMode = iota
	LayoutHorizontal
	LayoutMasterStack
	LayoutGrid
	LayoutSpiral
	layoutModeCount
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutVertical:
		return "vertical"
	case LayoutHorizontal:
		return "horizontal"
	case LayoutMasterStack:
		return "master-stack"
	case LayoutGrid:
		return "grid"
	case LayoutSpiral:
		return "spiral"
	default:
		return "unknown"
	}
}

// Next returns the layout mode that follows m in the fixed cycle order
// Vertical -> Horizontal -> MasterStack -> Grid -> Spiral -> Vertical.
func (m LayoutMode) Next() LayoutMode {
	return (m + 1) % layoutModeCount
}

// Rect is an integer-pixel rectangle in workspace coordinates.
type Rect struct {
	X, Y, W, H int
}

// computeLayout dispatches to the strategy compute function for mode,
// returning a map with one Rect for each id in ids, confined to the area
// bounds describes and separated by gap logical pixels.
func computeLayout(mode LayoutMode, ids []window.ID, bounds Rect, gap int) map[window.ID]Rect {
	switch mode {
	case LayoutHorizontal:
		return computeHorizontal(ids, bounds, gap)
	case LayoutMasterStack:
		return computeMasterStack(ids, bounds, gap)
	case LayoutGrid:
		return computeGrid(ids, bounds, gap)
	case LayoutSpiral:
		return computeSpiral(ids, bounds, gap)
	case LayoutVertical:
		fallthrough
	default:
		return computeVertical(ids, bounds, gap)
	}
}

// computeVertical stacks windows in equal-height rows filling bounds.
func computeVertical(ids []window.ID, bounds Rect, gap int) map[window.ID]Rect {
	out := make(map[window.ID]Rect, len(ids))
	n := len(ids)
	if n == 0 {
		return out
	}
	totalGap := gap * (n - 1)
	h := (bounds.H - totalGap) / n
	y := bounds.Y
	for i, id := range ids {
		rh := h
		if i == n-1 {
			rh = bounds.Y + bounds.H - y
		}
		out[id] = Rect{X: bounds.X, Y: y, W: bounds.W, H: rh}
		y += rh + gap
	}
	return out
}

// computeHorizontal splits bounds into n equal-width columns.
func computeHorizontal(ids []window.ID, bounds Rect, gap int) map[window.ID]Rect {
	out := make(map[window.ID]Rect, len(ids))
	n := len(ids)
	if n == 0 {
		return out
	}
	totalGap := gap * (n - 1)
	w := (bounds.W - totalGap) / n
	x := bounds.X
	for i, id := range ids {
		rw := w
		if i == n-1 {
			rw = bounds.X + bounds.W - x
		}
		out[id] = Rect{X: x, Y: bounds.Y, W: rw, H: bounds.H}
		x += rw + gap
	}
	return out
}

// computeMasterStack gives the first window the left half of bounds and
// stacks the remaining windows vertically in the right half.
func computeMasterStack(ids []window.ID, bounds Rect, gap int) map[window.ID]Rect {
	out := make(map[window.ID]Rect, len(ids))
	if len(ids) == 0 {
		return out
	}
	if len(ids) == 1 {
		out[ids[0]] = bounds
		return out
	}
	masterW := (bounds.W - gap) / 2
	out[ids[0]] = Rect{X: bounds.X, Y: bounds.Y, W: masterW, H: bounds.H}

	stackBounds := Rect{X: bounds.X + masterW + gap, Y: bounds.Y, W: bounds.X + bounds.W - (bounds.X + masterW + gap), H: bounds.H}
	stackRects := computeVertical(ids[1:], stackBounds, gap)
	for id, r := range stackRects {
		out[id] = r
	}
	return out
}

// computeGrid arranges n windows into a ceil(sqrt(n)) x ceil(n/cols) grid,
// filling row-major, left to right, top to bottom.
func computeGrid(ids []window.ID, bounds Rect, gap int) map[window.ID]Rect {
	out := make(map[window.ID]Rect, len(ids))
	n := len(ids)
	if n == 0 {
		return out
	}
	cols := ceilSqrt(n)
	rows := ceilDiv(n, cols)

	colW := (bounds.W - gap*(cols-1)) / cols
	rowH := (bounds.H - gap*(rows-1)) / rows

	for i, id := range ids {
		col := i % cols
		row := i / cols
		x := bounds.X + col*(colW+gap)
		y := bounds.Y + row*(rowH+gap)
		w := colW
		if col == cols-1 {
			w = bounds.X + bounds.W - x
		}
		h := rowH
		if row == rows-1 {
			h = bounds.Y + bounds.H - y
		}
		out[id] = Rect{X: x, Y: y, W: w, H: h}
	}
	return out
}

// computeSpiral bisects bounds Fibonacci-style: each window in turn takes
// roughly half of whatever area remains, alternating the split axis, and
// the final window takes what's left.
func computeSpiral(ids []window.ID, bounds Rect, gap int) map[window.ID]Rect {
	out := make(map[window.ID]Rect, len(ids))
	n := len(ids)
	if n == 0 {
		return out
	}
	remaining := bounds
	horizontalSplit := true
	for i, id := range ids {
		if i == n-1 {
			out[id] = remaining
			break
		}
		if horizontalSplit {
			w := (remaining.W - gap) / 2
			out[id] = Rect{X: remaining.X, Y: remaining.Y, W: w, H: remaining.H}
			remaining = Rect{X: remaining.X + w + gap, Y: remaining.Y, W: remaining.X + remaining.W - (remaining.X + w + gap), H: remaining.H}
		} else {
			h := (remaining.H - gap) / 2
			out[id] = Rect{X: remaining.X, Y: remaining.Y, W: remaining.W, H: h}
			remaining = Rect{X: remaining.X, Y: remaining.Y + h + gap, W: remaining.W, H: remaining.Y + remaining.H - (remaining.Y + h + gap)}
		}
		horizontalSplit = !horizontalSplit
	}
	return out
}

func ceilSqrt(n int) int {
	r := 1
	for r*r < n {
		r++
	}
	return r
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
