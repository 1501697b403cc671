// Package input defines the event shapes fed into the compositor by an
// external input actor (spec.md §5, §6). Actual device access (libinput) is
// out of scope for this core; this package only describes the wire shape of
// the bounded input-event channel between the input actor and the
// protocol-dispatch actor.
package input

// Modifier is a bitmask of held modifier keys, carried alongside key events.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// AxisSource identifies the physical source of a pointer-axis (scroll) event,
// which affects how a host interprets discrete-vs-continuous deltas.
type AxisSource int

const (
	// AxisSourceWheel is a discrete, notched scroll wheel.
	AxisSourceWheel AxisSource = iota
	// AxisSourceFinger is a continuous touchpad two-finger scroll gesture.
	AxisSourceFinger
	// AxisSourceContinuous is any other continuous source (e.g. a trackball).
	AxisSourceContinuous
)

// KeyEvent reports a key press or release, identified by X11/Wayland keysym.
type KeyEvent struct {
	Keysym    uint32
	Pressed   bool
	Modifiers Modifier
}

// PointerMotionEvent reports relative pointer movement in logical pixels.
type PointerMotionEvent struct {
	DX, DY float64
}

// PointerButtonEvent reports a pointer button press or release. Button codes
// follow the Linux evdev BTN_* numbering (e.g. 0x110 for the left button).
type PointerButtonEvent struct {
	Button  uint32
	Pressed bool
}

// PointerAxisEvent reports a scroll/axis event with horizontal and vertical
// components in logical pixels (or notches, for AxisSourceWheel).
type PointerAxisEvent struct {
	Horizontal, Vertical float64
	Source               AxisSource
}

// Event is the sealed union of event shapes carried on the input channel.
// Exactly one of the fields is non-nil.
type Event struct {
	Key           *KeyEvent
	PointerMotion *PointerMotionEvent
	PointerButton *PointerButtonEvent
	PointerAxis   *PointerAxisEvent
}
