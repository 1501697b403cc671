package effects

import (
	"time"

	"github.com/axiom-wm/axiom/window"
)

// AnimationKind identifies what an AnimationRecord drives.
type AnimationKind int

const (
	KindWindowMove AnimationKind = iota
	KindWindowOpen
	KindWindowClose
	KindWorkspaceScroll
	KindPropertyChange
)

// PropertyKind distinguishes the two scalar properties a KindPropertyChange
// animation can drive.
type PropertyKind int

const (
	PropertyOpacity PropertyKind = iota
	PropertyCornerRadius
)

// Value is a carried animation endpoint: a 2D vector for window-move, a
// (scale, opacity) pair for open/close, or a single scalar (X only) for
// workspace-scroll and property-change.
type Value struct {
	X, Y float64
}

// AnimationRecord is one active animation: what it drives, when it started,
// how long it runs, which easing curve shapes its progress, and its
// endpoints. Completed is set once t reaches 1 and the record is reaped the
// following Update call, per the "live from issuance to completion+1 frame"
// lifecycle.
type AnimationRecord struct {
	id       uint64
	Kind     AnimationKind
	Target   window.ID
	Property PropertyKind
	Start    time.Time
	Duration time.Duration
	Curve    EasingCurve
	From     Value
	To       Value
	Completed bool
}

// progress returns the clamped, eased [0,1] progress of the animation at now.
func (a *AnimationRecord) progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	t := float64(now.Sub(a.Start)) / float64(a.Duration)
	return Ease(a.Curve, t)
}

// done reports whether now is at or past the animation's end.
func (a *AnimationRecord) done(now time.Time) bool {
	return now.Sub(a.Start) >= a.Duration
}

// valueAt interpolates From->To at now, applying the record's easing curve.
func (a *AnimationRecord) valueAt(now time.Time) Value {
	p := a.progress(now)
	return Value{
		X: Lerp(a.From.X, a.To.X, p),
		Y: Lerp(a.From.Y, a.To.Y, p),
	}
}

// animKey identifies an animation slot by (kind, target, property) — the
// tuple a superseding animation replaces per the cancellation rule in
// spec.md §5: a new animation with the same key immediately replaces the
// active one, starting from its current interpolated value.
type animKey struct {
	kind     AnimationKind
	target   window.ID
	property PropertyKind
}

// animations is the active-animation set: a map from synthetic id to record,
// plus a lookup index by (kind, target, property) so issuing a new animation
// can find and supersede an existing one in O(1).
type animations struct {
	nextID  uint64
	byID    map[uint64]*AnimationRecord
	byKey   map[animKey]uint64
}

func newAnimations() *animations {
	return &animations{
		byID:  make(map[uint64]*AnimationRecord),
		byKey: make(map[animKey]uint64),
	}
}

// start issues a new animation for key, superseding any existing one. If an
// existing record is active, from is ignored and the new record starts from
// the existing record's current interpolated value instead — the
// superseding-animation cancellation rule.
func (a *animations) start(now time.Time, key animKey, kind AnimationKind, target window.ID, property PropertyKind, from, to Value, duration time.Duration, curve EasingCurve) {
	if existingID, ok := a.byKey[key]; ok {
		if existing, ok := a.byID[existingID]; ok && !existing.done(now) {
			from = existing.valueAt(now)
		}
		delete(a.byID, existingID)
	}

	a.nextID++
	rec := &AnimationRecord{
		id:       a.nextID,
		Kind:     kind,
		Target:   target,
		Property: property,
		Start:    now,
		Duration: duration,
		Curve:    curve,
		From:     from,
		To:       to,
	}
	a.byID[rec.id] = rec
	a.byKey[key] = rec.id
}

// update advances the reap cycle: records already marked Completed from a
// prior call are removed now (their "+1 frame" grace has elapsed), and
// records that have just finished are marked Completed for removal next
// call. Returns the set of records live during this frame, in undefined
// order, for the caller to apply to EffectState.
func (a *animations) update(now time.Time) []*AnimationRecord {
	live := make([]*AnimationRecord, 0, len(a.byID))
	for id, rec := range a.byID {
		if rec.Completed {
			delete(a.byID, id)
			if a.byKey[a.keyOf(rec)] == id {
				delete(a.byKey, a.keyOf(rec))
			}
			continue
		}
		live = append(live, rec)
		if rec.done(now) {
			rec.Completed = true
		}
	}
	return live
}

func (a *animations) keyOf(rec *AnimationRecord) animKey {
	return animKey{kind: rec.Kind, target: rec.Target, property: rec.Property}
}

// count returns the number of animation records currently tracked,
// including ones pending reap — the active_animation_count telemetry field.
func (a *animations) count() int {
	return len(a.byID)
}
