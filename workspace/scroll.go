package workspace

import "math"

// scrollEpsilon is the |current-target| threshold below which is_scrolling
// reports false, per spec.md §4.3.
const scrollEpsilon = 0.5

// scrollState tracks the workspace's animated horizontal scroll offset.
// Smoothing is parameterised as a critically damped spring expressed as a
// half-life (Open Question 3): scrollSpeed is the time in seconds to close
// half the remaining distance to target, converted to a damping coefficient
// lambda = ln(2)/half_life and stepped each frame as
// offset += (target-offset) * (1 - exp(-lambda*dt)).
type scrollState struct {
	current float64
	target  float64
	// totalDistance is the |target-current| span in effect when the
	// current scroll segment started, used by progress() to normalise.
	totalDistance float64
}

// setTarget retargets the scroll to target, recording the new segment's
// total distance for progress() to normalise against. If smooth scrolling
// is disabled, callers should instead call jumpTo.
func (s *scrollState) setTarget(target float64) {
	s.target = target
	s.totalDistance = math.Abs(s.target - s.current)
}

// jumpTo immediately sets current and target to value, used when
// smooth_scrolling is disabled.
func (s *scrollState) jumpTo(value float64) {
	s.current = value
	s.target = value
	s.totalDistance = 0
}

// step advances current toward target by one frame of dt seconds, using
// halfLife (seconds) as the spring's half-life parameter. halfLife <= 0 is
// treated as instantaneous (jumps straight to target). Once current is
// within scrollEpsilon of target it snaps to target, so the scroll lands
// exactly when isScrolling turns false.
func (s *scrollState) step(dt, halfLife float64) {
	if halfLife <= 0 {
		s.current = s.target
		return
	}
	lambda := math.Ln2 / halfLife
	s.current += (s.target - s.current) * (1 - math.Exp(-lambda*dt))
	if math.Abs(s.target-s.current) <= scrollEpsilon {
		s.current = s.target
	}
}

// isScrolling reports whether |current-target| exceeds scrollEpsilon.
func (s *scrollState) isScrolling() bool {
	return math.Abs(s.target-s.current) > scrollEpsilon
}

// progress returns the normalised [0,1] interpolation of the current scroll
// segment: 0 at the moment setTarget was called, 1 once current reaches
// target. Returns 1 if the segment had zero distance (already at target).
func (s *scrollState) progress() float64 {
	if s.totalDistance <= 0 {
		return 1
	}
	traveled := s.totalDistance - math.Abs(s.target-s.current)
	p := traveled / s.totalDistance
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
