// Package protocol implements the XDG-shell surface state machine: role
// assignment, the configure/ack handshake, commit rules, and timeout
// monitoring (spec.md §4.7). It never touches pixel data, GPU resources, or
// the window stack — only the bookkeeping that decides whether a client's
// requests are well-formed.
package protocol

import (
	"fmt"
	"time"

	"github.com/axiom-wm/axiom/internal/axerr"
)

// SurfaceID identifies an XDG surface, scoped to one client connection.
type SurfaceID uint64

// Role is the XDG-shell role assigned to a surface. Once assigned, a
// surface's role is monotonic and never changes.
type Role int

const (
	RoleNone Role = iota
	RoleToplevel
	RolePopup
)

// State is a surface's position in the XDG-shell lifecycle.
type State int

const (
	StateCreated State = iota
	StateRoleAssigned
	StateConfigured
	StateAcked
	StateMapped
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRoleAssigned:
		return "RoleAssigned"
	case StateConfigured:
		return "Configured"
	case StateAcked:
		return "Acked"
	case StateMapped:
		return "Mapped"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Default timeout thresholds (spec.md §4.7).
const (
	DefaultConfigureTimeout = 5 * time.Second
	DefaultIdleTimeout      = 30 * time.Second
)

// WarningKind classifies a non-fatal ProtocolWarning.
type WarningKind int

const (
	WarningConfigureTimeout WarningKind = iota
	WarningIdleTimeout
	WarningDuplicateAck
)

// Warning is a non-fatal telemetry-only signal from CheckTimeouts or a
// duplicate ack.
type Warning struct {
	Surface SurfaceID
	Kind    WarningKind
	Detail  string
}

// configureEntry is one outstanding configure in a surface's queue.
type configureEntry struct {
	serial   uint32
	width    int
	height   int
	issuedAt time.Time
}

// surface holds a single XDG surface's validator-tracked state.
type surface struct {
	id             SurfaceID
	role           Role
	state          State
	outstanding    []configureEntry
	lastAcked      uint32
	haveAcked      bool
	lastCommit     time.Time
	haveCommit     bool
	bufferAttached bool
	ackedSerials   map[uint32]bool
}

// Validator tracks the XDG-shell state machine for every registered surface.
// Per spec.md §5 this is never shared between clients: a dispatch actor
// typically owns one Validator (or one per client); all methods are safe to
// call repeatedly from that single actor without external locking.
type Validator struct {
	configureTimeout time.Duration
	idleTimeout      time.Duration

	surfaces map[SurfaceID]*surface
}

// NewValidator creates a Validator with the default timeout thresholds.
func NewValidator() *Validator {
	return &Validator{
		configureTimeout: DefaultConfigureTimeout,
		idleTimeout:      DefaultIdleTimeout,
		surfaces:         make(map[SurfaceID]*surface),
	}
}

// WithTimeouts overrides the configure and idle timeout thresholds.
func (v *Validator) WithTimeouts(configureTimeout, idleTimeout time.Duration) *Validator {
	v.configureTimeout = configureTimeout
	v.idleTimeout = idleTimeout
	return v
}

// RegisterSurface begins tracking a new surface in StateCreated.
func (v *Validator) RegisterSurface(id SurfaceID) {
	v.surfaces[id] = &surface{id: id, state: StateCreated, ackedSerials: make(map[uint32]bool)}
}

// AssignRole assigns role to id. Returns a fatal ProtocolError if the
// surface already carries a role (rule 1: single-role).
func (v *Validator) AssignRole(id SurfaceID, role Role) error {
	s, ok := v.surfaces[id]
	if !ok {
		return axerr.New(axerr.KindProtocolError, "assign_role: unknown surface %d", id)
	}
	if s.role != RoleNone {
		return axerr.New(axerr.KindProtocolError, "surface %d already has role %v: RoleAlreadyAssigned", id, s.role)
	}
	s.role = role
	s.state = StateRoleAssigned
	return nil
}

// AddConfigure records an outstanding configure with the given serial and
// intended size, advancing the surface to StateConfigured.
func (v *Validator) AddConfigure(id SurfaceID, serial uint32, width, height int) error {
	s, ok := v.surfaces[id]
	if !ok {
		return axerr.New(axerr.KindProtocolError, "add_configure: unknown surface %d", id)
	}
	s.outstanding = append(s.outstanding, configureEntry{serial: serial, width: width, height: height, issuedAt: time.Now()})
	if s.state < StateConfigured {
		s.state = StateConfigured
	}
	return nil
}

// AckConfigure acks serial, retiring it and every older outstanding serial
// (rule 4: ack order). Returns a fatal ProtocolError if serial is not in the
// outstanding queue. Returns a non-fatal Warning (nil error, non-nil *Warning)
// if serial was already acked.
func (v *Validator) AckConfigure(id SurfaceID, serial uint32) (*Warning, error) {
	s, ok := v.surfaces[id]
	if !ok {
		return nil, axerr.New(axerr.KindProtocolError, "ack_configure: unknown surface %d", id)
	}

	if s.ackedSerials[serial] {
		return &Warning{Surface: id, Kind: WarningDuplicateAck, Detail: fmt.Sprintf("serial %d acked twice", serial)}, nil
	}

	idx := -1
	for i, e := range s.outstanding {
		if e.serial == serial {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, axerr.New(axerr.KindProtocolError, "ack_configure: serial %d not outstanding on surface %d", serial, id)
	}

	// Acking implicitly retires this serial and every older one. Only the
	// acked serial itself is recorded for duplicate-ack detection: an older
	// serial retired here is simply no longer outstanding, so acking it later
	// is a ProtocolError.
	s.ackedSerials[serial] = true
	s.outstanding = s.outstanding[idx+1:]
	s.lastAcked = serial
	s.haveAcked = true
	s.state = StateAcked
	return nil, nil
}

// ValidateCommit checks a commit against rules 2, 3, and 5, and advances the
// surface's state. hasBuffer reports whether a buffer was attached before
// this commit.
func (v *Validator) ValidateCommit(id SurfaceID, hasBuffer bool) error {
	s, ok := v.surfaces[id]
	if !ok {
		return axerr.New(axerr.KindProtocolError, "validate_commit: unknown surface %d", id)
	}

	// Rule 2: no commit before role.
	if s.role == RoleNone {
		return axerr.New(axerr.KindProtocolError, "surface %d committed before a role was assigned", id)
	}

	// Rule 3: first commit after role assignment must have no buffer.
	if !s.haveCommit && hasBuffer {
		return axerr.New(axerr.KindProtocolError, "surface %d attached a buffer on its first commit", id)
	}

	// Rule 5: a commit with a buffer requires at least one acked configure.
	if hasBuffer && !s.haveAcked {
		return axerr.New(axerr.KindProtocolError, "surface %d committed a buffer with no acked configure", id)
	}

	s.haveCommit = true
	s.lastCommit = time.Now()
	if hasBuffer {
		s.bufferAttached = true
		s.state = StateMapped
	}
	return nil
}

// DestroySurface stops tracking id.
func (v *Validator) DestroySurface(id SurfaceID) {
	delete(v.surfaces, id)
}

// CheckTimeouts scans every tracked surface for non-fatal timeout
// conditions: a configure issued but not acked for more than the configure
// timeout, or a mapped surface with no commit for more than the idle
// timeout. Intended to run once per second from the dispatch actor's idle
// tick (spec.md §5).
func (v *Validator) CheckTimeouts(now time.Time) []Warning {
	var warnings []Warning
	for id, s := range v.surfaces {
		for _, e := range s.outstanding {
			if now.Sub(e.issuedAt) > v.configureTimeout {
				warnings = append(warnings, Warning{
					Surface: id,
					Kind:    WarningConfigureTimeout,
					Detail:  fmt.Sprintf("configure serial %d unacked for %s", e.serial, now.Sub(e.issuedAt)),
				})
			}
		}
		if s.state == StateMapped && now.Sub(s.lastCommit) > v.idleTimeout {
			warnings = append(warnings, Warning{
				Surface: id,
				Kind:    WarningIdleTimeout,
				Detail:  fmt.Sprintf("mapped surface idle for %s", now.Sub(s.lastCommit)),
			})
		}
	}
	return warnings
}

// Stats returns the count of tracked surfaces grouped by state.
func (v *Validator) Stats() map[State]int {
	out := make(map[State]int)
	for _, s := range v.surfaces {
		out[s.state]++
	}
	return out
}

// IsMapped reports whether id is in StateMapped with at least one acked
// serial and a committed buffer (the invariant from spec.md §8).
func (v *Validator) IsMapped(id SurfaceID) bool {
	s, ok := v.surfaces[id]
	if !ok {
		return false
	}
	return s.state == StateMapped && s.haveAcked && s.bufferAttached
}
