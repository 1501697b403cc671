// Package axerr defines the typed error kinds the compositor core raises.
// Every recoverable kind carries a sentinel so callers can test with errors.Is;
// causes are wrapped with github.com/pkg/errors for stack context the way the
// rest of the ecosystem does it.
package axerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for errors.Is comparisons. Each Kind below wraps one of
// these as its root cause unless a more specific wrapped error is supplied.
var (
	// ErrProtocolViolation is the root cause of every ProtocolError. Fatal to
	// the offending client; the dispatch actor must disconnect on this error.
	ErrProtocolViolation = errors.New("xdg-shell protocol violation")

	// ErrUnsupportedFormat is raised by the buffer converter when a source
	// format tag is unrecognised and no fallback was requested.
	ErrUnsupportedFormat = errors.New("unsupported pixel source format")

	// ErrOutOfBounds is a soft failure from the workspace API; no state change
	// has occurred when this is returned.
	ErrOutOfBounds = errors.New("workspace index out of bounds")

	// ErrGPUAllocation indicates a GPU resource allocation failed. The caller
	// retries once with a smaller request before falling back to a placeholder.
	ErrGPUAllocation = errors.New("gpu allocation failure")

	// ErrGPUContextLost indicates the GPU device/context was lost and must be
	// recreated; frames during recovery are skipped.
	ErrGPUContextLost = errors.New("gpu context lost")

	// ErrInvalidConfiguration indicates a configuration value was out of range
	// or an enum was unrecognised; callers should prefer Config.Sanitize over
	// surfacing this directly.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Kind classifies a raised error for telemetry and dispatch-policy purposes.
type Kind int

const (
	// KindProtocolError is fatal to the offending client.
	KindProtocolError Kind = iota
	// KindProtocolWarning is logged telemetry only; the client stays connected.
	KindProtocolWarning
	// KindUnsupportedFormat is a converter fallback condition.
	KindUnsupportedFormat
	// KindOutOfBounds is a soft workspace API failure.
	KindOutOfBounds
	// KindGPUAllocationFailure is a retryable renderer condition.
	KindGPUAllocationFailure
	// KindGPUContextLost requires pipeline/texture recreation.
	KindGPUContextLost
	// KindInvalidConfiguration is sanitised at load time, never fatal.
	KindInvalidConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindProtocolError:
		return "ProtocolError"
	case KindProtocolWarning:
		return "ProtocolWarning"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindOutOfBounds:
		return "OutOfBounds"
	case KindGPUAllocationFailure:
		return "GpuAllocationFailure"
	case KindGPUContextLost:
		return "GpuContextLost"
	case KindInvalidConfiguration:
		return "InvalidConfiguration"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type raised by every component in this module.
// It carries a Kind for dispatch-policy decisions plus a free-form reason and
// an optional wrapped cause.
type Error struct {
	Kind   Kind
	Reason string
	cause  error
}

// New creates an Error of the given kind with a formatted reason, wrapping
// the kind's sentinel as the root cause so errors.Is(err, axerr.ErrXxx) works.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
		cause:  errors.WithStack(sentinelFor(kind)),
	}
}

// Wrap creates an Error of the given kind around an existing cause, adding
// stack context via github.com/pkg/errors.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
		cause:  errors.Wrap(cause, sentinelFor(kind).Error()),
	}
}

func sentinelFor(kind Kind) error {
	switch kind {
	case KindProtocolError, KindProtocolWarning:
		return ErrProtocolViolation
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindOutOfBounds:
		return ErrOutOfBounds
	case KindGPUAllocationFailure:
		return ErrGPUAllocation
	case KindGPUContextLost:
		return ErrGPUContextLost
	case KindInvalidConfiguration:
		return ErrInvalidConfiguration
	default:
		return errors.New("unknown axiom error")
	}
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Unwrap exposes the wrapped cause so errors.Is/errors.As traverse through it.
func (e *Error) Unwrap() error {
	return e.cause
}

// Fatal reports whether this error kind must disconnect the offending client.
func (e *Error) Fatal() bool {
	return e.Kind == KindProtocolError
}
