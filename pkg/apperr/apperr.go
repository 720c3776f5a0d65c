package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping. Kinds are stable:
// handlers translate them to envelope codes, services never inspect messages.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks missing or malformed caller input. Never retried.
	KindValidation
	// KindConflict marks duplicate unique keys or operations attempted on a
	// record already in a terminal/incompatible state.
	KindConflict
	// KindNotFound marks a missing student/payment/record reference.
	KindNotFound
	// KindPermission marks a caller role lacking the required capability.
	KindPermission
	// KindGateway marks an unreachable or misbehaving upstream payment
	// gateway. Possibly transient; the caller may retry, we do not.
	KindGateway
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindGateway:
		return "gateway"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a kinded error. args may carry a format-args tail.
func E(kind Kind, msg string, args ...any) error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Error{Kind: kind, Msg: msg}
}

// Wrap attaches a kind to an underlying error while keeping it unwrappable.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from err or any error it wraps.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// Message returns the human-readable message without the kind prefix,
// falling back to err.Error() for unkinded errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
