// Package raftlogerr defines the error kinds surfaced by this core, per
// spec.md §7: InconsistentState (caller violated a precondition), Busy (a
// single-flight slot is occupied), and Io (forwarded verbatim from the
// durable backend). Errors are stack-annotated with pingcap/errors, the way
// the teacher's kv/tikv tree wraps storage/transport failures. KindOf
// classifies by walking the Cause() chain itself, mirroring
// kv/tikv/errors.go's convertToKeyError switch on errors.Cause(err);
// juju/errors.Cause is used by Unwrap.
package raftlogerr

import (
	jujuerr "github.com/juju/errors"
	pingcaperr "github.com/pingcap/errors"
)

// Kind is one of the three error categories spec.md §7 names.
type Kind int

const (
	// KindInconsistentState means an invariant precondition was violated by
	// the caller; the operation is fatal and must not be retried with the
	// same inputs.
	KindInconsistentState Kind = iota
	// KindBusy means a single-flight slot (snapshot install) was already
	// occupied; the caller may retry later.
	KindBusy
	// KindIO means the error was forwarded, unmodified in meaning, from the
	// I/O backend.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindInconsistentState:
		return "InconsistentState"
	case KindBusy:
		return "Busy"
	case KindIO:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error pairs a Kind with the underlying cause, stack-annotated so a host
// can log a useful trace without this package ever needing to know about
// logging.
type Error struct {
	kind  Kind
	cause error
}

func (e *Error) Error() string {
	return e.cause.Error()
}

// Cause implements the interface juju/errors.Cause and pingcap/errors.Cause
// both look for, so either helper can unwrap back to this error (or further,
// to whatever it wraps).
func (e *Error) Cause() error {
	return e.cause
}

// Kind reports which of the three categories e belongs to.
func (e *Error) Kind() Kind {
	return e.kind
}

// New builds a Kind-tagged error from a message, stack-annotated at the call
// site.
func New(kind Kind, msg string) error {
	return &Error{kind: kind, cause: pingcaperr.New(msg)}
}

// Newf is the formatted form of New.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, cause: pingcaperr.Errorf(format, args...)}
}

// WrapIO tags err, forwarded from the I/O backend, as KindIO without
// altering its meaning, per spec.md §7's "propagated verbatim".
func WrapIO(err error) error {
	if err == nil {
		return nil
	}
	return &Error{kind: KindIO, cause: pingcaperr.Trace(err)}
}

// KindOf classifies err by unwrapping to its root cause the way
// kv/tikv/errors.go does with juju/errors.Cause, defaulting to KindIO for
// anything this package didn't itself construct.
func KindOf(err error) Kind {
	type causer interface{ Cause() error }
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.kind
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return KindIO
}

// Is reports whether err (or anything it wraps) carries kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Unwrap returns the cause of err as juju/errors.Cause reports it, the way
// kv/tikv/errors.go does when classifying an I/O failure it didn't itself
// wrap. juju/errors.Cause looks one level deep: for an error built by this
// package that is the error it wraps, which for WrapIO is the original
// error under a pingcap/errors stack annotation carrying the same message.
func Unwrap(err error) error {
	return jujuerr.Cause(err)
}
