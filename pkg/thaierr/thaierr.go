// Package thaierr defines the closed error-kind taxonomy shared by the
// card model, hand index, combinatorics, probability table, and cluster
// packages.
package thaierr

import (
	"errors"
	"fmt"
)

// Kind is one of the error categories the system can surface.
type Kind uint8

const (
	// OutOfRange covers card_nb outside [0,24] and popcount-out-of-contract inputs.
	OutOfRange Kind = iota
	// InvalidHand covers a hand whose index lookup returns the sentinel.
	InvalidHand
	// InvalidBet covers CHECK or an out-of-range bet passed to a satisfaction predicate.
	InvalidBet
	// IOError covers open/read/write failure of a persistence file.
	IOError
	// FormatError covers a magic-string mismatch.
	FormatError
	// VersionMismatch covers an on-disk version different from the compiled-in version.
	VersionMismatch
	// DimensionMismatch covers an on-disk shape different from the compile-time constants.
	DimensionMismatch
	// BuildFailure covers k-means producing an empty cluster the sampler requires.
	BuildFailure
)

func (k Kind) String() string {
	switch k {
	case OutOfRange:
		return "out_of_range"
	case InvalidHand:
		return "invalid_hand"
	case InvalidBet:
		return "invalid_bet"
	case IOError:
		return "io_error"
	case FormatError:
		return "format_error"
	case VersionMismatch:
		return "version_mismatch"
	case DimensionMismatch:
		return "dimension_mismatch"
	case BuildFailure:
		return "build_failure"
	default:
		return "unknown"
	}
}

// Error is the concrete error type carrying a Kind.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// New creates an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, err: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
