// Package errors defines all exported error sentinels for the extsort module.
//
// This is the single source of truth for error values. The root extsort
// package, its CLI front ends, and callers outside the module all match
// against these sentinels, ensuring errors.Is checks work across package
// boundaries.
package errors

import (
	"errors"
	"fmt"
)

// Argument and input errors.
var (
	// ErrInvalidArgument is returned for a null/blank output path or temp
	// directory, or a non-positive target size for the generator writer.
	ErrInvalidArgument = errors.New("extsort: invalid argument")

	// ErrInputMissing is returned when the sort input file does not exist
	// at the start of a run.
	ErrInputMissing = errors.New("extsort: input file missing")
)

// I/O errors.
var (
	// ErrIO wraps any read/write/open/delete failure not covered by a more
	// specific sentinel.
	ErrIO = errors.New("extsort: I/O error")

	// ErrDiskFull is an ErrIO subclass identified by platform error code or
	// message substring, so callers can advise the user specifically.
	ErrDiskFull = fmt.Errorf("%w: disk full", ErrIO)
)

// ErrCancelled is returned when cooperative cancellation was observed.
// The generator writer treats cancellation as a normal stop condition and
// does not return it; the sort orchestrator removes any partial output and
// returns the cancellation wrapped with this sentinel.
var ErrCancelled = errors.New("extsort: cancelled")

// Kind identifies which error category an error belongs to, for mapping to
// CLI exit codes without the caller re-deriving classification logic.
type Kind int

const (
	// KindUnknown is returned for errors that don't match any sentinel.
	KindUnknown Kind = iota
	KindInvalidArgument
	KindInputMissing
	KindDiskFull
	KindIO
	KindCancelled
)

// Classify maps err to the Kind of the most specific sentinel it matches.
// DiskFull is checked before the generic IO sentinel since DiskFull errors
// are always also IO errors.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrCancelled):
		return KindCancelled
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrInputMissing):
		return KindInputMissing
	case errors.Is(err, ErrDiskFull):
		return KindDiskFull
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindUnknown
	}
}
