package extsort

import (
	"os"

	"github.com/rs/zerolog"
)

// Field is a single structured key/value pair attached to a diagnostic
// message. It mirrors the handful of zerolog.Event builder calls the
// sort and generation pipelines actually need, so callers outside this
// module never have to import zerolog themselves.
type Field struct {
	Key string
	Val any
}

// F builds a Field.
func F(key string, val any) Field {
	return Field{Key: key, Val: val}
}

// Diagnostics is the injected sink for the warnings and progress lines the
// data model calls for (invalid lines skipped during chunking, progress
// during generation). Implementations must be safe for concurrent use; the
// generator writer and the chunking/merge readers may call Warn from
// different goroutines in future extensions even though today's call
// pattern is single-goroutine per phase.
type Diagnostics interface {
	// Warn reports a non-fatal condition: an invalid line skipped, a chunk
	// reader abandoned mid-merge, a cleanup failure.
	Warn(msg string, fields ...Field)
	// Progress reports forward progress of a long-running phase.
	Progress(msg string, fields ...Field)
}

// nopDiagnostics discards everything. Used when a caller passes a nil
// Diagnostics, so internal code never needs a nil check at each call site.
type nopDiagnostics struct{}

func (nopDiagnostics) Warn(string, ...Field)     {}
func (nopDiagnostics) Progress(string, ...Field) {}

func orNop(d Diagnostics) Diagnostics {
	if d == nil {
		return nopDiagnostics{}
	}
	return d
}

// zerologDiagnostics adapts a zerolog.Logger to Diagnostics. It is the
// default used by the CLI front ends; library callers may supply their own
// implementation instead.
type zerologDiagnostics struct {
	log zerolog.Logger
}

// NewDiagnostics returns a Diagnostics backed by a human-readable zerolog
// console writer on stderr, grounded on the pack's zerolog-based logging
// package convention (structured, leveled, stderr by default).
func NewDiagnostics() Diagnostics {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).
		With().Timestamp().Logger()
	return &zerologDiagnostics{log: log}
}

func (z *zerologDiagnostics) Warn(msg string, fields ...Field) {
	apply(z.log.Warn(), fields).Msg(msg)
}

func (z *zerologDiagnostics) Progress(msg string, fields ...Field) {
	apply(z.log.Info(), fields).Msg(msg)
}

func apply(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		e = e.Interface(f.Key, f.Val)
	}
	return e
}
