// Package diag is the structured diagnostic channel the engine logs
// contained failures through (spec.md §7): SystemExecutionFailure,
// CascadeRuleFailure, and similar errors that are logged and then
// tolerated rather than propagated.
//
// The teacher's only logging is ad hoc stdlib log.Printf at its
// UI/asset-loading call sites (engine/ui/uisprites.go, cmd/game/main.go)
// — unleveled, unstructured. This package adopts
// github.com/rs/zerolog instead as an ecosystem choice: no corpus repo
// imports it directly (see DESIGN.md's engine/diag entry).
package diag

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is a thin alias so call sites depend on this package rather
// than importing zerolog directly.
type Logger = zerolog.Logger

// NewLogger constructs a Logger writing to w (os.Stderr if nil).
func NewLogger(w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Entry is one captured diagnostic, surfaced to the host alongside the
// tick-delta notification (spec.md §7: "the host sees ... diagnostic
// entries describing each captured failure").
type Entry struct {
	Tick    uint64
	Kind    string // e.g. "SystemExecutionFailure"
	Source  string // system name or rule handle name
	Message string
}

// Recorder buffers diagnostic entries for the current tick so the
// engine can attach them to its TickDelta notification, then clears on
// Drain. Safe for concurrent use even though the engine itself is
// single-threaded, since rule handles and subscribers run on the
// engine's own call stack and might legitimately be invoked from a host
// goroutine wrapping Run in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder constructs an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one diagnostic entry.
func (r *Recorder) Record(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Drain returns every entry recorded since the last Drain and clears the
// buffer.
func (r *Recorder) Drain() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.entries
	r.entries = nil
	return out
}
