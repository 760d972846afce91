package sim

import (
	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/event"
)

// System is one domain system's contract with the engine (spec.md
// §4.7/§4.8). Grounded on the teacher's System interface
// (engine/core/ecs.go: Update(w, dt float64); Priority() int),
// generalized from one priority integer into the spec's two-axis
// (Order phase, Frequency tier) scheduling, and from a panic-only
// Update into an Execute that returns an error so the engine can contain
// failures per-system per-tick (spec.md §4.7 Failure semantics).
type System interface {
	// Name identifies the system for diagnostics. Same-phase systems are
	// ordered by registration, not by name.
	Name() string
	// Order declares which of the eight system-bearing phases this
	// system runs in.
	Order() Phase
	// Frequency declares how often this system fires.
	Frequency() Tier
	// Initialize is called once, before the first tick. Systems may
	// instead subscribe lazily on first Execute (spec.md §9 "Lazy
	// subscription") — both call sites receive the same Bus.
	Initialize(w *core.World, bus *event.Bus) error
	// Execute runs the system's per-tick logic. A returned error is
	// contained by the engine: logged, and the system is skipped for
	// the remainder of this tick, but the engine continues (spec.md
	// §4.7 Failure semantics).
	Execute(w *core.World, clock *core.Clock, bus *event.Bus) error
}

// BaseSystem supplies a no-op Initialize so example/test systems that
// don't need setup can embed it instead of writing an empty method.
type BaseSystem struct{}

// Initialize is a no-op; embedders override it only if they need setup.
func (BaseSystem) Initialize(*core.World, *event.Bus) error { return nil }
