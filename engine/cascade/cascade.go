// Package cascade turns an emitted event into zero or more derived
// consequence events, bounded by depth and dampened probabilistically
// per depth step (spec.md §4.5).
package cascade

import (
	"math/rand"

	"github.com/1siamBot/historia/engine/config"
	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/diag"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/metrics"
	"github.com/1siamBot/historia/engine/rng"
)

// RuleHandle evaluates one consequence potential against its source
// event and either returns a derived event payload or (nil, nil) to
// decline emitting anything this time (spec.md §4.5: "a rule handle may
// decide at runtime not to emit; this is not an error"). The handle
// receives its own forked RNG stream so its internal choices (which
// participant to pick, flavor text selection, ...) stay deterministic
// too.
type RuleHandle func(r *rand.Rand, source event.Event, w *core.World) (*event.Event, error)

// Registry resolves a ConsequencePotential's RuleHandle name to an
// actual handle. Handles are registered by name rather than carried on
// the event itself, keeping events plain serializable data (spec.md §3).
type Registry struct {
	handles map[string]RuleHandle
}

// NewRegistry constructs an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]RuleHandle)}
}

// Register associates a rule handle with a name. Re-registering a name
// replaces the previous handle.
func (r *Registry) Register(name string, h RuleHandle) {
	r.handles[name] = h
}

func (r *Registry) resolve(name string) (RuleHandle, bool) {
	h, ok := r.handles[name]
	return h, ok
}

// Engine consumes each emitted event, evaluates its declared consequence
// potentials, and emits derived events back through the bus. It has no
// teacher analogue — the teacher has no cascading-consequence system —
// so its shape (small struct, pure per-potential math, one small pure
// function for the dampening formula) is built fresh in the idiom of the
// teacher's own small scoring tables, e.g. engine/systems/combat.go's
// DamageMultiplier.
type Engine struct {
	cfg      config.Cascade
	root     *rng.Root
	registry *Registry
	clock    *core.Clock
	bus      *event.Bus
	world    *core.World
	logger   diag.Logger
	metrics  *metrics.Metrics
}

// New constructs a cascade Engine. bus is the same Bus the rest of the
// simulation emits through; the Engine subscribes to it on construction
// so every emitted event — original or derived — is offered a chance to
// cascade. m may be nil, in which case no counters are updated.
func New(cfg config.Cascade, root *rng.Root, registry *Registry, clock *core.Clock, bus *event.Bus, world *core.World, logger diag.Logger, m *metrics.Metrics) *Engine {
	e := &Engine{cfg: cfg, root: root, registry: registry, clock: clock, bus: bus, world: world, logger: logger, metrics: m}
	bus.SubscribeAny(e.onEvent)
	return e
}

func (e *Engine) onEvent(source event.Event) {
	_ = e.Process(source)
}

// Process evaluates source's declared consequence potentials and emits
// any sampled derived events back through the bus. Re-entrant: a derived
// event's Emit call triggers this same handler again, so a chain
// unwinds depth-first before Process returns to its caller (spec.md
// §4.5 step 5, §8 boundary behavior "emitting within a subscriber").
//
// Returns the derived events actually emitted, for callers (tests)
// that want to inspect a single Process call's direct output.
func (e *Engine) Process(source event.Event) []event.Event {
	if source.Depth >= e.cfg.MaxDepth {
		return nil // CascadeDepthExceeded: not an error, silently ends the chain
	}
	if len(source.Consequences) == 0 {
		return nil
	}

	r := e.root.ForkEvent(source.ID)
	var emitted []event.Event
	for _, potential := range source.Consequences {
		derived, ok := e.attempt(r, source, potential)
		if !ok {
			continue
		}
		stored, err := e.bus.Emit(*derived)
		if err != nil {
			e.logger.Error().Err(err).Uint64("source_event", source.ID).Msg("failed to emit cascaded event")
			continue
		}
		if e.metrics != nil {
			e.metrics.CascadesFired.Inc()
		}
		emitted = append(emitted, stored)
	}
	return emitted
}

func (e *Engine) attempt(r *rand.Rand, source event.Event, potential event.ConsequencePotential) (*event.Event, bool) {
	handle, ok := e.registry.resolve(potential.RuleHandle)
	if !ok {
		e.logger.Warn().Str("rule", potential.RuleHandle).Msg("cascade rule handle not registered")
		return nil, false
	}

	prob := EffectiveProbability(e.cfg, potential, source.Depth)
	if r.Float64() >= prob {
		if e.metrics != nil {
			e.metrics.CascadesDamped.Inc()
		}
		return nil, false
	}

	derived, err := safeInvoke(handle, r, source, e.world)
	if err != nil {
		e.logger.Error().Err(err).Str("rule", potential.RuleHandle).Msg("cascade rule handle failed")
		if e.metrics != nil {
			e.metrics.CascadeFailures.WithLabelValues(potential.RuleHandle).Inc()
		}
		return nil, false // CascadeRuleFailure: treated as "no consequence emitted"
	}
	if derived == nil {
		return nil, false // rule handle declined to emit
	}

	derived.CauseIDs = append([]uint64{source.ID}, derived.CauseIDs...)
	derived.Tick = e.clock.CurrentTick()
	derived.Depth = source.Depth + 1
	return derived, true
}

// safeInvoke recovers a panicking rule handle and reports it the same
// way as a returned error — spec.md §7 treats CascadeRuleFailure
// uniformly regardless of how the handle failed.
func safeInvoke(h RuleHandle, r *rand.Rand, source event.Event, w *core.World) (derived *event.Event, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicError{p}
		}
	}()
	return h(r, source, w)
}

type panicError struct{ v any }

func (p panicError) Error() string { return "cascade rule handle panicked" }

// EffectiveProbability implements spec.md §4.5 step 2: base probability,
// dampened per depth step, further dampened if the potential is
// declared cross-domain relative to its source event.
func EffectiveProbability(cfg config.Cascade, potential event.ConsequencePotential, depth int) float64 {
	prob := potential.BaseProbability
	for i := 0; i < depth; i++ {
		prob *= 1 - cfg.Dampening
	}
	if potential.CrossDomain {
		prob *= cfg.CrossDomainMultiplier
	}
	return prob
}
