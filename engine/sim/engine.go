package sim

import (
	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/diag"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/lod"
	"github.com/1siamBot/historia/engine/metrics"
	"github.com/pkg/errors"
)

// ErrSystemExecutionFailure names the system-failure kind (spec.md §7).
// Tick never returns it: when a system panics or returns an error during
// Execute, the engine logs that error itself (not wrapped in this
// sentinel), records a "SystemExecutionFailure" diagnostic entry, skips
// the rest of that system for the tick, and continues.
var ErrSystemExecutionFailure = errors.New("sim: system execution failure")

// ErrInvariantViolation names the fatal internal-consistency failure kind
// (spec.md §7). Tick runs no consistency check of its own and returns nil
// on every path, so it never returns this value.
var ErrInvariantViolation = errors.New("sim: invariant violation")

// EntityUpdate summarizes which component kinds changed on one entity
// during a tick, computed by draining each store's per-tick dirty set
// rather than diffing full snapshots (spec.md §6).
type EntityUpdate struct {
	Entity  core.EntityID
	Changed []core.ComponentKind
}

// TickDelta is the record handed to the host's notification callback at
// phase 13 (spec.md §6).
type TickDelta struct {
	Tick     uint64
	Time     core.CalendarTime
	Events   []event.Event
	Updated  []EntityUpdate
	Removed  []core.EntityID
	Diagnostics []diag.Entry
}

// NotifyFunc receives one TickDelta per completed tick.
type NotifyFunc func(TickDelta)

// NarrativeFunc is phase 11's external hook, invoked with the events
// emitted so far this tick.
type NarrativeFunc func(events []event.Event)

// Engine orchestrates one tick as the fixed 13-phase pipeline over the
// Registry (spec.md §4.7). Grounded on the teacher's GameLoop/World.Tick
// (engine/core/gameloop.go, engine/core/ecs.go) — the teacher runs every
// system every frame at a fixed real-time step; this generalizes that
// into gated phases, each filtered by declared Order and Frequency, with
// no real-time accumulator (the core performs no I/O and advances only
// when Run is called, spec.md §5).
type Engine struct {
	world    *core.World
	clock    *core.Clock
	bus      *event.Bus
	log      *event.Log
	registry *Registry
	lodMgr   *lod.Manager
	recorder *diag.Recorder
	logger   diag.Logger
	metrics  *metrics.Metrics

	notify        NotifyFunc
	narrativeHook NarrativeFunc

	initialized  bool
	tickEvents   []event.Event
	unsubscribe  event.Handle
}

// New constructs an Engine. m may be nil to disable metrics collection.
func New(world *core.World, clock *core.Clock, bus *event.Bus, log *event.Log, registry *Registry, lodMgr *lod.Manager, recorder *diag.Recorder, logger diag.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		world:    world,
		clock:    clock,
		bus:      bus,
		log:      log,
		registry: registry,
		lodMgr:   lodMgr,
		recorder: recorder,
		logger:   logger,
		metrics:  m,
	}
}

// World returns the engine's world, for hosts that constructed the
// engine via a builder and need the reference back.
func (e *Engine) World() *core.World { return e.world }

// Clock returns the engine's clock.
func (e *Engine) Clock() *core.Clock { return e.clock }

// Bus returns the engine's event bus.
func (e *Engine) Bus() *event.Bus { return e.bus }

// Log returns the engine's event log.
func (e *Engine) Log() *event.Log { return e.log }

// LoD returns the engine's LoD manager, so hosts can call
// SetFocusPoints.
func (e *Engine) LoD() *lod.Manager { return e.lodMgr }

// SetNotify installs the phase-13 host notification callback.
func (e *Engine) SetNotify(fn NotifyFunc) { e.notify = fn }

// SetNarrativeHook installs the phase-11 external narrative callback.
func (e *Engine) SetNarrativeHook(fn NarrativeFunc) { e.narrativeHook = fn }

// TickCount returns the current tick, equivalent to e.Clock().CurrentTick().
func (e *Engine) TickCount() uint64 { return e.clock.CurrentTick() }

func (e *Engine) ensureInitialized() error {
	if e.initialized {
		return nil
	}
	e.unsubscribe = e.bus.SubscribeAny(func(ev event.Event) {
		e.tickEvents = append(e.tickEvents, ev)
	})
	for _, s := range e.registry.Systems() {
		if err := s.Initialize(e.world, e.bus); err != nil {
			e.logger.Error().Err(err).Str("system", s.Name()).Msg("system initialization failed")
		}
	}
	e.initialized = true
	return nil
}

// Tick runs the fixed 13-phase pipeline once. Returns a non-nil error
// only for a fatal InvariantViolation; contained per-system and
// per-cascade failures are logged and never returned here.
func (e *Engine) Tick() error {
	if err := e.ensureInitialized(); err != nil {
		return err
	}
	e.tickEvents = e.tickEvents[:0]

	// Phase 1: Time.
	e.clock.Advance()
	if e.lodMgr != nil {
		e.lodMgr.Update(e.world)
	}
	if e.metrics != nil {
		e.metrics.TicksRun.Inc()
	}

	currentTick := e.clock.CurrentTick()

	// Phases 2-9: system-bearing phases, in declared order.
	for _, phase := range systemPhases {
		e.runPhase(phase, currentTick)
	}

	// Phase 10: EventResolution. Delivery is synchronous throughout
	// (event.Bus.Emit completes before returning), so by this point
	// every event emitted this tick — including every cascade-derived
	// descendant — has already been delivered and logged. This phase
	// exists as a pipeline marker for hosts that want to hook "after all
	// of this tick's events are final."
	events := append([]event.Event(nil), e.tickEvents...)
	if e.metrics != nil {
		for _, ev := range events {
			e.metrics.EventsEmitted.WithLabelValues(ev.Category.String()).Inc()
		}
	}

	// Phase 11: Narrative (external hook).
	if e.narrativeHook != nil {
		e.narrativeHook(events)
	}

	// Phase 12: Cleanup.
	updated := e.buildEntityUpdates()
	removed := e.buildRemovedEntities(updated)
	diagnostics := e.recorder.Drain()

	// Phase 13: Notification.
	if e.notify != nil {
		e.notify(TickDelta{
			Tick:        currentTick,
			Time:        e.clock.CurrentTime(),
			Events:      events,
			Updated:     updated,
			Removed:     removed,
			Diagnostics: diagnostics,
		})
	}
	return nil
}

func (e *Engine) runPhase(phase Phase, currentTick uint64) {
	for _, s := range e.registry.Systems() {
		if s.Order() != phase {
			continue
		}
		if !s.Frequency().FiresAt(currentTick) {
			continue
		}
		e.runSystem(s, currentTick)
	}
}

func (e *Engine) runSystem(s System, currentTick uint64) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Str("system", s.Name()).Msg("system execution panicked")
			e.recorder.Record(diag.Entry{Tick: currentTick, Kind: "SystemExecutionFailure", Source: s.Name(), Message: "panic"})
			if e.metrics != nil {
				e.metrics.SystemFailures.WithLabelValues(s.Name()).Inc()
			}
		}
	}()
	if err := s.Execute(e.world, e.clock, e.bus); err != nil {
		e.logger.Error().Err(err).Str("system", s.Name()).Msg("system execution failed")
		e.recorder.Record(diag.Entry{Tick: currentTick, Kind: "SystemExecutionFailure", Source: s.Name(), Message: err.Error()})
		if e.metrics != nil {
			e.metrics.SystemFailures.WithLabelValues(s.Name()).Inc()
		}
	}
}

func (e *Engine) buildEntityUpdates() []EntityUpdate {
	dirty := e.world.DirtyUpdates()
	if len(dirty) == 0 {
		return nil
	}
	out := make([]EntityUpdate, 0, len(dirty))
	for id, kinds := range dirty {
		out = append(out, EntityUpdate{Entity: id, Changed: kinds})
	}
	return out
}

func (e *Engine) buildRemovedEntities(updated []EntityUpdate) []core.EntityID {
	var removed []core.EntityID
	for _, u := range updated {
		for _, k := range u.Changed {
			if k == core.KindDeceasedMarker && e.world.Has(u.Entity, core.KindDeceasedMarker) {
				removed = append(removed, u.Entity)
				break
			}
		}
	}
	return removed
}

// Run advances n ticks, stopping early only on a fatal error.
func (e *Engine) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := e.Tick(); err != nil {
			return errors.Wrapf(err, "tick %d", e.clock.CurrentTick())
		}
	}
	return nil
}
