package sim

import "sort"

// Registry holds every registered System, kept sorted by (Order,
// registration index) so same-phase systems run in declared execution
// order (spec.md §4.7: "Systems firing on the same tick run in declared
// execution order").
//
// Grounded on the teacher's World.AddSystem (engine/core/ecs.go), which
// insertion-sorts by a single Priority() int; this generalizes the sort
// key to (Phase, registration index) since Frequency does not affect
// ordering, only whether a system is eligible to run at all on a given
// tick.
type Registry struct {
	systems []registered
}

type registered struct {
	system System
	index  int
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register inserts a system, then stable-sorts the registry by
// execution order. Re-sorting on every Register keeps Systems() always
// ready to iterate without a separate "finalize" step.
func (r *Registry) Register(s System) {
	r.systems = append(r.systems, registered{system: s, index: len(r.systems)})
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].system.Order() < r.systems[j].system.Order()
	})
}

// Systems returns the registry's systems in execution order.
func (r *Registry) Systems() []System {
	out := make([]System, len(r.systems))
	for i, rs := range r.systems {
		out[i] = rs.system
	}
	return out
}
