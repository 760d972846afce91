// Package lod classifies entities into level-of-detail tiers based on
// proximity to a set of focus points, so systems can skip or coarsen
// updates for distant entities (spec.md §4.6).
//
// Grounded on the teacher's engine/systems/fow.go (FogOfWar, FogSystem):
// a per-tile state recomputed once per tick from a set of viewer
// positions. This generalizes that two-state (visible/explored) model
// into three ordered tiers measured by Chebyshev distance from a
// configurable focus-point set, rather than a per-tile grid keyed to one
// player's vision radius.
package lod

import (
	"github.com/1siamBot/historia/engine/config"
	"github.com/1siamBot/historia/engine/core"
)

// Tier is one of the three level-of-detail classifications.
type Tier uint8

const (
	Full Tier = iota
	Reduced
	Abstract
)

func (t Tier) String() string {
	switch t {
	case Full:
		return "Full"
	case Reduced:
		return "Reduced"
	default:
		return "Abstract"
	}
}

// Manager recomputes and answers per-entity LoD tier queries each tick.
type Manager struct {
	thresholds config.LoD
	focus      []core.Position
	tiers      map[core.EntityID]Tier
}

// NewManager constructs a Manager using the given threshold
// configuration.
func NewManager(thresholds config.LoD) *Manager {
	return &Manager{
		thresholds: thresholds,
		tiers:      make(map[core.EntityID]Tier),
	}
}

// SetFocusPoints replaces the current set of focus coordinates (e.g.
// capitals, active war fronts, the player's camera).
func (m *Manager) SetFocusPoints(points []core.Position) {
	m.focus = append([]core.Position(nil), points...)
}

// Update recomputes the tier for every entity carrying a Position
// component. Invoked by the engine's Time phase before systems run each
// tick (spec.md §4.7 phase 1).
func (m *Manager) Update(w *core.World) {
	m.tiers = make(map[core.EntityID]Tier, len(m.tiers))
	if !w.HasStore(core.KindPosition) {
		return
	}
	for _, pair := range w.QueryWith(core.KindPosition) {
		pos, ok := pair.Component.(*core.Position)
		if !ok {
			continue
		}
		m.tiers[pair.Entity] = m.classify(*pos)
	}
}

func (m *Manager) classify(pos core.Position) Tier {
	if len(m.focus) == 0 {
		return Abstract
	}
	best := pos.ChebyshevDistance(m.focus[0])
	for _, f := range m.focus[1:] {
		if d := pos.ChebyshevDistance(f); d < best {
			best = d
		}
	}
	switch {
	case best <= m.thresholds.FullRadius:
		return Full
	case best <= m.thresholds.ReducedRadius:
		return Reduced
	default:
		return Abstract
	}
}

// TierFor returns the tier for entity. Entities with no tracked
// position default to Abstract — systems that need finer treatment for
// positionless entities (e.g. factions) should consult a representative
// entity's position (its capital) instead.
func (m *Manager) TierFor(entity core.EntityID) Tier {
	if t, ok := m.tiers[entity]; ok {
		return t
	}
	return Abstract
}

// OverrideFor implements the significance-override predicate: any event
// with significance >= 85 must be processed regardless of participant
// LoD tier (spec.md §4.6). Systems that consult TierFor must also
// consult OverrideFor before deciding to skip or coarsen work for an
// event (spec.md §9).
func OverrideFor(significance float64) bool {
	return significance >= 85
}
