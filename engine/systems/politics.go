package systems

import (
	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/sim"
)

// warThreshold is the DiplomaticRelation standing below which relations
// are considered to have collapsed into war, grounded on the teacher's
// ownership/hostility checks (engine/core/components.go Owner, consumed
// by engine/systems/combat.go's targeting).
const warThreshold = -0.7

// Politics decays diplomatic standing toward neutrality and declares war
// when standing collapses, at a cadence coarser than daily since
// diplomatic shifts are a weekly-scale affair (spec.md §4.7: Politics
// phase, Weekly tier).
type Politics struct {
	sim.BaseSystem
}

func (Politics) Name() string        { return "Politics" }
func (Politics) Order() sim.Phase    { return sim.PhasePolitics }
func (Politics) Frequency() sim.Tier { return sim.Weekly }

func (s Politics) Execute(w *core.World, clock *core.Clock, bus *event.Bus) error {
	for _, ec := range w.QueryWith(core.KindDiplomaticRelation) {
		rel, ok := ec.Component.(*core.DiplomaticRelation)
		if !ok {
			continue
		}
		rel.Standing = decayTowardZero(rel.Standing, 0.02)
		wasAtWar := rel.Status == "war"
		rel.Status = statusFor(rel.Standing)
		if err := w.Attach(ec.Entity, rel); err != nil {
			return err
		}
		if !wasAtWar && rel.Status == "war" {
			if _, err := bus.Emit(event.Event{
				Category:     event.CategoryPolitical,
				Subtype:      "WarDeclared",
				Tick:         clock.CurrentTick(),
				Participants: []core.EntityID{ec.Entity, rel.OtherFaction},
				Significance: 70,
				Data: map[string]any{
					"standing": rel.Standing,
				},
				Consequences: []event.ConsequencePotential{
					{RuleHandle: "war_casualties", BaseProbability: 0.8, ConsequenceType: "War", CrossDomain: false},
					{RuleHandle: "war_economic_strain", BaseProbability: 0.5, ConsequenceType: "EconomicStrain", CrossDomain: true},
				},
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func decayTowardZero(v, step float64) float64 {
	if v > 0 {
		v -= step
		if v < 0 {
			v = 0
		}
	} else if v < 0 {
		v += step
		if v > 0 {
			v = 0
		}
	}
	return v
}

func statusFor(standing float64) string {
	switch {
	case standing <= warThreshold:
		return "war"
	case standing < 0:
		return "truce"
	case standing < 0.5:
		return "peace"
	default:
		return "alliance"
	}
}
