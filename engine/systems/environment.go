// Package systems provides a small, illustrative set of domain systems —
// not a full content pack for the simulated world (out of scope per
// spec.md §1/§11). It covers three phases at three tiers: Environment
// (Seasonal), Economy (Monthly), and Politics (Weekly). The other
// system-bearing phases and the Daily, Annual, and Decadal tiers have no
// example system here.
//
// Grounded on the teacher's engine/systems/*.go (MovementSystem,
// HarvesterSystem, CombatSystem, ProductionSystem): each is a small
// struct with no internal state beyond tuning constants, iterating a
// World.Query result and mutating components directly. These generalize
// that shape from unit movement/combat onto the spec's historical
// domains, replacing "dt float64" with the Order/Frequency contract
// (engine/sim.System).
package systems

import (
	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/sim"
)

// famineThreshold is the FamineRisk level at which Environment begins
// emitting Environmental events for a region, grounded on the teacher's
// HarvesterSystem's hand-tuned depletion constants (engine/systems/harvester.go).
const famineThreshold = 0.6

// Environment recomputes each region's SeasonalYield from its Climate
// and raises FamineRisk when yield runs low, at the cadence a harvest
// actually changes (spec.md §4.7: Environment phase, Seasonal tier).
type Environment struct {
	sim.BaseSystem
}

func (Environment) Name() string        { return "Environment" }
func (Environment) Order() sim.Phase    { return sim.PhaseEnvironment }
func (Environment) Frequency() sim.Tier { return sim.Seasonal }

func (s Environment) Execute(w *core.World, clock *core.Clock, bus *event.Bus) error {
	for _, ec := range w.QueryWith(core.KindSeasonalYield) {
		yield, ok := ec.Component.(*core.SeasonalYield)
		if !ok {
			continue
		}
		climate, hasClimate := w.Get(ec.Entity, core.KindClimate)
		if hasClimate {
			c := climate.(*core.Climate)
			yield.Expected = baseYield(c) * seasonalFactor(clock.CurrentTime().Month)
		}
		if err := w.Attach(ec.Entity, yield); err != nil {
			return err
		}

		risk, hasRisk := w.Get(ec.Entity, core.KindFamineRisk)
		if !hasRisk {
			continue
		}
		fr := risk.(*core.FamineRisk)
		if yield.Expected < 1.0 {
			fr.Risk = clamp01(fr.Risk + (1.0-yield.Expected)*0.25)
		} else {
			fr.Risk = clamp01(fr.Risk - 0.1)
		}
		if err := w.Attach(ec.Entity, fr); err != nil {
			return err
		}
		if fr.Risk >= famineThreshold {
			if _, err := bus.Emit(event.Event{
				Category:     event.CategoryEnvironmental,
				Subtype:      "HarvestShortfall",
				Tick:         clock.CurrentTick(),
				Participants: []core.EntityID{ec.Entity},
				Significance: 40 + fr.Risk*30,
				Data: map[string]any{
					"good":  yield.GoodType,
					"yield": yield.Expected,
					"risk":  fr.Risk,
				},
				Consequences: []event.ConsequencePotential{
					{RuleHandle: "famine", BaseProbability: fr.Risk, ConsequenceType: "Famine", CrossDomain: true},
				},
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func baseYield(c *core.Climate) float64 {
	// Rainfall around 1000mm/year is a comfortable baseline; volatility
	// eats into it.
	return (c.AnnualRainfall / 1000.0) * (1 - c.Volatility*0.5)
}

func seasonalFactor(month int) float64 {
	switch {
	case month >= 3 && month <= 5:
		return 1.1 // spring growth
	case month >= 6 && month <= 8:
		return 1.0
	case month >= 9 && month <= 11:
		return 0.8 // harvest drawdown
	default:
		return 0.5 // winter
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
