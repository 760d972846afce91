package systems

import (
	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/sim"
)

// depletionThreshold below which a ResourceStock is considered
// critically short, grounded on the teacher's HarvesterSystem stockpile
// checks (engine/systems/harvester.go).
const depletionThreshold = 10.0

// Economy advances production into stock and raises an Economic event
// when a settlement's stockpile runs critically short, at the cadence
// production actually accrues (spec.md §4.7: Economy phase, Monthly tier).
type Economy struct {
	sim.BaseSystem
}

func (Economy) Name() string        { return "Economy" }
func (Economy) Order() sim.Phase    { return sim.PhaseEconomy }
func (Economy) Frequency() sim.Tier { return sim.Monthly }

func (s Economy) Execute(w *core.World, clock *core.Clock, bus *event.Bus) error {
	capacities := w.QueryWith(core.KindProductionCapacity)
	for _, ec := range capacities {
		prod, ok := ec.Component.(*core.ProductionCapacity)
		if !ok {
			continue
		}
		stockComp, hasStock := w.Get(ec.Entity, core.KindResourceStock)
		if !hasStock {
			continue
		}
		stock := stockComp.(*core.ResourceStock)
		if stock.GoodType != prod.GoodType {
			continue
		}
		stock.Quantity += prod.RatePerTick * float64(sim.Monthly.Period())
		if err := w.Attach(ec.Entity, stock); err != nil {
			return err
		}
		if stock.Quantity < depletionThreshold {
			if _, err := bus.Emit(event.Event{
				Category:     event.CategoryEconomic,
				Subtype:      "StockpileShortage",
				Tick:         clock.CurrentTick(),
				Participants: []core.EntityID{ec.Entity},
				Significance: 30,
				Data: map[string]any{
					"good":     stock.GoodType,
					"quantity": stock.Quantity,
				},
				Consequences: []event.ConsequencePotential{
					{RuleHandle: "trade_route_disruption", BaseProbability: 0.4, ConsequenceType: "TradeDisruption", CrossDomain: false},
				},
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
