// Command historia is an example host: it wires a World, the 13-phase
// Engine, a small set of illustrative systems, and a cascade rule
// registry, runs a fixed number of ticks, prints each tick's delta, and
// takes one quicksave. It is a demonstration harness, not a game —
// grounded on the teacher's cmd/game/main.go wiring pattern (construct
// World, register systems, drive GameLoop) with rendering and input
// stripped out, since this core performs no I/O of its own (spec.md §5).
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/1siamBot/historia/engine/cascade"
	"github.com/1siamBot/historia/engine/config"
	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/diag"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/lod"
	"github.com/1siamBot/historia/engine/metrics"
	"github.com/1siamBot/historia/engine/rng"
	"github.com/1siamBot/historia/engine/save"
	"github.com/1siamBot/historia/engine/sim"
	"github.com/1siamBot/historia/engine/systems"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Default(42)
	logger := diag.NewLogger(os.Stdout)

	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	var populator core.Populator = core.PopulatorFunc(seedWorld)
	if err := populator.Populate(w); err != nil {
		logger.Fatal().Err(err).Msg("world population failed")
	}

	clock := core.NewClock()
	log := event.NewLog()
	bus := event.NewBus(log, logger)
	root := rng.NewRoot(cfg.Seed)
	registry := cascade.NewRegistry()
	registerCascadeRules(registry)
	m := metrics.New()
	cascade.New(cfg.Cascade, root, registry, clock, bus, w, logger, m)

	lodMgr := lod.NewManager(cfg.LoD)
	recorder := diag.NewRecorder()

	systemRegistry := sim.NewRegistry()
	systemRegistry.Register(systems.Environment{})
	systemRegistry.Register(systems.Economy{})
	systemRegistry.Register(systems.Politics{})

	engine := sim.New(w, clock, bus, log, systemRegistry, lodMgr, recorder, logger, m)
	engine.SetNotify(func(delta sim.TickDelta) {
		fmt.Printf("tick %d (%04d-%02d-%02d): %d events, %d entities updated\n",
			delta.Tick, delta.Time.Year, delta.Time.Month, delta.Time.Day,
			len(delta.Events), len(delta.Updated))
	})
	engine.SetNarrativeHook(func(events []event.Event) {
		for _, ev := range events {
			if ev.IsOverride() {
				fmt.Printf("  [significant] %s: %s\n", ev.Category, ev.Subtype)
			}
		}
	})

	if err := engine.Run(360); err != nil {
		logger.Fatal().Err(err).Msg("simulation run failed")
	}

	if err := quicksave(w, clock, log, cfg.Seed); err != nil {
		logger.Error().Err(err).Msg("quicksave failed")
	}
}

func seedWorld(w *core.World) error {
	region := w.CreateEntity()
	if err := w.Attach(region, &core.Region{Name: "Ashvale", Biome: "temperate", Area: 4200}); err != nil {
		return err
	}
	if err := w.Attach(region, &core.Climate{AverageTempC: 14, AnnualRainfall: 950, Volatility: 0.2}); err != nil {
		return err
	}
	if err := w.Attach(region, &core.SeasonalYield{GoodType: "grain", Expected: 1.0}); err != nil {
		return err
	}
	if err := w.Attach(region, &core.FamineRisk{Risk: 0.1}); err != nil {
		return err
	}

	factionA := w.CreateEntity()
	if err := w.Attach(factionA, &core.Faction{Name: "Kingdom of Ashvale"}); err != nil {
		return err
	}
	if err := w.Attach(factionA, &core.ResourceStock{GoodType: "grain", Quantity: 500}); err != nil {
		return err
	}
	if err := w.Attach(factionA, &core.ProductionCapacity{GoodType: "grain", RatePerTick: 2}); err != nil {
		return err
	}

	factionB := w.CreateEntity()
	if err := w.Attach(factionB, &core.Faction{Name: "Reach Confederacy"}); err != nil {
		return err
	}

	return w.Attach(factionA, &core.DiplomaticRelation{OtherFaction: factionB, Standing: -0.6, Status: "truce"})
}

func registerCascadeRules(registry *cascade.Registry) {
	registry.Register("famine", func(r *rand.Rand, source event.Event, w *core.World) (*event.Event, error) {
		return &event.Event{
			Category:     event.CategoryEconomic,
			Subtype:      "Famine",
			Participants: source.Participants,
			Significance: source.Significance,
			Data:         map[string]any{"triggered_by": source.ID},
		}, nil
	})
	registry.Register("trade_route_disruption", func(r *rand.Rand, source event.Event, w *core.World) (*event.Event, error) {
		return &event.Event{
			Category:     event.CategoryEconomic,
			Subtype:      "TradeDisruption",
			Participants: source.Participants,
			Significance: source.Significance * 0.8,
			Data:         map[string]any{"triggered_by": source.ID},
		}, nil
	})
	registry.Register("war_casualties", func(r *rand.Rand, source event.Event, w *core.World) (*event.Event, error) {
		return &event.Event{
			Category:     event.CategoryMilitary,
			Subtype:      "Casualties",
			Participants: source.Participants,
			Significance: 50,
			Data:         map[string]any{"triggered_by": source.ID},
		}, nil
	})
	registry.Register("war_economic_strain", func(r *rand.Rand, source event.Event, w *core.World) (*event.Event, error) {
		return &event.Event{
			Category:     event.CategoryEconomic,
			Subtype:      "WarEconomicStrain",
			Participants: source.Participants,
			Significance: 35,
			Data:         map[string]any{"triggered_by": source.ID},
		}, nil
	})
}

func quicksave(w *core.World, clock *core.Clock, log *event.Log, seed int64) error {
	meta := save.Metadata{
		ID:            uuid.New(),
		Name:          "quicksave",
		Description:   "demonstration quicksave",
		Seed:          seed,
		WorldAgeTicks: clock.CurrentTick(),
		CreatedAt:     time.Now().UTC(),
	}
	snap, err := save.Build(w, clock.CurrentTick(), log, meta)
	if err != nil {
		return err
	}
	storage := save.NewFileStorage("./saves")
	return save.WriteSnapshot(storage, "quicksave.json", snap)
}
