package systems_test

import (
	"os"
	"testing"

	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/sim"
	"github.com/1siamBot/historia/engine/systems"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEconomyAccruesProductionIntoStock(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	settlement := w.CreateEntity()
	require.NoError(t, w.Attach(settlement, &core.ProductionCapacity{GoodType: "grain", RatePerTick: 1}))
	require.NoError(t, w.Attach(settlement, &core.ResourceStock{GoodType: "grain", Quantity: 50}))

	log := event.NewLog()
	bus := event.NewBus(log, zerolog.New(os.Stderr))
	clock := core.NewClock()

	sys := systems.Economy{}
	require.NoError(t, sys.Execute(w, clock, bus))

	stock, ok := w.Get(settlement, core.KindResourceStock)
	require.True(t, ok)
	assert.Equal(t, 50+float64(sim.Monthly.Period()), stock.(*core.ResourceStock).Quantity)
}

func TestEconomyEmitsShortageEventWhenStockpileCritical(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	settlement := w.CreateEntity()
	require.NoError(t, w.Attach(settlement, &core.ProductionCapacity{GoodType: "grain", RatePerTick: 0}))
	require.NoError(t, w.Attach(settlement, &core.ResourceStock{GoodType: "grain", Quantity: 1}))

	log := event.NewLog()
	bus := event.NewBus(log, zerolog.New(os.Stderr))
	clock := core.NewClock()

	sys := systems.Economy{}
	require.NoError(t, sys.Execute(w, clock, bus))

	shortages := log.ByCategory(event.CategoryEconomic)
	require.Len(t, shortages, 1)
	assert.Equal(t, "StockpileShortage", shortages[0].Subtype)
}

func TestEconomyIgnoresMismatchedGoodTypes(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	settlement := w.CreateEntity()
	require.NoError(t, w.Attach(settlement, &core.ProductionCapacity{GoodType: "grain", RatePerTick: 5}))
	require.NoError(t, w.Attach(settlement, &core.ResourceStock{GoodType: "iron", Quantity: 50}))

	log := event.NewLog()
	bus := event.NewBus(log, zerolog.New(os.Stderr))
	clock := core.NewClock()

	sys := systems.Economy{}
	require.NoError(t, sys.Execute(w, clock, bus))

	stock, ok := w.Get(settlement, core.KindResourceStock)
	require.True(t, ok)
	assert.Equal(t, 50.0, stock.(*core.ResourceStock).Quantity, "mismatched good types must not accrue production")
}
