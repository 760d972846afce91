package systems_test

import (
	"os"
	"testing"

	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/systems"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentRaisesFamineEventWhenYieldCollapses(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	region := w.CreateEntity()
	require.NoError(t, w.Attach(region, &core.Climate{AverageTempC: 5, AnnualRainfall: 50, Volatility: 0.9}))
	require.NoError(t, w.Attach(region, &core.SeasonalYield{GoodType: "grain", Expected: 1.0}))
	require.NoError(t, w.Attach(region, &core.FamineRisk{Risk: 0.55}))

	log := event.NewLog()
	bus := event.NewBus(log, zerolog.New(os.Stderr))
	clock := core.NewClock()
	clock.Advance()

	sys := systems.Environment{}
	require.NoError(t, sys.Execute(w, clock, bus))

	harvestEvents := log.ByCategory(event.CategoryEnvironmental)
	require.Len(t, harvestEvents, 1)
	assert.Equal(t, "HarvestShortfall", harvestEvents[0].Subtype)
}

func TestEnvironmentRecoversRiskWhenYieldIsHealthy(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	region := w.CreateEntity()
	require.NoError(t, w.Attach(region, &core.Climate{AverageTempC: 18, AnnualRainfall: 1100, Volatility: 0.0}))
	require.NoError(t, w.Attach(region, &core.SeasonalYield{GoodType: "grain", Expected: 1.0}))
	require.NoError(t, w.Attach(region, &core.FamineRisk{Risk: 0.3}))

	log := event.NewLog()
	bus := event.NewBus(log, zerolog.New(os.Stderr))
	clock := core.NewClock()
	clock.RestoreTick(60) // spring: seasonal factor boosts yield above 1.0

	sys := systems.Environment{}
	require.NoError(t, sys.Execute(w, clock, bus))

	risk, ok := w.Get(region, core.KindFamineRisk)
	require.True(t, ok)
	assert.Less(t, risk.(*core.FamineRisk).Risk, 0.3)
}
