package sim_test

import (
	"testing"

	"github.com/1siamBot/historia/engine/sim"
	"github.com/stretchr/testify/assert"
)

func TestFiresAtNeverFiresAtTickZero(t *testing.T) {
	for _, tier := range []sim.Tier{sim.Daily, sim.Weekly, sim.Monthly, sim.Seasonal, sim.Annual, sim.Decadal} {
		assert.False(t, tier.FiresAt(0), "%s must not fire at tick 0", tier)
	}
}

func TestDailyFiresEveryTickFromOne(t *testing.T) {
	for tick := uint64(1); tick <= 10; tick++ {
		assert.True(t, sim.Daily.FiresAt(tick))
	}
}

func TestSeasonalFiresOnPeriodBoundariesOnly(t *testing.T) {
	assert.False(t, sim.Seasonal.FiresAt(1))
	assert.False(t, sim.Seasonal.FiresAt(89))
	assert.True(t, sim.Seasonal.FiresAt(90))
	assert.True(t, sim.Seasonal.FiresAt(180))
}

func TestDecadalPeriodMatchesConfig(t *testing.T) {
	assert.Equal(t, uint64(3600), sim.Decadal.Period())
}
