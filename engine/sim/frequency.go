package sim

import "github.com/1siamBot/historia/engine/config"

// Tier is the frequency at which a System fires.
type Tier int

const (
	Daily Tier = iota
	Weekly
	Monthly
	Seasonal
	Annual
	Decadal
)

var tierNames = [...]string{"Daily", "Weekly", "Monthly", "Seasonal", "Annual", "Decadal"}

func (t Tier) String() string {
	if int(t) < 0 || int(t) >= len(tierNames) {
		return "Unknown"
	}
	return tierNames[t]
}

// Period returns the tier's period in ticks (config.FrequencyPeriods).
func (t Tier) Period() uint64 {
	return config.FrequencyPeriods[t]
}

// FiresAt reports whether a system at this tier fires on the given
// tick. A tier fires at tick t when t % period == 0 and t > 0 — spec.md
// §9's second Open Question, resolved per the scenario in §8.4: no tier
// fires at tick 0, and Daily fires at every tick from 1 onward since its
// period is 1. Engine.Tick advances the clock before any system phase, so
// the first tick it runs is tick 1 and tick 0 never reaches FiresAt from
// the engine.
func (t Tier) FiresAt(tick uint64) bool {
	if tick == 0 {
		return false
	}
	return tick%t.Period() == 0
}
