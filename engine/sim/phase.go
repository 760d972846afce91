// Package sim implements the System registry and the 13-phase
// simulation engine that drives one tick (spec.md §4.7).
package sim

// Phase enumerates the fixed 13-phase tick pipeline, in execution
// order. Phases Time, EventResolution, Narrative, Cleanup, and
// Notification are owned by the engine itself; the remaining eight are
// system-bearing — every registered System declares one of them as its
// Order().
//
// This is the "documented table in the host's conventions" spec.md §9's
// first Open Question asks for: the mapping from a system's declared
// execution-order rank to its phase is exactly this enum, in this
// order.
type Phase int

const (
	PhaseTime Phase = iota
	PhaseEnvironment
	PhaseEconomy
	PhasePolitics
	PhaseSocial
	PhaseCharacterAI
	PhaseMagic
	PhaseReligion
	PhaseMilitary
	PhaseEventResolution
	PhaseNarrative
	PhaseCleanup
	PhaseNotification

	phaseSentinel
)

var phaseNames = [...]string{
	"Time", "Environment", "Economy", "Politics", "Social", "CharacterAI",
	"Magic", "Religion", "Military", "EventResolution", "Narrative",
	"Cleanup", "Notification",
}

func (p Phase) String() string {
	if int(p) < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}

// systemPhases lists the eight phases a System may declare as its Order,
// in pipeline order — the five engine-owned phases (Time,
// EventResolution, Narrative, Cleanup, Notification) are excluded.
var systemPhases = [...]Phase{
	PhaseEnvironment, PhaseEconomy, PhasePolitics, PhaseSocial,
	PhaseCharacterAI, PhaseMagic, PhaseReligion, PhaseMilitary,
}

// IsSystemPhase reports whether p is one a System may declare as Order()
// (as opposed to one of the five phases the engine itself owns: Time,
// EventResolution, Narrative, Cleanup, Notification).
func IsSystemPhase(p Phase) bool {
	for _, sp := range systemPhases {
		if sp == p {
			return true
		}
	}
	return false
}
