// Package event implements the immutable, append-only event log and the
// synchronous category-dispatched publish/subscribe bus described in
// spec.md §4.3/§4.4.
package event

import "github.com/1siamBot/historia/engine/core"

// Category is the closed set of event domains (spec.md §3).
type Category uint8

const (
	CategoryPolitical Category = iota
	CategoryMilitary
	CategoryEconomic
	CategorySocial
	CategoryReligious
	CategoryCultural
	CategoryPersonal
	CategoryEnvironmental
	CategoryDisaster
	CategoryMagical
	CategoryExploratory

	categorySentinel
)

var categoryNames = [...]string{
	"Political", "Military", "Economic", "Social", "Religious",
	"Cultural", "Personal", "Environmental", "Disaster", "Magical",
	"Exploratory",
}

func (c Category) String() string {
	if int(c) < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// IsValid reports whether c is one of the declared categories.
func (c Category) IsValid() bool {
	return c < categorySentinel
}

// ConsequencePotential declares one rule the cascade engine may fire
// from this event: a rule handle name, a base probability, the category
// the derived event would carry, and whether that makes it a
// cross-domain consequence. The handle itself is resolved by name
// through a cascade.Registry rather than stored as a function value,
// so events stay plain, serializable data (spec.md §3: "Events ...
// ordered list of declared consequence potentials").
type ConsequencePotential struct {
	RuleHandle      string
	BaseProbability float64
	ConsequenceType string
	CrossDomain     bool
}

// Event is an immutable historical record. Once appended to a Log it is
// never mutated (spec.md §3 Event Log invariants).
type Event struct {
	ID            uint64
	Category      Category
	Subtype       string
	Tick          uint64
	Participants  []core.EntityID
	CauseIDs      []uint64
	Consequences  []ConsequencePotential
	Data          map[string]any
	Significance  float64 // 0..100
	Depth         int     // 0 for originally-emitted events
}

// IsOverride reports whether this event's significance meets the
// significance-override threshold (spec.md §4.6: "Events with
// significance >= 85 must be processed regardless of tier").
func (e Event) IsOverride() bool {
	return e.Significance >= significanceOverrideThreshold
}

const significanceOverrideThreshold = 85
