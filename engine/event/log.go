package event

import (
	"sort"

	"github.com/1siamBot/historia/engine/core"
	"github.com/pkg/errors"
)

// Log is the append-only, indexed sequence of every event emitted
// during a run. Events are never mutated nor removed once appended
// (spec.md §4.3). Grounded on the teacher's EventBus
// (engine/core/events.go), split apart so the Log owns the permanent
// indexed record while Bus (bus.go) owns synchronous dispatch — the
// teacher conflates "queue flushed once per frame" with both roles,
// which cannot satisfy the spec's "subscribers see the event before
// Emit returns" requirement.
type Log struct {
	nextID uint64

	all []Event // insertion order, the single source of truth

	byID          map[uint64]int // event id -> index into all
	byCategory    map[Category][]uint64
	byParticipant map[core.EntityID][]uint64
	bySignificanceBand map[int][]uint64 // floor(significance/10)*10 -> ids
}

// NewLog constructs an empty event log.
func NewLog() *Log {
	return &Log{
		byID:               make(map[uint64]int),
		byCategory:          make(map[Category][]uint64),
		byParticipant:       make(map[core.EntityID][]uint64),
		bySignificanceBand:  make(map[int][]uint64),
	}
}

// Append assigns the next event id, stores the event, and updates every
// secondary index. The caller supplies everything except ID; Append
// fills ID and returns the stored (immutable) copy.
func (l *Log) Append(e Event) (Event, error) {
	for _, causeID := range e.CauseIDs {
		if _, ok := l.byID[causeID]; !ok {
			return Event{}, errInvalidCause(causeID)
		}
	}
	l.nextID++
	e.ID = l.nextID

	idx := len(l.all)
	l.all = append(l.all, e)
	l.byID[e.ID] = idx
	l.byCategory[e.Category] = append(l.byCategory[e.Category], e.ID)
	for _, p := range e.Participants {
		l.byParticipant[p] = append(l.byParticipant[p], e.ID)
	}
	band := significanceBand(e.Significance)
	l.bySignificanceBand[band] = append(l.bySignificanceBand[band], e.ID)

	return e, nil
}

func significanceBand(sig float64) int {
	band := int(sig) / 10 * 10
	if band < 0 {
		band = 0
	}
	if band > 100 {
		band = 100
	}
	return band
}

// Get returns the event with the given id, if present.
func (l *Log) Get(id uint64) (Event, bool) {
	idx, ok := l.byID[id]
	if !ok {
		return Event{}, false
	}
	return l.all[idx], true
}

// ByCategory returns every event of the given category, in insertion
// order.
func (l *Log) ByCategory(c Category) []Event {
	return l.resolve(l.byCategory[c])
}

// ByParticipant returns every event whose participant list includes the
// given entity, in insertion order.
func (l *Log) ByParticipant(id core.EntityID) []Event {
	return l.resolve(l.byParticipant[id])
}

// BySignificanceAbove returns every event with significance >= threshold,
// in insertion order.
func (l *Log) BySignificanceAbove(threshold float64) []Event {
	startBand := int(threshold) / 10 * 10
	var ids []uint64
	for band, bucket := range l.bySignificanceBand {
		if band < startBand {
			continue
		}
		ids = append(ids, bucket...)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []Event
	for _, id := range ids {
		e := l.all[l.byID[id]]
		if e.Significance >= threshold {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of events appended so far.
func (l *Log) Count() int {
	return len(l.all)
}

// All returns every event in insertion order. The returned slice is a
// copy; mutating it does not affect the log.
func (l *Log) All() []Event {
	out := make([]Event, len(l.all))
	copy(out, l.all)
	return out
}

// Prefix returns the first n events, matching the append-only invariant
// that any prior prefix never changes as the log grows (spec.md §8,
// property 3).
func (l *Log) Prefix(n int) []Event {
	if n > len(l.all) {
		n = len(l.all)
	}
	out := make([]Event, n)
	copy(out, l.all[:n])
	return out
}

func (l *Log) resolve(ids []uint64) []Event {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.all[l.byID[id]])
	}
	return out
}

func errInvalidCause(id uint64) error {
	return errors.Wrapf(ErrInvariantViolation, "cause event %d not present in log", id)
}
