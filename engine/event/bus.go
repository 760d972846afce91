package event

import (
	"github.com/1siamBot/historia/engine/core"
	"github.com/rs/zerolog"
)

// Handle is returned by Subscribe/SubscribeAny. Invoking it removes the
// subscription. Callers must hold the handle for the subscription's
// lifetime — drop = unsubscribe is idiomatic (spec.md §9).
type Handle func()

// Callback receives one delivered event. Callbacks must not panic;
// Bus.Emit recovers and logs any panic so one faulty subscriber cannot
// block delivery to the rest (spec.md §4.4).
type Callback func(Event)

type subscription struct {
	id       uint64
	category Category
	any      bool
	cb       Callback
}

// Bus is a category-keyed, synchronous publish/subscribe dispatcher.
// Grounded on the teacher's EventBus.On/Emit/Dispatch
// (engine/core/events.go), generalized from "queue now, flush once per
// frame" to "deliver now, recursively, before Emit returns" — the spec
// requires emit to complete delivery synchronously, including re-entrant
// emits from within a subscriber (spec.md §4.4, §5).
type Bus struct {
	log *Log

	nextSubID uint64
	any       []subscription
	byCat     map[Category][]subscription

	logger zerolog.Logger
}

// NewBus constructs a Bus paired with the given Log — every Emit also
// appends to log (spec.md §4.4: "Log may be injected into the Bus or
// vice versa; they form a pair").
func NewBus(log *Log, logger zerolog.Logger) *Bus {
	return &Bus{
		log:    log,
		byCat:  make(map[Category][]subscription),
		logger: logger,
	}
}

// Subscribe registers cb for one category. Returns a handle that
// unsubscribes when invoked.
func (b *Bus) Subscribe(category Category, cb Callback) Handle {
	b.nextSubID++
	id := b.nextSubID
	b.byCat[category] = append(b.byCat[category], subscription{id: id, category: category, cb: cb})
	return func() { b.remove(category, id) }
}

// SubscribeAny registers cb to receive every emitted event, regardless
// of category.
func (b *Bus) SubscribeAny(cb Callback) Handle {
	b.nextSubID++
	id := b.nextSubID
	b.any = append(b.any, subscription{id: id, any: true, cb: cb})
	return func() { b.removeAny(id) }
}

func (b *Bus) remove(category Category, id uint64) {
	subs := b.byCat[category]
	for i, s := range subs {
		if s.id == id {
			b.byCat[category] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func (b *Bus) removeAny(id uint64) {
	for i, s := range b.any {
		if s.id == id {
			b.any = append(b.any[:i], b.any[i+1:]...)
			return
		}
	}
}

// Emit appends e to the paired Log (assigning it a fresh id), then
// delivers it synchronously: first every any-subscriber in subscription
// order, then every subscriber for e.Category in subscription order.
// Delivery completes before Emit returns, including any events emitted
// re-entrantly by a subscriber (depth-first: the inner Emit's delivery
// and append both finish before the outer Emit returns control to its
// remaining subscribers).
func (b *Bus) Emit(e Event) (Event, error) {
	stored, err := b.log.Append(e)
	if err != nil {
		return Event{}, err
	}

	// Snapshot subscriber lists before iterating: a subscriber that
	// unsubscribes itself or others mid-delivery must not corrupt this
	// delivery pass (spec.md §9: "drop = unsubscribe is idiomatic").
	anySubs := append([]subscription(nil), b.any...)
	catSubs := append([]subscription(nil), b.byCat[e.Category]...)

	for _, s := range anySubs {
		b.deliver(s, stored)
	}
	for _, s := range catSubs {
		b.deliver(s, stored)
	}
	return stored, nil
}

func (b *Bus) deliver(s subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Interface("panic", r).
				Uint64("event_id", e.ID).
				Str("category", e.Category.String()).
				Msg("event subscriber panicked; delivery to other subscribers continues")
		}
	}()
	s.cb(e)
}

// ParticipantsOf is a small helper so callers constructing events don't
// need to import core directly just to build a participant slice.
func ParticipantsOf(ids ...core.EntityID) []core.EntityID {
	return ids
}
