// Package save serializes a running simulation into a portable snapshot
// and restores one, per spec.md §6's save/load contract: "a saved world
// loads to bit-for-bit identical Query results and, given the same
// seed, identical subsequent tick output."
//
// Grounded on the teacher's engine/network/replay.go (NewReplayRecorder/
// LoadReplay/Close), which streams one GameCommand per line through a
// bufio.Writer/Reader for lockstep replay. This generalizes that
// streaming-record idea into a single whole-snapshot JSON document,
// since a save here captures complete world state rather than a command
// log to be replayed from tick zero.
package save

import (
	"encoding/json"
	"time"

	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/event"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Metadata describes a save independent of its payload, grounded on the
// corpus's convention (r3e-network-service_layer, AKJUS-bsc-erigon) of
// stamping persisted records with a google/uuid identifier.
type Metadata struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Seed          int64
	WorldAgeTicks uint64
	CreatedAt     time.Time
}

// ComponentRecord is one component's serialized form: its kind name (not
// the raw integer, so saves stay legible and diffable across builds that
// insert new kinds — spec.md §6) plus its JSON-encoded fields.
type ComponentRecord struct {
	Kind string
	Data json.RawMessage
}

// EntityRecord is one entity's full component set.
type EntityRecord struct {
	Entity     core.EntityID
	Components []ComponentRecord
}

// Snapshot is the complete serializable state of a simulation run at one
// tick: every entity's components, the full event log, and enough
// metadata to resume ticking deterministically.
type Snapshot struct {
	Meta          Metadata
	Tick          uint64
	HighWaterMark uint64
	Entities      []EntityRecord
	Events        []event.Event
}

// Build assembles a Snapshot from a live world, clock, and event log.
func Build(w *core.World, tick uint64, log *event.Log, meta Metadata) (Snapshot, error) {
	all := w.AllComponents()
	byEntity := make(map[core.EntityID][]ComponentRecord)
	order := make([]core.EntityID, 0)
	for _, rec := range all {
		data, err := json.Marshal(rec.Component)
		if err != nil {
			return Snapshot{}, errors.Wrapf(event.ErrSerializationFailure, "marshal component %s on entity %d: %s", rec.Kind, rec.Entity, err)
		}
		if _, seen := byEntity[rec.Entity]; !seen {
			order = append(order, rec.Entity)
		}
		byEntity[rec.Entity] = append(byEntity[rec.Entity], ComponentRecord{Kind: rec.Kind.String(), Data: data})
	}

	entities := make([]EntityRecord, 0, len(order))
	for _, id := range order {
		entities = append(entities, EntityRecord{Entity: id, Components: byEntity[id]})
	}

	return Snapshot{
		Meta:          meta,
		Tick:          tick,
		HighWaterMark: w.HighWaterMark(),
		Entities:      entities,
		Events:        log.All(),
	}, nil
}

// Restore reconstructs a world and event log from a Snapshot. The
// world's entity id allocator is restored to the snapshot's high-water
// mark so subsequently created entities never collide with loaded ones.
// The saved tick is not applied here; it stays in snap.Tick.
func Restore(snap Snapshot) (*core.World, *event.Log, error) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	w.RestoreHighWaterMark(snap.HighWaterMark)

	for _, er := range snap.Entities {
		for _, cr := range er.Components {
			kind, err := kindByName(cr.Kind)
			if err != nil {
				return nil, nil, err
			}
			c, err := core.NewComponent(kind)
			if err != nil {
				return nil, nil, err
			}
			if err := json.Unmarshal(cr.Data, c); err != nil {
				return nil, nil, errors.Wrapf(event.ErrSerializationFailure, "unmarshal component %s on entity %d: %s", cr.Kind, er.Entity, err)
			}
			if err := w.Attach(er.Entity, c); err != nil {
				return nil, nil, errors.Wrapf(err, "attach restored component %s to entity %d", cr.Kind, er.Entity)
			}
		}
	}

	log := event.NewLog()
	for _, ev := range snap.Events {
		if _, err := log.Append(ev); err != nil {
			return nil, nil, errors.Wrap(err, "replay event log")
		}
	}

	return w, log, nil
}

func kindByName(name string) (core.ComponentKind, error) {
	for k := 0; k < core.ComponentKindCount; k++ {
		kind := core.ComponentKind(k)
		if kind.String() == name {
			return kind, nil
		}
	}
	return 0, errors.Errorf("unknown component kind %q in save file", name)
}
