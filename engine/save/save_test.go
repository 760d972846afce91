package save_test

import (
	"testing"
	"time"

	"github.com/1siamBot/historia/engine/core"
	"github.com/1siamBot/historia/engine/event"
	"github.com/1siamBot/historia/engine/save"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildThenRestoreRoundTripsWorldState(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	id := w.CreateEntity()
	require.NoError(t, w.Attach(id, &core.Name{Given: "Ysolde", Family: "Varn"}))
	require.NoError(t, w.Attach(id, &core.Health{Current: 7, Max: 10}))

	log := event.NewLog()
	_, err := log.Append(event.Event{Category: event.CategorySocial, Participants: []core.EntityID{id}, Significance: 20})
	require.NoError(t, err)

	meta := save.Metadata{ID: uuid.New(), Name: "test", Seed: 5, WorldAgeTicks: 12, CreatedAt: time.Now()}
	snap, err := save.Build(w, 12, log, meta)
	require.NoError(t, err)

	w2, log2, err := save.Restore(snap)
	require.NoError(t, err)

	nameComp, ok := w2.Get(id, core.KindName)
	require.True(t, ok)
	assert.Equal(t, "Ysolde", nameComp.(*core.Name).Given)

	healthComp, ok := w2.Get(id, core.KindHealth)
	require.True(t, ok)
	assert.Equal(t, 7, healthComp.(*core.Health).Current)

	assert.Equal(t, 1, log2.Count())
	assert.Equal(t, w.HighWaterMark(), w2.HighWaterMark())
}

func TestRestoredWorldAllocatesNonCollidingEntityIDs(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	for i := 0; i < 5; i++ {
		w.CreateEntity()
	}
	log := event.NewLog()
	snap, err := save.Build(w, 0, log, save.Metadata{})
	require.NoError(t, err)

	w2, _, err := save.Restore(snap)
	require.NoError(t, err)

	next := w2.CreateEntity()
	assert.Greater(t, uint64(next), uint64(5))
}
