package core_test

import (
	"testing"

	"github.com/1siamBot/historia/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldAttachRequiresRegisteredStore(t *testing.T) {
	w := core.NewWorld()
	id := w.CreateEntity()

	err := w.Attach(id, &core.Name{Given: "Aldric"})
	require.Error(t, err)

	w.RegisterComponentKind(core.KindName)
	require.NoError(t, w.Attach(id, &core.Name{Given: "Aldric"}))
}

func TestWorldGetOnUnregisteredKindReturnsEmptyNotError(t *testing.T) {
	w := core.NewWorld()
	id := w.CreateEntity()

	c, ok := w.Get(id, core.KindName)
	assert.Nil(t, c)
	assert.False(t, ok)
}

func TestWorldDetachReportsWhetherAnythingWasRemoved(t *testing.T) {
	w := core.NewWorld()
	w.RegisterComponentKind(core.KindHealth)
	id := w.CreateEntity()
	require.NoError(t, w.Attach(id, &core.Health{Current: 10, Max: 10}))

	assert.True(t, w.Detach(id, core.KindHealth))
	assert.False(t, w.Detach(id, core.KindHealth))
}

func TestWorldQueryIntersectsAcrossStores(t *testing.T) {
	w := core.NewWorld()
	w.RegisterComponentKind(core.KindName)
	w.RegisterComponentKind(core.KindHealth)
	w.RegisterComponentKind(core.KindAge)

	both := w.CreateEntity()
	onlyName := w.CreateEntity()

	require.NoError(t, w.Attach(both, &core.Name{Given: "Both"}))
	require.NoError(t, w.Attach(both, &core.Health{Current: 5, Max: 5}))
	require.NoError(t, w.Attach(onlyName, &core.Name{Given: "Solo"}))

	result := w.Query(core.KindName, core.KindHealth)
	require.Len(t, result, 1)
	assert.Equal(t, both, result[0])

	assert.Nil(t, w.Query(core.KindName, core.KindAge))
}

func TestEntityIDsArePerWorldNotGlobal(t *testing.T) {
	w1 := core.NewWorld()
	w2 := core.NewWorld()

	a1 := w1.CreateEntity()
	a2 := w2.CreateEntity()

	assert.Equal(t, a1, a2, "two independently constructed worlds must allocate identical id sequences")
}

func TestDirtyUpdatesDrainsAndClearsPerTick(t *testing.T) {
	w := core.NewWorld()
	w.RegisterComponentKind(core.KindHealth)
	id := w.CreateEntity()
	require.NoError(t, w.Attach(id, &core.Health{Current: 1, Max: 1}))

	updates := w.DirtyUpdates()
	require.Contains(t, updates, id)
	assert.Contains(t, updates[id], core.KindHealth)

	assert.Empty(t, w.DirtyUpdates(), "a second drain with no intervening mutation must be empty")
}

func TestAllComponentsSnapshotsEveryStore(t *testing.T) {
	w := core.NewWorld()
	w.RegisterComponentKind(core.KindName)
	id := w.CreateEntity()
	require.NoError(t, w.Attach(id, &core.Name{Given: "Vesna"}))

	all := w.AllComponents()
	require.Len(t, all, 1)
	assert.Equal(t, core.KindName, all[0].Kind)
	assert.Equal(t, id, all[0].Entity)
}
