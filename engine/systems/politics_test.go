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

func TestPoliticsDeclaresWarWhenStandingCollapses(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	factionA := w.CreateEntity()
	factionB := w.CreateEntity()
	require.NoError(t, w.Attach(factionA, &core.DiplomaticRelation{OtherFaction: factionB, Standing: -0.75, Status: "truce"}))

	log := event.NewLog()
	bus := event.NewBus(log, zerolog.New(os.Stderr))
	clock := core.NewClock()

	sys := systems.Politics{}
	require.NoError(t, sys.Execute(w, clock, bus))

	rel, ok := w.Get(factionA, core.KindDiplomaticRelation)
	require.True(t, ok)
	assert.Equal(t, "war", rel.(*core.DiplomaticRelation).Status)

	wars := log.ByCategory(event.CategoryPolitical)
	require.Len(t, wars, 1)
	assert.Equal(t, "WarDeclared", wars[0].Subtype)
}

func TestPoliticsDoesNotRedeclareWarEachTick(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	factionA := w.CreateEntity()
	factionB := w.CreateEntity()
	require.NoError(t, w.Attach(factionA, &core.DiplomaticRelation{OtherFaction: factionB, Standing: -0.9, Status: "war"}))

	log := event.NewLog()
	bus := event.NewBus(log, zerolog.New(os.Stderr))
	clock := core.NewClock()

	sys := systems.Politics{}
	require.NoError(t, sys.Execute(w, clock, bus))

	assert.Empty(t, log.ByCategory(event.CategoryPolitical), "war already in effect must not re-fire WarDeclared")
}

func TestPoliticsDecaysStandingTowardZero(t *testing.T) {
	w := core.NewWorld()
	w.RegisterAllComponentKinds()
	factionA := w.CreateEntity()
	factionB := w.CreateEntity()
	require.NoError(t, w.Attach(factionA, &core.DiplomaticRelation{OtherFaction: factionB, Standing: 0.4, Status: "peace"}))

	log := event.NewLog()
	bus := event.NewBus(log, zerolog.New(os.Stderr))
	clock := core.NewClock()

	sys := systems.Politics{}
	require.NoError(t, sys.Execute(w, clock, bus))

	rel, ok := w.Get(factionA, core.KindDiplomaticRelation)
	require.True(t, ok)
	assert.Less(t, rel.(*core.DiplomaticRelation).Standing, 0.4)
}
