package event_test

import (
	"os"
	"testing"

	"github.com/1siamBot/historia/engine/event"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBus() (*event.Bus, *event.Log) {
	log := event.NewLog()
	logger := zerolog.New(os.Stderr)
	return event.NewBus(log, logger), log
}

func TestSubscribersReceiveMatchingCategory(t *testing.T) {
	bus, _ := testBus()
	var received []event.Event
	bus.Subscribe(event.CategoryPolitical, func(e event.Event) {
		received = append(received, e)
	})

	_, err := bus.Emit(event.Event{Category: event.CategoryPolitical})
	require.NoError(t, err)
	_, err = bus.Emit(event.Event{Category: event.CategoryEconomic})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, event.CategoryPolitical, received[0].Category)
}

func TestSubscribeAnyReceivesEveryCategory(t *testing.T) {
	bus, _ := testBus()
	var count int
	bus.SubscribeAny(func(event.Event) { count++ })

	_, _ = bus.Emit(event.Event{Category: event.CategoryPolitical})
	_, _ = bus.Emit(event.Event{Category: event.CategoryMagical})

	assert.Equal(t, 2, count)
}

func TestUnsubscribeStopsFurtherDelivery(t *testing.T) {
	bus, _ := testBus()
	var count int
	handle := bus.SubscribeAny(func(event.Event) { count++ })

	_, _ = bus.Emit(event.Event{Category: event.CategoryPolitical})
	handle()
	_, _ = bus.Emit(event.Event{Category: event.CategoryPolitical})

	assert.Equal(t, 1, count)
}

func TestReentrantEmitDuringDeliveryResolvesDepthFirst(t *testing.T) {
	bus, _ := testBus()
	var order []string

	bus.SubscribeAny(func(e event.Event) {
		order = append(order, e.Subtype)
		if e.Subtype == "root" {
			_, _ = bus.Emit(event.Event{Category: event.CategoryPolitical, Subtype: "child"})
		}
	})

	_, err := bus.Emit(event.Event{Category: event.CategoryPolitical, Subtype: "root"})
	require.NoError(t, err)

	require.Equal(t, []string{"root", "child"}, order)
}

func TestPanickingSubscriberDoesNotCorruptDelivery(t *testing.T) {
	bus, _ := testBus()
	var secondCalled bool

	bus.SubscribeAny(func(event.Event) { panic("boom") })
	bus.SubscribeAny(func(event.Event) { secondCalled = true })

	assert.NotPanics(t, func() {
		_, _ = bus.Emit(event.Event{Category: event.CategoryPolitical})
	})
	assert.True(t, secondCalled)
}
