package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
)

func TestInMemoryBusDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(sharedEvents.TopicListings)
	sub := bus.Subscribe(10)

	evt, err := sharedEvents.NewIntegrationEvent(sharedEvents.ListingCreated, "abc", map[string]string{"hello": "world"})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), evt))

	select {
	case payload := <-sub:
		var got sharedEvents.IntegrationEvent
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, sharedEvents.ListingCreated, got.Type)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestInMemoryBusDropsWhenSubscriberIsFull(t *testing.T) {
	bus := NewInMemoryEventBus(sharedEvents.TopicBlogs)
	sub := bus.Subscribe(1)

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(context.Background(), map[string]int{"i": i}))
	}

	// the subscriber buffer holds one event; the rest were dropped, and
	// Publish never blocked
	assert.Eventually(t, func() bool {
		return len(sub) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestInMemoryBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(sharedEvents.TopicJobs)
	assert.NoError(t, bus.Publish(context.Background(), map[string]string{"ok": "yes"}))
}
