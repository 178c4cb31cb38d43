package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/Khangithub17/real-estate-project/internal/shared/platform/bus"
)

// InMemoryEventBus implements an event bus for ONE topic. Delivery is
// best-effort: slow subscribers are skipped, nothing is retried.
type InMemoryEventBus struct {
	subscribers []chan []byte
	mu          sync.RWMutex
	topic       string
}

var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus creates an event bus for a specific topic.
func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan []byte, 0),
		topic:       topic,
	}
}

// Topic returns the topic this bus carries.
func (b *InMemoryEventBus) Topic() string {
	return b.topic
}

// Publish sends an event to every subscriber of this bus.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	subs := make([]chan []byte, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	if len(subs) > 0 {
		go b.distribute(subs, payload)
	}
	return nil
}

func (b *InMemoryEventBus) distribute(subs []chan []byte, payload []byte) {
	for _, subChan := range subs {
		select {
		case subChan <- payload:
		default:
			// subscriber buffer full, drop
		}
	}
}

// Subscribe attaches a new listener to this bus.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan []byte, bufferSize)
	b.subscribers = append(b.subscribers, subChan)
	return subChan
}
