package mocks

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/Khangithub17/real-estate-project/internal/shared/platform/bus"
)

// CapturingPublisher records every published event as JSON so tests can
// assert on the broadcast without a broker.
type CapturingPublisher struct {
	mu        sync.Mutex
	published []string
}

var _ sharedBus.EventPublisher = (*CapturingPublisher)(nil)

func NewCapturingPublisher() *CapturingPublisher {
	return &CapturingPublisher{}
}

func (p *CapturingPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	p.published = append(p.published, string(data))
	return nil
}

// Published returns a copy of everything published so far.
func (p *CapturingPublisher) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.published...)
}
