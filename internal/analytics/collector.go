package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ViewEvent records one page view of a record.
type ViewEvent struct {
	Kind     string // "listing", "blog", "job"
	RecordID uuid.UUID
	ViewedAt time.Time
}

// ViewSink receives view events in batches.
type ViewSink interface {
	LogBatch(ctx context.Context, events []ViewEvent) error
}

// Collector buffers view events and flushes them to the sink periodically.
// Everything here is best-effort: a failed flush drops the batch and the
// serving path never waits on the sink.
type Collector struct {
	sink   ViewSink
	period time.Duration
	log    *zap.Logger

	mu  sync.Mutex
	buf []ViewEvent

	stop chan struct{}
	once sync.Once
}

func NewCollector(sink ViewSink, period time.Duration, log *zap.Logger) *Collector {
	return &Collector{
		sink:   sink,
		period: period,
		log:    log,
		stop:   make(chan struct{}),
	}
}

// Record buffers one view. Safe to call on a nil collector, so services can
// run without analytics configured.
func (c *Collector) Record(kind string, id uuid.UUID) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.buf = append(c.buf, ViewEvent{Kind: kind, RecordID: id, ViewedAt: time.Now().UTC()})
	c.mu.Unlock()
}

// Start launches the flush loop.
func (c *Collector) Start(ctx context.Context) {
	if c == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(c.period)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.flush()
			case <-ctx.Done():
				c.flush()
				return
			case <-c.stop:
				c.flush()
				return
			}
		}
	}()
}

// Stop ends the flush loop after a final flush.
func (c *Collector) Stop() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
}

func (c *Collector) flush() {
	c.mu.Lock()
	batch := c.buf
	c.buf = nil
	c.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.sink.LogBatch(ctx, batch); err != nil {
		c.log.Warn("analytics: view batch dropped",
			zap.Int("events", len(batch)), zap.Error(err))
	}
}
