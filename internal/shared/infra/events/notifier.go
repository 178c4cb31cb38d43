package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	sharedBus "github.com/Khangithub17/real-estate-project/internal/shared/platform/bus"
)

const publishTimeout = 2 * time.Second

// Notifier fans a change event out to the record kind's topic and the global
// topic, off the request path. A publish failure is logged and swallowed:
// the mutation that triggered it has already succeeded and must stay that
// way.
type Notifier struct {
	topics map[string]sharedBus.EventPublisher
	global sharedBus.EventPublisher
	log    *zap.Logger
}

// NewNotifier builds a notifier over one publisher per topic plus the global
// publisher. Either side may be nil, which disables that channel.
func NewNotifier(topics map[string]sharedBus.EventPublisher, global sharedBus.EventPublisher, log *zap.Logger) *Notifier {
	if topics == nil {
		topics = map[string]sharedBus.EventPublisher{}
	}
	return &Notifier{topics: topics, global: global, log: log}
}

// Notify dispatches eventType with payload to topic and to the global
// channel. It returns immediately; delivery is not acknowledged, ordered or
// retried.
func (n *Notifier) Notify(topic, eventType, key string, payload interface{}) {
	if n == nil {
		return
	}

	evt, err := sharedEvents.NewIntegrationEvent(eventType, key, payload)
	if err != nil {
		n.log.Error("notifier: could not encode event",
			zap.String("type", eventType), zap.Error(err))
		return
	}

	go n.publish(n.topics[topic], topic, evt)
	if n.global != nil {
		go n.publish(n.global, sharedEvents.TopicGlobal, evt)
	}
}

func (n *Notifier) publish(pub sharedBus.EventPublisher, topic string, evt sharedEvents.IntegrationEvent) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := pub.Publish(ctx, evt); err != nil {
		n.log.Warn("notifier: event dropped",
			zap.String("topic", topic),
			zap.String("type", evt.Type),
			zap.Error(err))
	}
}
