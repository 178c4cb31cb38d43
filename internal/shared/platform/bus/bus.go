package bus

import "context"

// Keyer lets an event choose its partition key (Kafka) or be ignored by
// transports without partitions.
type Keyer interface {
	PartitionKey() string
}

// EventPublisher pushes an event to one topic. Topic naming and payload
// format are decided by the adapters.
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}
