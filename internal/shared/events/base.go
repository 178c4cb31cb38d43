package events

import (
	"encoding/json"
	"time"
)

// Topics for the change broadcast. Each record kind has its own topic and
// every change is mirrored on the global one, so a client may subscribe to
// a single kind or to everything.
const (
	TopicListings = "listings"
	TopicBlogs    = "blogs"
	TopicJobs     = "jobs"
	TopicAccounts = "accounts"
	TopicGlobal   = "updates"
)

// Event types keep the <kind>_<verb> names the live clients already know.
const (
	ListingCreated = "project_created"
	ListingUpdated = "project_updated"
	ListingDeleted = "project_deleted"
	BlogCreated    = "blog_created"
	BlogUpdated    = "blog_updated"
	BlogDeleted    = "blog_deleted"
	JobCreated     = "job_created"
	JobUpdated     = "job_updated"
	JobDeleted     = "job_deleted"
	AccountCreated = "user_created"
	AccountUpdated = "user_updated"
	AccountDeleted = "user_deleted"
)

// IntegrationEvent is the wire envelope for the change broadcast.
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Key       string          `json:"-"` // record ID, used only for partitioning
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // event-specific payload
}

// PartitionKey implements bus.Keyer so events for the same record land on
// the same partition.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

// NewIntegrationEvent marshals payload into an envelope.
func NewIntegrationEvent(eventType, key string, payload interface{}) (IntegrationEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{
		Type:      eventType,
		Key:       key,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}, nil
}
