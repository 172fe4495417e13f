package ingest

import "time"

// Item is the unit the collector batches: one JSON payload received over HTTP.
type Item struct {
	ID         string         `json:"id" bson:"_id"`
	Source     string         `json:"source,omitempty" bson:"source,omitempty"`
	Payload    map[string]any `json:"payload" bson:"payload"`
	ReceivedAt time.Time      `json:"received_at" bson:"received_at"`
}

// ItemID returns the id of it. Sinks use it as document id or message key.
func ItemID(it Item) string {
	return it.ID
}

// ItemInput is one item as submitted by a producer.
type ItemInput struct {
	ID      string         `json:"id" validate:"omitempty,max=128"`
	Source  string         `json:"source" validate:"omitempty,max=128"`
	Payload map[string]any `json:"payload" validate:"required"`
}

// PushItemsRequest is the body of POST /v1/items.
type PushItemsRequest struct {
	Items []ItemInput `json:"items" validate:"required,min=1,max=10000,dive"`
}

// PushItemsResponse lists the ids of the accepted items in request order.
type PushItemsResponse struct {
	Accepted int      `json:"accepted"`
	IDs      []string `json:"ids"`
}

// FlushResponse acknowledges a forced post.
type FlushResponse struct {
	Scope string `json:"scope"`
}

// StatusResponse describes the collector.
type StatusResponse struct {
	Collector        string     `json:"collector"`
	CurrentBatchSize int        `json:"current_batch_size"`
	QueuedBatches    int        `json:"queued_batches"`
	LastPostAt       *time.Time `json:"last_post_at,omitempty"`
}
