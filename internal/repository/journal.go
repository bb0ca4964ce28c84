package repository

import (
	"context"
	"time"
)

// StoredEvent is one entry of an aggregate's event history. Seq is assigned
// on append and is strictly increasing per aggregate id.
type StoredEvent struct {
	AggregateID string
	Seq         int64
	EventType   string
	Payload     []byte
	RecordedAt  time.Time
}

// EventJournal defines the append-only persistence of event histories.
type EventJournal interface {
	// Append persists one event at the end of the aggregate's history.
	Append(ctx context.Context, aggregateID, eventType string, payload []byte) error

	// Load retrieves the aggregate's full history in append order.
	Load(ctx context.Context, aggregateID string) ([]StoredEvent, error)
}
