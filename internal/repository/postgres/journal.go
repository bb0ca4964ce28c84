package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"autonomo/internal/repository"
)

// Journal table names.
const (
	RideEventsTable    = "ride_events"
	VehicleEventsTable = "vehicle_events"
)

// EventJournal is a PostgreSQL implementation of repository.EventJournal
// backed by one append-only table per aggregate type.
type EventJournal struct {
	q     Querier
	table string
}

// NewRideEventJournal creates the journal for ride events.
func NewRideEventJournal(db *sql.DB) *EventJournal {
	return &EventJournal{q: db, table: RideEventsTable}
}

// NewVehicleEventJournal creates the journal for vehicle events.
func NewVehicleEventJournal(db *sql.DB) *EventJournal {
	return &EventJournal{q: db, table: VehicleEventsTable}
}

// Append persists one event at the end of the aggregate's history. The
// sequence number continues from the aggregate's last entry.
func (j *EventJournal) Append(ctx context.Context, aggregateID, eventType string, payload []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (aggregate_id, seq, event_type, payload, recorded_at)
		VALUES ($1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM %s WHERE aggregate_id = $1), $2, $3, NOW())
	`, j.table, j.table)

	_, err := j.q.ExecContext(ctx, query, aggregateID, eventType, payload)
	return err
}

// Load retrieves the aggregate's full history in append order.
func (j *EventJournal) Load(ctx context.Context, aggregateID string) ([]repository.StoredEvent, error) {
	query := fmt.Sprintf(`
		SELECT aggregate_id, seq, event_type, payload, recorded_at
		FROM %s WHERE aggregate_id = $1 ORDER BY seq
	`, j.table)

	rows, err := j.q.QueryContext(ctx, query, aggregateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []repository.StoredEvent
	for rows.Next() {
		var e repository.StoredEvent
		if err := rows.Scan(&e.AggregateID, &e.Seq, &e.EventType, &e.Payload, &e.RecordedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, repository.ErrNotFound
	}
	return events, nil
}

// Ensure the interface is satisfied.
var _ repository.EventJournal = (*EventJournal)(nil)
