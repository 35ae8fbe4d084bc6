package history

import (
	"context"
	"fmt"
)

// eventColumns is the column list used for SELECT statements on run_events.
const eventColumns = `id, run_id, event_type, job_namespace, job_name, producer, event_time, payload, created_at`

// RecordEvent inserts a single event row and fills in its assigned ID and
// creation timestamp.
func (s *PostgresStore) RecordEvent(ctx context.Context, event *Event) error {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO run_events (
			run_id, event_type, job_namespace, job_name,
			producer, event_time, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		event.RunID,
		event.EventType,
		event.JobNamespace,
		event.JobName,
		event.Producer,
		event.EventTime,
		[]byte(event.Payload),
	)
	if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("insert run event: %w", err)
	}
	return nil
}

// ListEvents returns events matching the filter, newest first.
func (s *PostgresStore) ListEvents(ctx context.Context, filter Filter) ([]*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM run_events`
	args := []any{}
	if filter.Job != "" {
		query += ` WHERE job_name = $1`
		args = append(args, filter.Job)
	}
	query += ` ORDER BY event_time DESC, id DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list run events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run events: %w", err)
	}
	return events, nil
}
