// Package history persists emitted lineage events to a local Postgres store
// for later inspection.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alfredjeanlab/runline/internal/lineage"
)

// Event is a persisted copy of one emitted lineage record.
type Event struct {
	ID           int64           `json:"id"`
	RunID        string          `json:"run_id"`
	EventType    string          `json:"event_type"`
	JobNamespace string          `json:"job_namespace"`
	JobName      string          `json:"job_name"`
	Producer     string          `json:"producer"`
	EventTime    time.Time       `json:"event_time"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Filter narrows ListEvents results.
type Filter struct {
	Job   string // exact job name match when non-empty
	Limit int    // 0 = no limit
}

// Store defines the persistence interface for the event history.
type Store interface {
	RecordEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context, filter Filter) ([]*Event, error)
	Close() error
}

// FromRunEvent converts a wire event into its persisted form.
func FromRunEvent(ev lineage.RunEvent) (*Event, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}
	eventTime, err := time.Parse(time.RFC3339Nano, ev.EventTime)
	if err != nil {
		return nil, fmt.Errorf("parse event time %q: %w", ev.EventTime, err)
	}
	return &Event{
		RunID:        ev.Run.RunID,
		EventType:    string(ev.EventType),
		JobNamespace: ev.Job.Namespace,
		JobName:      ev.Job.Name,
		Producer:     ev.Producer,
		EventTime:    eventTime,
		Payload:      payload,
	}, nil
}
