// Package lineage defines the run event records sent to the collector.
package lineage

import (
	"time"

	"github.com/alfredjeanlab/runline/internal/idgen"
)

// Producer identifies this tool in every emitted event.
const Producer = "https://github.com/alfredjeanlab/runline"

// EventType is the lifecycle phase a run event describes.
type EventType string

const (
	EventStart    EventType = "START"
	EventComplete EventType = "COMPLETE"
	EventFail     EventType = "FAIL"
	EventAbort    EventType = "ABORT"
)

// Job identifies the unit of work a run belongs to.
type Job struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// ParentRun references the orchestrating run that a run is nested under.
type ParentRun struct {
	RunID     string `json:"run_id"`
	Namespace string `json:"namespace"`
	JobName   string `json:"job_name"`
}

// RunFacets carries optional metadata attached to a run.
type RunFacets struct {
	Parent *ParentRun `json:"parent,omitempty"`
}

// Run is the run section of an event: an opaque run identifier plus facets.
type Run struct {
	RunID  string    `json:"run_id"`
	Facets RunFacets `json:"facets,omitzero"`
}

// Dataset references an input or output of a run.
type Dataset struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// RunEvent is a single lineage record describing one lifecycle phase of a
// run. Records are immutable after construction and exist only for
// transmission.
type RunEvent struct {
	EventType EventType `json:"event_type"`
	EventTime string    `json:"event_time"`
	Run       Run       `json:"run"`
	Job       Job       `json:"job"`
	Producer  string    `json:"producer"`
	Inputs    []Dataset `json:"inputs,omitempty"`
	Outputs   []Dataset `json:"outputs,omitempty"`
}

// NewRunEvent builds an event record from the given lifecycle phase, run
// identity, and job identity. Pure construction: no validation, no side
// effects. parent may be nil.
func NewRunEvent(eventType EventType, eventTime time.Time, runID string, job Job, parent *ParentRun) RunEvent {
	return RunEvent{
		EventType: eventType,
		EventTime: eventTime.UTC().Format(time.RFC3339Nano),
		Run: Run{
			RunID:  runID,
			Facets: RunFacets{Parent: parent},
		},
		Job:      job,
		Producer: Producer,
	}
}

// NewRunID generates a fresh opaque run identifier.
func NewRunID() (string, error) {
	return idgen.Generate()
}
