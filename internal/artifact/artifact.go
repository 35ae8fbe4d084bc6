// Package artifact reads the wrapped tool's run-result file and turns it
// into lineage events.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alfredjeanlab/runline/internal/lineage"
)

// DefaultPath is where the wrapped tool writes its run results, relative to
// the working directory.
const DefaultPath = "target/run_results.json"

// Result statuses as written by the wrapped tool.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Metadata is the header section of a run-result file.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
}

// Result is a single per-unit outcome from the wrapped tool.
type Result struct {
	UniqueID      string  `json:"unique_id"`
	Status        string  `json:"status"`
	ExecutionTime float64 `json:"execution_time"`
}

// RunResults is the parsed run-result artifact.
type RunResults struct {
	Metadata Metadata `json:"metadata"`
	Results  []Result `json:"results"`

	// ModTime is the artifact file's modification time, used for the
	// freshness check against the invocation start.
	ModTime time.Time `json:"-"`
}

// Load reads and parses the run-result file at path. A missing file unwraps
// to os.ErrNotExist so callers can treat it as the guarded "no artifact"
// condition.
func Load(path string) (*RunResults, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat run results: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run results: %w", err)
	}

	var rr RunResults
	if err := json.Unmarshal(data, &rr); err != nil {
		return nil, fmt.Errorf("parse run results %s: %w", path, err)
	}
	rr.ModTime = info.ModTime()
	return &rr, nil
}

// Fresh reports whether the artifact was written after the given invocation
// start time. A stale artifact means the wrapped tool did not produce new
// results and no lineage should be emitted for it.
func (rr *RunResults) Fresh(since time.Time) bool {
	return rr.ModTime.After(since)
}

// Events maps each result row to a lineage event nested under the wrap run.
// Successful and skipped units produce COMPLETE events, errored units FAIL.
func (rr *RunResults) Events(runID string, job lineage.Job) ([]lineage.RunEvent, error) {
	parent := &lineage.ParentRun{
		RunID:     runID,
		Namespace: job.Namespace,
		JobName:   job.Name,
	}

	events := make([]lineage.RunEvent, 0, len(rr.Results))
	for _, res := range rr.Results {
		childID, err := lineage.NewRunID()
		if err != nil {
			return nil, fmt.Errorf("generate result run id: %w", err)
		}

		eventType := lineage.EventComplete
		if res.Status == StatusError {
			eventType = lineage.EventFail
		}

		childJob := lineage.Job{
			Namespace: job.Namespace,
			Name:      job.Name + "." + res.UniqueID,
		}
		events = append(events, lineage.NewRunEvent(eventType, rr.Metadata.GeneratedAt, childID, childJob, parent))
	}
	return events, nil
}
