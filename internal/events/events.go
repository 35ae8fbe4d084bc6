package events

import (
	"context"

	"github.com/alfredjeanlab/runline/internal/lineage"
)

// Event topic constants
const (
	TopicRunStart    = "runline.run.start"
	TopicRunComplete = "runline.run.complete"
	TopicRunFail     = "runline.run.fail"
	TopicRunAbort    = "runline.run.abort"

	// Per-result events parsed from the wrapped tool's artifacts.
	TopicRunResult = "runline.run.result"
)

// TopicForType maps a wrap-level lifecycle event to its bus topic.
func TopicForType(t lineage.EventType) string {
	switch t {
	case lineage.EventStart:
		return TopicRunStart
	case lineage.EventComplete:
		return TopicRunComplete
	case lineage.EventFail:
		return TopicRunFail
	case lineage.EventAbort:
		return TopicRunAbort
	}
	return TopicRunResult
}

// Publisher is the interface for mirroring emitted events onto the bus.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
