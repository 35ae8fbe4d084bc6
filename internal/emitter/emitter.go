// Package emitter fans one lineage event out to the collector, the optional
// event bus, and the optional history store.
package emitter

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/runline/internal/collector"
	"github.com/alfredjeanlab/runline/internal/events"
	"github.com/alfredjeanlab/runline/internal/history"
	"github.com/alfredjeanlab/runline/internal/lineage"
)

// Pipeline delivers events. The collector is mandatory; bus and history are
// best-effort mirrors whose failures are logged, never fatal.
type Pipeline struct {
	Collector *collector.Client
	Bus       events.Publisher
	History   history.Store // nil = history disabled
	Logger    *slog.Logger
}

// Emit posts the event to the collector, then mirrors it to the bus and the
// history store. A collector failure aborts and is returned; mirror failures
// are logged and swallowed.
func (p *Pipeline) Emit(ctx context.Context, topic string, ev lineage.RunEvent) error {
	if err := p.Collector.Emit(ctx, ev); err != nil {
		return err
	}

	if err := p.Bus.Publish(ctx, topic, ev); err != nil {
		p.Logger.Warn("bus publish failed", "topic", topic, "run_id", ev.Run.RunID, "err", err)
	}

	if p.History != nil {
		rec, err := history.FromRunEvent(ev)
		if err == nil {
			err = p.History.RecordEvent(ctx, rec)
		}
		if err != nil {
			p.Logger.Warn("history record failed", "run_id", ev.Run.RunID, "err", err)
		}
	}

	return nil
}
