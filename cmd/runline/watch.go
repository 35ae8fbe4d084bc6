package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/runline/internal/events"
	"github.com/alfredjeanlab/runline/internal/lineage"
	"github.com/alfredjeanlab/runline/internal/ui"
)

var watchTopic string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream run events from the event bus as they are emitted",
	Long: `Subscribes to the NATS event bus and prints each mirrored run event as it
arrives. Topics support NATS wildcards: "runline.>" (default) tails
everything, "runline.run.result" only per-result events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		if cfg.NATSURL == "" {
			return fmt.Errorf("RUNLINE_NATS_URL is required for watch")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(cfg.NATSURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(watchTopic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				if jsonOutput {
					fmt.Println(string(msg))
					continue
				}
				line, err := formatWatchLine(msg)
				if err != nil {
					fmt.Fprintf(os.Stderr, "runline: %v\n", err)
					continue
				}
				fmt.Println(line)
			}
		}
	},
}

// formatWatchLine renders one received event payload as a single line.
func formatWatchLine(data []byte) (string, error) {
	var ev lineage.RunEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return "", fmt.Errorf("parse event: %w", err)
	}
	ts := ev.EventTime
	if t, err := time.Parse(time.RFC3339Nano, ev.EventTime); err == nil {
		ts = t.Local().Format(time.DateTime)
	}
	return fmt.Sprintf("%s  %s  %s  %s/%s",
		ts,
		ui.RenderEventType(string(ev.EventType)),
		ui.RenderAccent(ev.Run.RunID),
		ev.Job.Namespace,
		ev.Job.Name,
	), nil
}

func init() {
	watchCmd.Flags().StringVar(&watchTopic, "topic", "runline.>", "bus topic to subscribe to (NATS wildcards allowed)")
}
