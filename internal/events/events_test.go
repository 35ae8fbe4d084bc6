package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alfredjeanlab/runline/internal/lineage"
	"github.com/nats-io/nats.go"
)

func TestNoopPublisher_Publish(t *testing.T) {
	pub := &NoopPublisher{}
	err := pub.Publish(context.Background(), TopicRunStart, lineage.RunEvent{})
	if err != nil {
		t.Fatalf("NoopPublisher.Publish returned unexpected error: %v", err)
	}
}

func TestNoopPublisher_Close(t *testing.T) {
	pub := &NoopPublisher{}
	if err := pub.Close(); err != nil {
		t.Fatalf("NoopPublisher.Close returned unexpected error: %v", err)
	}
}

func TestNoopPublisher_ImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NoopPublisher)(nil)
}

func TestNATSPublisher_ImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NATSPublisher)(nil)
}

func TestTopicForType(t *testing.T) {
	for _, tc := range []struct {
		eventType lineage.EventType
		want      string
	}{
		{lineage.EventStart, TopicRunStart},
		{lineage.EventComplete, TopicRunComplete},
		{lineage.EventFail, TopicRunFail},
		{lineage.EventAbort, TopicRunAbort},
		{lineage.EventType("OTHER"), TopicRunResult},
	} {
		if got := TopicForType(tc.eventType); got != tc.want {
			t.Errorf("TopicForType(%q) = %q, want %q", tc.eventType, got, tc.want)
		}
	}
}

func TestNATSPublisher_Publish(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	// Subscribe to capture published messages.
	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connecting subscriber: %v", err)
	}
	defer nc.Close()

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(TopicRunStart, ch)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer sub.Unsubscribe() //nolint:errcheck
	nc.Flush()

	ev := lineage.NewRunEvent(
		lineage.EventStart,
		time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		"run123",
		lineage.Job{Namespace: "ns", Name: "job"},
		nil,
	)
	if err := pub.Publish(context.Background(), TopicRunStart, ev); err != nil {
		t.Fatalf("publishing: %v", err)
	}
	pub.conn.Flush()

	select {
	case msg := <-ch:
		var got lineage.RunEvent
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("unmarshaling published event: %v", err)
		}
		if got.Run.RunID != "run123" || got.EventType != lineage.EventStart {
			t.Errorf("published event = %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published event")
	}
}
