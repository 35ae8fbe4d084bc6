package main

import (
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/runline/internal/ui"
)

func TestFormatWatchLine(t *testing.T) {
	ui.ForceNoColor()

	payload := []byte(`{
		"event_type": "COMPLETE",
		"event_time": "2026-03-01T08:05:00Z",
		"run": {"run_id": "run123"},
		"job": {"namespace": "analytics", "name": "nightly"}
	}`)

	line, err := formatWatchLine(payload)
	if err != nil {
		t.Fatalf("formatWatchLine() error: %v", err)
	}

	wantTime := time.Date(2026, 3, 1, 8, 5, 0, 0, time.UTC).Local().Format(time.DateTime)
	for _, want := range []string{wantTime, "COMPLETE", "run123", "analytics/nightly"} {
		if !strings.Contains(line, want) {
			t.Errorf("line = %q, missing %q", line, want)
		}
	}
}

func TestFormatWatchLine_BadPayload(t *testing.T) {
	if _, err := formatWatchLine([]byte("{not json")); err == nil {
		t.Fatal("formatWatchLine() succeeded on malformed payload, want error")
	}
}

func TestWatch_NoBusConfigured(t *testing.T) {
	setupWrapEnv(t)

	if err := execRoot("watch"); err == nil {
		t.Fatal("watch succeeded without a NATS URL, want error")
	}
}
