package archive

import "testing"

func TestKey(t *testing.T) {
	a := &S3Archive{prefix: "runline/artifacts"}
	for _, tc := range []struct {
		runID    string
		filename string
		want     string
	}{
		{"run123", "run_results.json", "runline/artifacts/run123/run_results.json"},
		{"run123", "manifest.json", "runline/artifacts/run123/manifest.json"},
	} {
		if got := a.Key(tc.runID, tc.filename); got != tc.want {
			t.Errorf("Key(%q, %q) = %q, want %q", tc.runID, tc.filename, got, tc.want)
		}
	}

	// Empty prefix collapses cleanly.
	a.prefix = ""
	if got := a.Key("run123", "run_results.json"); got != "run123/run_results.json" {
		t.Errorf("Key with empty prefix = %q", got)
	}
}
