package lineage

import (
	"fmt"
	"strings"
)

// ParseParentID decomposes a composite parent identifier of the form
// "namespace/job-name/run-id" into a ParentRun reference.
func ParseParentID(token string) (*ParentRun, error) {
	parts := strings.SplitN(token, "/", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("parse parent id %q: want namespace/job-name/run-id", token)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("parse parent id %q: empty segment", token)
		}
	}
	return &ParentRun{
		Namespace: parts[0],
		JobName:   parts[1],
		RunID:     parts[2],
	}, nil
}
