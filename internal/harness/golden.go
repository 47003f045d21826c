package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/<name>.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden
// file. Regenerate with: go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Snapshot(scenario, result))

	return result, nil
}

// Snapshot renders the outcome of a run as stable text: the run id, the
// error code or incident counts, then the non-empty buckets of every
// snapshot slice in bucket order.
func Snapshot(s *Scenario, r *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", s.Name)
	fmt.Fprintf(&buf, "run_id: %s\n", r.RunID)
	if r.ErrorCode != "" {
		fmt.Fprintf(&buf, "error: %s\n", r.ErrorCode)
		return buf.Bytes()
	}
	fmt.Fprintf(&buf, "incidents: %d (violent %d)\n", r.Incidents, r.Violent)
	for _, sl := range s.Snapshot {
		h := r.Histogram(sl)
		fmt.Fprintf(&buf, "slice %s\n", sl)
		for _, e := range h.Entries() {
			if e.Count > 0 {
				fmt.Fprintf(&buf, "  %s %d\n", e.HourBucket, e.Count)
			}
		}
		fmt.Fprintf(&buf, "  total %d\n", h.Total())
	}
	return buf.Bytes()
}
