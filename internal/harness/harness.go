package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/crimehours/internal/aggregate"
	"github.com/roach88/crimehours/internal/consistency"
	"github.com/roach88/crimehours/internal/ingest"
	"github.com/roach88/crimehours/internal/pipeline"
	"github.com/roach88/crimehours/internal/record"
	"github.com/roach88/crimehours/internal/testutil"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool `json:"pass"`

	RunID string `json:"run_id"`

	// ErrorCode is the violation code the run failed with, if any.
	ErrorCode string `json:"error_code,omitempty"`

	Incidents int                 `json:"incidents"`
	Violent   int                 `json:"violent"`
	Report    *consistency.Report `json:"report,omitempty"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	incidents []record.Incident
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Histogram aggregates the run's incidents over s.
func (r *Result) Histogram(s SliceSpec) aggregate.Histogram {
	return aggregate.ViolentByHour(r.incidents, s.Slice())
}

// Run executes a scenario and returns the result.
//
// Data-contract violations are part of the result. The returned error is
// reserved for failures of the harness itself.
func Run(s *Scenario) (*Result, error) {
	rows := make([]testutil.Row, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = r.fixture()
	}

	ids := testutil.NewFixedRunIDGenerator(s.RunID)
	result := &Result{Pass: true, RunID: ids.Generate()}

	res, err := process(testutil.CSV(rows...), ids)
	if err != nil {
		code := pipeline.ErrorCode(err)
		if code == "" {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		result.ErrorCode = code
		switch {
		case s.ExpectError == "":
			result.AddError("unexpected %s: %v", code, err)
		case s.ExpectError != code:
			result.AddError("expected %s, got %s: %v", s.ExpectError, code, err)
		}
		return result, nil
	}

	if s.ExpectError != "" {
		result.AddError("expected %s, run succeeded", s.ExpectError)
	}

	result.incidents = res.Incidents
	result.Incidents = len(res.Incidents)
	result.Report = res.Report
	for _, in := range res.Incidents {
		if in.Violent {
			result.Violent++
		}
	}

	for _, a := range s.Assertions {
		checkAssertion(result, a)
	}
	return result, nil
}

func process(csv string, ids pipeline.RunIDGenerator) (*pipeline.Result, error) {
	tbl, err := ingest.Load(strings.NewReader(csv), ingest.Options{})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return pipeline.New(pipeline.Options{RunIDs: ids}).Process(tbl.Rows)
}

func checkAssertion(r *Result, a Assertion) {
	switch a.Type {
	case AssertBucketCount:
		b, err := record.ParseHourBucket(a.Bucket)
		if err != nil {
			r.AddError("%s: %v", a.Type, err)
			return
		}
		if got := r.Histogram(a.SliceSpec).Count(b); got != a.Count {
			r.AddError("%s %s in %s: expected %d, got %d", a.Type, a.Bucket, a.SliceSpec, a.Count, got)
		}
	case AssertTotal:
		if got := r.Histogram(a.SliceSpec).Total(); got != a.Count {
			r.AddError("%s in %s: expected %d, got %d", a.Type, a.SliceSpec, a.Count, got)
		}
	case AssertViolentCount:
		if r.Violent != a.Count {
			r.AddError("%s: expected %d, got %d", a.Type, a.Count, r.Violent)
		}
	case AssertFinding:
		if !hasFinding(r.Report, a.Finding) {
			r.AddError("%s: report has no %s", a.Type, a.Finding)
		}
	default:
		r.AddError("unknown assertion type %q", a.Type)
	}
}

func hasFinding(rep *consistency.Report, name string) bool {
	if rep == nil {
		return false
	}
	switch name {
	case FindingDuplicateCodes:
		return len(rep.DuplicateCodes) > 0
	case FindingClassificationSpread:
		return len(rep.ClassificationSpread) > 0
	case FindingCodeSpread:
		return len(rep.CodeSpread) > 0
	case FindingManyToMany:
		return rep.ManyToMany
	case FindingDomesticVariation:
		return len(rep.DomesticVariation) > 0
	}
	return false
}

// String formats the slice as "2015-01" or "2015-01 excluding day 1".
func (s SliceSpec) String() string {
	out := fmt.Sprintf("%d-%02d", s.Year, s.Month)
	if s.ExcludeDay != 0 {
		out += fmt.Sprintf(" excluding day %d", s.ExcludeDay)
	}
	return out
}
