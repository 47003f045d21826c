package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/crimehours/internal/aggregate"
	"github.com/roach88/crimehours/internal/record"
	"github.com/roach88/crimehours/internal/testutil"
)

// Scenario defines a pipeline conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID is the fixed run id. Empty uses the test default.
	RunID string `yaml:"run_id,omitempty"`

	// Rows are the input rows, in file order.
	Rows []Row `yaml:"rows"`

	// ExpectError is the violation code the run must fail with. Empty means
	// the run must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions are checked after a successful run.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// Snapshot lists the slices written by RunWithGolden.
	Snapshot []SliceSpec `yaml:"snapshot,omitempty"`
}

// Row is one input row. Template fills the unset cells.
type Row struct {
	Template     string `yaml:"template,omitempty"`
	Date         string `yaml:"date"`
	IncidentCode string `yaml:"iucr,omitempty"`
	Category     string `yaml:"primary_type,omitempty"`
	Description  string `yaml:"description,omitempty"`
	Domestic     string `yaml:"domestic,omitempty"`
	FBICode      string `yaml:"fbi_code,omitempty"`
	Year         string `yaml:"year"`
}

// SliceSpec selects a month of a year, optionally without one day.
type SliceSpec struct {
	Year       int `yaml:"year"`
	Month      int `yaml:"month"`
	ExcludeDay int `yaml:"exclude_day,omitempty"`
}

// Slice converts s to an aggregate.Slice.
func (s SliceSpec) Slice() aggregate.Slice {
	return aggregate.Slice{Year: s.Year, Month: s.Month, ExcludeDay: s.ExcludeDay}
}

// Assertion validates the outcome of a successful run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// SliceSpec is used by bucket_count and total.
	SliceSpec `yaml:",inline"`

	// Bucket is an hour label such as "7AM" (bucket_count).
	Bucket string `yaml:"bucket,omitempty"`

	// Count is the expected number (bucket_count, total, violent_count).
	Count int `yaml:"count"`

	// Finding names a report list (finding).
	Finding string `yaml:"finding,omitempty"`
}

// Assertion type constants.
const (
	AssertBucketCount  = "bucket_count"
	AssertTotal        = "total"
	AssertViolentCount = "violent_count"
	AssertFinding      = "finding"
)

// Report lists accepted by finding assertions.
const (
	FindingDuplicateCodes       = "duplicate_codes"
	FindingClassificationSpread = "classification_spread"
	FindingCodeSpread           = "code_spread"
	FindingManyToMany           = "many_to_many"
	FindingDomesticVariation    = "domestic_variation"
)

var templates = map[string]func(date, year string) testutil.Row{
	"homicide": testutil.Homicide,
	"theft":    testutil.Theft,
	"battery":  testutil.Battery,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Rows) == 0 {
		return fmt.Errorf("rows list is required and must be non-empty")
	}

	for i, r := range s.Rows {
		if r.Template != "" {
			if _, ok := templates[r.Template]; !ok {
				return fmt.Errorf("rows[%d]: unknown template %q", i, r.Template)
			}
		}
	}

	if s.ExpectError != "" && len(s.Assertions) > 0 {
		return fmt.Errorf("assertions cannot be combined with expect_error")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertBucketCount:
		if _, err := record.ParseHourBucket(a.Bucket); err != nil {
			return err
		}
		return a.Slice().Validate()
	case AssertTotal:
		return a.Slice().Validate()
	case AssertViolentCount:
		return nil
	case AssertFinding:
		switch a.Finding {
		case FindingDuplicateCodes, FindingClassificationSpread, FindingCodeSpread,
			FindingManyToMany, FindingDomesticVariation:
			return nil
		}
		return fmt.Errorf("unknown finding %q", a.Finding)
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// fixture expands the row into a testutil.Row.
func (r Row) fixture() testutil.Row {
	var f testutil.Row
	if tmpl, ok := templates[r.Template]; ok {
		f = tmpl(r.Date, r.Year)
	}
	f.Date, f.Year = r.Date, r.Year
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&f.IncidentCode, r.IncidentCode)
	set(&f.Category, r.Category)
	set(&f.Description, r.Description)
	set(&f.Domestic, r.Domestic)
	set(&f.FBICode, r.FBICode)
	return f
}
