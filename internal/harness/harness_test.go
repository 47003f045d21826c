package harness

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestScenarioGoldens(t *testing.T) {
	for _, name := range []string{"january_shift_order", "midnight_boundaries", "year_mismatch"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join("testdata/scenarios", name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRunReportsUnexpectedViolation(t *testing.T) {
	s := &Scenario{
		Name:        "unexpected",
		Description: "year mismatch without expect_error",
		Rows:        []Row{{Template: "homicide", Date: "2016-01-01 00:00:00", Year: "2015"}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, "YEAR_MISMATCH", result.ErrorCode)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unexpected YEAR_MISMATCH")
}

func TestRunReportsWrongViolation(t *testing.T) {
	s := &Scenario{
		Name:        "wrong",
		Description: "parse error where a null field was expected",
		Rows:        []Row{{Template: "homicide", Date: "not a date", Year: "2015"}},
		ExpectError: "NULL_FIELD",
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, "PARSE_ERROR", result.ErrorCode)
	assert.Contains(t, result.Errors[0], "expected NULL_FIELD, got PARSE_ERROR")
}

func TestRunReportsMissingViolation(t *testing.T) {
	s := &Scenario{
		Name:        "missing",
		Description: "clean input with expect_error",
		Rows:        []Row{{Template: "theft", Date: "2015-01-01 00:00:00", Year: "2015"}},
		ExpectError: "YEAR_MISMATCH",
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "run succeeded")
}

func TestRunFailedAssertions(t *testing.T) {
	s := &Scenario{
		Name:        "assertions",
		Description: "every assertion type failing",
		Rows:        []Row{{Template: "homicide", Date: "2015-01-05 07:10:00", Year: "2015"}},
		Assertions: []Assertion{
			{Type: AssertBucketCount, SliceSpec: SliceSpec{Year: 2015, Month: 1}, Bucket: "8AM", Count: 1},
			{Type: AssertTotal, SliceSpec: SliceSpec{Year: 2015, Month: 1}, Count: 5},
			{Type: AssertViolentCount, Count: 0},
			{Type: AssertFinding, Finding: FindingCodeSpread},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, "bucket_count 8AM in 2015-01: expected 1, got 0", result.Errors[0])
	assert.Equal(t, "total in 2015-01: expected 5, got 1", result.Errors[1])
	assert.Equal(t, "violent_count: expected 0, got 1", result.Errors[2])
	assert.Equal(t, "finding: report has no code_spread", result.Errors[3])
}

func TestRowTemplateOverrides(t *testing.T) {
	r := Row{Template: "battery", Date: "d", Year: "2015", Domestic: "false", FBICode: "04B"}
	f := r.fixture()
	assert.Equal(t, "0486", f.IncidentCode)
	assert.Equal(t, "BATTERY", f.Category)
	assert.Equal(t, "false", f.Domestic)
	assert.Equal(t, "04B", f.FBICode)
	assert.Equal(t, "d", f.Date)
}

func TestSliceSpecString(t *testing.T) {
	assert.Equal(t, "2015-01", SliceSpec{Year: 2015, Month: 1}.String())
	assert.Equal(t, "2015-01 excluding day 1", SliceSpec{Year: 2015, Month: 1, ExcludeDay: 1}.String())
}
