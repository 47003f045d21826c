package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/crimehours/internal/testutil"
)

func executeValidate(format string, args ...string) (*bytes.Buffer, error) {
	out := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: format})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return out, cmd.Execute()
}

func TestValidateClean(t *testing.T) {
	out, err := executeValidate("text", januaryFixture(t))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "is valid")
	assert.Contains(t, out.String(), "Rows checked: 7")
	assert.Contains(t, out.String(), "No advisory findings")
}

func TestValidateAdvisories(t *testing.T) {
	first := testutil.Battery("01/01/2015 12:15:00 AM", "2015")
	second := testutil.Battery("01/02/2015 12:15:00 AM", "2015")
	second.Domestic = "false"
	second.Description = "DOMESTIC BATTERY SIMPLE (LEGACY)"
	path := testutil.WriteCSV(t, first, second)

	out, err := executeValidate("text", path)
	require.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "Incident codes with several category/description pairs: 1")
	assert.Contains(t, text, "0486: BATTERY / DOMESTIC BATTERY SIMPLE; BATTERY / DOMESTIC BATTERY SIMPLE (LEGACY)")
	assert.Contains(t, text, "Incident codes seen as both domestic and not: 0486")
}

func TestValidateJSON(t *testing.T) {
	out, err := executeValidate("json", januaryFixture(t))
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	require.NotNil(t, resp.Data.Report)
	assert.Equal(t, 7, resp.Data.Report.Rows)
	assert.Equal(t, 3, resp.Data.Report.DistinctIncidentCodes)
}

func TestValidateFatalViolations(t *testing.T) {
	ambiguous := testutil.Homicide("01/02/2015 12:15:00 AM", "2015")
	ambiguous.IncidentCode = "0111"

	nullCategory := testutil.Theft("01/02/2015 12:15:00 AM", "2015")
	nullCategory.Category = ""

	tests := []struct {
		name     string
		rows     []testutil.Row
		wantCode string
	}{
		{"year mismatch", []testutil.Row{testutil.Homicide("01/01/2016 12:15:00 AM", "2015")}, "YEAR_MISMATCH"},
		{"malformed date", []testutil.Row{testutil.Homicide("2015-13-45", "2015")}, "PARSE_ERROR"},
		{"code ambiguity", []testutil.Row{testutil.Homicide("01/01/2015 12:15:00 AM", "2015"), ambiguous}, "CODE_AMBIGUITY"},
		{"null field", []testutil.Row{nullCategory}, "NULL_FIELD"},
		{"schema", []testutil.Row{{Date: "01/01/2015 12:15:00 AM", Domestic: "maybe", Year: "2015"}}, "SCHEMA_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeValidate("json", testutil.WriteCSV(t, tt.rows...))
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

// slashedLayoutConfig writes a config accepting only "2006/01/02 15:04"
// dates and returns its path.
func slashedLayoutConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crimehours.yaml")
	require.NoError(t, os.WriteFile(path, []byte("date_layouts: [\"2006/01/02 15:04\"]\n"), 0o644))
	return path
}

func TestValidateUsesConfigLayouts(t *testing.T) {
	input := testutil.WriteCSV(t,
		testutil.Homicide("2015/01/09 07:30", "2015"),
		testutil.Theft("2015/01/10 22:00", "2015"),
	)
	envFile := filepath.Join(t.TempDir(), "none.env")

	out, err := executeValidate("json", input, "--env-file", envFile)
	require.Error(t, err, "default layouts do not accept slashed dates")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	var failed CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &failed))
	require.NotNil(t, failed.Error)
	assert.Equal(t, "PARSE_ERROR", failed.Error.Code)

	out, err = executeValidate("json", input, "--config", slashedLayoutConfig(t), "--env-file", envFile)
	require.NoError(t, err)
	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 2, resp.Data.Report.Rows)
}

func TestValidateConfigRowLimit(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "crimehours.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("rows: 2\n"), 0o644))
	envFile := filepath.Join(dir, "none.env")

	out, err := executeValidate("text", januaryFixture(t), "--config", cfgPath, "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Rows checked: 2")

	out, err = executeValidate("text", januaryFixture(t), "--config", cfgPath, "--env-file", envFile, "--rows", "3")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Rows checked: 3")
}

func TestValidateBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "crimehours.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("date_layouts: []\n"), 0o644))

	out, err := executeValidate("json", januaryFixture(t), "--config", cfgPath, "--env-file", filepath.Join(dir, "none.env"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeConfig, resp.Error.Code)
}

func TestValidateMissingFile(t *testing.T) {
	out, err := executeValidate("text", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out.String(), "Error [NOT_FOUND]")
}

func TestValidateRequiresArg(t *testing.T) {
	_, err := executeValidate("text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
