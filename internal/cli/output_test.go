package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/crimehours/internal/config"
	"github.com/roach88/crimehours/internal/consistency"
	"github.com/roach88/crimehours/internal/ingest"
	"github.com/roach88/crimehours/internal/record"
	"github.com/roach88/crimehours/internal/temporal"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONSuccessCarriesRunID(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(HoursResult{RunID: "run-42"}))
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "run-42", resp.RunID)

	buf.Reset()
	require.NoError(t, formatter.Success(ValidationResult{Valid: true}))
	resp = CLIResponse{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Empty(t, resp.RunID, "results outside a run carry no run id")
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("SCHEMA_ERROR", "missing required column", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SCHEMA_ERROR", resp.Error.Code)
	assert.Equal(t, "missing required column", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("all rows valid")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "all rows valid")
}

type countReport struct{ n int }

func (c countReport) WriteText(p *textPrinter) error {
	p.Printf("count %d\n", c.n)
	return nil
}

func TestOutputFormatter_TextReportGroupsDigits(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success(countReport{n: 1234567}))
	assert.Equal(t, "count 1,234,567\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"column": "IUCR"}
	err := formatter.Error("SCHEMA_ERROR", "missing required column", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [SCHEMA_ERROR]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Checking %s", "crimes.csv")

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Contains(t, errOut.String(), "Checking crimes.csv")
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	cause := &consistency.YearMismatchError{Row: 3, Recorded: 2015, Parsed: 2016}
	err := formatter.Fail("validation failed", fmt.Errorf("check: %w", cause))

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, consistency.IsYearMismatch(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, consistency.ErrCodeYearMismatch, resp.Error.Code)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{"schema", &ingest.SchemaError{Column: "IUCR", Reason: "missing required column"}, ingest.ErrCodeSchema, ExitFailure},
		{"parse", &temporal.ParseError{Value: "x", Reason: "bad"}, temporal.ErrCodeParse, ExitFailure},
		{"null", &consistency.NullFieldError{Row: 1, Fields: []string{"category"}}, consistency.ErrCodeNullField, ExitFailure},
		{"ambiguity", &consistency.CodeAmbiguityError{IncidentCodes: []string{"0110", "0111"}}, consistency.ErrCodeCodeAmbiguity, ExitFailure},
		{"year", &consistency.YearMismatchError{Row: 1, Recorded: 2015, Parsed: 2016}, consistency.ErrCodeYearMismatch, ExitFailure},
		{"hour label", &record.UnknownHourLabelError{Label: "13PM"}, record.ErrCodeUnknownHourLabel, ExitFailure},
		{"config", &config.ValidationError{Details: "rows: invalid value"}, ErrCodeConfig, ExitCommandError},
		{"not found", fmt.Errorf("load: %w", os.ErrNotExist), ErrCodeNotFound, ExitCommandError},
		{"other", errors.New("disk full"), ErrCodeGeneric, ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, exit := classify(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantExit, exit)
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "bad data")))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("unknown flag: --nope")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitFailure, "inner", errors.New("cause")))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "bad data", NewExitError(ExitFailure, "bad data").Error())
	assert.Equal(t, "load failed: no such file", WrapExitError(ExitCommandError, "load failed", errors.New("no such file")).Error())
}
