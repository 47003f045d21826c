package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/crimehours/internal/config"
	"github.com/roach88/crimehours/internal/pipeline"
)

// Error codes for command errors. Data-contract violations report the code
// of the failing stage (SCHEMA_ERROR, PARSE_ERROR, ...).
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConfig   = "CONFIG_ERROR"
	ErrCodeUsage    = "USAGE_ERROR"
	ErrCodeGeneric  = "ERROR"

	// ErrCodeTestFailed marks a test run with failed scenarios.
	ErrCodeTestFailed = "TEST_FAILED"
)

// classify maps err to a response code and an exit code.
func classify(err error) (string, int) {
	if code := pipeline.ErrorCode(err); code != "" {
		return code, ExitFailure
	}
	var configErr *config.ValidationError
	switch {
	case errors.As(err, &configErr):
		return ErrCodeConfig, ExitCommandError
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound, ExitCommandError
	default:
		return ErrCodeGeneric, ExitCommandError
	}
}
