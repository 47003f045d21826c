package pipeline

import (
	"errors"

	"github.com/roach88/crimehours/internal/consistency"
	"github.com/roach88/crimehours/internal/ingest"
	"github.com/roach88/crimehours/internal/record"
	"github.com/roach88/crimehours/internal/temporal"
)

// ErrorCode returns the code of the data-contract violation wrapped by err,
// or "" if err is not one.
func ErrorCode(err error) string {
	var (
		schemaErr    *ingest.SchemaError
		parseErr     *temporal.ParseError
		nullErr      *consistency.NullFieldError
		ambiguityErr *consistency.CodeAmbiguityError
		yearErr      *consistency.YearMismatchError
		labelErr     *record.UnknownHourLabelError
	)
	switch {
	case errors.As(err, &schemaErr):
		return ingest.ErrCodeSchema
	case errors.As(err, &parseErr):
		return temporal.ErrCodeParse
	case errors.As(err, &nullErr):
		return consistency.ErrCodeNullField
	case errors.As(err, &ambiguityErr):
		return consistency.ErrCodeCodeAmbiguity
	case errors.As(err, &yearErr):
		return consistency.ErrCodeYearMismatch
	case errors.As(err, &labelErr):
		return record.ErrCodeUnknownHourLabel
	default:
		return ""
	}
}
