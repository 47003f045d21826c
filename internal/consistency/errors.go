package consistency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/crimehours/internal/record"
)

// Error codes for fatal consistency violations.
const (
	ErrCodeNullField     = "NULL_FIELD"
	ErrCodeCodeAmbiguity = "CODE_AMBIGUITY"
	ErrCodeYearMismatch  = "YEAR_MISMATCH"
)

// NullFieldError reports a row with a null incident code, category or
// description.
type NullFieldError struct {
	Row    int
	Fields []string // json names of the null fields
}

// Error implements the error interface.
func (e *NullFieldError) Error() string {
	return fmt.Sprintf("%s: null %s (row=%d)", ErrCodeNullField, strings.Join(e.Fields, ", "), e.Row)
}

// CodeAmbiguityError reports a (category, description) pair that maps to
// more than one incident code.
type CodeAmbiguityError struct {
	Pair          record.Pair
	IncidentCodes []string
}

// Error implements the error interface.
func (e *CodeAmbiguityError) Error() string {
	return fmt.Sprintf("%s: %q maps to %d incident codes [%s]",
		ErrCodeCodeAmbiguity, e.Pair.String(), len(e.IncidentCodes), strings.Join(e.IncidentCodes, ", "))
}

// YearMismatchError reports a row whose recorded year disagrees with its
// timestamp.
type YearMismatchError struct {
	Row      int
	Recorded int
	Parsed   int
}

// Error implements the error interface.
func (e *YearMismatchError) Error() string {
	return fmt.Sprintf("%s: recorded year %d but date is in %d (row=%d)", ErrCodeYearMismatch, e.Recorded, e.Parsed, e.Row)
}

// IsNullField returns true if err is or wraps a NullFieldError.
func IsNullField(err error) bool {
	var e *NullFieldError
	return errors.As(err, &e)
}

// IsCodeAmbiguity returns true if err is or wraps a CodeAmbiguityError.
func IsCodeAmbiguity(err error) bool {
	var e *CodeAmbiguityError
	return errors.As(err, &e)
}

// IsYearMismatch returns true if err is or wraps a YearMismatchError.
func IsYearMismatch(err error) bool {
	var e *YearMismatchError
	return errors.As(err, &e)
}
