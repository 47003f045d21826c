package temporal

import (
	"errors"
	"fmt"
)

// ErrCodeParse identifies a malformed date-time value.
const ErrCodeParse = "PARSE_ERROR"

// ParseError reports a date-time value that could not be parsed.
type ParseError struct {
	Row    int
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: cannot parse date %q: %s (row=%d)", ErrCodeParse, e.Value, e.Reason, e.Row)
	}
	return fmt.Sprintf("%s: cannot parse date %q: %s", ErrCodeParse, e.Value, e.Reason)
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
