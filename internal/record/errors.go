package record

import (
	"errors"
	"fmt"
)

// ErrCodeUnknownHourLabel identifies an hour label outside the fixed set.
const ErrCodeUnknownHourLabel = "UNKNOWN_HOUR_LABEL"

// UnknownHourLabelError reports a 12-hour label that has no bucket.
// It can only occur through a bug in label derivation.
type UnknownHourLabelError struct {
	Label string
	Row   int
}

// Error implements the error interface.
func (e *UnknownHourLabelError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: hour label %q is not a known bucket (row=%d)", ErrCodeUnknownHourLabel, e.Label, e.Row)
	}
	return fmt.Sprintf("%s: hour label %q is not a known bucket", ErrCodeUnknownHourLabel, e.Label)
}

// IsUnknownHourLabel returns true if err is or wraps an UnknownHourLabelError.
func IsUnknownHourLabel(err error) bool {
	var he *UnknownHourLabelError
	return errors.As(err, &he)
}
