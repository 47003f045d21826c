package ingest

import (
	"errors"
	"fmt"
)

// ErrCodeSchema identifies a missing or mistyped input column.
const ErrCodeSchema = "SCHEMA_ERROR"

// SchemaError reports input that does not satisfy the column schema.
type SchemaError struct {
	Column string
	Row    int // 0 when the problem is in the header
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s: column %q: %s, got %q (row=%d)", ErrCodeSchema, e.Column, e.Reason, e.Value, e.Row)
	case e.Row > 0:
		return fmt.Sprintf("%s: %s (row=%d)", ErrCodeSchema, e.Reason, e.Row)
	case e.Column != "":
		return fmt.Sprintf("%s: %s: %s", ErrCodeSchema, e.Reason, e.Column)
	default:
		return fmt.Sprintf("%s: %s", ErrCodeSchema, e.Reason)
	}
}

// IsSchemaError returns true if err is or wraps a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
