// Package record provides the typed incident schema shared by every stage of
// the crimehours pipeline.
//
// This package contains type definitions only. All other internal packages
// import record; record imports nothing internal.
//
// Each stage produces a new slice of a narrower or richer type rather than
// mutating the previous one:
//
//	ingest      -> []Raw      (date still a string, redundant year present)
//	temporal    -> []Parsed   (date parsed, raw string gone)
//	consistency -> []Checked  (year cross-validated and dropped)
//	derive      -> []Incident (violent flag, calendar parts, hour bucket)
//
// Key design constraints:
//   - Hour buckets are a compile-time enumeration in shift order (7AM first)
//   - Empty strings stand for nulls in categorical columns
//   - Row numbers are 1-based data row positions (header excluded)
package record
