package temporal

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/crimehours/internal/record"
)

// DefaultLayouts lists the date-time layouts accepted when none are configured.
var DefaultLayouts = []string{
	"01/02/2006 03:04:05 PM",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Normalizer converts date-time strings into timestamps.
type Normalizer struct {
	layouts []string
}

// NewNormalizer creates a Normalizer for the given layouts.
// With no layouts it uses DefaultLayouts.
func NewNormalizer(layouts ...string) *Normalizer {
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	ls := make([]string, len(layouts))
	copy(ls, layouts)
	return &Normalizer{layouts: ls}
}

// Layouts returns the layouts tried by n, in order.
func (n *Normalizer) Layouts() []string {
	out := make([]string, len(n.layouts))
	copy(out, n.layouts)
	return out
}

// Parse converts a single date-time string.
func (n *Normalizer) Parse(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, &ParseError{Value: value, Reason: "empty value"}
	}
	for _, layout := range n.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{
		Value:  value,
		Reason: fmt.Sprintf("matches none of %d layouts", len(n.layouts)),
	}
}

// Normalize parses the date column of every row and returns new records with
// the raw string replaced by the timestamp. It stops at the first malformed
// value; no partial result is returned.
func (n *Normalizer) Normalize(rows []record.Raw) ([]record.Parsed, error) {
	out := make([]record.Parsed, len(rows))
	for i, r := range rows {
		t, err := n.Parse(r.Date)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Row = r.Row
			}
			return nil, err
		}
		out[i] = record.Parsed{
			Row:  r.Row,
			Date: t,
			Base: r.Base,
			Year: r.Year,
		}
	}
	return out, nil
}

// Parts are the calendar components of a timestamp.
type Parts struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
	Hour  int // 0-23
}

// Split returns the calendar components of t.
func Split(t time.Time) Parts {
	return Parts{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Hour:  t.Hour(),
	}
}

// HourLabel returns the 12-hour clock label for an hour of day:
// 0 -> "12AM", 11 -> "11AM", 12 -> "12PM", 23 -> "11PM".
// Hours outside 0-23 have no label and yield "".
func HourLabel(hour int) string {
	if hour < 0 || hour > 23 {
		return ""
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d%s", h12, period)
}
