// Package aggregate counts violent incidents per hour bucket for a slice of
// the calendar. It is the only view of the data that rendering consumes.
package aggregate

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/crimehours/internal/record"
)

// Slice selects incidents by year and month, optionally leaving out one day
// of the month.
type Slice struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	// ExcludeDay drops incidents on this day of the month. Zero keeps all days.
	ExcludeDay int `json:"exclude_day,omitempty"`
}

// Contains reports whether in falls in the slice.
func (s Slice) Contains(in record.Incident) bool {
	if in.Year != s.Year || in.Month != s.Month {
		return false
	}
	return s.ExcludeDay == 0 || in.Day != s.ExcludeDay
}

// Validate checks the slice bounds.
func (s Slice) Validate() error {
	if s.Month < 1 || s.Month > 12 {
		return fmt.Errorf("month must be 1-12, got %d", s.Month)
	}
	if s.ExcludeDay < 0 || s.ExcludeDay > 31 {
		return fmt.Errorf("excluded day must be 0-31, got %d", s.ExcludeDay)
	}
	return nil
}

// Histogram holds one count per hour bucket, indexed by bucket position.
type Histogram [record.NumHourBuckets]int

// Count returns the count for b.
func (h Histogram) Count(b record.HourBucket) int {
	return h[b.Index()]
}

// Total returns the sum over all buckets.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Max returns the largest bucket count.
func (h Histogram) Max() int {
	m := 0
	for _, c := range h {
		if c > m {
			m = c
		}
	}
	return m
}

// Entry is one bucket of a histogram.
type Entry struct {
	HourBucket record.HourBucket `json:"hour_bucket"`
	Count      int               `json:"count"`
}

// Entries returns the histogram as (bucket, count) pairs in bucket order.
func (h Histogram) Entries() []Entry {
	out := make([]Entry, record.NumHourBuckets)
	for i, c := range h {
		out[i] = Entry{HourBucket: record.HourBucket(i), Count: c}
	}
	return out
}

// MarshalJSON encodes the histogram as an ordered list of entries.
func (h Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Entries())
}

// ViolentByHour counts the violent incidents of s per hour bucket.
// Buckets without incidents are present with count zero.
func ViolentByHour(incidents []record.Incident, s Slice) Histogram {
	var h Histogram
	for _, in := range incidents {
		if in.Violent && s.Contains(in) {
			h[in.HourBucket.Index()]++
		}
	}
	return h
}

// MonthGrid returns the violent-by-hour histogram of every month of year,
// index 0 being January.
func MonthGrid(incidents []record.Incident, year int) [12]Histogram {
	var grid [12]Histogram
	for _, in := range incidents {
		if !in.Violent || in.Year != year || in.Month < 1 || in.Month > 12 {
			continue
		}
		grid[in.Month-1][in.HourBucket.Index()]++
	}
	return grid
}

// Sensitivity compares a January with and without New Year's Day.
type Sensitivity struct {
	Year            int       `json:"year"`
	All             Histogram `json:"all"`
	WithoutFirstDay Histogram `json:"without_first_day"`
}

// JanuarySensitivity returns one Sensitivity per year, in the given order.
func JanuarySensitivity(incidents []record.Incident, years []int) []Sensitivity {
	out := make([]Sensitivity, len(years))
	for i, y := range years {
		out[i] = Sensitivity{
			Year:            y,
			All:             ViolentByHour(incidents, Slice{Year: y, Month: 1}),
			WithoutFirstDay: ViolentByHour(incidents, Slice{Year: y, Month: 1, ExcludeDay: 1}),
		}
	}
	return out
}

// Years returns the inclusive range [from, to].
func Years(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, y)
	}
	return out
}
