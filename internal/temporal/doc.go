// Package temporal parses incident date-time strings and exposes the calendar
// parts used for reporting.
//
// Parsing tries each configured layout in order. The default layouts are
// structurally disjoint (slash dates with a 12-hour clock, dash dates with a
// 24-hour clock), so at most one of them can match a given value. Fractional
// seconds are accepted after the seconds field, which keeps sub-second
// resolution when the source carries it.
//
// A single malformed value fails the whole batch with a *ParseError.
package temporal
