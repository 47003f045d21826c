// Package consistency checks the relationships between the incident coding
// schemes before any derived field is computed.
//
// Fatal checks, in the order they run:
//
//  1. incident code, category and description are non-null (NullFieldError)
//  2. the recorded year equals the parsed timestamp's year (YearMismatchError)
//  3. each (category, description) pair has exactly one incident code
//     (CodeAmbiguityError)
//
// Advisory findings never abort and are returned in a Report:
//
//   - incident codes that map to more than one (category, description) pair,
//     a rare exception present in the published data
//   - the incident code / classification code relation, which is many-to-many
//     in both directions; the two schemes are independent axes and must not be
//     assumed to nest
//   - incident codes whose rows disagree on the domestic flag, which is
//     expected
//
// Check never mutates its input. On success it returns new records without
// the redundant year column.
package consistency
