// Package pipeline runs the crimehours stages in order:
//
//	load -> normalize dates -> consistency checks -> derived fields
//
// Each stage receives the previous stage's records and returns new ones; no
// stage mutates shared state. Any fatal error aborts the run and no records
// are returned, so nothing downstream (aggregation, rendering) ever sees a
// partially processed table.
//
// Every run is tagged with a run id that appears on each log line. Ids come
// from a RunIDGenerator: UUIDv7Generator in production, a fixed generator in
// tests.
package pipeline
