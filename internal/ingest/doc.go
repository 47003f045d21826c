// Package ingest loads the incident table from delimited text.
//
// The input must carry a header row naming at least the columns in Schema.
// Extra columns are ignored. Every column is matched by its source name or
// one of its aliases, so both the published export ("Primary Type",
// "FBI Code") and the pipeline's own output names ("category",
// "classification_code") are accepted.
//
// Loading is also the schema-validation step: a missing column, a
// non-boolean Domestic cell or a non-integer Year cell fails with a
// *SchemaError. Null categorical values (empty cells) are kept as empty
// strings; rejecting them is the consistency checker's job.
package ingest
