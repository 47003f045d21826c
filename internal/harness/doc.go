// Package harness runs pipeline conformance scenarios.
//
// A scenario is a YAML file holding input rows and the outcome the pipeline
// must produce for them: either a data-contract violation code, or a set of
// assertions over the derived incidents and the consistency report.
//
// # Scenario Format
//
//	name: january_shift_order
//	description: "7AM incidents count in the first bucket"
//	run_id: scenario-january
//	rows:
//	  - template: homicide
//	    date: "01/05/2015 07:10:00 AM"
//	    year: "2015"
//	  - template: theft
//	    date: "01/09/2015 07:30:00 AM"
//	    year: "2015"
//	expect_error: ""          # or YEAR_MISMATCH, CODE_AMBIGUITY, ...
//	assertions:
//	  - type: bucket_count
//	    year: 2015
//	    month: 1
//	    bucket: 7AM
//	    count: 1
//	snapshot:
//	  - { year: 2015, month: 1, exclude_day: 1 }
//
// Row templates (homicide, theft, battery) fill every column; fields set on
// the row override the template.
//
// # Assertion Types
//
//   - bucket_count: violent incidents of a slice in one hour bucket
//   - total: violent incidents of a slice over all buckets
//   - violent_count: violent incidents over the whole input
//   - finding: a named advisory list of the consistency report is non-empty
//
// Slices listed under snapshot are written to a golden file by
// RunWithGolden, or by "crimehours test --update" outside go test.
package harness
