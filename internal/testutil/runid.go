package testutil

// FixedRunIDGenerator returns the same run id every time.
//
// Pipeline runs with the same FixedRunIDGenerator log and report identical
// run ids, which keeps CLI output stable for assertions and golden files.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator for id.
// If id is empty, Generate returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run id.
//
// Implements pipeline.RunIDGenerator.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
