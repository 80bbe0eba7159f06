package testutil

// FixedTraceIDs returns the same trace ID every time.
//
// Golden tests use it so CLI output is byte-identical across runs.
// It is stateless and safe for concurrent use.
type FixedTraceIDs struct {
	id string
}

// NewFixedTraceIDs returns a generator for id. An empty id becomes
// "test-trace-default".
func NewFixedTraceIDs(id string) *FixedTraceIDs {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceIDs{id: id}
}

// Generate returns the fixed ID.
func (g *FixedTraceIDs) Generate() string {
	return g.id
}
