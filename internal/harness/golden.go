package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders the golden form of a scenario run: the scenario name,
// its locale and the full trace as canonical JSON.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	locale := scenario.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	trace := make([]any, len(result.Trace))
	for i, e := range result.Trace {
		m := map[string]any{
			"seq":       e.Seq,
			"operation": e.Operation,
			"inputs":    e.Inputs,
			"outcome":   e.Outcome,
		}
		if e.Failed() {
			m["kind"] = e.Kind
			m["message"] = e.Message
			if e.Slot >= 0 {
				m["slot"] = e.Slot
			}
		} else {
			m["value"] = e.Value
			m["formatted"] = e.Formatted
		}
		trace[i] = m
	}

	return MarshalCanonical(map[string]any{
		"scenario": scenario.Name,
		"locale":   locale,
		"trace":    trace,
	})
}

// GoldenPath returns where the golden file for a scenario file lives:
// golden/<base>.golden next to the scenario.
func GoldenPath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

// WriteGolden stores the snapshot at path, creating its directory.
func WriteGolden(path string, snapshot []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, snapshot, 0644)
}

// MatchGolden reports whether the file at path holds snapshot.
func MatchGolden(path string, snapshot []byte) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return string(want) == string(snapshot), nil
}

// RunWithGolden executes a scenario and compares the trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)
	return nil
}
