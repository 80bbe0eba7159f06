package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenariosDir = "../../testdata/scenarios"

const passingScenario = `
name: two_adds
description: "two successful additions"
locale: en
steps:
  - operation: add
    inputs: ["1", "2"]
    expect:
      ok: true
      formatted: "3"
  - operation: add
    inputs: ["0.5", "0.25"]
`

func runTestCommand(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeScenario(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := runTestCommand(t, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := runTestCommand(t, &RootOptions{Format: "text"}, "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := runTestCommand(t, &RootOptions{Format: "text"}, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := runTestCommand(t, &RootOptions{Format: "json"}, t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandRepositoryScenarios(t *testing.T) {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		t.Skip("testdata/scenarios directory not found")
	}

	out, err := runTestCommand(t, &RootOptions{Format: "text"}, scenariosDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ basic_pipeline")
	assert.Contains(t, out, "✓ polish_locale")
	assert.Contains(t, out, "✓ conversions")
	assert.Contains(t, out, "Test Summary: 3 passed, 0 failed, 3 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandRepositoryScenariosJSON(t *testing.T) {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		t.Skip("testdata/scenarios directory not found")
	}

	out, err := runTestCommand(t, &RootOptions{Format: "json"}, scenariosDir, "--filter", "basic_*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "basic_pipeline", resp.Data.Scenarios[0].Name)
	assert.Equal(t, 5, resp.Data.Scenarios[0].Steps)
}

func TestTestCommandUpdateThenMatch(t *testing.T) {
	dir := t.TempDir()
	scenarioFile := writeScenario(t, dir, "two_adds.yaml", passingScenario)

	out, err := runTestCommand(t, &RootOptions{Format: "text"}, dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ two_adds (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "two_adds.golden"))
	require.NoError(t, err)
	assert.Equal(t,
		`{"locale":"en","scenario":"two_adds","trace":[{"formatted":"3","inputs":["1","2"],"operation":"add","outcome":"success","seq":1,"value":"3"},{"formatted":"0.75","inputs":["0.5","0.25"],"operation":"add","outcome":"success","seq":2,"value":"0.75"}]}`,
		string(golden))

	out, err = runTestCommand(t, &RootOptions{Format: "text"}, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ two_adds\n")

	// A scenario edit that changes the trace breaks the golden match.
	writeScenario(t, dir, filepath.Base(scenarioFile), passingScenario+`  - operation: sqrt
    inputs: ["9"]
`)
	out, err = runTestCommand(t, &RootOptions{Format: "text"}, dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ two_adds")
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandFailingExpectation(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "wrong.yaml", `
name: wrong
description: "expects the wrong kind"
locale: en
steps:
  - operation: divide
    inputs: ["1", "0"]
    expect:
      ok: false
      kind: OUT_OF_RANGE
`)

	out, err := runTestCommand(t, &RootOptions{Format: "json"}, dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios[0].Errors, 1)
	assert.Contains(t, resp.Data.Scenarios[0].Errors[0], "expected kind OUT_OF_RANGE, got DOMAIN_ERROR")
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken.yaml", "name: broken\nsteps: []\n")

	out, err := runTestCommand(t, &RootOptions{Format: "text"}, dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestHelpText(t *testing.T) {
	out, err := runTestCommand(t, &RootOptions{Format: "text"}, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "scenarios")
	assert.Contains(t, out, "--update")
	assert.Contains(t, out, "--filter")
	assert.Contains(t, out, "scenarios-dir")
}

func TestFindScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test1.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test2.yml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignore.txt"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "loan-basic.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "loan-edge.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "trig.yaml"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "loan-*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	for _, f := range files {
		assert.Regexp(t, `loan-[a-z]+\.yaml$`, f)
	}
}

func TestFindScenarioFilesSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "root.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "sub.yaml"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesBadPattern(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.yaml"), []byte(""), 0644))

	_, err := findScenarioFiles(tmpDir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}
