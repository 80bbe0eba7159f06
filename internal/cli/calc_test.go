package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/abacus/internal/config"
	"github.com/roach88/abacus/internal/testutil"
)

func runCalcCommand(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	buf := &bytes.Buffer{}
	cmd := NewCalcCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestCalcTextEnglish(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "2", "3"}, "5\n"},
		{[]string{"factorial", "5"}, "120\n"},
		{[]string{"divide", "7", "3"}, "2.333333\n"},
		{[]string{"average", "1,2", "3"}, "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "en"}, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalcDefaultLocaleIsPolish(t *testing.T) {
	out, err := runCalcCommand(t, &RootOptions{Format: "text"}, "add", "0.25", "0.25")
	require.NoError(t, err)
	assert.Equal(t, "0,5\n", out)
}

func TestCalcOutOfRangePolish(t *testing.T) {
	out, err := runCalcCommand(t, &RootOptions{Format: "text"}, "factorial", "171")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeOutOfRange)
	assert.Contains(t, out, "Error [E202]: Wartość musi być między 0 a 170")
}

func TestCalcNoLimits(t *testing.T) {
	t.Run("form range applies", func(t *testing.T) {
		_, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "en"}, "sqrt", "-4")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrCodeOutOfRange)
	})

	t.Run("domain error without limits", func(t *testing.T) {
		out, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "en"}, "--no-limits", "sqrt", "-4")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrCodeDomain)
		assert.Contains(t, out, "Invalid mathematical operation")
	})
}

func TestCalcNegativeValues(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"subtract", "5", "-3"}, "8\n"},
		{[]string{"add", "-2", "-3"}, "-5\n"},
		{[]string{"irr", "-1000,300,400,500"}, "8.90%\n"},
		{[]string{"irr", "-1000", "300", "400", "500"}, "8.90%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "en"}, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalcValuesAfterOperationAreNotFlags(t *testing.T) {
	out, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "en"}, "sqrt", "--no-limits")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeInvalidNumber)
	assert.Contains(t, out, "Invalid numeric value")
}

func TestCalcJSONSuccess(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	buf := &bytes.Buffer{}
	cmd := newCalcCommand(&CalcOptions{
		RootOptions: &RootOptions{Format: "json", Locale: "en"},
		TraceIDs:    testutil.NewFixedTraceIDs("trace-calc"),
	})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"factorial", "5"})
	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-calc", resp.TraceID)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "factorial", data["operation"])
	assert.Equal(t, float64(120), data["value"])
	assert.Equal(t, "120", data["rounded"])
	assert.Equal(t, "120", data["formatted"])
	assert.Equal(t, "plain", data["hint"])
}

func TestCalcJSONErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		code      string
		kind      string
		wantInput float64
	}{
		{"invalid number", []string{"add", "abc", "1"}, ErrCodeInvalidNumber, "INVALID_NUMBER", 1},
		{"out of range", []string{"divide", "1", "0"}, ErrCodeOutOfRange, "OUT_OF_RANGE", 2},
		{"unknown operation", []string{"modulo", "5", "2"}, ErrCodeUnknownOperation, "UNKNOWN_OPERATION", 0},
		{"arity", []string{"add", "1"}, ErrCodeInvalidArity, "INVALID_ARITY", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCalcCommand(t, &RootOptions{Format: "json", Locale: "en"}, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.TraceID)

			details, ok := resp.Error.Details.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.kind, details["kind"])
			if tt.wantInput > 0 {
				assert.Equal(t, tt.wantInput, details["input"])
			} else {
				assert.NotContains(t, details, "input")
			}
		})
	}
}

func TestCalcBadLocale(t *testing.T) {
	_, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "not a locale!"}, "add", "1", "2")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeConfig)
}

func TestCalcCustomForms(t *testing.T) {
	path := writeFormsFile(t, `
form: half: {
	operation: "divide"
	title:     "Half"
	section:   "basic"
	inputs: [{label: "Value"}, {label: "Divisor", min: 2, max: 2}]
}
`)

	_, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "en", Forms: path}, "divide", "10", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeOutOfRange)

	out, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "en", Forms: path}, "divide", "10", "2")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func writeFormsFile(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forms.cue")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14])
}

func TestCalcCurrencyFollowsLocale(t *testing.T) {
	out, err := runCalcCommand(t, &RootOptions{Format: "text", Locale: "en"}, "compoundInterest", "1000", "5", "10")
	require.NoError(t, err)
	assert.Equal(t, "$1,628.89\n", out)

	out, err = runCalcCommand(t, &RootOptions{Format: "text", Locale: "pl"}, "compoundInterest", "1000", "5", "10")
	require.NoError(t, err)
	assert.Equal(t, "1628,89 zł\n", out)
}

func TestCalcListBlankItem(t *testing.T) {
	out, err := runCalcCommand(t, &RootOptions{Format: "json", Locale: "en"}, "average", "1,,2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidNumber, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), details["input"])

	out, err = runCalcCommand(t, &RootOptions{Format: "text", Locale: "en"}, "average", "1,2,")
	require.NoError(t, err)
	assert.Equal(t, "1.5\n", out)
}
