package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/display"
	"github.com/roach88/abacus/internal/format"
)

// Exit codes shared by every command.
const (
	ExitSuccess      = 0 // calculation, scenarios or catalog are fine
	ExitFailure      = 1 // failed calculation, failed scenarios or invalid catalog
	ExitCommandError = 2 // the command could not run (paths, config, forms)
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Calculation error codes, one per calc.ErrorKind.
const (
	ErrCodeInvalidNumber    = "E201"
	ErrCodeOutOfRange       = "E202"
	ErrCodeDomain           = "E203"
	ErrCodeUnknownOperation = "E204"
	ErrCodeInvalidArity     = "E205"
)

var kindCodes = map[calc.ErrorKind]string{
	calc.KindInvalidNumber:    ErrCodeInvalidNumber,
	calc.KindOutOfRange:       ErrCodeOutOfRange,
	calc.KindDomainError:      ErrCodeDomain,
	calc.KindUnknownOperation: ErrCodeUnknownOperation,
	calc.KindInvalidArity:     ErrCodeInvalidArity,
}

// CalcErrorCode returns the E2xx code for a failed calculation, or
// ErrCodeGeneric when err carries no calc error kind.
func CalcErrorCode(err error) string {
	if code, ok := kindCodes[calc.KindOf(err)]; ok {
		return code
	}
	return ErrCodeGeneric
}

// ExitError carries the process exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code of the first ExitError in err's chain, or
// ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or as a JSON envelope.
type OutputFormatter struct {
	Format string
	Writer io.Writer

	// ErrWriter receives verbose diagnostics so they never mix with JSON.
	// Nil falls back to Writer.
	ErrWriter io.Writer
	Verbose   bool

	// TraceID is attached to every JSON response when set.
	TraceID string
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status  string      `json:"status"` // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`
	Error   *CLIError   `json:"error,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

// CLIError is the error part of CLIResponse.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// CalcData is the JSON payload of a successful calculation.
type CalcData struct {
	Operation string `json:"operation"`

	// Value is omitted for infinite results; Rounded always carries them.
	Value     *float64 `json:"value,omitempty"`
	Rounded   string   `json:"rounded"`
	Formatted string   `json:"formatted"`
	Hint      string   `json:"hint"`
}

// CalcErrorDetails is the JSON error detail of a failed calculation.
type CalcErrorDetails struct {
	Operation string `json:"operation"`
	Kind      string `json:"kind"`
	Input     int    `json:"input,omitempty"` // 1-based; 0 when not tied to an input
}

func (f *OutputFormatter) isJSON() bool {
	return f.Format == FormatJSON
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	resp.TraceID = f.TraceID
	return json.NewEncoder(f.Writer).Encode(resp)
}

// Success writes data, or the "ok" envelope around it.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.isJSON() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error writes a coded error. Text output shows details only when verbose.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.isJSON() {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Calculation writes the outcome of one calculation. Text goes through the
// display panel; JSON carries CalcData or CalcErrorDetails. A failure comes
// back as an ExitFailure error naming its E2xx code.
func (f *OutputFormatter) Calculation(r calc.Result) error {
	if r.OK() {
		if f.isJSON() {
			return f.Success(newCalcData(r))
		}
		return f.Success(renderResult(r))
	}

	code := CalcErrorCode(r.Err)
	details := CalcErrorDetails{Operation: r.Operation, Kind: string(r.Err.Kind)}
	if r.Err.Slot >= 0 {
		details.Input = r.Err.Slot + 1
	}

	if f.isJSON() {
		_ = f.Error(code, r.Err.Message, details)
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, renderResult(r))
	}
	if r.Err.Err != nil {
		f.VerboseLog("Cause: %v", r.Err.Err)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, r.Err.Message))
}

func newCalcData(r calc.Result) CalcData {
	data := CalcData{
		Operation: r.Operation,
		Rounded:   format.Round(r.Value, 6),
		Formatted: r.Formatted,
		Hint:      r.Hint.String(),
	}
	if !math.IsInf(r.Value, 0) {
		v := r.Value
		data.Value = &v
	}
	return data
}

// renderResult styles a one-shot result in the panel tone, without the
// flash emphasis.
func renderResult(r calc.Result) string {
	panel := display.NewPanel()
	panel.Show(r, time.Now())
	panel.Tick(panel.Deadline())
	return panel.Render()
}

// VerboseLog writes a diagnostic line when verbose mode is on.
func (f *OutputFormatter) VerboseLog(layout string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, layout+"\n", args...)
}
