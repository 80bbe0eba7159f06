package cli

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/calc"
)

// TraceIDGenerator produces the trace_id attached to JSON responses.
type TraceIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered UUIDv7 trace IDs.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// CalcOptions holds flags for the calc command.
type CalcOptions struct {
	*RootOptions
	NoLimits bool

	// TraceIDs allows overriding the trace ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	TraceIDs TraceIDGenerator
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(rootOpts *RootOptions) *cobra.Command {
	return newCalcCommand(&CalcOptions{RootOptions: rootOpts})
}

func newCalcCommand(opts *CalcOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [flags] <operation> [values...]",
		Short: "Run one operation",
		Long: `Run one operation and print the formatted result.

Values are validated against the ranges of the operation's form. List
operations (average, irr) accept comma-separated values, separate
arguments, or both.

Flags go before the operation name. Everything after it is a value, so
negative numbers need no quoting or "--".

Exit codes:
  0 - Calculation succeeded
  1 - Calculation failed (invalid input, out of range, domain error)
  2 - Command error (bad config, unreadable forms)

Examples:
  abacus calc add 2 3
  abacus calc subtract 5 -3
  abacus --locale en-US calc mortgage 200000 5 30
  abacus --format json calc irr -1000,300,400,500
  abacus calc --no-limits sqrt -4`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoLimits, "no-limits", false, "ignore the form's input ranges")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runCalc(opts *CalcOptions, name string, raw []string, cmd *cobra.Command) error {
	env, err := resolveEnvironment(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	traceIDs := opts.TraceIDs
	if traceIDs == nil {
		traceIDs = UUIDv7Generator{}
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   traceIDs.Generate(),
	}

	calculator := calc.New(env.Registry,
		calc.WithPresenter(env.Locale),
		calc.WithLogger(slog.Default()),
	)

	form, ok := env.Catalog.Form(name)
	if !ok || opts.NoLimits {
		return formatter.Calculation(calculator.Evaluate(name, raw...))
	}
	formatter.VerboseLog("Using form %q (%s)", form.Name, form.Title)
	return formatter.Calculation(calculator.Calculate(name, form.Descriptors(raw)))
}
