package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/catalog"
	"github.com/roach88/abacus/internal/operation"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Forms  int                       `json:"forms"`
	Errors []catalog.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [forms.cue]",
		Short: "Validate a form catalog",
		Long: `Validate a CUE form catalog against the schema and the operation set.

Checks syntax and schema conformance first, then that every form names a
known operation, declares a slot count its operation accepts and has no
inverted ranges. Without an argument the configured catalog is checked.

Exit codes:
  0 - Catalog valid
  1 - Catalog loaded but has semantic errors
  2 - Catalog missing or does not match the schema`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	var (
		cat *catalog.Catalog
		reg = operation.Default()
	)
	if path == "" {
		env, err := resolveEnvironment(opts, cmd)
		if err != nil {
			return err
		}
		cat, reg = env.Catalog, env.Registry
		formatter.Format = opts.Format
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("forms file not found: %s", path), nil)
		}
		var err error
		cat, err = catalog.LoadFile(path)
		if err != nil {
			return outputValidateError(formatter, ErrCodeLoadFailed, err.Error(), nil)
		}
	}

	formatter.VerboseLog("Loaded %d form(s)", cat.Len())

	if errs := catalog.Validate(cat, reg); len(errs) > 0 {
		return outputValidationErrors(formatter, cat.Len(), errs)
	}
	return outputValidateSuccess(formatter, cat.Len())
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, forms int) error {
	if formatter.Format == FormatJSON {
		return formatter.Success(ValidationResult{Valid: true, Forms: forms})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d forms valid\n", forms)
	return nil
}

// outputValidateError outputs a catalog that could not be loaded.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Load failures are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs semantic validation errors.
func outputValidationErrors(formatter *OutputFormatter, forms int, errs []catalog.ValidationError) error {
	if formatter.Format == FormatJSON {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Forms:  forms,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "%s\n", err.Field)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
