package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Empty values fall through to the config file, then defaults.
	Locale   string
	Currency string
	Config   string
	Forms    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON}

// NewRootCommand creates the root command for the abacus CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "abacus",
		Short: "abacus - locale-aware calculator",
		Long: `A calculator for arithmetic, financial and unit conversion operations.

Every operation validates its inputs against the ranges of its form,
reports failures as typed errors and formats results for the active
locale (Polish by default).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "", "BCP 47 locale for messages and numbers (default pl)")
	cmd.PersistentFlags().StringVar(&opts.Currency, "currency", "", "ISO 4217 currency for financial results (default from locale)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "TOML config file (default $ABACUS_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.Forms, "forms", "", "CUE form catalog replacing the built-in forms")

	// Add subcommands
	cmd.AddCommand(NewCalcCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setupLogging installs a text handler on w as the default logger.
// Debug records are shown only with --verbose.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
