package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/catalog"
	"github.com/roach88/abacus/internal/config"
	"github.com/roach88/abacus/internal/format"
	"github.com/roach88/abacus/internal/operation"
)

// Environment is everything a command needs to calculate: resolved
// settings, the presenter, the operations and their forms.
type Environment struct {
	Config   *config.Config
	Locale   *format.Locale
	Registry *operation.Registry
	Catalog  *catalog.Catalog
}

// resolveEnvironment layers flags over the config file over defaults.
// The format flag only yields to the file when it was not set explicitly.
func resolveEnvironment(opts *RootOptions, cmd *cobra.Command) (*Environment, error) {
	cfg, err := config.Resolve(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeConfig+": failed to load config", err)
	}
	if cfg.Path != "" {
		slog.Debug("config loaded", "path", cfg.Path)
	}

	if opts.Locale != "" {
		cfg.Locale = opts.Locale
	}
	if opts.Currency != "" {
		cfg.Currency = opts.Currency
	}
	if opts.Forms != "" {
		cfg.Forms = opts.Forms
	}
	if f := cmd.Flags().Lookup("format"); f != nil && !f.Changed && isValidFormat(cfg.Format) {
		opts.Format = cfg.Format
	}

	loc, err := cfg.NewLocale()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeConfig+": invalid locale settings", err)
	}

	cat := catalog.Default()
	if cfg.Forms != "" {
		cat, err = catalog.LoadFile(cfg.Forms)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, ErrCodeLoadFailed+": failed to load forms", err)
		}
		slog.Debug("form catalog loaded", "path", cfg.Forms, "forms", cat.Len())
	}

	return &Environment{
		Config:   cfg,
		Locale:   loc,
		Registry: operation.Default(),
		Catalog:  cat,
	}, nil
}

// Error codes for loading and environment failures.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeNotFound   = "E005" // Path not found
	ErrCodeLoadFailed = "E004" // Catalog or scenario load failed
	ErrCodeConfig     = "E008" // Config file or locale settings invalid
)
