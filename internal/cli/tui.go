package cli

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/tui"
)

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive calculator",
		Long: `Start the interactive calculator.

Navigation:
  Up/Down    - Switch form
  Tab        - Next input field
  Enter      - Calculate
  Ctrl+L     - Clear the result
  Esc/Ctrl+C - Quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(rootOpts, cmd)
		},
	}

	return cmd
}

func runTUI(opts *RootOptions, cmd *cobra.Command) error {
	env, err := resolveEnvironment(opts, cmd)
	if err != nil {
		return err
	}

	model := tui.New(tui.Config{
		Calculator: calc.New(env.Registry,
			calc.WithPresenter(env.Locale),
			calc.WithLogger(slog.Default()),
		),
		Catalog:    env.Catalog,
		Locale:     env.Locale,
		ClearAfter: env.Config.Display.ClearAfter.Duration,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return WrapExitError(ExitCommandError, ErrCodeGeneric+": tui failed", err)
	}
	return nil
}
