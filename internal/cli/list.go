package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/catalog"
	"github.com/roach88/abacus/internal/format"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Section string
}

// ListEntry describes one operation and the form that feeds it.
type ListEntry struct {
	Operation string         `json:"operation"`
	Form      string         `json:"form,omitempty"`
	Title     string         `json:"title,omitempty"`
	Section   string         `json:"section,omitempty"`
	Arity     string         `json:"arity"`
	MinArgs   int            `json:"min_args"`
	MaxArgs   int            `json:"max_args"` // -1 when unbounded
	Hint      string         `json:"hint"`
	List      bool           `json:"list,omitempty"`
	Inputs    []catalog.Slot `json:"inputs,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations and their input forms",
		Long: `List every operation with its section, arity and input ranges.

Operations are shown in form catalog order. Operations the catalog has
no form for are listed last, without ranges.

Examples:
  abacus list
  abacus list --section financial
  abacus list --forms ./forms.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Section, "section", "", "only list forms in this section")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	env, err := resolveEnvironment(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	entries := listEntries(env)
	if opts.Section != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Section == opts.Section {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	if formatter.Format == FormatJSON {
		return formatter.Success(entries)
	}

	w := formatter.Writer
	section := "\x00"
	for _, e := range entries {
		if e.Section != section {
			section = e.Section
			name := section
			if name == "" {
				name = "(no form)"
			}
			fmt.Fprintf(w, "%s\n", name)
		}
		fmt.Fprintf(w, "  %-22s %-28s %s\n", e.Operation, e.Title, describeInputs(e, env.Locale))
	}
	if opts.Section != "" {
		fmt.Fprintf(w, "\n%d of %d operations\n", len(entries), env.Registry.Len())
	} else {
		fmt.Fprintf(w, "\n%d operations\n", len(entries))
	}
	return nil
}

// listEntries joins catalog forms with registry operations. Forms bound to
// unknown operations are skipped; validate reports them.
func listEntries(env *Environment) []ListEntry {
	entries := make([]ListEntry, 0, env.Registry.Len())
	seen := make(map[string]bool, env.Registry.Len())

	for _, f := range env.Catalog.Forms() {
		op, ok := env.Registry.Lookup(f.Operation)
		if !ok {
			continue
		}
		seen[op.Name] = true
		entries = append(entries, ListEntry{
			Operation: op.Name,
			Form:      f.Name,
			Title:     f.Title,
			Section:   f.Section,
			Arity:     op.Arity.String(),
			MinArgs:   op.MinArgs,
			MaxArgs:   op.MaxArgs,
			Hint:      op.Hint.String(),
			List:      f.List,
			Inputs:    f.Inputs,
		})
	}

	for _, name := range env.Registry.Names() {
		if seen[name] {
			continue
		}
		op, _ := env.Registry.Lookup(name)
		entries = append(entries, ListEntry{
			Operation: op.Name,
			Arity:     op.Arity.String(),
			MinArgs:   op.MinArgs,
			MaxArgs:   op.MaxArgs,
			Hint:      op.Hint.String(),
		})
	}
	return entries
}

// describeInputs renders slots as "label [min, max]".
func describeInputs(e ListEntry, loc *format.Locale) string {
	if len(e.Inputs) == 0 {
		return e.Arity
	}
	parts := make([]string, len(e.Inputs))
	for i, s := range e.Inputs {
		part := s.Label
		if s.Min != nil || s.Max != nil {
			min, max := s.Bounds()
			part += fmt.Sprintf(" [%s, %s]", loc.FormatBound(min), loc.FormatBound(max))
		}
		parts[i] = part
	}
	desc := strings.Join(parts, "; ")
	if e.List {
		desc += " (list)"
	}
	return desc
}
