package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reoring/lexgen"
	"github.com/reoring/lexgen/internal/config"
)

func newPlanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "plan [paths...]",
		GroupID: "generate",
		Short:   "Print namespace placeholders and definitions",
		Long: `Print the declaration plan for the given lexicon files or directories:
the namespace placeholders first, then every definition, both sorted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc, err := opts.loadContext(cmd, args)
			if err != nil {
				return err
			}
			p := gc.Plan()
			out := cmd.OutOrStdout()
			switch opts.cfg.Format {
			case config.FormatJSON:
				return p.EncodeJSON(out, true)
			case config.FormatYAML:
				return p.EncodeYAML(out)
			}
			printNamespaces(out, p.Namespaces)
			fmt.Fprintln(out)
			printDefinitions(out, p.Definitions)
			return nil
		},
	}
}

func newNamespacesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "namespaces [paths...]",
		Aliases: []string{"ns"},
		GroupID: "generate",
		Short:   "Print the namespaces that need a placeholder declaration",
		RunE: func(cmd *cobra.Command, args []string) error {
			gc, err := opts.loadContext(cmd, args)
			if err != nil {
				return err
			}
			ns := gc.GenerateNamespaceDefinitions()
			return writeList(cmd.OutOrStdout(), opts.cfg.Format, ns, printNamespaces)
		},
	}
}

func newDefinitionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "definitions [paths...]",
		Aliases: []string{"defs"},
		GroupID: "generate",
		Short:   "Print every definition with its parent and name",
		RunE: func(cmd *cobra.Command, args []string) error {
			gc, err := opts.loadContext(cmd, args)
			if err != nil {
				return err
			}
			defs := gc.Plan().Definitions
			return writeList(cmd.OutOrStdout(), opts.cfg.Format, defs, printDefinitions)
		},
	}
}

// writeList encodes items in the structured formats and falls back to text.
func writeList[T any](w io.Writer, format string, items []T, text func(io.Writer, []T)) error {
	switch format {
	case config.FormatJSON:
		return encodeJSON(w, items)
	case config.FormatYAML:
		return encodeYAML(w, items)
	}
	text(w, items)
	return nil
}

func printNamespaces(w io.Writer, ns []lexgen.NamespaceDefinition) {
	printSection(w, "Namespaces", len(ns))
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		rows = append(rows, []string{n.FullName()})
	}
	printTable(w, rows)
}

func printDefinitions(w io.Writer, defs []lexgen.PlanDefinition) {
	printSection(w, "Definitions", len(defs))
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		full := d.Name
		if d.Parent != "" {
			full = d.Parent + "." + d.Name
		}
		rows = append(rows, []string{d.ID, full, d.Type})
	}
	printTable(w, rows)
}
