package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shapeshift/internal/match"
	"shapeshift/library"
)

func newFunctionsCmd(a *app) *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List bundled function names",
		Long: `Functions lists the names definition files can call, grouped by the
registry a file imports them from.

Examples:
  shapeshift functions
  shapeshift functions --registry hashes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			regs := library.Registries()
			names := slices.Sorted(maps.Keys(regs))

			if only != "" {
				if _, ok := regs[only]; !ok {
					msg := fmt.Sprintf("unknown registry %q", only)
					if s := match.Suggest(only, names); len(s) > 0 {
						msg += " (did you mean " + strings.Join(s, ", ") + "?)"
					}

					return errors.New(msg)
				}

				names = []string{only}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range names {
				for _, fn := range regs[name].Names() {
					_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, fn)
				}
			}

			a.logger.Debug("listed functions", "registries", len(names))

			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&only, "registry", "r", "", "only list this registry")

	return cmd
}
