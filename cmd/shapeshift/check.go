package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shapeshift/internal/definition"
)

var errCheckFailed = errors.New("definition check failed")

func newCheckCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate and compile a definition file",
		Long: `Check validates every transformer of a definition file, resolves all
function names and prints each compiled declaration in canonical form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			f, err := definition.LoadFile(file)
			if err != nil {
				return err
			}

			diags := definition.Validate(f, nil)
			for _, d := range diags.All() {
				_, _ = fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
			}

			if diags.HasErrors() {
				return fmt.Errorf("%w: %s has %d error(s)", errCheckFailed, file, len(diags.Errors))
			}

			p, err := a.build(cmd.Context(), file)
			if err != nil {
				return err
			}

			for _, name := range p.Order {
				t := p.Types[name]
				_, _ = fmt.Fprintf(out, "%s: %s\n", t, t.Block())
			}

			_, _ = fmt.Fprintf(out, "ok: %d transformer(s)\n", len(p.Order))

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "definition file (.yaml, .yml, .json or .hcl)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
