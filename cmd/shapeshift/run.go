package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shapeshift/internal/watch"
)

type runOptions struct {
	file        string
	transformer string
	input       string
	watch       bool
}

func newRunCmd(a *app) *cobra.Command {
	var o runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a transformer over JSON or YAML input",
		Long: `Run loads a definition file, builds its transformers and feeds the input
through the selected one. The result is written to stdout.

Examples:
  shapeshift run -f pipeline.yaml -t users -i users.json
  cat users.json | shapeshift run -f pipeline.hcl -t users -o yaml
  shapeshift run -f pipeline.yaml -t users -i users.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.file, "file", "f", "", "definition file (.yaml, .yml, .json or .hcl)")
	cmd.Flags().StringVarP(&o.transformer, "transformer", "t", "", "transformer to run")
	cmd.Flags().StringVarP(&o.input, "input", "i", "-", "input file, - for stdin")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "run again whenever the definition or input file changes")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("transformer")

	return cmd
}

func (a *app) run(cmd *cobra.Command, o runOptions) error {
	ctx := cmd.Context()

	data, err := readInput(o.input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	err = a.runOnce(ctx, data, cmd.OutOrStdout(), o)
	if !o.watch {
		return err
	}

	if err != nil {
		a.logger.Error("run failed", "error", err)
	}

	return a.watch(ctx, data, cmd, o)
}

func (a *app) runOnce(ctx context.Context, data []byte, out io.Writer, o runOptions) error {
	p, err := a.build(ctx, o.file)
	if err != nil {
		return err
	}

	t, err := p.Get(o.transformer)
	if err != nil {
		return err
	}

	value, err := decodeInput(data)
	if err != nil {
		return err
	}

	x, err := t.NewContext(ctx, nil)
	if err != nil {
		return err
	}

	result, err := x.Call(value)
	if err != nil {
		return err
	}

	a.logger.Debug("ran transformer", "transformer", o.transformer, "type", t.String())

	return writeOutput(out, a.cfg.Output, result)
}

// watch reruns the transformer on every change of the definition file or
// of the input file, until interrupted. Stdin input is read once.
func (a *app) watch(ctx context.Context, data []byte, cmd *cobra.Command, o runOptions) error {
	paths := []string{o.file}
	if o.input != "-" {
		paths = append(paths, o.input)
	}

	w, err := watch.New(watch.Config{Paths: paths, Logger: a.logger})
	if err != nil {
		return err
	}

	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("watching for changes", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if o.input != "-" {
				if data, err = readInput(o.input, nil); err != nil {
					a.logger.Error("run failed", "error", err)
					continue
				}
			}

			if err := a.runOnce(ctx, data, cmd.OutOrStdout(), o); err != nil {
				a.logger.Error("run failed", "error", err)
			}
		}
	}
}
