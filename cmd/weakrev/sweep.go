package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/crnconj/config"
	"github.com/katalvlaran/crnconj/conjugacy"
)

func newSweepCmd(flags *runFlags, log *logrus.Logger) *cobra.Command {
	var intervals []string
	var parallel int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve several intervals concurrently and tabulate the outcomes",
		Long: `Sweep solves every interval given with --interval (or the run file's sweep
list, or the single configured interval) and prints one line per interval.

  $ weakrev sweep -c run.yaml --interval 0.5:30 --interval 1:10 -p 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.Flags())
			if err != nil {
				return err
			}
			ps := cfg.Intervals()
			if len(intervals) > 0 {
				if ps, err = parseIntervals(intervals); err != nil {
					return err
				}
			}
			net, err := cfg.Network.Build()
			if err != nil {
				return err
			}
			finder, err := newFinder(cfg.Solver, flags.verify, log, conjugacy.WithParallelism(parallel))
			if err != nil {
				return err
			}

			results, err := finder.Sweep(cmd.Context(), net, ps)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "EPS\tUBOUND\tSTATE\tACTIVE\tNODES\tERROR")
			for _, r := range results {
				state, active, nodes, msg := "-", "-", "-", ""
				if r.Solution != nil {
					state = r.Solution.State.String()
					nodes = strconv.Itoa(r.Solution.Nodes)
					if r.Solution.State == conjugacy.Extracted {
						active = strconv.Itoa(r.Solution.ActiveTransitions)
					}
				}
				if r.Err != nil {
					msg = r.Err.Error()
				}
				fmt.Fprintf(tw, "%g\t%g\t%s\t%s\t%s\t%s\n", r.Params.Eps, r.Params.UBound, state, active, nodes, msg)
			}

			return tw.Flush()
		},
	}
	cmd.Flags().StringArrayVar(&intervals, "interval", nil, `interval "eps:ubound" (repeatable)`)
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 2, "concurrent solves")

	return cmd
}

// parseIntervals reads "eps:ubound" pairs.
func parseIntervals(specs []string) ([]conjugacy.Params, error) {
	out := make([]conjugacy.Params, 0, len(specs))
	for _, s := range specs {
		lo, hi, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("interval %q: want eps:ubound: %w", s, conjugacy.ErrInvalidParameters)
		}
		eps, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		if err != nil {
			return nil, fmt.Errorf("interval %q: %w: %w", s, conjugacy.ErrInvalidParameters, err)
		}
		ub, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err != nil {
			return nil, fmt.Errorf("interval %q: %w: %w", s, conjugacy.ErrInvalidParameters, err)
		}
		out = append(out, conjugacy.Params{Eps: eps, UBound: ub})
	}

	return out, nil
}

// newFinder wires the configured back-end into a conjugacy.Finder.
func newFinder(sc config.Solver, verify float64, log logrus.FieldLogger, extra ...conjugacy.Option) (*conjugacy.Finder, error) {
	s, err := newSolver(sc, log)
	if err != nil {
		return nil, err
	}
	opts := []conjugacy.Option{conjugacy.WithSolver(s), conjugacy.WithLogger(log)}
	if verify > 0 {
		opts = append(opts, conjugacy.WithVerification(verify))
	}

	return conjugacy.NewFinder(append(opts, extra...)...)
}
