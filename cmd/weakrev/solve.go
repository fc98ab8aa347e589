package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/crnconj/conjugacy"
)

func newSolveCmd(flags *runFlags, log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Solve for one interval [eps, ubound]",
		Long: `Solve prints Y, M = Y·Ak and Ak for the input network, then either the
conjugate kinetic matrix A and the scaling T, or "No solution found" with the
outcome when it is not plain infeasibility.

  $ weakrev solve -r "X1 + 2 X2 -> 2 X1 + X2" -r "2 X1 + X2 -> 3 X2"
  $ weakrev solve -c examples/johnston.yaml --eps 0.5 --ubound 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.Flags())
			if err != nil {
				return err
			}
			net, err := cfg.Network.Build()
			if err != nil {
				return err
			}
			finder, err := newFinder(cfg.Solver, flags.verify, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printInput(out, net)
			sol, err := finder.Find(cmd.Context(), net, cfg.Params)
			switch {
			case errors.Is(err, conjugacy.ErrInvalidParameters):
				return err
			case err != nil:
				log.WithError(err).Error("solve failed")
				fmt.Fprintln(out, noSolution(sol, err))
				return nil
			}
			var rep *conjugacy.Report
			if sol.State == conjugacy.Extracted {
				if rep, err = conjugacy.NewReport(net, sol); err != nil {
					return fmt.Errorf("report: %w", err)
				}
			}
			printSolution(out, sol, rep)

			return nil
		},
	}
}
