//go:build highs

package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/crnconj/config"
	"github.com/katalvlaran/crnconj/milp"
	"github.com/katalvlaran/crnconj/milp/highs"
)

func init() {
	solvers["highs"] = newHiGHS
}

// newHiGHS enforces the time limit through the context; the other solver
// settings keep HiGHS defaults.
func newHiGHS(cfg config.Solver, log logrus.FieldLogger) (milp.Solver, error) {
	s := highs.New(log)
	if cfg.TimeLimit <= 0 {
		return s, nil
	}

	return withDeadline(s, cfg.TimeLimit), nil
}

func withDeadline(s milp.Solver, d time.Duration) milp.Solver {
	return milp.SolverFunc(func(ctx context.Context, m *milp.Model) (*milp.Result, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		res, err := s.Solve(ctx, m)
		if err == nil && res.Reason == milp.ReasonCanceled && ctx.Err() == context.DeadlineExceeded {
			res.Reason = milp.ReasonTimeLimit
		}

		return res, err
	})
}
