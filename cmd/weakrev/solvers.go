package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/crnconj/config"
	"github.com/katalvlaran/crnconj/milp"
	"github.com/katalvlaran/crnconj/milp/bnb"
)

var errUnknownSolver = errors.New("unknown solver")

// solverFactory builds a back-end from the solver section of a run file.
type solverFactory func(cfg config.Solver, log logrus.FieldLogger) (milp.Solver, error)

// solvers is filled at init; cgo back-ends register from tagged files.
var solvers = map[string]solverFactory{
	"bnb": newBnB,
}

func newBnB(cfg config.Solver, log logrus.FieldLogger) (milp.Solver, error) {
	opts := []bnb.Option{bnb.WithLogger(log)}
	if cfg.TimeLimit > 0 {
		opts = append(opts, bnb.WithTimeLimit(cfg.TimeLimit))
	}
	if cfg.NodeLimit > 0 {
		opts = append(opts, bnb.WithNodeLimit(cfg.NodeLimit))
	}
	if cfg.Tolerance > 0 {
		opts = append(opts, bnb.WithTolerance(cfg.Tolerance))
	}

	return bnb.New(opts...)
}

func newSolver(cfg config.Solver, log logrus.FieldLogger) (milp.Solver, error) {
	f, ok := solvers[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", errUnknownSolver, cfg.Name, solverNames())
	}

	return f(cfg, log)
}

func solverNames() []string {
	names := make([]string, 0, len(solvers))
	for n := range solvers {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}
