package conjugacy

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/crnconj/crn"
	"github.com/katalvlaran/crnconj/milp/bnb"
)

// Finder runs Build → Solve → Extract. It holds no per-call state and is
// safe for concurrent use when its solver is.
type Finder struct {
	opts Options
}

// NewFinder builds a Finder, returning ErrOptionViolation for invalid options.
func NewFinder(opts ...Option) (*Finder, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Solver == nil {
		s, err := bnb.New(bnb.WithLogger(o.Logger))
		if err != nil {
			return nil, err
		}
		o.Solver = s
	}

	return &Finder{opts: o}, nil
}

// Find decides whether net has a weakly reversible linear conjugate under p
// and extracts the one with the fewest active transitions.
//
// The solver is called exactly once; p is never relaxed.
//
// Errors:
//   - ErrInvalidParameters before the solver is touched.
//   - ErrUnbounded, ErrSolver from Extract (Solution still returned).
//   - ErrVerification when verification is enabled and fails.
func (f *Finder) Find(ctx context.Context, net *crn.Network, p Params) (*Solution, error) {
	form, err := Build(net, p)
	if err != nil {
		return nil, err
	}
	log := f.opts.Logger.WithFields(logrus.Fields{
		"n":      form.SpeciesCount(),
		"m":      form.ComplexCount(),
		"eps":    p.Eps,
		"ubound": p.UBound,
	})
	log.WithFields(logrus.Fields{
		"state": Built,
		"vars":  form.Model().NumVars(),
		"rows":  form.Model().NumConstraints(),
	}).Debug("formulation built")

	log.WithField("state", Submitted).Debug("submitting to solver")
	res, err := f.opts.Solver.Solve(ctx, form.Model())
	if err != nil {
		log.WithError(err).Warn("solver rejected the model")
		return &Solution{State: Error, Params: p, Reason: err.Error()}, fmt.Errorf("Find: %w: %w", ErrSolver, err)
	}

	sol, err := Extract(form, res, WithSnapTolerance(f.opts.SnapTolerance))
	entry := log.WithFields(logrus.Fields{
		"state":  sol.State,
		"nodes":  sol.Nodes,
		"active": sol.ActiveTransitions,
	})
	if err != nil {
		entry.WithError(err).Warn("no conjugate network")
		return sol, err
	}
	entry.Info("solve finished")

	if sol.State == Extracted && f.opts.VerifyTolerance > 0 {
		if err = Verify(net, sol, f.opts.VerifyTolerance); err != nil {
			return sol, err
		}
	}

	return sol, nil
}

// SweepResult is the outcome of one interval in a sweep.
type SweepResult struct {
	Params   Params
	Solution *Solution
	Err      error
}

// Sweep runs Find for every interval in ps concurrently, at most Parallelism
// at a time, and returns the results in input order. Intervals are validated
// up front; per-interval solve failures are reported in SweepResult.Err.
//
// Errors:
//   - ErrInvalidParameters naming the first bad interval.
//   - ctx.Err() when the sweep was canceled.
func (f *Finder) Sweep(ctx context.Context, net *crn.Network, ps []Params) ([]SweepResult, error) {
	for i, p := range ps {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("Sweep: interval %d: %w", i, err)
		}
	}

	out := make([]SweepResult, len(ps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Parallelism)
	for i, p := range ps {
		i, p := i, p
		g.Go(func() error {
			sol, err := f.Find(gctx, net, p)
			out[i] = SweepResult{Params: p, Solution: sol, Err: err}
			if errors.Is(err, ErrInvalidParameters) {
				return err
			}

			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	return out, nil
}
