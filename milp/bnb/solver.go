package bnb

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/crnconj/milp"
)

// Solver is a depth-first branch-and-bound MILP solver. It is stateless
// between calls and safe for concurrent use.
type Solver struct {
	opts Options
}

var _ milp.Solver = (*Solver)(nil)

// New builds a Solver, returning ErrOptionViolation for invalid options.
func New(opts ...Option) (*Solver, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Solver{opts: o}, nil
}

// node is one subproblem: the model under tightened bounds.
type node struct {
	lo, hi []float64
	depth  int
}

// search holds mutable state of one Solve call.
type search struct {
	prob     *problem
	opts     Options
	log      logrus.FieldLogger
	deadline time.Time
	stack    []node
	nodes    int
	best     []float64
	bestZ    float64
	roundUp  bool // objective takes integral values on integral points
}

// Solve runs branch-and-bound on m.
//
// Implementation:
//   - Stage 1: snapshot m into minimisation form; root bounds from declarations.
//   - Stage 2: pop nodes depth-first; relax; prune by bound; branch on the most
//     fractional integer variable, exploring the nearer side first.
//   - Stage 3: map the outcome onto milp.Status.
//
// Errors:
//   - none for solve outcomes; an empty model (no variables) is Optimal with objective = offset.
func (s *Solver) Solve(ctx context.Context, m *milp.Model) (*milp.Result, error) {
	p := newProblem(m)
	w := &search{
		prob:    p,
		opts:    s.opts,
		log:     s.opts.Logger.WithField("model", m.Name()),
		bestZ:   math.Inf(1),
		roundUp: integralObjective(p),
	}
	if s.opts.TimeLimit > 0 {
		w.deadline = time.Now().Add(s.opts.TimeLimit)
	}
	w.stack = append(w.stack, node{
		lo: append([]float64(nil), p.lower...),
		hi: append([]float64(nil), p.upper...),
	})

	status, reason, err := w.run(ctx)
	res := &milp.Result{Status: status, Reason: reason, Nodes: w.nodes}
	if err != nil {
		res.Reason = err.Error()
	}
	if w.best != nil && (status == milp.Optimal || status == milp.Error) {
		res.Values = w.best
		res.Objective, _ = m.Evaluate(w.best)
	}
	w.log.WithFields(logrus.Fields{
		"status": status,
		"nodes":  w.nodes,
	}).Debug("branch-and-bound finished")

	return res, nil
}

// run is the main loop; it returns the terminal status and an optional reason.
func (w *search) run(ctx context.Context) (milp.Status, string, error) {
	for len(w.stack) > 0 {
		if reason := w.stopReason(ctx); reason != "" {
			return milp.Error, reason, nil
		}

		nd := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		w.nodes++

		rx := w.prob.relax(nd.lo, nd.hi, w.opts.Tolerance)
		switch rx.status {
		case relaxInfeasible:
			continue
		case relaxUnbounded:
			// an unbounded relaxation with integral feasibility is not attempted
			return milp.Unbounded, "", nil
		case relaxError:
			return milp.Error, "", rx.err
		}

		if w.pruned(rx.z) {
			continue
		}

		branch, frac := w.mostFractional(rx.x)
		if branch < 0 {
			w.accept(rx.x, rx.z, nd.depth)
			continue
		}

		down := node{lo: nd.lo, hi: cloneWith(nd.hi, branch, math.Floor(rx.x[branch])), depth: nd.depth + 1}
		up := node{lo: cloneWith(nd.lo, branch, math.Ceil(rx.x[branch])), hi: nd.hi, depth: nd.depth + 1}
		// the side nearer to the relaxed value is explored first
		if frac >= 0.5 {
			w.stack = append(w.stack, down, up)
		} else {
			w.stack = append(w.stack, up, down)
		}
	}

	if w.best == nil {
		return milp.Infeasible, "", nil
	}

	return milp.Optimal, "", nil
}

// stopReason reports why the search must stop early, or "".
func (w *search) stopReason(ctx context.Context) string {
	select {
	case <-ctx.Done():
		return milp.ReasonCanceled
	default:
	}
	if w.opts.NodeLimit > 0 && w.nodes >= w.opts.NodeLimit {
		return milp.ReasonNodeLimit
	}
	if !w.deadline.IsZero() && time.Now().After(w.deadline) {
		return milp.ReasonTimeLimit
	}

	return ""
}

// pruned reports whether a node with relaxed objective z cannot beat the incumbent.
func (w *search) pruned(z float64) bool {
	if w.best == nil {
		return false
	}
	bound := z
	if w.roundUp {
		bound = math.Ceil(z - w.opts.IntegralityTolerance)
	}

	return bound >= w.bestZ-w.opts.Tolerance
}

// mostFractional returns the integer variable farthest from integrality and
// the fractional part of its value, or -1 when x is integral.
func (w *search) mostFractional(x []float64) (int, float64) {
	best, bestDist, bestFrac := -1, w.opts.IntegralityTolerance, 0.0
	var f, d float64
	for j, isInt := range w.prob.integer {
		if !isInt {
			continue
		}
		f = x[j] - math.Floor(x[j])
		d = math.Min(f, 1-f)
		if d > bestDist {
			best, bestDist, bestFrac = j, d, f
		}
	}

	return best, bestFrac
}

// accept records an integral relaxation as the new incumbent when it improves.
func (w *search) accept(x []float64, z float64, depth int) {
	if w.best != nil && z >= w.bestZ-w.opts.Tolerance {
		return
	}
	sol := make([]float64, len(x))
	copy(sol, x)
	for j, isInt := range w.prob.integer {
		if isInt {
			sol[j] = math.Round(sol[j])
		}
	}
	w.best, w.bestZ = sol, z
	w.log.WithFields(logrus.Fields{
		"objective": z,
		"nodes":     w.nodes,
		"depth":     depth,
	}).Debug("incumbent improved")
}

// integralObjective reports whether every nonzero cost sits on an integer
// variable with an integral coefficient.
func integralObjective(p *problem) bool {
	for j, c := range p.cost {
		if c == 0 {
			continue
		}
		if !p.integer[j] || c != math.Trunc(c) {
			return false
		}
	}

	return true
}

// cloneWith returns a copy of v with v[i] = x.
func cloneWith(v []float64, i int, x float64) []float64 {
	out := append([]float64(nil), v...)
	out[i] = x

	return out
}
