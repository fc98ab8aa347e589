package conjugacy

import (
	"fmt"

	"github.com/katalvlaran/crnconj/matrix"
	"github.com/katalvlaran/crnconj/milp"
)

// activeThreshold: a δ value at or above it counts as an active transition.
const activeThreshold = 0.5

// Solution is the terminal outcome of one invocation.
type Solution struct {
	State  State
	Params Params

	// Conjugate is the m×m matrix A when State == Extracted.
	Conjugate *matrix.Dense

	// Witness is the m×m matrix Ah that certifies weak reversibility.
	Witness *matrix.Dense

	// Scaling is the n×n diagonal matrix T when State == Extracted.
	Scaling *matrix.Dense

	// Objective is the raw objective value, −ActiveTransitions at the optimum.
	Objective float64

	// ActiveTransitions counts δ = 1.
	ActiveTransitions int

	// Reason is the solver's status text for Infeasible and Error outcomes.
	Reason string

	// Nodes is the number of branch-and-bound nodes, when the solver reports it.
	Nodes int
}

// ScalingVector returns the diagonal of Scaling, or nil before extraction.
func (s *Solution) ScalingVector() []float64 {
	if s.Scaling == nil {
		return nil
	}
	out := make([]float64, s.Scaling.Rows())
	for i := range out {
		out[i], _ = s.Scaling.At(i, i)
	}

	return out
}

// Extract maps a solver result onto a Solution.
//
//	Optimal    → Extracted, A and T read back, near-zero entries snapped to 0
//	Infeasible → Infeasible, nil error
//	Unbounded  → Unbounded, ErrUnbounded
//	Error      → Error, ErrSolver carrying the solver's reason
//
// A missing or short value vector on Optimal is ErrSolver.
func Extract(f *Formulation, res *milp.Result, opts ...Option) (*Solution, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if f == nil {
		return nil, fmt.Errorf("Extract: nil formulation: %w", ErrInvalidParameters)
	}
	sol := &Solution{State: Error, Params: f.params}
	if res == nil {
		return sol, fmt.Errorf("Extract: nil result: %w", ErrSolver)
	}
	sol.Reason, sol.Nodes = res.Reason, res.Nodes

	switch res.Status {
	case milp.Optimal:
	case milp.Infeasible:
		sol.State = Infeasible
		return sol, nil
	case milp.Unbounded:
		sol.State = Unbounded
		return sol, ErrUnbounded
	default:
		return sol, fmt.Errorf("Extract: status %s (%s): %w", res.Status, res.Reason, ErrSolver)
	}

	if len(res.Values) != f.model.NumVars() {
		return sol, fmt.Errorf("Extract: %d values for %d variables: %w", len(res.Values), f.model.NumVars(), ErrSolver)
	}
	var err error
	if sol.Conjugate, err = f.readSquare(res.Values, f.A, o.SnapTolerance); err != nil {
		return sol, err
	}
	if sol.Witness, err = f.readSquare(res.Values, f.Ah, o.SnapTolerance); err != nil {
		return sol, err
	}
	t := make([]float64, f.n)
	for i := range t {
		t[i] = res.Values[f.t[i]]
	}
	if sol.Scaling, err = matrix.Diag(t); err != nil {
		return sol, fmt.Errorf("Extract: scaling: %w", err)
	}
	for _, d := range f.delta {
		if d != noVar && res.Values[d] >= activeThreshold {
			sol.ActiveTransitions++
		}
	}
	sol.Objective = res.Objective
	sol.State = Extracted

	return sol, nil
}

// readSquare assembles the m×m matrix addressed by at and snaps |v| ≤ tol to 0.
func (f *Formulation) readSquare(values []float64, at func(i, j int) milp.Var, tol float64) (*matrix.Dense, error) {
	rows := make([][]float64, f.m)
	for i := range rows {
		rows[i] = make([]float64, f.m)
		for j := range rows[i] {
			rows[i][j] = values[at(i, j)]
		}
	}
	d, err := matrix.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("Extract: %w: %w", ErrSolver, err)
	}

	return matrix.Snap(d, tol)
}
