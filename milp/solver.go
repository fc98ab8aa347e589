package milp

import (
	"context"
	"fmt"
)

// Status is the terminal outcome of a solve.
type Status int

const (
	// Optimal: a proven optimum was found; Result.Values is populated.
	Optimal Status = iota
	// Infeasible: no assignment satisfies the constraints.
	Infeasible
	// Unbounded: the objective can be improved without limit.
	Unbounded
	// Error: the back-end failed or stopped early (limits, cancellation, numerics).
	Error
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is what a Solver returns.
type Result struct {
	Status Status

	// Values holds one value per model variable when Status == Optimal.
	Values []float64

	// Objective is the objective value at Values (including the offset).
	Objective float64

	// Reason carries the back-end specific status text, e.g. "TimeLimit".
	Reason string

	// Nodes is the number of branch-and-bound nodes explored, when known.
	Nodes int
}

// Solver solves a Model. Implementations must not mutate the model and must
// honour ctx cancellation by returning Status Error with Reason "Canceled"
// (or the back-end's equivalent) rather than blocking.
//
// A non-nil error is reserved for failures to even submit the model; solve
// outcomes, including Error, travel in Result.Status.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Result, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, m *Model) (*Result, error)

// Solve calls f(ctx, m).
func (f SolverFunc) Solve(ctx context.Context, m *Model) (*Result, error) { return f(ctx, m) }

// Reasons reported by solvers that stop before proving a status.
const (
	ReasonNodeLimit = "NodeLimit"
	ReasonTimeLimit = "TimeLimit"
	ReasonCanceled  = "Canceled"
)
