package conjugacy

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameters is returned for an empty network or an unusable
	// (Eps, UBound) pair; it is detected before any variable is declared.
	ErrInvalidParameters = errors.New("conjugacy: invalid parameters")

	// ErrUnbounded is returned when the solver reports an unbounded model.
	ErrUnbounded = errors.New("conjugacy: formulation is unbounded")

	// ErrSolver wraps solver failures, stopped searches and malformed results.
	ErrSolver = errors.New("conjugacy: solver failure")

	// ErrVerification is returned by Verify for the first violated property.
	ErrVerification = errors.New("conjugacy: verification failed")
)

// Constraint group names, in emission order.
const (
	GroupEquivalence = "equivalence"
	GroupBalance     = "balance"
	GroupActivation  = "activation"
	GroupDiagonal    = "diagonal"
)

// Defaults used by the command line and by DefaultParams.
const (
	DefaultEps    = 0.6666
	DefaultUBound = 20.0
)

// Params bounds the nonzero entries of T and of the active transitions.
type Params struct {
	// Eps is the smallest admissible nonzero value (> 0).
	Eps float64 `yaml:"eps"`

	// UBound is the largest admissible value (> Eps).
	UBound float64 `yaml:"ubound"`
}

// DefaultParams returns {DefaultEps, DefaultUBound}.
func DefaultParams() Params {
	return Params{Eps: DefaultEps, UBound: DefaultUBound}
}

// Validate reports ErrInvalidParameters unless 0 < Eps < UBound and both are finite.
func (p Params) Validate() error {
	if math.IsNaN(p.Eps) || math.IsInf(p.Eps, 0) || math.IsNaN(p.UBound) || math.IsInf(p.UBound, 0) {
		return fmt.Errorf("eps=%g ubound=%g not finite: %w", p.Eps, p.UBound, ErrInvalidParameters)
	}
	if p.Eps <= 0 {
		return fmt.Errorf("eps=%g must be positive: %w", p.Eps, ErrInvalidParameters)
	}
	if p.Eps >= p.UBound {
		return fmt.Errorf("eps=%g must be below ubound=%g: %w", p.Eps, p.UBound, ErrInvalidParameters)
	}

	return nil
}

// String renders the pair as "[eps, ubound]".
func (p Params) String() string { return fmt.Sprintf("[%g, %g]", p.Eps, p.UBound) }

// State is the lifecycle position of one invocation.
//
//	Built → Submitted → Extracted | Infeasible | Unbounded | Error
type State int

const (
	// Built: the formulation exists and has not been handed to a solver.
	Built State = iota
	// Submitted: the solver is running.
	Submitted
	// Extracted: an optimum was found and A, T were read back.
	Extracted
	// Infeasible: no weakly reversible conjugate exists within the interval.
	Infeasible
	// Unbounded: the solver reported an unbounded objective.
	Unbounded
	// Error: the solver failed or stopped early.
	Error
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Built:
		return "Built"
	case Submitted:
		return "Submitted"
	case Extracted:
		return "Extracted"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s >= Extracted }
