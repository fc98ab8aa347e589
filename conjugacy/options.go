package conjugacy

import (
	"errors"
	"io"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/crnconj/milp"
)

// ErrOptionViolation is returned when an option receives an invalid value.
var ErrOptionViolation = errors.New("conjugacy: invalid option value")

// DefaultSnapTolerance: extracted entries with |v| at or below it become 0.
const DefaultSnapTolerance = 1e-9

// Option configures a Finder or Extract.
type Option func(*Options)

// Options holds pipeline parameters.
type Options struct {
	// Solver receives the model; nil selects milp/bnb with default options.
	Solver milp.Solver

	// Logger receives one line per stage transition.
	Logger logrus.FieldLogger

	// SnapTolerance is applied to A and Ah on extraction.
	SnapTolerance float64

	// VerifyTolerance > 0 makes Find run Verify on every extracted solution.
	VerifyTolerance float64

	// Parallelism bounds concurrent solves in Sweep.
	Parallelism int

	err error
}

// DefaultOptions returns the defaults: bnb solver, discarded logs, snap 1e-9,
// no verification, Parallelism = GOMAXPROCS.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return Options{
		Logger:        l,
		SnapTolerance: DefaultSnapTolerance,
		Parallelism:   runtime.GOMAXPROCS(0),
	}
}

// WithSolver selects the MILP back-end. A nil solver is ignored.
func WithSolver(s milp.Solver) Option {
	return func(o *Options) {
		if s != nil {
			o.Solver = s
		}
	}
}

// WithLogger routes stage transitions to l. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSnapTolerance sets the zero-snapping threshold (finite, >= 0).
func WithSnapTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol >= 0) || math.IsInf(tol, 0) {
			o.err = ErrOptionViolation
			return
		}
		o.SnapTolerance = tol
	}
}

// WithVerification enables Verify with the given tolerance (> 0) after extraction.
func WithVerification(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.err = ErrOptionViolation
			return
		}
		o.VerifyTolerance = tol
	}
}

// WithParallelism bounds concurrent solves in Sweep (>= 1).
func WithParallelism(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = ErrOptionViolation
			return
		}
		o.Parallelism = n
	}
}
