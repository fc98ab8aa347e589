package linkage

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotSquare is returned when a kinetic matrix is not square.
	ErrNotSquare = errors.New("linkage: kinetic matrix must be square")

	// ErrVertexRange indicates an edge endpoint outside the complex range.
	ErrVertexRange = errors.New("linkage: complex index out of range")

	// ErrComplexMismatch indicates that Y's column count differs from the graph order.
	ErrComplexMismatch = errors.New("linkage: complex matrix does not match graph order")

	// ErrBadTolerance is returned by WithTolerance for negative or non-finite values.
	ErrBadTolerance = errors.New("linkage: tolerance must be finite and >= 0")
)

// DefaultTolerance is the magnitude above which a kinetic entry counts as a reaction.
const DefaultTolerance = 1e-9

// Edge is a reaction from complex From to complex To with rate constant Rate.
type Edge struct {
	From, To int
	Rate     float64
}

// String renders the edge as "C<from+1> -> C<to+1> (rate)".
func (e Edge) String() string {
	return fmt.Sprintf("C%d -> C%d (%g)", e.From+1, e.To+1, e.Rate)
}

// Option configures graph construction.
type Option func(*Options)

// Options holds construction parameters.
type Options struct {
	// Tolerance: entries with value <= Tolerance are not reactions.
	Tolerance float64

	err error
}

// DefaultOptions returns the default construction options.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// WithTolerance sets the edge detection threshold.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			o.err = ErrBadTolerance
			return
		}
		o.Tolerance = tol
	}
}

// Report summarises the structure of a reaction network.
type Report struct {
	// Complexes is the graph order m (including isolated complexes).
	Complexes int

	// Involved counts complexes that take part in at least one reaction.
	Involved int

	// Reactions is the number of edges.
	Reactions int

	// Classes lists linkage classes over involved complexes, sorted.
	Classes [][]int

	// Strong lists strongly connected components over involved complexes, sorted.
	Strong [][]int

	// Terminal lists the strong components with no outgoing edges.
	Terminal [][]int

	// WeaklyReversible is true when every linkage class is strongly connected.
	WeaklyReversible bool

	// Rank is the dimension of the stoichiometric subspace.
	Rank int

	// Deficiency is Involved − len(Classes) − Rank.
	Deficiency int
}
