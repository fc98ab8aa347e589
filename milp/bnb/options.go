package bnb

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrOptionViolation is returned by New when an option receives an invalid value.
var ErrOptionViolation = errors.New("bnb: invalid option value")

const (
	defaultTolerance            = 1e-9
	defaultIntegralityTolerance = 1e-6
	defaultNodeLimit            = 200000
)

// Option configures a Solver.
type Option func(*Options)

// Options holds solver parameters.
type Options struct {
	// Tolerance is the absolute feasibility and pruning tolerance.
	Tolerance float64

	// IntegralityTolerance is how far from an integer a value may be and still count as integral.
	IntegralityTolerance float64

	// NodeLimit caps explored nodes; 0 means unlimited.
	NodeLimit int

	// TimeLimit caps wall-clock time; 0 means unlimited.
	TimeLimit time.Duration

	// Logger receives progress at debug level.
	Logger logrus.FieldLogger

	err error
}

// DefaultOptions returns the defaults documented in the package comment.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return Options{
		Tolerance:            defaultTolerance,
		IntegralityTolerance: defaultIntegralityTolerance,
		NodeLimit:            defaultNodeLimit,
		Logger:               l,
	}
}

// WithTolerance sets the feasibility and pruning tolerance (> 0).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) {
			o.err = ErrOptionViolation
			return
		}
		o.Tolerance = tol
	}
}

// WithIntegralityTolerance sets the integrality tolerance (in (0, 0.5)).
func WithIntegralityTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0 && tol < 0.5) {
			o.err = ErrOptionViolation
			return
		}
		o.IntegralityTolerance = tol
	}
}

// WithNodeLimit caps the number of explored nodes (>= 0, 0 = unlimited).
func WithNodeLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrOptionViolation
			return
		}
		o.NodeLimit = n
	}
}

// WithTimeLimit caps wall-clock time (>= 0, 0 = unlimited).
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = ErrOptionViolation
			return
		}
		o.TimeLimit = d
	}
}

// WithLogger routes progress messages to l. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
