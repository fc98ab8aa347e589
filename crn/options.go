package crn

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates incompatible Y/Ak shapes or label counts.
	ErrDimensionMismatch = errors.New("crn: dimension mismatch")

	// ErrDuplicateLabel indicates a repeated species or complex name.
	ErrDuplicateLabel = errors.New("crn: duplicate label")
)

// Option configures a Network at construction time.
type Option func(*Options)

// Options holds the optional labels of a Network.
// Nil slices select the defaults X1..Xn and C1..Cm.
type Options struct {
	Species   []string
	Complexes []string
}

// WithSpecies names the species (rows of Y) in order.
func WithSpecies(names ...string) Option {
	return func(o *Options) {
		o.Species = append([]string(nil), names...)
	}
}

// WithComplexes labels the complexes (columns of Y) in order.
func WithComplexes(labels ...string) Option {
	return func(o *Options) {
		o.Complexes = append([]string(nil), labels...)
	}
}

// defaultLabels returns prefix1..prefixN.
func defaultLabels(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}

	return out
}

// checkLabels validates the count and uniqueness of a label list.
func checkLabels(kind string, labels []string, want int) error {
	if len(labels) != want {
		return fmt.Errorf("%s: got %d labels, want %d: %w", kind, len(labels), want, ErrDimensionMismatch)
	}
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%s: %q: %w", kind, l, ErrDuplicateLabel)
		}
		seen[l] = struct{}{}
	}

	return nil
}
