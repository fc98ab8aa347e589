package conjugacy

import (
	"fmt"
	"math"

	"github.com/katalvlaran/crnconj/crn"
	"github.com/katalvlaran/crnconj/linkage"
	"github.com/katalvlaran/crnconj/matrix"
)

// Verify re-substitutes an extracted solution into the defining properties
// and returns an ErrVerification wrapper naming the first violation:
//
//   - T is diagonal with entries in [Eps, UBound];
//   - every column of A sums to 0 and A[j,j] ≤ 0;
//   - every off-diagonal of A is 0 or lies in [Eps, UBound];
//   - Y·A = T·M entrywise;
//   - the reaction graph of A is weakly reversible;
//   - when present, the witness Ah has zero row and column sums, the same
//     off-diagonal bounds as A and exactly A's support.
//
// All comparisons use the absolute tolerance tol.
func Verify(net *crn.Network, sol *Solution, tol float64) error {
	if net == nil || sol == nil || sol.State != Extracted || sol.Conjugate == nil || sol.Scaling == nil {
		return fmt.Errorf("Verify: nothing extracted: %w", ErrVerification)
	}
	m, n := net.ComplexCount(), net.SpeciesCount()
	a, t := sol.Conjugate, sol.Scaling
	if a.Rows() != m || a.Cols() != m || t.Rows() != n || t.Cols() != n {
		return fmt.Errorf("Verify: A is %dx%d, T is %dx%d for n=%d m=%d: %w",
			a.Rows(), a.Cols(), t.Rows(), t.Cols(), n, m, ErrVerification)
	}
	p := sol.Params
	inRange := func(v float64) bool { return v >= p.Eps-tol && v <= p.UBound+tol }

	var v float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, _ = t.At(i, j)
			if i == j && !inRange(v) {
				return fmt.Errorf("Verify: T[%d,%d] = %g outside %s: %w", i, j, v, p, ErrVerification)
			}
			if i != j && math.Abs(v) > tol {
				return fmt.Errorf("Verify: T[%d,%d] = %g off the diagonal: %w", i, j, v, ErrVerification)
			}
		}
	}

	if err := verifyKinetic("A", a, inRange, tol); err != nil {
		return err
	}

	ya, err := matrix.Mul(net.ComplexMatrix(), a)
	if err != nil {
		return err
	}
	tm, err := matrix.ScaleRows(net.FluxMatrix(), sol.ScalingVector())
	if err != nil {
		return err
	}
	same, err := matrix.AllClose(ya, tm, 0, tol)
	if err != nil {
		return err
	}
	if !same {
		return fmt.Errorf("Verify: Y·A differs from T·M by more than %g: %w", tol, ErrVerification)
	}

	g, err := linkage.FromKinetic(a, linkage.WithTolerance(tol))
	if err != nil {
		return err
	}
	if !linkage.IsWeaklyReversible(g) {
		return fmt.Errorf("Verify: conjugate network is not weakly reversible: %w", ErrVerification)
	}

	if sol.Witness == nil {
		return nil
	}
	w := sol.Witness
	if w.Rows() != m || w.Cols() != m {
		return fmt.Errorf("Verify: Ah is %dx%d for m=%d: %w", w.Rows(), w.Cols(), m, ErrVerification)
	}
	if err = verifyKinetic("Ah", w, inRange, tol); err != nil {
		return err
	}
	sums, err := matrix.RowSums(w)
	if err != nil {
		return err
	}
	for i, s := range sums {
		if math.Abs(s) > tol {
			return fmt.Errorf("Verify: row %d of Ah sums to %g: %w", i, s, ErrVerification)
		}
	}
	var av, wv float64
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			if i == j {
				continue
			}
			av, _ = a.At(i, j)
			wv, _ = w.At(i, j)
			if (math.Abs(av) > tol) != (math.Abs(wv) > tol) {
				return fmt.Errorf("Verify: A[%d,%d] = %g but Ah[%d,%d] = %g: %w", i, j, av, i, j, wv, ErrVerification)
			}
		}
	}

	return nil
}

// verifyKinetic checks zero column sums, non-positive diagonal and off-diagonals
// that are 0 or in range.
func verifyKinetic(name string, k *matrix.Dense, inRange func(float64) bool, tol float64) error {
	sums, err := matrix.ColSums(k)
	if err != nil {
		return err
	}
	for j, s := range sums {
		if math.Abs(s) > tol {
			return fmt.Errorf("Verify: column %d of %s sums to %g: %w", j, name, s, ErrVerification)
		}
	}
	var v float64
	for i := 0; i < k.Rows(); i++ {
		for j := 0; j < k.Cols(); j++ {
			v, _ = k.At(i, j)
			switch {
			case i == j && v > tol:
				return fmt.Errorf("Verify: %s[%d,%d] = %g positive diagonal: %w", name, i, j, v, ErrVerification)
			case i != j && math.Abs(v) > tol && !inRange(v):
				return fmt.Errorf("Verify: %s[%d,%d] = %g neither 0 nor in the interval: %w", name, i, j, v, ErrVerification)
			}
		}
	}

	return nil
}

// Report compares the structure of the input network with its conjugate.
type Report struct {
	Input     *linkage.Report
	Conjugate *linkage.Report // nil unless the solution was extracted

	// Reactions renders the conjugate reactions, "lhs ->(rate) rhs" per line.
	Reactions []string
}

// NewReport analyses net and, when sol was extracted, the conjugate network
// (same complexes, kinetic matrix A).
func NewReport(net *crn.Network, sol *Solution) (*Report, error) {
	in, err := net.Analyze()
	if err != nil {
		return nil, fmt.Errorf("NewReport: %w", err)
	}
	r := &Report{Input: in}
	if sol == nil || sol.State != Extracted {
		return r, nil
	}

	conj, err := crn.New(net.ComplexMatrix(), sol.Conjugate,
		crn.WithSpecies(net.Species()...), crn.WithComplexes(net.Complexes()...))
	if err != nil {
		return nil, fmt.Errorf("NewReport: %w", err)
	}
	if r.Conjugate, err = conj.Analyze(); err != nil {
		return nil, fmt.Errorf("NewReport: %w", err)
	}
	if r.Reactions, err = conj.Reactions(nil); err != nil {
		return nil, fmt.Errorf("NewReport: %w", err)
	}

	return r, nil
}
