package milp

import (
	"fmt"
	"math"
)

// Evaluate returns the objective value (including the offset) at values.
func (m *Model) Evaluate(values []float64) (float64, error) {
	if len(values) != len(m.vars) {
		return 0, fmt.Errorf("Evaluate: got %d values, want %d: %w", len(values), len(m.vars), ErrValueCount)
	}
	z := m.offset
	for i, c := range m.cost {
		z += c * values[i]
	}

	return z, nil
}

// RowActivity returns Σ a·x for constraint i.
func (m *Model) RowActivity(i int, values []float64) float64 {
	s := 0.0
	for _, t := range m.cons[i].Terms {
		s += t.Coef * values[t.Var]
	}

	return s
}

// Check verifies values against bounds, integrality and every row, with an
// absolute tolerance tol. It returns an ErrViolation wrapper naming the first
// violated item, scanning variables before rows.
//
// Complexity: O(V + nnz).
func (m *Model) Check(values []float64, tol float64) error {
	if len(values) != len(m.vars) {
		return fmt.Errorf("Check: got %d values, want %d: %w", len(values), len(m.vars), ErrValueCount)
	}

	var x float64
	for i, v := range m.vars {
		x = values[i]
		if math.IsNaN(x) {
			return fmt.Errorf("var %q is NaN: %w", v.Name, ErrViolation)
		}
		if x < v.Lower-tol || x > v.Upper+tol {
			return fmt.Errorf("var %q = %g outside [%g, %g]: %w", v.Name, x, v.Lower, v.Upper, ErrViolation)
		}
		if v.Kind.Integral() && math.Abs(x-math.Round(x)) > tol {
			return fmt.Errorf("var %q = %g not integral: %w", v.Name, x, ErrViolation)
		}
	}

	var act float64
	var bad bool
	for i, c := range m.cons {
		act = m.RowActivity(i, values)
		switch c.Sense {
		case LessEq:
			bad = act > c.RHS+tol
		case GreaterEq:
			bad = act < c.RHS-tol
		default:
			bad = math.Abs(act-c.RHS) > tol
		}
		if bad {
			return fmt.Errorf("row %s/%q: %g %s %g: %w", c.Group, c.Name, act, c.Sense, c.RHS, ErrViolation)
		}
	}

	return nil
}
