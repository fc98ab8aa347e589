package bnb

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	// phaseOneTol: phase 1 optimum, relative to max(1, ‖b‖∞), above which Ay = b has no y ≥ 0.
	phaseOneTol = 1e-9
	// supportTol: iterate values at or below this are treated as non-basic when a basis is rebuilt.
	supportTol = 1e-11
	// indepTol: relative residual below which a column is dependent on the columns already chosen.
	indepTol = 1e-9
	// clampTol: B⁻¹b entries down to −clampTol·max(1, ‖b‖∞) are clamped to 0 and b is adjusted.
	clampTol = 1e-7
	// maxRestarts bounds the basis rebuilds after a numerical breakdown inside lp.Simplex.
	maxRestarts = 3
)

var errNoBasis = errors.New("no feasible basis")

// twoPhase solves min cᵀy, Ay = b, y ≥ 0 for b ≥ 0.
//
// Phase 1 minimises the artificial sum over [A I] starting from the
// artificial basis, which is feasible by construction. Phase 2 starts from a
// basis rebuilt from the phase 1 optimum. relaxUnbounded is only ever
// returned for an lp.ErrUnbounded raised by phase 2; phase 1 is bounded by 0
// and its failures are reported as relaxError.
func twoPhase(c []float64, a *mat.Dense, b []float64, tol float64) ([]float64, relaxStatus, error) {
	rows, cols := a.Dims()
	if rows == cols {
		// lp.Simplex rejects tiny negative round-off here; solve directly.
		var y mat.VecDense
		if err := y.SolveVec(a, mat.NewVecDense(rows, b)); err != nil {
			return nil, relaxError, err
		}
		out := y.RawVector().Data
		for _, v := range out {
			if v < -tol {
				return nil, relaxInfeasible, nil
			}
		}

		return out, relaxOptimal, nil
	}

	// Phase 1
	aug := mat.NewDense(rows, cols+rows, nil)
	c1 := make([]float64, cols+rows)
	start := make([]int, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			aug.Set(i, j, a.At(i, j))
		}
		aug.Set(i, cols+i, 1)
		c1[cols+i] = 1
		start[i] = cols + i
	}
	z, x, _, err := restartSimplex(c1, aug, b, start)
	if err != nil {
		return nil, relaxError, fmt.Errorf("phase 1: %v", err)
	}
	if z > phaseOneTol*math.Max(1, floats.Norm(b, math.Inf(1))) {
		return nil, relaxInfeasible, nil
	}

	// Phase 2
	basis, b2, err := feasibleBasis(a, b, x[:cols])
	if err != nil {
		return nil, relaxError, fmt.Errorf("phase 2: %v", err)
	}
	_, y, _, err := restartSimplex(c, a, b2, basis)
	switch {
	case err == nil:
		return y, relaxOptimal, nil
	case errors.Is(err, lp.ErrUnbounded):
		return nil, relaxUnbounded, nil
	default:
		return nil, relaxError, fmt.Errorf("phase 2: %w", err)
	}
}

// restartSimplex runs lp.Simplex from a feasible basis. After a numerical
// breakdown it rebuilds a basis from the last iterate and runs again, at most
// maxRestarts times. The rhs actually solved is returned with the result.
func restartSimplex(c []float64, a *mat.Dense, b []float64, basis []int) (float64, []float64, []float64, error) {
	for try := 0; ; try++ {
		z, x, err := simplexFrom(c, a, b, basis)
		if err == nil || errors.Is(err, lp.ErrUnbounded) || x == nil || try == maxRestarts {
			return z, x, b, err
		}
		if basis, b, err = feasibleBasis(a, b, x); err != nil {
			return z, nil, b, err
		}
	}
}

// simplexFrom calls lp.Simplex with an explicit starting basis, turning its
// panic on a singular or infeasible basis into errNoBasis.
func simplexFrom(c []float64, a mat.Matrix, b []float64, basis []int) (z float64, x []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			z, x, err = 0, nil, fmt.Errorf("%w: %v", errNoBasis, r)
		}
	}()

	return lp.Simplex(c, a, b, simplexTol, basis)
}

// feasibleBasis picks rows independent columns of a: first the support of x
// by decreasing value, then the rest from the last column down, where the
// slacks sit. Entries of B⁻¹b that are negative within clampTol are clamped to
// 0 and the rhs is moved onto the clamped point; the returned rhs is what the
// basis is feasible for.
func feasibleBasis(a *mat.Dense, b, x []float64) ([]int, []float64, error) {
	rows, cols := a.Dims()
	order := make([]int, 0, cols)
	for j := cols - 1; j >= 0; j-- {
		if x[j] > supportTol {
			order = append(order, j)
		}
	}
	sort.SliceStable(order, func(i, k int) bool { return x[order[i]] > x[order[k]] })
	for j := cols - 1; j >= 0; j-- {
		if x[j] <= supportTol {
			order = append(order, j)
		}
	}

	// q is an orthonormal basis of the span of the chosen columns.
	q := make([][]float64, 0, rows)
	basis := make([]int, 0, rows)
	col := make([]float64, rows)
	for _, j := range order {
		if len(basis) == rows {
			break
		}
		mat.Col(col, j, a)
		norm := floats.Norm(col, 2)
		v := append([]float64(nil), col...)
		for pass := 0; pass < 2; pass++ {
			for _, u := range q {
				floats.AddScaled(v, -floats.Dot(u, v), u)
			}
		}
		r := floats.Norm(v, 2)
		if r <= indepTol*norm {
			continue
		}
		floats.Scale(1/r, v)
		q = append(q, v)
		basis = append(basis, j)
	}
	if len(basis) < rows {
		return nil, b, fmt.Errorf("%w: rank %d of %d", errNoBasis, len(basis), rows)
	}

	ab := mat.NewDense(rows, rows, nil)
	for k, j := range basis {
		ab.SetCol(k, mat.Col(col, j, a))
	}
	var xb mat.VecDense
	if err := xb.SolveVec(ab, mat.NewVecDense(rows, b)); err != nil {
		return nil, b, fmt.Errorf("%w: %v", errNoBasis, err)
	}
	floor := -clampTol * math.Max(1, floats.Norm(b, math.Inf(1)))
	clamped := false
	for k := 0; k < rows; k++ {
		v := xb.AtVec(k)
		if v < floor {
			return nil, b, fmt.Errorf("%w: basic value %g", errNoBasis, v)
		}
		if v < 0 {
			xb.SetVec(k, 0)
			clamped = true
		}
	}
	if !clamped {
		return basis, b, nil
	}
	var nb mat.VecDense
	nb.MulVec(ab, &xb)

	return basis, nb.RawVector().Data, nil
}

// equilibrate returns copies of a and b with every row scaled to unit
// max-norm and signed so that b ≥ 0. Rows must not be empty.
func equilibrate(a *mat.Dense, b []float64) (*mat.Dense, []float64) {
	rows, _ := a.Dims()
	out := mat.DenseCopyOf(a)
	rhs := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := out.RawRowView(i)
		s := floats.Norm(row, math.Inf(1))
		if b[i] < 0 {
			s = -s
		}
		floats.Scale(1/s, row)
		rhs[i] = b[i] / s
	}

	return out, rhs
}

// descentRay reports whether some d ≥ 0 with Ad = 0 and 1ᵀd = 1 has
// cᵀd < −tol. For a feasible system that is exactly unboundedness of
// min cᵀy.
func descentRay(c []float64, a *mat.Dense, tol float64) bool {
	rows, cols := a.Dims()
	if rows+1 > cols {
		return false
	}
	r := mat.NewDense(rows+1, cols, nil)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			r.Set(i, j, a.At(i, j))
		}
		r.Set(rows, j, 1)
	}
	b := make([]float64, rows+1)
	b[rows] = 1

	d, st, err := twoPhase(c, r, b, tol)

	return err == nil && st == relaxOptimal && floats.Dot(c, d) < -tol
}

// reverseCols returns c and a with the column order reversed.
func reverseCols(c []float64, a *mat.Dense) ([]float64, *mat.Dense) {
	rows, cols := a.Dims()
	rc := make([]float64, cols)
	ra := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		rc[cols-1-j] = c[j]
		for i := 0; i < rows; i++ {
			ra.Set(i, cols-1-j, a.At(i, j))
		}
	}

	return rc, ra
}
