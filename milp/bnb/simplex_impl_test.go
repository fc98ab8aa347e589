package bnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const implTol = 1e-9

// standard builds the constraint matrix of a standard-form test LP.
func standard(rows [][]float64) *mat.Dense {
	a := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, r := range rows {
		a.SetRow(i, r)
	}
	return a
}

// requireFeasible checks Ay = b and y ≥ 0 on the unscaled system.
func requireFeasible(t *testing.T, a *mat.Dense, b, y []float64) {
	t.Helper()
	for _, v := range y {
		require.GreaterOrEqual(t, v, -1e-9)
	}
	var ay mat.VecDense
	ay.MulVec(a, mat.NewVecDense(len(y), y))
	for i := range b {
		assert.InDelta(t, b[i], ay.AtVec(i), 1e-8, "row %d", i)
	}
}

// TestSolveStandardDegenerate: every slack of y1 = y2, y1 + y2 ≤ 1 (twice)
// is zero at the optimum and one rhs is negative, so phase 1 starts far from
// the original basis.
func TestSolveStandardDegenerate(t *testing.T) {
	// columns: y1 y2 s1 s2 s3 s4 s5
	a := standard([][]float64{
		{1, 1, 1, 0, 0, 0, 0},
		{1, -1, 0, 1, 0, 0, 0},
		{-1, 1, 0, 0, 1, 0, 0},
		{2, 2, 0, 0, 0, 1, 0},
		{-1, 0, 0, 0, 0, 0, 1},
	})
	b := []float64{1, 0, 0, 2, -0.25}
	c := []float64{-1, -1, 0, 0, 0, 0, 0}

	y, st, err := solveStandard(c, a, b, implTol)
	require.NoError(t, err)
	require.Equal(t, relaxOptimal, st)
	requireFeasible(t, a, b, y)
	assert.InDelta(t, -1.0, floats.Dot(c, y), 1e-9)
	assert.InDelta(t, 0.5, y[0], 1e-9)
	assert.InDelta(t, 0.5, y[1], 1e-9)
}

// TestSolveStandardBadlyScaledRows mixes row norms over eight orders of
// magnitude; equilibration keeps the bases well conditioned.
func TestSolveStandardBadlyScaledRows(t *testing.T) {
	a := standard([][]float64{
		{1e-4, 1e-4, 1e-4, 0},
		{2e4, 0, -2e4, 0},
		{1, -1, 0, 1},
	})
	b := []float64{3e-4, 0, 0.5}
	c := []float64{0, -1, 0, 0}

	y, st, err := solveStandard(c, a, b, implTol)
	require.NoError(t, err)
	require.Equal(t, relaxOptimal, st)
	requireFeasible(t, a, b, y)
	assert.InDelta(t, 3.0, y[1], 1e-9)
	assert.InDelta(t, 0.0, y[0], 1e-9)
}

func TestSolveStandardInfeasible(t *testing.T) {
	// y1 + s1 = 1 and y1 − s2 = 2.
	a := standard([][]float64{
		{1, 1, 0},
		{1, 0, -1},
	})
	y, st, err := solveStandard([]float64{1, 0, 0}, a, []float64{1, 2}, implTol)
	require.NoError(t, err)
	assert.Equal(t, relaxInfeasible, st)
	assert.Nil(t, y)
}

// TestSolveStandardUnboundedIsConfirmed: min −y1 with y1 − y2 + s = 1 has the
// descent ray (1, 1, 0); with y1 + y2 + s = 1 it has none.
func TestSolveStandardUnboundedIsConfirmed(t *testing.T) {
	c := []float64{-1, 0, 0}

	ray := standard([][]float64{{1, -1, 1}})
	_, st, err := solveStandard(c, ray, []float64{1}, implTol)
	require.NoError(t, err)
	assert.Equal(t, relaxUnbounded, st)
	assert.True(t, descentRay(c, ray, implTol))

	box := standard([][]float64{{1, 1, 1}})
	y, st, err := solveStandard(c, box, []float64{1}, implTol)
	require.NoError(t, err)
	require.Equal(t, relaxOptimal, st)
	assert.InDelta(t, 1.0, y[0], 1e-9)
	assert.False(t, descentRay(c, box, implTol))
}

// TestFeasibleBasisClampsRoundOff: a basic value of −1e-12 is moved to 0
// together with the rhs, so lp.Simplex accepts the basis.
func TestFeasibleBasisClampsRoundOff(t *testing.T) {
	a := standard([][]float64{
		{1, 0, 1},
		{0, 1, 1},
	})
	b := []float64{1, 1 + 1e-12}
	basis, rhs, err := feasibleBasis(a, b, []float64{1, 0, 0})
	require.NoError(t, err)
	require.Len(t, basis, 2)
	assert.Equal(t, 0, basis[0])

	_, x, err := simplexFrom([]float64{1, 1, 1}, a, rhs, basis)
	require.NoError(t, err)
	requireFeasible(t, a, rhs, x)

	_, _, err = feasibleBasis(a, []float64{1, -1}, []float64{1, 0, 0})
	assert.ErrorIs(t, err, errNoBasis)
}

// TestSimplexFromRecoversPanic: lp.Simplex panics on an infeasible starting
// basis; simplexFrom reports it as errNoBasis.
func TestSimplexFromRecoversPanic(t *testing.T) {
	a := standard([][]float64{{1, 1}})
	_, x, err := simplexFrom([]float64{1, 1}, a, []float64{-1}, []int{0})
	assert.ErrorIs(t, err, errNoBasis)
	assert.Nil(t, x)
}
