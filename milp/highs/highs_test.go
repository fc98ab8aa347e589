//go:build highs

package highs_test

import (
	"context"
	"math"
	"testing"

	lanl "github.com/lanl/highs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnconj/milp"
	"github.com/katalvlaran/crnconj/milp/highs"
)

func TestConvertRowsAndTypes(t *testing.T) {
	m := milp.NewModel("convert")
	x, err := m.AddContinuous("x", 0, math.Inf(1))
	require.NoError(t, err)
	b := m.AddBinary("b")
	require.NoError(t, m.AddGatedRange("g", "x", x, b, 1, 5))
	require.NoError(t, m.SetObjective(false, []milp.Term{{Var: b, Coef: 1}}))

	hm := highs.Convert(m)
	assert.Equal(t, []lanl.VariableType{lanl.ContinuousType, lanl.IntegerType}, hm.VarTypes)
	assert.Equal(t, []float64{0, 0, math.Inf(-1)}, hm.RowLower)
	assert.Equal(t, []float64{math.Inf(1), math.Inf(1), 0}, hm.RowUpper)
	assert.Len(t, hm.ConstMatrix, 5)
}

func TestMapStatus(t *testing.T) {
	for s, want := range map[lanl.ModelStatus]milp.Status{
		lanl.Optimal:               milp.Optimal,
		lanl.Infeasible:            milp.Infeasible,
		lanl.UnboundedOrInfeasible: milp.Infeasible,
		lanl.Unbounded:             milp.Unbounded,
		lanl.TimeLimit:             milp.Error,
	} {
		got, _ := highs.MapStatus(s)
		assert.Equal(t, want, got, s.String())
	}
}

func TestSolveSmallMIP(t *testing.T) {
	m := milp.NewModel("small")
	x, _ := m.AddVar("x", milp.Integer, 0, math.Inf(1))
	y, _ := m.AddVar("y", milp.Integer, 0, math.Inf(1))
	require.NoError(t, m.AddConstraint("r", "cap", []milp.Term{{Var: x, Coef: 2}, {Var: y, Coef: 2}}, milp.LessEq, 3))
	require.NoError(t, m.SetObjective(true, []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}))

	res, err := highs.New(nil).Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	assert.InDelta(t, 1.0, res.Objective, 1e-6)
	require.NoError(t, m.Check(res.Values, 1e-6))
}
