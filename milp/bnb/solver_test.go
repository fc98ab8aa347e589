package bnb_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnconj/milp"
	"github.com/katalvlaran/crnconj/milp/bnb"
)

const checkTol = 1e-6

func mustSolver(t *testing.T, opts ...bnb.Option) *bnb.Solver {
	t.Helper()
	s, err := bnb.New(opts...)
	require.NoError(t, err)

	return s
}

func mustIntVar(t *testing.T, m *milp.Model, name string) milp.Var {
	t.Helper()
	v, err := m.AddVar(name, milp.Integer, 0, math.Inf(1))
	require.NoError(t, err)

	return v
}

func mustRow(t *testing.T, m *milp.Model, name string, terms []milp.Term, sense milp.Sense, rhs float64) {
	t.Helper()
	require.NoError(t, m.AddConstraint("rows", name, terms, sense, rhs))
}

// TestPureInteger: max x + y s.t. 2x + 2y ≤ 3 has LP value 1.5 and MILP value 1.
func TestPureInteger(t *testing.T) {
	m := milp.NewModel("pure")
	x := mustIntVar(t, m, "x")
	y := mustIntVar(t, m, "y")
	mustRow(t, m, "cap", []milp.Term{{Var: x, Coef: 2}, {Var: y, Coef: 2}}, milp.LessEq, 3)
	require.NoError(t, m.SetObjective(true, []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}))

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	assert.InDelta(t, 1.0, res.Objective, checkTol)
	require.NoError(t, m.Check(res.Values, checkTol))
	assert.Greater(t, res.Nodes, 1)
}

// TestMixedInteger: min −x − 2y, x + y ≤ 3.5, y ≤ 2.5, y integer ⇒ y = 2, x = 1.5.
func TestMixedInteger(t *testing.T) {
	m := milp.NewModel("mixed")
	x, err := m.AddContinuous("x", 0, math.Inf(1))
	require.NoError(t, err)
	y := mustIntVar(t, m, "y")
	mustRow(t, m, "sum", []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, milp.LessEq, 3.5)
	mustRow(t, m, "ycap", []milp.Term{{Var: y, Coef: 1}}, milp.LessEq, 2.5)
	require.NoError(t, m.SetObjective(false, []milp.Term{{Var: x, Coef: -1}, {Var: y, Coef: -2}}))

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	assert.InDelta(t, -5.5, res.Objective, checkTol)
	assert.InDelta(t, 1.5, res.Values[x], checkTol)
	assert.Equal(t, 2.0, res.Values[y])
}

// TestFreeVariableAndBounds: min x s.t. x − y = −3, y ∈ [1, 4] ⇒ x = −2.
func TestFreeVariableAndBounds(t *testing.T) {
	m := milp.NewModel("free")
	x := m.AddFree("x")
	y, err := m.AddContinuous("y", 1, 4)
	require.NoError(t, err)
	mustRow(t, m, "link", []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: -1}}, milp.Equal, -3)
	require.NoError(t, m.SetObjective(false, []milp.Term{{Var: x, Coef: 1}}))

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	assert.InDelta(t, -2.0, res.Values[x], checkTol)
	assert.InDelta(t, 1.0, res.Values[y], checkTol)
}

// TestUpperBoundedOnly covers the reflected mapping x = hi − y.
func TestUpperBoundedOnly(t *testing.T) {
	m := milp.NewModel("reflect")
	x, err := m.AddContinuous("x", math.Inf(-1), 0)
	require.NoError(t, err)
	mustRow(t, m, "floor", []milp.Term{{Var: x, Coef: 1}}, milp.GreaterEq, -7)
	require.NoError(t, m.SetObjective(false, []milp.Term{{Var: x, Coef: 1}}))

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	assert.InDelta(t, -7.0, res.Values[x], checkTol)
}

// TestRedundantEqualities checks the presolve on dependent and inconsistent rows.
func TestRedundantEqualities(t *testing.T) {
	build := func(rhs2 float64) *milp.Model {
		m := milp.NewModel("redundant")
		x, _ := m.AddContinuous("x", 0, math.Inf(1))
		y, _ := m.AddContinuous("y", 0, math.Inf(1))
		mustRow(t, m, "r1", []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, milp.Equal, 2)
		mustRow(t, m, "r2", []milp.Term{{Var: x, Coef: 2}, {Var: y, Coef: 2}}, milp.Equal, rhs2)
		require.NoError(t, m.SetObjective(false, []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: -1}}))
		return m
	}

	res, err := mustSolver(t).Solve(context.Background(), build(4))
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	assert.InDelta(t, -2.0, res.Objective, checkTol)

	res, err = mustSolver(t).Solve(context.Background(), build(5))
	require.NoError(t, err)
	assert.Equal(t, milp.Infeasible, res.Status)
	assert.Nil(t, res.Values)
}

// TestIntegerInfeasible: 2b = 1 has an LP solution but no binary one.
func TestIntegerInfeasible(t *testing.T) {
	m := milp.NewModel("parity")
	b := m.AddBinary("b")
	mustRow(t, m, "half", []milp.Term{{Var: b, Coef: 2}}, milp.Equal, 1)

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, milp.Infeasible, res.Status)
	assert.Equal(t, 3, res.Nodes)
}

// TestLPInfeasible: x ≥ 2 and x ≤ 1.
func TestLPInfeasible(t *testing.T) {
	m := milp.NewModel("empty")
	x, _ := m.AddContinuous("x", 0, 10)
	mustRow(t, m, "lo", []milp.Term{{Var: x, Coef: 1}}, milp.GreaterEq, 2)
	mustRow(t, m, "hi", []milp.Term{{Var: x, Coef: 1}}, milp.LessEq, 1)

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, milp.Infeasible, res.Status)
}

// TestUnbounded: max x with x ≥ 0 and nothing else.
func TestUnbounded(t *testing.T) {
	m := milp.NewModel("ray")
	x, _ := m.AddContinuous("x", 0, math.Inf(1))
	require.NoError(t, m.SetObjective(true, []milp.Term{{Var: x, Coef: 1}}))

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, milp.Unbounded, res.Status)
}

// TestUnboundedThroughRows: max x s.t. x − y ≤ 1 escapes along x = y, so
// the unbounded verdict comes from the simplex, not from an empty column.
func TestUnboundedThroughRows(t *testing.T) {
	m := milp.NewModel("diagonal")
	x, _ := m.AddContinuous("x", 0, math.Inf(1))
	y, _ := m.AddContinuous("y", 0, math.Inf(1))
	mustRow(t, m, "gap", []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: -1}}, milp.LessEq, 1)
	require.NoError(t, m.SetObjective(true, []milp.Term{{Var: x, Coef: 1}}))

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, milp.Unbounded, res.Status)
}

// TestBoundedObjectiveNeverUnbounded: maximising −Σb over binaries gated by
// free continuous variables, the shape of a sparsity objective, must end
// Optimal whatever the gating rows look like.
func TestBoundedObjectiveNeverUnbounded(t *testing.T) {
	m := milp.NewModel("gated")
	var obj []milp.Term
	for i, rhs := range []float64{0, 0.5, 2} {
		x, err := m.AddContinuous(fmt.Sprintf("x%d", i), math.Inf(-1), math.Inf(1))
		require.NoError(t, err)
		b := m.AddBinary(fmt.Sprintf("b%d", i))
		mustRow(t, m, fmt.Sprintf("hi%d", i), []milp.Term{{Var: x, Coef: 1}, {Var: b, Coef: -3}}, milp.LessEq, 0)
		mustRow(t, m, fmt.Sprintf("lo%d", i), []milp.Term{{Var: x, Coef: 1}, {Var: b, Coef: -0.25}}, milp.GreaterEq, 0)
		mustRow(t, m, fmt.Sprintf("fix%d", i), []milp.Term{{Var: x, Coef: 1}}, milp.Equal, rhs)
		obj = append(obj, milp.Term{Var: b, Coef: -1})
	}
	require.NoError(t, m.SetObjective(true, obj))

	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	assert.InDelta(t, -2.0, res.Objective, checkTol)
	require.NoError(t, m.Check(res.Values, checkTol))
}

func TestLimitsAndCancellation(t *testing.T) {
	build := func() *milp.Model {
		m := milp.NewModel("limits")
		x := mustIntVar(t, m, "x")
		y := mustIntVar(t, m, "y")
		mustRow(t, m, "cap", []milp.Term{{Var: x, Coef: 2}, {Var: y, Coef: 2}}, milp.LessEq, 3)
		require.NoError(t, m.SetObjective(true, []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}))
		return m
	}

	res, err := mustSolver(t, bnb.WithNodeLimit(1)).Solve(context.Background(), build())
	require.NoError(t, err)
	assert.Equal(t, milp.Error, res.Status)
	assert.Equal(t, milp.ReasonNodeLimit, res.Reason)
	assert.Equal(t, 1, res.Nodes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err = mustSolver(t).Solve(ctx, build())
	require.NoError(t, err)
	assert.Equal(t, milp.Error, res.Status)
	assert.Equal(t, milp.ReasonCanceled, res.Reason)
	assert.Zero(t, res.Nodes)
}

func TestOptionValidation(t *testing.T) {
	for name, opt := range map[string]bnb.Option{
		"tolerance":   bnb.WithTolerance(0),
		"integrality": bnb.WithIntegralityTolerance(0.5),
		"nodes":       bnb.WithNodeLimit(-1),
		"time":        bnb.WithTimeLimit(-time.Second),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := bnb.New(opt)
			require.ErrorIs(t, err, bnb.ErrOptionViolation)
		})
	}
}

func TestEmptyModel(t *testing.T) {
	m := milp.NewModel("nothing")
	m.SetOffset(4)
	res, err := mustSolver(t).Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, milp.Optimal, res.Status)
	assert.Equal(t, 4.0, res.Objective)
}
