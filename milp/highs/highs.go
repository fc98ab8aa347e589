//go:build highs

package highs

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/lanl/highs"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/crnconj/milp"
)

// Solver submits models to HiGHS.
type Solver struct {
	log logrus.FieldLogger
}

var _ milp.Solver = (*Solver)(nil)

// New returns a HiGHS-backed solver. A nil logger discards progress.
func New(log logrus.FieldLogger) *Solver {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Solver{log: log}
}

// Convert translates m into a HiGHS model: one column per variable, one row
// per constraint with (RowLower, RowUpper) derived from the sense.
func Convert(m *milp.Model) *highs.Model {
	vars := m.Variables()
	hm := &highs.Model{
		Maximize: m.Maximize(),
		Offset:   m.Offset(),
		ColCosts: m.Cost(),
		ColLower: make([]float64, len(vars)),
		ColUpper: make([]float64, len(vars)),
		VarTypes: make([]highs.VariableType, len(vars)),
	}
	for j, v := range vars {
		hm.ColLower[j], hm.ColUpper[j] = v.Lower, v.Upper
		hm.VarTypes[j] = highs.ContinuousType
		if v.Kind.Integral() {
			hm.VarTypes[j] = highs.IntegerType
		}
	}

	for i, c := range m.Constraints() {
		lo, hi := math.Inf(-1), math.Inf(1)
		switch c.Sense {
		case milp.LessEq:
			hi = c.RHS
		case milp.GreaterEq:
			lo = c.RHS
		default:
			lo, hi = c.RHS, c.RHS
		}
		hm.RowLower = append(hm.RowLower, lo)
		hm.RowUpper = append(hm.RowUpper, hi)
		for _, t := range c.Terms {
			if t.Coef != 0 {
				hm.ConstMatrix = append(hm.ConstMatrix, highs.Nonzero{Row: i, Col: int(t.Var), Val: t.Coef})
			}
		}
	}

	return hm
}

// MapStatus folds the HiGHS model-status space onto milp.Status.
//
//	Optimal                           → Optimal
//	Infeasible, UnboundedOrInfeasible → Infeasible
//	Unbounded                         → Unbounded
//	TimeLimit                         → Error, reason "TimeLimit"
//	anything else                     → Error, reason = HiGHS status name
func MapStatus(s highs.ModelStatus) (milp.Status, string) {
	switch s {
	case highs.Optimal:
		return milp.Optimal, ""
	case highs.Infeasible, highs.UnboundedOrInfeasible:
		return milp.Infeasible, s.String()
	case highs.Unbounded:
		return milp.Unbounded, ""
	case highs.TimeLimit:
		return milp.Error, milp.ReasonTimeLimit
	default:
		return milp.Error, s.String()
	}
}

type outcome struct {
	sol highs.Solution
	err error
}

// Solve converts m, runs HiGHS and maps the result. The cgo call cannot be
// interrupted; on cancellation Solve returns immediately with Reason
// "Canceled" and the solve finishes in the background.
func (s *Solver) Solve(ctx context.Context, m *milp.Model) (*milp.Result, error) {
	hm := Convert(m)
	done := make(chan outcome, 1)
	go func() {
		sol, err := hm.Solve()
		done <- outcome{sol: sol, err: err}
	}()

	var out outcome
	select {
	case <-ctx.Done():
		return &milp.Result{Status: milp.Error, Reason: milp.ReasonCanceled}, nil
	case out = <-done:
	}
	if out.err != nil {
		return nil, fmt.Errorf("highs: %w", out.err)
	}

	status, reason := MapStatus(out.sol.Status)
	res := &milp.Result{Status: status, Reason: reason}
	if status == milp.Optimal {
		res.Values = append([]float64(nil), out.sol.ColumnPrimal...)
		res.Objective = out.sol.Objective
	}
	s.log.WithFields(logrus.Fields{
		"model":  m.Name(),
		"status": out.sol.Status.String(),
	}).Debug("highs finished")

	return res, nil
}
