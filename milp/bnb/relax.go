package bnb

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crnconj/milp"
)

const (
	// zeroCoef: assembled coefficients at or below this magnitude are treated as 0.
	zeroCoef = 1e-12
	// depTol: relative residual below which an equality row is dependent.
	depTol = 1e-9
	// rhsTol: relative residual of a dependent row's rhs that still counts as consistent.
	rhsTol = 1e-7
	// simplexTol is passed to lp.Simplex as the reduced-cost threshold.
	simplexTol = 1e-10
)

type relaxStatus int

const (
	relaxOptimal relaxStatus = iota
	relaxInfeasible
	relaxUnbounded
	relaxError
)

// relaxation is the outcome of one LP relaxation.
type relaxation struct {
	status relaxStatus
	x      []float64 // model-space values when optimal
	z      float64   // minimisation-sense objective when optimal
	err    error
}

// problem is the static, minimisation-sense image of a milp.Model.
type problem struct {
	n       int
	cost    []float64
	rows    []milp.Constraint
	lower   []float64
	upper   []float64
	integer []bool
}

// newProblem snapshots m; maximisation is turned into minimisation of −c.
func newProblem(m *milp.Model) *problem {
	vars := m.Variables()
	p := &problem{
		n:       len(vars),
		cost:    m.Cost(),
		rows:    m.Constraints(),
		lower:   make([]float64, len(vars)),
		upper:   make([]float64, len(vars)),
		integer: make([]bool, len(vars)),
	}
	if m.Maximize() {
		for i := range p.cost {
			p.cost[i] = -p.cost[i]
		}
	}
	for i, v := range vars {
		p.lower[i], p.upper[i] = v.Lower, v.Upper
		if v.Kind.Integral() {
			p.integer[i] = true
			p.lower[i] = math.Ceil(v.Lower - defaultIntegralityTolerance)
			p.upper[i] = math.Floor(v.Upper + defaultIntegralityTolerance)
		}
	}

	return p
}

type mapKind int

const (
	mapFixed   mapKind = iota // x = base
	mapShift                  // x = base + y
	mapReflect                // x = base − y
	mapSplit                  // x = y⁺ − y⁻
)

// varMap locates a model variable among the standard-form columns.
type varMap struct {
	kind      mapKind
	base      float64
	col, col2 int
}

// lpRow is one assembled row a·y (sense) b over standard-form columns.
type lpRow struct {
	a []float64
	b float64
}

// colBound is the row y[col] ≤ ub of a shifted variable with a finite upper bound.
type colBound struct {
	col int
	ub  float64
}

// relax solves the LP relaxation of p under the node bounds lo, hi.
//
// Implementation:
//   - Stage 1: map every variable onto non-negative columns (fix, shift, reflect, split).
//   - Stage 2: assemble equality and ≤ rows, folding constants into the rhs.
//   - Stage 3: drop empty rows (or prove infeasibility) and reduce equality
//     rows to an independent subset.
//   - Stage 4: resolve empty columns (unbounded or zero) and compact.
//   - Stage 5: append slacks, run the two-phase simplex, map y back to x.
//
// Complexity: O(R·Y²) for the presolve plus the simplex itself.
func (p *problem) relax(lo, hi []float64, tol float64) relaxation {
	// Stage 1
	maps := make([]varMap, p.n)
	ny := 0
	var le []lpRow
	var bounds []colBound // appended as rows once ny is known
	for j := 0; j < p.n; j++ {
		l, h := lo[j], hi[j]
		if l > h+tol {
			return relaxation{status: relaxInfeasible}
		}
		switch {
		case !math.IsInf(l, 0) && h-l <= tol:
			maps[j] = varMap{kind: mapFixed, base: l}
		case !math.IsInf(l, -1):
			maps[j] = varMap{kind: mapShift, base: l, col: ny}
			if !math.IsInf(h, 1) {
				bounds = append(bounds, colBound{col: ny, ub: h - l})
			}
			ny++
		case !math.IsInf(h, 1):
			maps[j] = varMap{kind: mapReflect, base: h, col: ny}
			ny++
		default:
			maps[j] = varMap{kind: mapSplit, col: ny, col2: ny + 1}
			ny += 2
		}
	}

	// Stage 2
	var eq []lpRow
	for _, c := range p.rows {
		r := lpRow{a: make([]float64, ny), b: c.RHS}
		for _, t := range c.Terms {
			vm := maps[t.Var]
			switch vm.kind {
			case mapFixed:
				r.b -= t.Coef * vm.base
			case mapShift:
				r.b -= t.Coef * vm.base
				r.a[vm.col] += t.Coef
			case mapReflect:
				r.b -= t.Coef * vm.base
				r.a[vm.col] -= t.Coef
			default:
				r.a[vm.col] += t.Coef
				r.a[vm.col2] -= t.Coef
			}
		}
		switch c.Sense {
		case milp.Equal:
			eq = append(eq, r)
		case milp.GreaterEq:
			for k := range r.a {
				r.a[k] = -r.a[k]
			}
			r.b = -r.b
			le = append(le, r)
		default:
			le = append(le, r)
		}
	}
	for _, bd := range bounds {
		r := lpRow{a: make([]float64, ny), b: bd.ub}
		r.a[bd.col] = 1
		le = append(le, r)
	}

	cy := make([]float64, ny)
	for j, c := range p.cost {
		vm := maps[j]
		switch vm.kind {
		case mapShift:
			cy[vm.col] += c
		case mapReflect:
			cy[vm.col] -= c
		case mapSplit:
			cy[vm.col] += c
			cy[vm.col2] -= c
		}
	}

	// Stage 3
	var ok bool
	if le, ok = dropEmptyRows(le, false, tol); !ok {
		return relaxation{status: relaxInfeasible}
	}
	if eq, ok = dropEmptyRows(eq, true, tol); !ok {
		return relaxation{status: relaxInfeasible}
	}
	if eq, ok = independentRows(eq); !ok {
		return relaxation{status: relaxInfeasible}
	}

	// Stage 4
	used := make([]bool, ny)
	for _, rs := range [][]lpRow{eq, le} {
		for _, r := range rs {
			for k, v := range r.a {
				if v != 0 {
					used[k] = true
				}
			}
		}
	}
	colOf := make([]int, ny)
	nu := 0
	for k := 0; k < ny; k++ {
		if !used[k] {
			if cy[k] < -tol {
				return relaxation{status: relaxUnbounded}
			}
			colOf[k] = -1
			continue
		}
		colOf[k] = nu
		nu++
	}

	// Stage 5
	y := make([]float64, ny)
	rows := len(eq) + len(le)
	if rows > 0 {
		cols := nu + len(le)
		data := make([]float64, rows*cols)
		b := make([]float64, rows)
		c := make([]float64, cols)
		for k := 0; k < ny; k++ {
			if colOf[k] >= 0 {
				c[colOf[k]] = cy[k]
			}
		}
		for i, r := range append(append([]lpRow(nil), eq...), le...) {
			for k, v := range r.a {
				if v != 0 {
					data[i*cols+colOf[k]] = v
				}
			}
			b[i] = r.b
			if i >= len(eq) {
				data[i*cols+nu+i-len(eq)] = 1 // slack
			}
		}

		sol, st, err := solveStandard(c, mat.NewDense(rows, cols, data), b, tol)
		if st != relaxOptimal {
			return relaxation{status: st, err: err}
		}
		for k := 0; k < ny; k++ {
			if colOf[k] >= 0 {
				y[k] = math.Max(0, sol[colOf[k]])
			}
		}
	}

	x := make([]float64, p.n)
	z := 0.0
	for j, vm := range maps {
		switch vm.kind {
		case mapFixed:
			x[j] = vm.base
		case mapShift:
			x[j] = vm.base + y[vm.col]
		case mapReflect:
			x[j] = vm.base - y[vm.col]
		default:
			x[j] = y[vm.col] - y[vm.col2]
		}
		z += p.cost[j] * x[j]
	}

	return relaxation{status: relaxOptimal, x: x, z: z}
}

// solveStandard solves min cᵀy, Ay = b, y ≥ 0. A has full row rank and no
// empty rows or columns.
//
// Rows are first scaled to unit max-norm with b ≥ 0. A numerical failure of
// the two-phase simplex is retried once with the columns reversed, which
// changes both the rebuilt bases and the pivot tie-breaks, before it is
// reported as relaxError. An unbounded phase 2 is only believed when a
// descent ray confirms it.
func solveStandard(c []float64, a *mat.Dense, b []float64, tol float64) ([]float64, relaxStatus, error) {
	a, b = equilibrate(a, b)

	y, st, err := twoPhase(c, a, b, tol)
	if st == relaxError {
		rc, ra := reverseCols(c, a)
		var ry []float64
		if ry, st, err = twoPhase(rc, ra, b, tol); st == relaxOptimal {
			y = make([]float64, len(ry))
			for j, v := range ry {
				y[len(ry)-1-j] = v
			}
		}
	}
	if st == relaxUnbounded && !descentRay(c, a, tol) {
		return nil, relaxError, errors.New("phase 2 reported unbounded without a descent ray")
	}
	if st != relaxOptimal {
		return nil, st, err
	}

	return y, relaxOptimal, nil
}

// dropEmptyRows removes rows whose coefficients all vanish. It reports false
// when such a row is inconsistent (0 = b ≠ 0, or 0 ≤ b < 0).
func dropEmptyRows(rows []lpRow, equality bool, tol float64) ([]lpRow, bool) {
	out := rows[:0]
	for _, r := range rows {
		empty := true
		for k, v := range r.a {
			if math.Abs(v) <= zeroCoef {
				r.a[k] = 0
				continue
			}
			empty = false
		}
		if !empty {
			out = append(out, r)
			continue
		}
		if equality && math.Abs(r.b) > tol {
			return nil, false
		}
		if !equality && r.b < -tol {
			return nil, false
		}
	}

	return out, true
}

// independentRows keeps a maximal linearly independent subset of equality
// rows using incremental Gaussian elimination with partial pivoting. A
// dependent row whose rhs does not reduce to zero proves infeasibility.
func independentRows(rows []lpRow) ([]lpRow, bool) {
	type reduced struct {
		a     []float64
		b     float64
		pivot int
	}
	var basis []reduced
	kept := rows[:0]

	for _, r := range rows {
		a := append([]float64(nil), r.a...)
		b := r.b
		scale, bscale := 0.0, math.Abs(r.b)
		for _, v := range a {
			scale = math.Max(scale, math.Abs(v))
		}
		for _, q := range basis {
			f := a[q.pivot] / q.a[q.pivot]
			if f == 0 {
				continue
			}
			for k := range a {
				a[k] -= f * q.a[k]
			}
			b -= f * q.b
		}

		pivot, best := -1, depTol*math.Max(1, scale)
		for k, v := range a {
			if math.Abs(v) > best {
				pivot, best = k, math.Abs(v)
			}
		}
		if pivot < 0 {
			if math.Abs(b) > rhsTol*math.Max(1, bscale) {
				return nil, false
			}
			continue
		}
		basis = append(basis, reduced{a: a, b: b, pivot: pivot})
		kept = append(kept, r)
	}

	return kept, true
}
