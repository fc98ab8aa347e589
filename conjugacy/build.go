package conjugacy

import (
	"fmt"

	"github.com/katalvlaran/crnconj/crn"
	"github.com/katalvlaran/crnconj/milp"
)

// noVar marks the diagonal slots of the delta index map.
const noVar milp.Var = -1

// Formulation is the MILP of one (network, Params) pair together with dense
// index maps from matrix positions to model variables.
type Formulation struct {
	params Params
	m, n   int

	t     []milp.Var // n
	a     []milp.Var // m·m, row-major
	ah    []milp.Var // m·m, row-major
	delta []milp.Var // m·m, row-major; noVar on the diagonal

	model *milp.Model
}

// Build emits the formulation for net under p.
//
// Implementation:
//   - Stage 1: validate p and the network size.
//   - Stage 2: declare T, A, Ah, δ in that order.
//   - Stage 3: emit the equivalence, balance, activation and diagonal groups.
//   - Stage 4: set the objective maximize −Σδ.
//
// Emission order is fixed, so equal inputs give identical models.
//
// Errors:
//   - ErrInvalidParameters for m = 0, n = 0 or an invalid p.
//
// Complexity: O(n·m² + m²) rows and terms.
func Build(net *crn.Network, p Params) (*Formulation, error) {
	// Stage 1
	if net == nil {
		return nil, fmt.Errorf("Build: nil network: %w", ErrInvalidParameters)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	m, n := net.ComplexCount(), net.SpeciesCount()
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("Build: %d species, %d complexes: %w", n, m, ErrInvalidParameters)
	}

	// Stage 2
	f := &Formulation{
		params: p,
		m:      m,
		n:      n,
		t:      make([]milp.Var, n),
		a:      make([]milp.Var, m*m),
		ah:     make([]milp.Var, m*m),
		delta:  make([]milp.Var, m*m),
		model:  milp.NewModel(fmt.Sprintf("conjugacy(n=%d,m=%d)", n, m)),
	}
	md := f.model
	var err error
	for i := 0; i < n; i++ {
		if f.t[i], err = md.AddContinuous(fmt.Sprintf("T[%d]", i), p.Eps, p.UBound); err != nil {
			return nil, err
		}
	}
	for k := range f.a {
		f.a[k] = md.AddFree(fmt.Sprintf("A[%d,%d]", k/m, k%m))
	}
	for k := range f.ah {
		f.ah[k] = md.AddFree(fmt.Sprintf("Ah[%d,%d]", k/m, k%m))
	}
	for k := range f.delta {
		if k/m == k%m {
			f.delta[k] = noVar
			continue
		}
		f.delta[k] = md.AddBinary(fmt.Sprintf("delta[%d,%d]", k/m, k%m))
	}

	// Stage 3
	if err = f.emitEquivalence(net); err != nil {
		return nil, err
	}
	if err = f.emitBalance(); err != nil {
		return nil, err
	}
	if err = f.emitActivation(); err != nil {
		return nil, err
	}
	if err = f.emitDiagonal(); err != nil {
		return nil, err
	}

	// Stage 4
	obj := make([]milp.Term, 0, m*(m-1))
	for _, d := range f.delta {
		if d != noVar {
			obj = append(obj, milp.Term{Var: d, Coef: -1})
		}
	}
	if err = md.SetObjective(true, obj); err != nil {
		return nil, err
	}

	return f, nil
}

// emitEquivalence: Σ_k Y[i,k]·A[k,j] − M[i,j]·T[i] = 0 for every (i, j).
// A species absent from every complex still yields its (empty) rows.
func (f *Formulation) emitEquivalence(net *crn.Network) error {
	y, flux := net.ComplexMatrix(), net.FluxMatrix()
	var yik, mij float64
	for i := 0; i < f.n; i++ {
		for j := 0; j < f.m; j++ {
			terms := make([]milp.Term, 0, f.m+1)
			for k := 0; k < f.m; k++ {
				if yik, _ = y.At(i, k); yik != 0 {
					terms = append(terms, milp.Term{Var: f.A(k, j), Coef: yik})
				}
			}
			if mij, _ = flux.At(i, j); mij != 0 {
				terms = append(terms, milp.Term{Var: f.t[i], Coef: -mij})
			}
			if err := f.model.AddConstraint(GroupEquivalence, fmt.Sprintf("eq[%d,%d]", i, j), terms, milp.Equal, 0); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitBalance: column sums of A, then column sums of Ah, then row sums of Ah.
func (f *Formulation) emitBalance() error {
	sums := []struct {
		name string
		at   func(k, j int) milp.Var
	}{
		{"colsum(A)", func(k, j int) milp.Var { return f.A(k, j) }},
		{"colsum(Ah)", func(k, j int) milp.Var { return f.Ah(k, j) }},
		{"rowsum(Ah)", func(k, j int) milp.Var { return f.Ah(j, k) }},
	}
	for _, s := range sums {
		for j := 0; j < f.m; j++ {
			terms := make([]milp.Term, f.m)
			for k := 0; k < f.m; k++ {
				terms[k] = milp.Term{Var: s.at(k, j), Coef: 1}
			}
			if err := f.model.AddConstraint(GroupBalance, fmt.Sprintf("%s[%d]", s.name, j), terms, milp.Equal, 0); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitActivation gates every off-diagonal A and Ah entry by its δ.
func (f *Formulation) emitActivation() error {
	var d milp.Var
	var err error
	for i := 0; i < f.m; i++ {
		for j := 0; j < f.m; j++ {
			if i == j {
				continue
			}
			d = f.delta[i*f.m+j]
			if err = f.model.AddGatedRange(GroupActivation, fmt.Sprintf("A[%d,%d]", i, j), f.A(i, j), d, f.params.Eps, f.params.UBound); err != nil {
				return err
			}
			if err = f.model.AddGatedRange(GroupActivation, fmt.Sprintf("Ah[%d,%d]", i, j), f.Ah(i, j), d, f.params.Eps, f.params.UBound); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitDiagonal: A[j,j] ≤ 0 and Ah[j,j] ≤ 0.
func (f *Formulation) emitDiagonal() error {
	for j := 0; j < f.m; j++ {
		if err := f.model.AddConstraint(GroupDiagonal, fmt.Sprintf("diag(A)[%d]", j), []milp.Term{{Var: f.A(j, j), Coef: 1}}, milp.LessEq, 0); err != nil {
			return err
		}
		if err := f.model.AddConstraint(GroupDiagonal, fmt.Sprintf("diag(Ah)[%d]", j), []milp.Term{{Var: f.Ah(j, j), Coef: 1}}, milp.LessEq, 0); err != nil {
			return err
		}
	}

	return nil
}

// Model returns the underlying MILP. Callers must not mutate it.
func (f *Formulation) Model() *milp.Model { return f.model }

// Params returns the interval the formulation was built with.
func (f *Formulation) Params() Params { return f.params }

// ComplexCount returns m.
func (f *Formulation) ComplexCount() int { return f.m }

// SpeciesCount returns n.
func (f *Formulation) SpeciesCount() int { return f.n }

// T returns the variable of the i-th scaling entry.
func (f *Formulation) T(i int) milp.Var { return f.t[i] }

// A returns the variable of the conjugate entry (i, j).
func (f *Formulation) A(i, j int) milp.Var { return f.a[i*f.m+j] }

// Ah returns the variable of the witness entry (i, j).
func (f *Formulation) Ah(i, j int) milp.Var { return f.ah[i*f.m+j] }

// Delta returns the activation binary of (i, j); ok is false on the diagonal.
func (f *Formulation) Delta(i, j int) (v milp.Var, ok bool) {
	v = f.delta[i*f.m+j]
	return v, v != noVar
}

// Counts returns the number of rows per constraint group.
func (f *Formulation) Counts() map[string]int {
	out := make(map[string]int, 4)
	for _, g := range []string{GroupEquivalence, GroupBalance, GroupActivation, GroupDiagonal} {
		out[g] = f.model.CountGroup(g)
	}

	return out
}
