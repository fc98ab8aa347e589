package milp

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownVar indicates a term that references a variable not declared in the model.
	ErrUnknownVar = errors.New("milp: unknown variable")

	// ErrBadBounds indicates lower > upper, NaN bounds, or binary bounds outside [0,1].
	ErrBadBounds = errors.New("milp: invalid variable bounds")

	// ErrNonFinite indicates a NaN or infinite coefficient or right-hand side.
	ErrNonFinite = errors.New("milp: non-finite coefficient")

	// ErrViolation is returned by Check for the first violated requirement.
	ErrViolation = errors.New("milp: constraint violated")

	// ErrValueCount indicates a value vector whose length differs from NumVars.
	ErrValueCount = errors.New("milp: value vector length mismatch")
)

// Var is the dense index of a declared variable.
type Var int

// VarKind is the domain of a variable.
type VarKind int

const (
	// Continuous variables take any real value within their bounds.
	Continuous VarKind = iota
	// Binary variables take 0 or 1.
	Binary
	// Integer variables take integral values within their bounds.
	Integer
)

// String returns the kind name.
func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("VarKind(%d)", int(k))
	}
}

// Integral reports whether the kind requires integral values.
func (k VarKind) Integral() bool { return k == Binary || k == Integer }

// Sense is the relation of a constraint row to its right-hand side.
type Sense int

const (
	// LessEq is Σ a·x ≤ rhs.
	LessEq Sense = iota
	// GreaterEq is Σ a·x ≥ rhs.
	GreaterEq
	// Equal is Σ a·x = rhs.
	Equal
)

// String returns the relation symbol.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Variable describes one declared variable.
type Variable struct {
	Name  string
	Kind  VarKind
	Lower float64 // may be -Inf
	Upper float64 // may be +Inf
}

// Term is one coefficient·variable product.
type Term struct {
	Var  Var
	Coef float64
}

// Constraint is a linear row Σ Terms (Sense) RHS tagged with a group.
type Constraint struct {
	Group string
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a mixed-integer linear program under construction.
// It is not safe for concurrent mutation.
type Model struct {
	name     string
	vars     []Variable
	cons     []Constraint
	cost     []float64 // objective coefficient per variable
	offset   float64
	maximize bool
	groups   map[string]int
	order    []string // group names in first-emission order
}

// NewModel returns an empty model (minimization, zero objective).
func NewModel(name string) *Model {
	return &Model{name: name, groups: make(map[string]int)}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// AddVar declares a variable and returns its index.
//
// Errors:
//   - ErrBadBounds when lo > hi, either bound is NaN, or a binary is not within [0,1].
func (m *Model) AddVar(name string, kind VarKind, lo, hi float64) (Var, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return -1, fmt.Errorf("AddVar %q [%g, %g]: %w", name, lo, hi, ErrBadBounds)
	}
	if kind == Binary && (lo < 0 || hi > 1) {
		return -1, fmt.Errorf("AddVar %q binary [%g, %g]: %w", name, lo, hi, ErrBadBounds)
	}
	m.vars = append(m.vars, Variable{Name: name, Kind: kind, Lower: lo, Upper: hi})
	m.cost = append(m.cost, 0)

	return Var(len(m.vars) - 1), nil
}

// AddContinuous declares a continuous variable on [lo, hi].
func (m *Model) AddContinuous(name string, lo, hi float64) (Var, error) {
	return m.AddVar(name, Continuous, lo, hi)
}

// AddFree declares an unbounded continuous variable.
func (m *Model) AddFree(name string) Var {
	v, _ := m.AddVar(name, Continuous, math.Inf(-1), math.Inf(1))
	return v
}

// AddBinary declares a 0/1 variable.
func (m *Model) AddBinary(name string) Var {
	v, _ := m.AddVar(name, Binary, 0, 1)
	return v
}

// checkTerms validates variable indices and coefficients.
func (m *Model) checkTerms(terms []Term) error {
	for _, t := range terms {
		if t.Var < 0 || int(t.Var) >= len(m.vars) {
			return fmt.Errorf("var %d: %w", t.Var, ErrUnknownVar)
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return fmt.Errorf("var %q coefficient %g: %w", m.vars[t.Var].Name, t.Coef, ErrNonFinite)
		}
	}

	return nil
}

// AddConstraint appends the row Σ terms (sense) rhs to the given group.
// The terms slice is copied.
func (m *Model) AddConstraint(group, name string, terms []Term, sense Sense, rhs float64) error {
	if err := m.checkTerms(terms); err != nil {
		return fmt.Errorf("AddConstraint %q: %w", name, err)
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return fmt.Errorf("AddConstraint %q rhs %g: %w", name, rhs, ErrNonFinite)
	}
	if _, ok := m.groups[group]; !ok {
		m.order = append(m.order, group)
	}
	m.groups[group]++
	m.cons = append(m.cons, Constraint{
		Group: group,
		Name:  name,
		Terms: append([]Term(nil), terms...),
		Sense: sense,
		RHS:   rhs,
	})

	return nil
}

// AddGatedRange emits the indicator encoding that forces x into {0} ∪ [lo, hi]
// according to the binary gate:
//
//	x ≥ 0
//	x − lo·gate ≥ 0
//	x − hi·gate ≤ 0
//
// With gate = 0 the last two rows pin x to 0; with gate = 1 they bound x to [lo, hi].
// Rows are named name+"/nonneg", name+"/lo", name+"/hi".
func (m *Model) AddGatedRange(group, name string, x, gate Var, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi || lo < 0 {
		return fmt.Errorf("AddGatedRange %q [%g, %g]: %w", name, lo, hi, ErrBadBounds)
	}
	if err := m.AddConstraint(group, name+"/nonneg", []Term{{x, 1}}, GreaterEq, 0); err != nil {
		return err
	}
	if err := m.AddConstraint(group, name+"/lo", []Term{{x, 1}, {gate, -lo}}, GreaterEq, 0); err != nil {
		return err
	}

	return m.AddConstraint(group, name+"/hi", []Term{{x, 1}, {gate, -hi}}, LessEq, 0)
}

// SetObjective replaces the objective with Σ terms and the given direction.
// Repeated variables accumulate.
func (m *Model) SetObjective(maximize bool, terms []Term) error {
	if err := m.checkTerms(terms); err != nil {
		return fmt.Errorf("SetObjective: %w", err)
	}
	for i := range m.cost {
		m.cost[i] = 0
	}
	for _, t := range terms {
		m.cost[t.Var] += t.Coef
	}
	m.maximize = maximize

	return nil
}

// SetOffset sets the constant added to the objective value.
func (m *Model) SetOffset(c float64) { m.offset = c }

// Maximize reports the objective direction.
func (m *Model) Maximize() bool { return m.maximize }

// Offset returns the objective constant.
func (m *Model) Offset() float64 { return m.offset }

// Cost returns a copy of the objective coefficient vector.
func (m *Model) Cost() []float64 { return append([]float64(nil), m.cost...) }

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of rows.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Variable returns the declaration of v.
func (m *Model) Variable(v Var) (Variable, error) {
	if v < 0 || int(v) >= len(m.vars) {
		return Variable{}, fmt.Errorf("var %d: %w", v, ErrUnknownVar)
	}

	return m.vars[v], nil
}

// Variables returns a copy of all declarations in index order.
func (m *Model) Variables() []Variable { return append([]Variable(nil), m.vars...) }

// Constraints returns a copy of all rows in emission order.
func (m *Model) Constraints() []Constraint {
	out := make([]Constraint, len(m.cons))
	for i, c := range m.cons {
		c.Terms = append([]Term(nil), c.Terms...)
		out[i] = c
	}

	return out
}

// CountGroup returns the number of rows emitted under group.
func (m *Model) CountGroup(group string) int { return m.groups[group] }

// Groups returns group names in first-emission order.
func (m *Model) Groups() []string { return append([]string(nil), m.order...) }

// IntegerVars returns the indices of binary and integer variables.
func (m *Model) IntegerVars() []Var {
	var out []Var
	for i, v := range m.vars {
		if v.Kind.Integral() {
			out = append(out, Var(i))
		}
	}

	return out
}
