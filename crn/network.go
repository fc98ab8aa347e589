package crn

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/crnconj/linkage"
	"github.com/katalvlaran/crnconj/matrix"
)

// Network is an immutable chemical reaction network: complex matrix Y (n×m),
// kinetic matrix Ak (m×m) and the derived flux matrix M = Y·Ak (n×m).
type Network struct {
	species   []string
	complexes []string
	y         *matrix.Dense
	ak        *matrix.Dense
	flux      *matrix.Dense
}

// New builds a Network from Y and Ak, copying both.
//
// Implementation:
//   - Stage 1: nil checks, Ak square, Y.Cols == Ak.Rows (else ErrDimensionMismatch).
//   - Stage 2: apply label options and validate their counts.
//   - Stage 3: copy inputs and compute M = Y·Ak.
//
// Zero-sized networks are representable; parameter validation rejects them later.
func New(y, ak matrix.Matrix, opts ...Option) (*Network, error) {
	if err := matrix.ValidateNotNil(y); err != nil {
		return nil, fmt.Errorf("crn.New: complex matrix: %w", err)
	}
	if err := matrix.ValidateNotNil(ak); err != nil {
		return nil, fmt.Errorf("crn.New: kinetic matrix: %w", err)
	}
	if ak.Rows() != ak.Cols() {
		return nil, fmt.Errorf("crn.New: kinetic matrix is %dx%d: %w", ak.Rows(), ak.Cols(), ErrDimensionMismatch)
	}
	if y.Cols() != ak.Rows() {
		return nil, fmt.Errorf("crn.New: complex matrix has %d columns, kinetic matrix has %d rows: %w",
			y.Cols(), ak.Rows(), ErrDimensionMismatch)
	}

	n, m := y.Rows(), ak.Rows()
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Species == nil {
		o.Species = defaultLabels("X", n)
	}
	if o.Complexes == nil {
		o.Complexes = defaultLabels("C", m)
	}
	if err := checkLabels("species", o.Species, n); err != nil {
		return nil, err
	}
	if err := checkLabels("complexes", o.Complexes, m); err != nil {
		return nil, err
	}

	yd, err := copyDense(y)
	if err != nil {
		return nil, fmt.Errorf("crn.New: %w", err)
	}
	akd, err := copyDense(ak)
	if err != nil {
		return nil, fmt.Errorf("crn.New: %w", err)
	}
	flux, err := matrix.Mul(yd, akd)
	if err != nil {
		return nil, fmt.Errorf("crn.New: flux: %w", err)
	}

	return &Network{
		species:   o.Species,
		complexes: o.Complexes,
		y:         yd,
		ak:        akd,
		flux:      flux,
	}, nil
}

// FromRows builds a Network from literal row slices.
// Ragged rows are reported as ErrDimensionMismatch.
func FromRows(y, ak [][]float64, opts ...Option) (*Network, error) {
	yd, err := matrix.FromRows(y)
	if err != nil {
		return nil, fmt.Errorf("crn.FromRows: complex matrix: %w: %w", ErrDimensionMismatch, err)
	}
	akd, err := matrix.FromRows(ak)
	if err != nil {
		return nil, fmt.Errorf("crn.FromRows: kinetic matrix: %w: %w", ErrDimensionMismatch, err)
	}

	return New(yd, akd, opts...)
}

// copyDense returns a private *matrix.Dense copy of any Matrix.
func copyDense(src matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := src.(*matrix.Dense); ok {
		return d.Clone().(*matrix.Dense), nil
	}
	rows := make([][]float64, src.Rows())
	var i, j int
	var err error
	for i = range rows {
		rows[i] = make([]float64, src.Cols())
		for j = range rows[i] {
			if rows[i][j], err = src.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	return matrix.FromRows(rows)
}

// ComplexCount returns m.
func (n *Network) ComplexCount() int { return n.ak.Rows() }

// SpeciesCount returns n.
func (n *Network) SpeciesCount() int { return n.y.Rows() }

// ComplexMatrix returns a copy of Y (n×m).
func (n *Network) ComplexMatrix() *matrix.Dense { return n.y.Clone().(*matrix.Dense) }

// KineticMatrix returns a copy of Ak (m×m).
func (n *Network) KineticMatrix() *matrix.Dense { return n.ak.Clone().(*matrix.Dense) }

// FluxMatrix returns a copy of M = Y·Ak (n×m).
func (n *Network) FluxMatrix() *matrix.Dense { return n.flux.Clone().(*matrix.Dense) }

// Species returns the species names.
func (n *Network) Species() []string { return append([]string(nil), n.species...) }

// Complexes returns the complex labels.
func (n *Network) Complexes() []string { return append([]string(nil), n.complexes...) }

// Graph returns the reaction graph induced by Ak.
func (n *Network) Graph(opts ...linkage.Option) (*linkage.Graph, error) {
	return linkage.FromKinetic(n.ak, opts...)
}

// Analyze reports linkage classes, weak reversibility and deficiency of the network.
func (n *Network) Analyze(opts ...linkage.Option) (*linkage.Report, error) {
	g, err := n.Graph(opts...)
	if err != nil {
		return nil, err
	}

	return linkage.Analyze(g, n.y)
}

// FormatComplex renders column j of Y as a sum of species, e.g. "X1 + 2 X2".
// The empty complex renders as "0".
func (n *Network) FormatComplex(j int) string {
	var terms []string
	var v float64
	for i := 0; i < n.y.Rows(); i++ {
		v, _ = n.y.At(i, j)
		switch {
		case v == 0:
			continue
		case v == 1:
			terms = append(terms, n.species[i])
		default:
			terms = append(terms, fmt.Sprintf("%g %s", v, n.species[i]))
		}
	}
	if len(terms) == 0 {
		return "0"
	}

	return strings.Join(terms, " + ")
}

// Reactions renders the reactions encoded by a kinetic matrix k over this
// network's complexes, one "lhs ->(rate) rhs" line per edge. Passing nil
// renders the network's own Ak.
func (n *Network) Reactions(k matrix.Matrix, opts ...linkage.Option) ([]string, error) {
	if k == nil {
		k = n.ak
	}
	if k.Rows() != n.ComplexCount() || k.Cols() != n.ComplexCount() {
		return nil, fmt.Errorf("crn.Reactions: %dx%d matrix over %d complexes: %w",
			k.Rows(), k.Cols(), n.ComplexCount(), ErrDimensionMismatch)
	}
	g, err := linkage.FromKinetic(k, opts...)
	if err != nil {
		return nil, err
	}
	edges := g.Edges()
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, fmt.Sprintf("%s ->(%g) %s", n.FormatComplex(e.From), e.Rate, n.FormatComplex(e.To)))
	}

	return out, nil
}
