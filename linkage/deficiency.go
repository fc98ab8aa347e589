package linkage

import (
	"fmt"

	"github.com/katalvlaran/crnconj/matrix"
)

// StoichiometricRank returns dim span{y_i − y_j : j→i is a reaction}, where
// y_k is column k of the complex matrix y (n×m).
func StoichiometricRank(g *Graph, y matrix.Matrix) (int, error) {
	if err := matrix.ValidateNotNil(y); err != nil {
		return 0, fmt.Errorf("StoichiometricRank: %w", err)
	}
	if y.Cols() != g.order {
		return 0, ErrComplexMismatch
	}
	n := y.Rows()
	if n == 0 || len(g.edges) == 0 {
		return 0, nil
	}

	// one row per reaction vector; rank is invariant under transposition
	rows := make([][]float64, len(g.edges))
	var k int
	var a, b float64
	var err error
	for r, e := range g.edges {
		rows[r] = make([]float64, n)
		for k = 0; k < n; k++ {
			if a, err = y.At(k, e.To); err != nil {
				return 0, fmt.Errorf("StoichiometricRank: %w", err)
			}
			if b, err = y.At(k, e.From); err != nil {
				return 0, fmt.Errorf("StoichiometricRank: %w", err)
			}
			rows[r][k] = a - b
		}
	}
	s, err := matrix.FromRows(rows)
	if err != nil {
		return 0, fmt.Errorf("StoichiometricRank: %w", err)
	}

	return matrix.Rank(s, 0)
}

// Deficiency returns δ = (#complexes in reactions) − ℓ − s. Complexes that
// take part in no reaction are left out of both counts.
func Deficiency(g *Graph, y matrix.Matrix) (int, error) {
	rep, err := Analyze(g, y)
	if err != nil {
		return 0, err
	}

	return rep.Deficiency, nil
}

// Analyze computes the full structural report of the network (g, y).
//
// Implementation:
//   - Stage 1: linkage classes (BFS) and strong components (Tarjan).
//   - Stage 2: weak reversibility from the component map.
//   - Stage 3: stoichiometric rank via SVD and the deficiency.
func Analyze(g *Graph, y matrix.Matrix) (*Report, error) {
	rank, err := StoichiometricRank(g, y)
	if err != nil {
		return nil, err
	}

	involved := 0
	for _, in := range g.Involved() {
		if in {
			involved++
		}
	}
	classes := LinkageClasses(g)

	return &Report{
		Complexes:        g.order,
		Involved:         involved,
		Reactions:        len(g.edges),
		Classes:          classes,
		Strong:           StrongComponents(g),
		Terminal:         TerminalComponents(g),
		WeaklyReversible: IsWeaklyReversible(g),
		Rank:             rank,
		Deficiency:       involved - len(classes) - rank,
	}, nil
}
