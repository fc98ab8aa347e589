package linkage

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/crnconj/matrix"
)

// Graph is the directed reaction graph over m complexes.
// Adjacency lists are sorted by target index, so every traversal is deterministic.
type Graph struct {
	order int
	out   [][]int // out[j] = targets of reactions leaving complex j
	in    [][]int // in[i] = sources of reactions entering complex i
	edges []Edge
}

// FromKinetic builds the reaction graph of a kinetic matrix: an edge j→i with
// rate ak[i][j] for every off-diagonal entry above the tolerance. Diagonal
// entries are ignored.
//
// Complexity: O(m²).
func FromKinetic(ak matrix.Matrix, opts ...Option) (*Graph, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := matrix.ValidateNotNil(ak); err != nil {
		return nil, fmt.Errorf("FromKinetic: %w", err)
	}
	if ak.Rows() != ak.Cols() {
		return nil, ErrNotSquare
	}

	m := ak.Rows()
	edges := make([]Edge, 0, m)
	var i, j int
	var v float64
	var err error
	// column-major walk yields edges grouped by source
	for j = 0; j < m; j++ {
		for i = 0; i < m; i++ {
			if i == j {
				continue
			}
			if v, err = ak.At(i, j); err != nil {
				return nil, fmt.Errorf("FromKinetic: %w", err)
			}
			if v > o.Tolerance {
				edges = append(edges, Edge{From: j, To: i, Rate: v})
			}
		}
	}

	return FromEdges(m, edges)
}

// FromEdges builds a graph of the given order from an explicit edge list.
// Duplicate edges are merged by summing their rates; self-loops are dropped.
func FromEdges(order int, edges []Edge) (*Graph, error) {
	if order < 0 {
		return nil, ErrVertexRange
	}
	g := &Graph{
		order: order,
		out:   make([][]int, order),
		in:    make([][]int, order),
	}

	rates := make(map[[2]int]float64, len(edges))
	for _, e := range edges {
		if e.From < 0 || e.From >= order || e.To < 0 || e.To >= order {
			return nil, fmt.Errorf("FromEdges: %v: %w", e, ErrVertexRange)
		}
		if e.From == e.To {
			continue
		}
		rates[[2]int{e.From, e.To}] += e.Rate
	}

	keys := make([][2]int, 0, len(rates))
	for k := range rates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a][0] != keys[b][0] {
			return keys[a][0] < keys[b][0]
		}
		return keys[a][1] < keys[b][1]
	})
	g.edges = make([]Edge, 0, len(keys))
	for _, k := range keys {
		g.edges = append(g.edges, Edge{From: k[0], To: k[1], Rate: rates[k]})
		g.out[k[0]] = append(g.out[k[0]], k[1])
		g.in[k[1]] = append(g.in[k[1]], k[0])
	}
	for i := range g.in {
		sort.Ints(g.in[i])
	}

	return g, nil
}

// Order returns the number of complexes.
func (g *Graph) Order() int { return g.order }

// Edges returns a copy of the edge list sorted by (From, To).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// Successors returns the targets of reactions leaving complex j.
func (g *Graph) Successors(j int) []int {
	if j < 0 || j >= g.order {
		return nil
	}
	return append([]int(nil), g.out[j]...)
}

// Involved reports, per complex, whether it takes part in any reaction.
func (g *Graph) Involved() []bool {
	inv := make([]bool, g.order)
	for _, e := range g.edges {
		inv[e.From] = true
		inv[e.To] = true
	}

	return inv
}
