package linkage

import "sort"

// LinkageClasses returns the connected components of the undirected reaction
// graph, restricted to complexes that take part in at least one reaction.
// Members are sorted ascending; classes are ordered by their smallest member.
//
// Complexity: O(m + E).
func LinkageClasses(g *Graph) [][]int {
	involved := g.Involved()
	seen := make([]bool, g.order)
	queue := make([]int, 0, g.order)
	var classes [][]int

	var start, v, w int
	for start = 0; start < g.order; start++ {
		if seen[start] || !involved[start] {
			continue
		}
		seen[start] = true
		queue = append(queue[:0], start)
		class := []int{}
		for len(queue) > 0 {
			v = queue[0]
			queue = queue[1:]
			class = append(class, v)
			for _, w = range g.out[v] {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
			for _, w = range g.in[v] {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		sort.Ints(class)
		classes = append(classes, class)
	}

	return classes
}

// tarjanWalker encapsulates mutable state of Tarjan's algorithm.
type tarjanWalker struct {
	graph   *Graph
	index   []int // discovery index, -1 when unvisited
	low     []int
	onStack []bool
	stack   []int
	next    int
	comps   [][]int
}

// StrongComponents returns the strongly connected components of the reaction
// graph over involved complexes. Members are sorted; components are ordered
// by their smallest member.
//
// Complexity: O(m + E); recursion depth bounded by m.
func StrongComponents(g *Graph) [][]int {
	w := &tarjanWalker{
		graph:   g,
		index:   make([]int, g.order),
		low:     make([]int, g.order),
		onStack: make([]bool, g.order),
		stack:   make([]int, 0, g.order),
	}
	for i := range w.index {
		w.index[i] = -1
	}

	involved := g.Involved()
	for v := 0; v < g.order; v++ {
		if involved[v] && w.index[v] < 0 {
			w.visit(v)
		}
	}

	sort.Slice(w.comps, func(a, b int) bool { return w.comps[a][0] < w.comps[b][0] })

	return w.comps
}

// visit is the recursive step: assign index and lowlink, explore successors,
// and pop a component when v is its root.
func (w *tarjanWalker) visit(v int) {
	w.index[v] = w.next
	w.low[v] = w.next
	w.next++
	w.stack = append(w.stack, v)
	w.onStack[v] = true

	for _, u := range w.graph.out[v] {
		if w.index[u] < 0 {
			w.visit(u)
			if w.low[u] < w.low[v] {
				w.low[v] = w.low[u]
			}
		} else if w.onStack[u] && w.index[u] < w.low[v] {
			w.low[v] = w.index[u]
		}
	}

	if w.low[v] != w.index[v] {
		return
	}
	var comp []int
	for {
		top := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		w.onStack[top] = false
		comp = append(comp, top)
		if top == v {
			break
		}
	}
	sort.Ints(comp)
	w.comps = append(w.comps, comp)
}

// IsWeaklyReversible reports whether every linkage class is strongly
// connected, i.e. every reaction j→i has a directed path back from i to j.
// A graph without reactions is trivially weakly reversible.
func IsWeaklyReversible(g *Graph) bool {
	comp := componentIndex(g.order, StrongComponents(g))
	for _, e := range g.edges {
		if comp[e.From] != comp[e.To] {
			return false
		}
	}

	return true
}

// TerminalComponents returns the strong components with no reaction leaving them.
func TerminalComponents(g *Graph) [][]int {
	strong := StrongComponents(g)
	comp := componentIndex(g.order, strong)
	terminal := make([]bool, len(strong))
	for i := range terminal {
		terminal[i] = true
	}
	for _, e := range g.edges {
		if comp[e.From] != comp[e.To] {
			terminal[comp[e.From]] = false
		}
	}

	var out [][]int
	for i, c := range strong {
		if terminal[i] {
			out = append(out, c)
		}
	}

	return out
}

// componentIndex maps each vertex to the index of its component, -1 if none.
func componentIndex(order int, comps [][]int) []int {
	idx := make([]int, order)
	for i := range idx {
		idx[i] = -1
	}
	for c, members := range comps {
		for _, v := range members {
			idx[v] = c
		}
	}

	return idx
}
