// Package linkage analyses the reaction graph of a chemical reaction network.
//
// Vertices are complexes (indexed 0..m-1, matching the columns of the complex
// matrix Y) and a directed edge j→i exists whenever the kinetic matrix has a
// positive off-diagonal entry at (i, j).
//
// Key features:
//   - FromKinetic(ak, opts...): build the graph from a kinetic matrix.
//   - LinkageClasses: connected components of the underlying undirected graph (BFS).
//   - StrongComponents: strongly connected components (Tarjan, recursive walker).
//   - IsWeaklyReversible: every linkage class is strongly connected.
//   - Deficiency: δ = (#complexes in reactions) − ℓ − rank(span{y_i − y_j}).
//
// Complexity:
//
//   - Graph construction O(m²); traversals O(m + E); Deficiency adds one SVD
//     of an n×E matrix.
//
// Errors:
//
//   - ErrNotSquare        kinetic matrix is not m×m.
//   - ErrVertexRange      edge endpoint outside [0, m).
//   - ErrComplexMismatch  complex matrix column count differs from m.
package linkage
