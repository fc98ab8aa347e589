// Package crn holds the matrix representation of a chemical reaction network.
//
// A Network is built once from its complex matrix Y (n species × m complexes)
// and kinetic matrix Ak (m × m, columns summing to zero) and is never mutated
// afterwards. The flux matrix M = Y·Ak is derived at construction time.
//
// Accessors return deep copies so callers cannot alter the network.
//
// Errors:
//
//   - ErrDimensionMismatch  Ak not square, Y's column count differs from Ak's
//     row count, ragged literal rows, or label counts that do not match.
//   - ErrDuplicateLabel     two species or two complexes share a name.
package crn
