// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra surface used by the
// reaction-network packages: a row-major Dense type with safe accessors,
// multiplication and row scaling, row/column reductions, tolerance
// comparisons and numerical rank.
//
// What:
//
//   - Dense: row-major float64 storage, At/Set return errors instead of panicking.
//   - NewDense / FromRows / Diag: constructors for zero, literal and scaling matrices.
//   - Mul, ScaleRows: allocation-per-call kernels; Mul has a *Dense fast path.
//   - ColSums, RowSums, AllClose, Snap: audit helpers for conservation laws.
//   - Rank: numerical rank through gonum's SVD.
//
// Why:
//
//   - Stoichiometric (Y) and kinetic (Ak) matrices are tiny and dense; a flat
//     row-major buffer is the simplest representation that stays cache friendly.
//   - Every kernel validates shapes up front and reports sentinel errors, so
//     dimension bugs surface before anything reaches a solver.
//
// Errors:
//
//   - ErrInvalidDimensions   non-positive shape in NewDense.
//   - ErrBadShape            ragged literal rows.
//   - ErrOutOfRange          index outside bounds.
//   - ErrDimensionMismatch   incompatible operand shapes.
//   - ErrNilMatrix           nil operand.
//   - ErrNaNInf              non-finite value under the numeric policy.
//
// Complexity:
//
//   - At/Set O(1); Mul O(r·k·c); scaling, reductions and comparisons O(r·c);
//     Rank O(min(r,c)·r·c).
package matrix
