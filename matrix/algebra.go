// SPDX-License-Identifier: MIT
// Package matrix: linear-algebra kernels.
//
// Purpose:
//   - Mul, ScaleRows and the row/column reductions used to audit kinetic
//     matrices (column sums) and conjugate networks (Y·A = T·Y·Ak).
//
// Notes:
//   - All kernels validate via validators.go and wrap failures with matrixErrorf.
//   - Every kernel allocates a fresh result; operands are never mutated.

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opScaleRows = "ScaleRows"
	opColSums   = "ColSums"
	opRowSums   = "RowSums"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul computes the matrix product C = A·B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate C (zero-area allowed).
//   - Stage 2: *Dense fast path with i-k-j loop order over flat buffers.
//   - Stage 3: interface fallback through At/Set in the same order.
//
// Behavior highlights:
//   - i-k-j order keeps B's row contiguous in the inner loop.
//   - Zero entries of A are skipped, which matters for sparse stoichiometry.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity:
//   - Time O(r·k·c), Space O(r·c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, k, c := a.Rows(), a.Cols(), b.Cols()
	res, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, p, j int
	var aip float64
	ad, aok := a.(*Dense)
	bd, bok := b.(*Dense)
	if aok && bok {
		for i = 0; i < r; i++ {
			for p = 0; p < k; p++ {
				aip = ad.data[i*k+p]
				if aip == 0 {
					continue
				}
				for j = 0; j < c; j++ {
					res.data[i*c+j] += aip * bd.data[p*c+j]
				}
			}
		}

		return res, nil
	}

	var bpj float64
	for i = 0; i < r; i++ {
		for p = 0; p < k; p++ {
			if aip, err = a.At(i, p); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
			if aip == 0 {
				continue
			}
			for j = 0; j < c; j++ {
				if bpj, err = b.At(p, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				res.data[i*c+j] += aip * bpj
			}
		}
	}

	return res, nil
}

// ScaleRows returns diag(s)·A, i.e. row i multiplied by s[i].
// Used to form T·M without materialising the diagonal matrix.
//
// Errors:
//   - ErrNilMatrix; ErrDimensionMismatch when len(s) != a.Rows().
func ScaleRows(a Matrix, s []float64) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	if err := ValidateVecLen(s, a.Rows()); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	r, c := a.Rows(), a.Cols()
	res, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}

	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opScaleRows, err)
			}
			res.data[i*c+j] = s[i] * v
		}
	}

	return res, nil
}

// ColSums returns the vector of column sums (length Cols()).
// A kinetic matrix has all column sums equal to zero.
func ColSums(a Matrix) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	r, c := a.Rows(), a.Cols()
	out := make([]float64, c)

	var i, j int
	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opColSums, err)
			}
			out[j] += v
		}
	}

	return out, nil
}

// RowSums returns the vector of row sums (length Rows()).
func RowSums(a Matrix) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	r, c := a.Rows(), a.Cols()
	out := make([]float64, r)

	var i, j int
	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opRowSums, err)
			}
			out[i] += v
		}
	}

	return out, nil
}

