// SPDX-License-Identifier: MIT

package matrix

import "math"

// AllClose reports whether a and b have the same shape and
// |a_ij − b_ij| ≤ atol + rtol·|b_ij| for every entry.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity: O(r·c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	var i, j int
	var av, bv float64
	var err error
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// Snap returns a copy of a in which every entry with |v| ≤ tol becomes exactly 0.
// Solver output carries round-off such as 1e-13 where the model means zero.
func Snap(a Matrix, tol float64) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf("Snap", err)
	}
	res, err := newDenseZeroOK(a.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf("Snap", err)
	}

	var i, j int
	var v float64
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, matrixErrorf("Snap", err)
			}
			if math.Abs(v) <= tol {
				v = 0
			}
			res.data[i*res.c+j] = v
		}
	}

	return res, nil
}
