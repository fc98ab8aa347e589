// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// DefaultRankTol is the relative singular-value cutoff used when Rank is
// called with tol <= 0.
const DefaultRankTol = 1e-10

// errSVDFailed is returned when gonum's SVD does not converge.
var errSVDFailed = errors.New("matrix: SVD factorization failed")

// Rank returns the numerical rank of a: the number of singular values
// strictly greater than tol·σ_max. A zero or empty matrix has rank 0.
//
// Implementation:
//   - Stage 1: copy a into a gonum *mat.Dense (gonum panics on zero-size, so
//     empty operands short-circuit to 0).
//   - Stage 2: factorize with mat.SVDNone and count values above the cutoff.
//
// Complexity:
//   - Time O(min(r,c)·r·c), Space O(r·c).
func Rank(a Matrix, tol float64) (int, error) {
	if err := ValidateNotNil(a); err != nil {
		return 0, matrixErrorf("Rank", err)
	}
	r, c := a.Rows(), a.Cols()
	if r == 0 || c == 0 {
		return 0, nil
	}
	if tol <= 0 {
		tol = DefaultRankTol
	}

	buf := make([]float64, r*c)
	var i, j int
	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = a.At(i, j); err != nil {
				return 0, matrixErrorf("Rank", err)
			}
			buf[i*c+j] = v
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(r, c, buf), mat.SVDNone); !ok {
		return 0, matrixErrorf("Rank", errSVDFailed)
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return 0, nil
	}

	cut := tol * values[0]
	rank := 0
	for _, s := range values {
		if s > cut {
			rank++
		}
	}

	return rank, nil
}
