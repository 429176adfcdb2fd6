// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// symmetrization, diagonal extraction, LU factorization and inversion. All
// functions perform strict fail-fast validation and return clear errors on
// dimension mismatches.
//
// Notes:
//   - Kernels operate on a *Dense view of their inputs (copied once when the
//     input is another Matrix implementation) and never mutate inputs.
//   - Errors are plain sentinels wrapped with the operation tag via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opSymmetrize  = "Symmetrize"
	opDiag        = "Diag"
	opInverse     = "Inverse"
	opLU          = "LU"
	opEquilibrate = "equilibrate"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, otherwise a Dense copy of it.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Symmetrize returns (m + mᵀ)/2 for a square m.
// Used to clean finite-difference curvature estimates, whose off-diagonal
// pairs agree only up to truncation error.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n^2).
func Symmetrize(m Matrix) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	n := src.r
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	var (
		i, j int
		avg  float64
	)
	for i = 0; i < n; i++ {
		out.data[i*n+i] = src.data[i*n+i]
		for j = i + 1; j < n; j++ {
			avg = 0.5 * (src.data[i*n+j] + src.data[j*n+i])
			out.data[i*n+j] = avg
			out.data[j*n+i] = avg
		}
	}

	return out, nil
}

// Diag returns the main diagonal of a square matrix.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n).
func Diag(m Matrix) ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	n := m.Rows()
	d := make([]float64, n)
	var err error
	for i := 0; i < n; i++ {
		if d[i], err = m.At(i, i); err != nil {
			return nil, matrixErrorf(opDiag, err)
		}
	}

	return d, nil
}

// maxAbs returns max|a_ij| over the flat buffer.
func maxAbs(data []float64) float64 {
	var mx float64
	for _, v := range data {
		if a := math.Abs(v); a > mx {
			mx = a
		}
	}

	return mx
}

// LU computes the Doolittle factorization P*A = L*U with partial pivoting:
// L is unit lower triangular, U is upper triangular and P is the row
// permutation returned as perm (row i of P*A is row perm[i] of A).
//
// Implementation:
//   - Stage 1: Validate m (not nil, square, finite); copy it into a working buffer.
//   - Stage 2: For each column k, swap the row with the largest |a_ik| (i >= k)
//     into position k, check the pivot, then eliminate below it.
//   - Stage 3: Split the working buffer into L and U.
//
// Behavior highlights:
//   - A pivot is singular when |U[k,k]| <= tol * max|A|, with tol taken from
//     WithPivotTolerance (default DefaultPivotTolerance). An all-zero matrix is
//     singular. The test is relative to the largest entry, so LU alone is not
//     invariant under row or column scaling; Inverse equilibrates first.
//   - Ties in the pivot search keep the lowest row index, so results are deterministic.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix, opts ...Option) (L, U Matrix, perm []int, err error) {
	if err = ValidateSquare(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	if err = ValidateFinite(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	cfg := gatherOptions(opts...)

	src, err := asDense(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	a := src.Clone().(*Dense)
	n := a.r
	perm, err = factorize(a, cfg.pivotTol)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}

	l, err := NewIdentity(n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	u, err := NewDense(n, n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if j < i {
				l.data[i*n+j] = a.data[i*n+j]
			} else {
				u.data[i*n+j] = a.data[i*n+j]
			}
		}
	}

	return l, u, perm, nil
}

// factorize overwrites a with its packed LU factors (multipliers below the
// diagonal, U on and above it) and returns the row permutation.
func factorize(a *Dense, tol float64) ([]int, error) {
	n := a.r
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	threshold := tol * maxAbs(a.data)
	var (
		i, j, k, p int
		best, v    float64
		pivot, f   float64
	)
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a.data[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == 0 || best <= threshold {
			return nil, ErrSingular
		}
		if p != k {
			for j = 0; j < n; j++ {
				a.data[k*n+j], a.data[p*n+j] = a.data[p*n+j], a.data[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}

		pivot = a.data[k*n+k]
		for i = k + 1; i < n; i++ {
			f = a.data[i*n+k] / pivot
			a.data[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a.data[i*n+j] -= f * a.data[k*n+j]
			}
		}
	}

	return perm, nil
}

// pow2Scale returns the power of two s with s*v in [0.5, 1) for v > 0.
// Powers of two keep the scaling itself free of rounding error.
func pow2Scale(v float64) float64 {
	_, exp := math.Frexp(v)

	return math.Ldexp(1, -exp)
}

// equilibrate returns B = R*A*C with diagonal power-of-two row scales r and
// column scales c chosen so that every row and column of B has its largest
// entry in [0.5, 1). A zero row or column is reported as ErrSingular.
func equilibrate(a *Dense) (b *Dense, r, c []float64, err error) {
	n := a.r
	b = a.Clone().(*Dense)
	r = make([]float64, n)
	c = make([]float64, n)

	var (
		i, j int
		mx   float64
	)
	for i = 0; i < n; i++ {
		if mx = maxAbs(b.data[i*n : (i+1)*n]); mx == 0 {
			return nil, nil, nil, matrixErrorf(opEquilibrate, ErrSingular)
		}
		r[i] = pow2Scale(mx)
		for j = 0; j < n; j++ {
			b.data[i*n+j] *= r[i]
		}
	}
	for j = 0; j < n; j++ {
		mx = 0
		for i = 0; i < n; i++ {
			mx = math.Max(mx, math.Abs(b.data[i*n+j]))
		}
		if mx == 0 {
			return nil, nil, nil, matrixErrorf(opEquilibrate, ErrSingular)
		}
		c[j] = pow2Scale(mx)
		for i = 0; i < n; i++ {
			b.data[i*n+j] *= c[j]
		}
	}

	return b, r, c, nil
}

// Inverse computes A^{-1} from a pivoted LU factorization of the equilibrated
// matrix B = R*A*C, so that A^{-1} = C * B^{-1} * R.
// The input must be non-nil, square and finite.
//
// Implementation:
//   - Stage 1: Validate; equilibrate rows then columns with power-of-two scales.
//   - Stage 2: Factorize P*B = L*U with partial pivoting.
//   - Stage 3: For each basis column e_col: forward solve L*y = P*e_col,
//     backward solve U*x = y, write C*x*r_col into column col of the result.
//
// Behavior highlights:
//   - The singularity verdict does not change when rows or columns of A are
//     rescaled, so diag(1e8, 1e-3) inverts while a rank-deficient matrix does not.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix, opts ...Option) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	cfg := gatherOptions(opts...)

	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	lu, r, c, err := equilibrate(src)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	perm, err := factorize(lu, cfg.pivotTol)
	if err != nil {
		return nil, matrixErrorf(opInverse, matrixErrorf(opLU, err))
	}

	n := lu.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n) // forward substitution workspace
		x         = make([]float64, n) // backward substitution workspace
	)
	for col = 0; col < n; col++ {
		// L*y = P*e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += lu.data[i*n+k] * y[k]
			}
			if perm[i] == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// U*x = y
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += lu.data[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / lu.data[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = c[i] * x[i] * r[col]
		}
	}

	return inv, nil
}
