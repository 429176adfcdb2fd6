// Package matrix provides the small dense linear-algebra kernel used by lvmode
// to hold curvature information and its inverse.
//
// The matrix package provides:
//
//   - Matrix, a bounds-checked interface over a two-dimensional float64 array,
//     and Dense, its row-major implementation.
//   - Deterministic kernels: Symmetrize, Diag.
//   - Doolittle LU factorization with partial pivoting, and an Inverse that
//     equilibrates rows and columns first so its ErrSingular verdict does
//     not depend on the units of each parameter.
//   - Central validators (nil, square, symmetric, finite) returning plain sentinels.
//
// Matrices here are small (one row per model parameter), so clarity and
// reproducibility win over blocked variants.
package matrix
