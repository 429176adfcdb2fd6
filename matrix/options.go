// SPDX-License-Identifier: MIT
// Package: matrix
//
// options.go — functional options for factorization kernels.
//
// Contract:
//   - Options are functional (type Option func(*Options)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs; kernels never panic.
//   - Defaults live in exactly one place (defaultOptions).

package matrix

import "math"

// DefaultPivotTolerance is the relative threshold under which an LU pivot is
// treated as zero: |pivot| <= tol * max|a_ij|. Inverse applies it to the
// equilibrated matrix.
// It sits a few orders of magnitude above float64 round-off so that a
// rank-deficient curvature estimate built from finite differences is still
// reported as singular.
const DefaultPivotTolerance = 1e-10

// Options carries the effective configuration of LU/Inverse.
type Options struct {
	pivotTol float64 // relative zero-pivot threshold
}

// Option mutates Options before a kernel runs.
type Option func(*Options)

// WithPivotTolerance sets the relative pivot threshold used by LU and Inverse.
// A value of 0 restores the exact-zero pivot check.
// Panics on negative, NaN or Inf input.
func WithPivotTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("matrix: WithPivotTolerance requires a finite tol >= 0")
	}

	return func(o *Options) {
		o.pivotTol = tol
	}
}

// defaultOptions returns the documented defaults (single source of truth).
func defaultOptions() Options {
	return Options{pivotTol: DefaultPivotTolerance}
}

// gatherOptions applies user-provided setters on top of defaults
// (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		set(&o)
	}

	return o
}
