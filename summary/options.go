// SPDX-License-Identifier: MIT

package summary

import (
	"math"

	"github.com/katalvlaran/lvmode/matrix"
	"github.com/katalvlaran/lvmode/objective"
)

// HessianProvider returns ∇²f at x for the objective obj, in obj's space.
// Summary functions always pass a constrained-space objective.
type HessianProvider func(obj *objective.Objective, x []float64) (matrix.Matrix, error)

// DefaultSymmetryTolerance bounds |H_ij - H_ji| relative to max(1, |H_ij|, |H_ji|)
// before a provider's output is rejected. The matrix is symmetrized afterwards.
const DefaultSymmetryTolerance = 1e-6

type config struct {
	hessian  HessianProvider
	step     float64
	symTol   float64
	pivotTol float64
}

// Option configures the curvature computation.
type Option func(*config)

func defaultConfig() config {
	return config{
		symTol:   DefaultSymmetryTolerance,
		pivotTol: matrix.DefaultPivotTolerance,
	}
}

func gather(opts ...Option) config {
	c := defaultConfig()
	for _, set := range opts {
		set(&c)
	}
	if c.hessian == nil {
		step := c.step
		c.hessian = func(obj *objective.Objective, x []float64) (matrix.Matrix, error) {
			return obj.Hessian(x, step)
		}
	}

	return c
}

// WithHessian replaces the default provider (the objective's own Hessian).
// Panics on nil.
func WithHessian(h HessianProvider) Option {
	if h == nil {
		panic("summary: WithHessian(nil)")
	}

	return func(c *config) { c.hessian = h }
}

// WithStep sets the value-difference step of the default provider.
// Panics unless step > 0 and finite.
func WithStep(step float64) Option {
	if !(step > 0) || math.IsInf(step, 1) {
		panic("summary: WithStep requires a finite step > 0")
	}

	return func(c *config) { c.step = step }
}

// WithSymmetryTolerance sets the asymmetry accepted from a provider.
// Panics on a negative or non-finite tol.
func WithSymmetryTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("summary: WithSymmetryTolerance requires a finite tol >= 0")
	}

	return func(c *config) { c.symTol = tol }
}

// WithPivotTolerance sets the relative pivot tolerance used to detect a
// singular information matrix. Panics like matrix.WithPivotTolerance.
func WithPivotTolerance(tol float64) Option {
	matrix.WithPivotTolerance(tol)

	return func(c *config) { c.pivotTol = tol }
}
