// SPDX-License-Identifier: MIT

package optimizer

import (
	"time"

	"gonum.org/v1/gonum/optimize"
)

// Diagnostics describe how a run ended.
type Diagnostics struct {
	Converged       bool
	Status          string
	Method          Method
	Iterations      int
	FuncEvaluations int
	GradEvaluations int
	Runtime         time.Duration
	// Gradient at the returned location, when the method computed one.
	Gradient []float64
	// Message carries the backend's error text for a run that stopped
	// abnormally but still produced a location.
	Message string
}

// Clone returns a deep copy of d.
func (d Diagnostics) Clone() Diagnostics {
	if d.Gradient != nil {
		g := make([]float64, len(d.Gradient))
		copy(g, d.Gradient)
		d.Gradient = g
	}

	return d
}

// Result is the best location found: X minimizes the problem with F = f(X).
type Result struct {
	X           []float64
	F           float64
	Diagnostics Diagnostics
}

// Optimizer minimizes a problem from a starting vector.
// A run that stops without converging returns a nil error and
// Diagnostics.Converged == false.
type Optimizer interface {
	Minimize(p optimize.Problem, x0 []float64, s Settings) (Result, error)
}

// Func adapts an ordinary function to the Optimizer interface.
type Func func(p optimize.Problem, x0 []float64, s Settings) (Result, error)

// Minimize implements Optimizer.
func (f Func) Minimize(p optimize.Problem, x0 []float64, s Settings) (Result, error) {
	return f(p, x0, s)
}
