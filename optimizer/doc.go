// Package optimizer runs unconstrained minimization for the mode estimator.
//
// The Optimizer interface takes a gonum optimize.Problem, a starting vector
// and Settings, and returns the best location found with Diagnostics. Gonum is
// the default implementation; Func adapts a plain function so tests can plug
// in stubs.
//
// Failing to converge is not an error here. It is reported through
// Diagnostics.Converged and left to the caller to judge.
package optimizer
