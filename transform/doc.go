// Package transform maps parameter vectors between a model's constrained
// space and the unconstrained space used for optimization.
//
// A Bijector handles one scalar: Identity (ℝ), Lower (x > L), Upper (x < U)
// and Interval (L < x < U). A Layout binds bijectors to an ordered list of
// parameter names and moves whole param.Vector values across the boundary.
// The Layout never inspects which constraint a bijector encodes; it only
// invokes it.
//
// Every call returns a fresh Vector. Transforming a vector that is already in
// the target space is a stale-state error, never a silent double transform.
package transform
