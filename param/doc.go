// Package param defines the ordered, named parameter vector shared by every
// stage of mode estimation.
//
// A Vector is an immutable sequence of (name, value) pairs tagged with the
// Space it is expressed in: Constrained (the model's natural domain) or
// Unconstrained (the whole real line, used by optimizers). Order is
// significant: the same order indexes the optimizer vector, the final
// estimate and both axes of the information matrix.
//
// Every transformation produces a fresh Vector; nothing in this package
// mutates a Vector after construction.
package param
