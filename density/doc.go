// Package density defines the contract between a probabilistic model and the
// mode-estimation pipeline.
//
// A Model declares its parameters (names, supports, defaults) and evaluates
// its log-likelihood and log-prior at constrained parameter values. Optional
// capability interfaces supply analytic gradients and Hessians; when absent,
// the dispatch helpers in this package fall back to central finite
// differences (gonum.org/v1/gonum/diff/fd).
//
// Everything here works in constrained space. Mapping to and from the
// optimizer's unconstrained space is the objective package's job.
package density
