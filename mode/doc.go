// Package mode estimates the mode of a model's log-likelihood (MLE) or joint
// log-density (MAP) by unconstrained numerical optimization.
//
// Estimate is the single entry point. It
//
//  1. maps the initial values (the model defaults unless WithInit or
//     WithInitValues is given) into unconstrained space,
//  2. builds a linked objective.Objective for the requested mode,
//  3. runs the configured optimizer.Optimizer,
//  4. logs a warning, and carries on, when the optimizer did not converge,
//  5. maps the minimizer back to constrained space in the model's canonical
//     parameter order and evaluates the model there once,
//  6. records the log-density at the mode as the negated minimum, and
//  7. returns an immutable Result.
//
// The Result keeps the linked objective so curvature can be computed later
// (see package summary). Errors raised by the model or the transforms are
// returned unmodified; a parameter set that does not match the model is
// ErrInvalidInput.
package mode
