// Package objective turns a density.Model into the scalar function an
// optimizer minimizes: the negated log-likelihood (MLE) or negated joint
// log-density (MAP), evaluated at unconstrained coordinates.
//
// Evaluate maps the optimizer's vector into the model's constrained space,
// calls the model, applies the chain rule to the gradient and negates. The
// optional log-Jacobian term (WithJacobian) turns the target into the density
// of the unconstrained coordinates.
//
// An Objective is immutable. InSpace returns a view in the other space and
// never changes the receiver, so a caller can compute in constrained space
// without disturbing whoever holds the linked objective.
package objective
