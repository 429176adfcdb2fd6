// Package summary derives asymptotic statistics from a mode.Result.
//
// InformationMatrix is the Hessian of the negated log-density at the
// estimate, taken with respect to the constrained parameters so standard
// errors come out in the model's natural units. The result's objective stays
// linked: the computation runs on a constrained view of it.
//
// Covariance inverts the information matrix; CoefficientTable turns its
// diagonal into standard errors, z statistics, two-sided normal p-values and
// confidence intervals. Point estimates, names and the log-density at the
// mode need no curvature and never fail on a singular problem.
package summary
