// Package lvmode estimates the mode of a probabilistic model and turns the
// curvature at that mode into standard errors, z scores, p-values and
// confidence intervals.
//
// 🚀 What is lvmode?
//
//	A small pipeline for point estimation:
//		• MLE: maximize the log-likelihood
//		• MAP: maximize log-likelihood + log-prior
//		• Parameters with bounded support are optimized in ℝⁿ through
//		  smooth bijections, then reported in their natural units
//		• Asymptotic summaries from the Hessian at the mode
//
// ✨ Why lvmode?
//
//   - One entry point – mode.Estimate(model, mode.MAP, opts...)
//   - Immutable values – every transform step yields a fresh vector
//   - Honest failures – non-convergence warns, singular curvature errors
//   - gonum inside – L-BFGS, BFGS, CG, Nelder–Mead, finite differences
//
// Packages:
//
//	param/     — named parameter vectors tagged constrained / unconstrained
//	transform/ — bijectors and layouts between the two spaces
//	density/   — the Model contract, analytic or finite-difference derivatives
//	objective/ — negated log-density in optimizer coordinates
//	optimizer/ — gonum-backed minimization with diagnostics
//	mode/      — the estimation driver, options and YAML configuration
//	summary/   — information matrix, covariance, coefficient table
//	matrix/    — dense matrices, LU and inverse
//	models/    — reference models with closed-form modes
//
// Quick example:
//
//	m := &models.Normal{Data: ys}
//	res, err := mode.Estimate(m, mode.MLE)
//	tab, err := summary.CoefficientTable(res, summary.DefaultLevel)
//
// See examples/ for runnable programs.
//
//	go get github.com/katalvlaran/lvmode
package lvmode
