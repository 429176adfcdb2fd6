// Package models provides small, deterministic probabilistic models with
// known closed-form modes. They serve as fixtures for tests and runnable
// examples of the mode-estimation pipeline.
//
//	NormalMean    y ~ Normal(mu, sigma), sigma known; optional Normal prior on mu.
//	Normal        y ~ Normal(mu, sigma); optional priors on mu and sigma.
//	PoissonGamma  y ~ Poisson(lambda), lambda ~ Gamma(shape, rate).
//	Unidentified  wraps a model and adds a parameter no density term uses.
//
// Every model validates its own data on each evaluation and returns
// ErrEmptyData or ErrBadScale rather than panicking.
package models
