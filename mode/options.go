// SPDX-License-Identifier: MIT
// Package: mode
//
// options.go — configuration of Estimate.
//
// Contract:
//   - Options are functional (type Option func(*Options)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs
//     (negative limits, nil optimizer); Estimate never panics on user data.
//   - Defaults live in exactly one place (DefaultOptions).

package mode

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmode/optimizer"
	"github.com/katalvlaran/lvmode/param"
)

// Options is the full configuration of one Estimate call.
type Options struct {
	// Init holds initial values, constrained or already unconstrained.
	// Nil selects InitValues, or the model defaults when both are unset.
	Init *param.Vector
	// InitValues holds constrained initial values by name.
	InitValues map[string]float64
	// Optimizer runs the minimization. Default: optimizer.Gonum.
	Optimizer optimizer.Optimizer
	// Settings carry the method and the termination criteria.
	Settings optimizer.Settings
	// Jacobian keeps log|dx/dy| of the transform in the objective, so the
	// estimate is the mode in unconstrained coordinates.
	Jacobian bool
	// Logger receives the non-convergence warning and debug traces.
	Logger *zap.Logger
}

// Option mutates Options before Estimate runs.
type Option func(*Options)

// DefaultOptions returns the documented defaults: model defaults as the
// starting point, gonum L-BFGS with optimizer.DefaultSettings, no Jacobian
// term and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Optimizer: optimizer.Gonum{},
		Settings:  optimizer.DefaultSettings(),
		Logger:    zap.NewNop(),
	}
}

func gatherOptions(user ...Option) Options {
	o := DefaultOptions()
	for _, set := range user {
		set(&o)
	}

	return o
}

// WithInit starts the optimizer from v. v may be in either space; names may
// come in any order but must match the model's parameter set.
func WithInit(v param.Vector) Option {
	return func(o *Options) {
		o.Init = &v
		o.InitValues = nil
	}
}

// WithInitValues starts the optimizer from constrained values given by name.
// The map is copied.
func WithInitValues(values map[string]float64) Option {
	cp := make(map[string]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}

	return func(o *Options) {
		o.InitValues = cp
		o.Init = nil
	}
}

// WithOptimizer replaces the optimizer. Panics on nil.
func WithOptimizer(opt optimizer.Optimizer) Option {
	if opt == nil {
		panic("mode: WithOptimizer(nil)")
	}

	return func(o *Options) { o.Optimizer = opt }
}

// WithMethod selects the minimization method. Panics on an undefined method.
func WithMethod(m optimizer.Method) Option {
	if _, err := optimizer.ParseMethod(m.String()); err != nil {
		panic("mode: WithMethod: " + err.Error())
	}

	return func(o *Options) { o.Settings.Method = m }
}

// WithMaxIterations bounds major iterations; 0 means no limit.
// Panics on a negative n.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic("mode: WithMaxIterations requires n >= 0")
	}

	return func(o *Options) { o.Settings.MaxIterations = n }
}

// WithGradientTolerance sets the gradient-norm stopping threshold.
// Panics on a negative or non-finite tol.
func WithGradientTolerance(tol float64) Option {
	mustTolerance("WithGradientTolerance", tol)

	return func(o *Options) { o.Settings.GradientTolerance = tol }
}

// WithFunctionTolerance sets the minimum objective improvement that keeps
// the run going. Panics on a negative or non-finite tol.
func WithFunctionTolerance(tol float64) Option {
	mustTolerance("WithFunctionTolerance", tol)

	return func(o *Options) { o.Settings.FunctionTolerance = tol }
}

// WithRuntime bounds wall-clock time; 0 means no limit.
// Panics on a negative d.
func WithRuntime(d time.Duration) Option {
	if d < 0 {
		panic("mode: WithRuntime requires d >= 0")
	}

	return func(o *Options) { o.Settings.Runtime = d }
}

// WithJacobian toggles the log-Jacobian term of the objective.
func WithJacobian(on bool) Option {
	return func(o *Options) { o.Jacobian = on }
}

// WithLogger sets the logger; nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		l = zap.NewNop()
	}

	return func(o *Options) { o.Logger = l }
}

// WithSettings replaces all optimizer settings at once.
func WithSettings(s optimizer.Settings) Option {
	return func(o *Options) { o.Settings = s }
}

func mustTolerance(name string, tol float64) {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("mode: " + name + " requires a finite tol >= 0")
	}
}
