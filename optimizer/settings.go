// SPDX-License-Identifier: MIT

package optimizer

import (
	"time"

	"go.uber.org/zap"
)

// Defaults for Settings. The function-convergence pair matches gonum's own
// default converger.
const (
	DefaultMaxIterations      = 1000
	DefaultGradientTolerance  = 1e-8
	DefaultFunctionTolerance  = 1e-10
	DefaultFunctionIterations = 100
)

// Settings are the termination criteria and tracing for one run.
// Zero limits mean "no limit".
type Settings struct {
	Method Method
	// MaxIterations bounds major iterations.
	MaxIterations int
	// GradientTolerance stops the run once the infinity norm of the
	// gradient falls below it.
	GradientTolerance float64
	// FunctionTolerance and FunctionIterations stop the run once the
	// objective has improved by less than FunctionTolerance over
	// FunctionIterations major iterations. FunctionIterations <= 0 turns
	// this criterion off and FunctionTolerance is then ignored; the run
	// ends on the gradient, the method's own test or a limit.
	FunctionTolerance  float64
	FunctionIterations int
	// Runtime bounds wall-clock time.
	Runtime time.Duration
	// MaxEvaluations bounds objective evaluations.
	MaxEvaluations int
	// Logger receives per-iteration debug traces. Nil means no logging.
	Logger *zap.Logger
}

// DefaultSettings returns the documented defaults (single source of truth).
func DefaultSettings() Settings {
	return Settings{
		Method:             LBFGS,
		MaxIterations:      DefaultMaxIterations,
		GradientTolerance:  DefaultGradientTolerance,
		FunctionTolerance:  DefaultFunctionTolerance,
		FunctionIterations: DefaultFunctionIterations,
	}
}

func (s Settings) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}

	return s.Logger
}
