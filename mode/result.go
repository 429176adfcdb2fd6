// SPDX-License-Identifier: MIT

package mode

import (
	"math"

	"github.com/katalvlaran/lvmode/objective"
	"github.com/katalvlaran/lvmode/optimizer"
	"github.com/katalvlaran/lvmode/param"
)

// Result is the outcome of Estimate. It is immutable; accessors return copies
// or immutable values.
type Result struct {
	values     param.Vector
	diag       optimizer.Diagnostics
	logDensity float64
	obj        *objective.Objective
	mode       Mode
}

// Values returns the estimate in constrained space, canonical order.
func (r *Result) Values() param.Vector { return r.values }

// Names returns the canonical parameter names.
func (r *Result) Names() []string { return r.values.Names() }

// Value returns the estimate of one parameter.
// Errors: param.ErrUnknownName.
func (r *Result) Value(name string) (float64, error) { return r.values.Value(name) }

// Diagnostics returns a copy of the optimizer diagnostics.
func (r *Result) Diagnostics() optimizer.Diagnostics { return r.diag.Clone() }

// Converged reports whether the optimizer claimed convergence.
func (r *Result) Converged() bool { return r.diag.Converged }

// LogDensity returns the negated minimum of the objective: the
// log-likelihood for MLE, the joint log-density for MAP. With the Jacobian
// option it also includes the log-Jacobian at the estimate.
func (r *Result) LogDensity() float64 { return r.logDensity }

// Objective returns the linked objective the optimizer minimized.
func (r *Result) Objective() *objective.Objective { return r.obj }

// Mode returns the estimated mode.
func (r *Result) Mode() Mode { return r.mode }

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
