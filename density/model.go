// SPDX-License-Identifier: MIT

package density

import (
	"fmt"

	"github.com/katalvlaran/lvmode/matrix"
	"github.com/katalvlaran/lvmode/param"
	"github.com/katalvlaran/lvmode/transform"
)

// Parameter describes one scalar model parameter.
type Parameter struct {
	// Name identifies the parameter; unique within a model.
	Name string
	// Support maps the parameter to ℝ. Nil means Identity (support ℝ).
	Support transform.Bijector
	// Default is the constrained starting value used when the caller
	// supplies no initial values (a prior mean or any in-support point).
	Default float64
}

// Model evaluates a log-density at constrained parameter values.
//
// The vector passed to LogLikelihood and LogPrior always follows the order of
// Parameters() and is always in param.Constrained space. Implementations must
// not retain or mutate shared state between calls.
type Model interface {
	// Parameters returns the canonical parameter order.
	Parameters() []Parameter
	// LogLikelihood returns log p(data | θ).
	LogLikelihood(p param.Vector) (float64, error)
	// LogPrior returns log p(θ).
	LogPrior(p param.Vector) (float64, error)
}

// LikelihoodGradient is implemented by models with an analytic ∇ log p(data|θ).
// grad has length len(Parameters()) and is fully overwritten.
type LikelihoodGradient interface {
	LogLikelihoodGrad(p param.Vector, grad []float64) error
}

// PriorGradient is implemented by models with an analytic ∇ log p(θ).
type PriorGradient interface {
	LogPriorGrad(p param.Vector, grad []float64) error
}

// LikelihoodHessian is implemented by models with an analytic ∇² log p(data|θ).
// hess is an n×n zero matrix on entry.
type LikelihoodHessian interface {
	LogLikelihoodHess(p param.Vector, hess matrix.Matrix) error
}

// PriorHessian is implemented by models with an analytic ∇² log p(θ).
type PriorHessian interface {
	LogPriorHess(p param.Vector, hess matrix.Matrix) error
}

// Kind selects which log-density is evaluated.
type Kind uint8

const (
	// Likelihood evaluates log p(data | θ) only.
	Likelihood Kind = iota
	// Joint evaluates log p(data | θ) + log p(θ).
	Joint
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Likelihood:
		return "likelihood"
	case Joint:
		return "joint"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) valid() error {
	if k != Likelihood && k != Joint {
		return fmt.Errorf("%v: %w", k, ErrBadKind)
	}

	return nil
}

// Names returns the canonical parameter names of m.
func Names(m Model) []string {
	ps := m.Parameters()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}

	return names
}

// Layout builds the transform.Layout declared by m's parameter supports.
// Errors: ErrNilModel, ErrNoParameters, name validation errors.
func Layout(m Model) (*transform.Layout, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	ps := m.Parameters()
	if len(ps) == 0 {
		return nil, ErrNoParameters
	}
	names := make([]string, len(ps))
	bij := make([]transform.Bijector, len(ps))
	for i, p := range ps {
		names[i] = p.Name
		bij[i] = p.Support
	}

	return transform.NewLayout(names, bij)
}

// Defaults returns the model's default constrained parameter vector.
// Errors: ErrNilModel, ErrNoParameters, param.ErrNonFinite and name errors.
func Defaults(m Model) (param.Vector, error) {
	if m == nil {
		return param.Vector{}, ErrNilModel
	}
	ps := m.Parameters()
	if len(ps) == 0 {
		return param.Vector{}, ErrNoParameters
	}
	names := make([]string, len(ps))
	vals := make([]float64, len(ps))
	for i, p := range ps {
		names[i] = p.Name
		vals[i] = p.Default
	}

	return param.New(names, vals, param.Constrained)
}

// LogDensity evaluates the log-density of the requested kind at p.
// Errors from the model propagate unmodified.
func LogDensity(m Model, k Kind, p param.Vector) (float64, error) {
	if err := k.valid(); err != nil {
		return 0, err
	}
	ll, err := m.LogLikelihood(p)
	if err != nil {
		return 0, err
	}
	if k == Likelihood {
		return ll, nil
	}
	lp, err := m.LogPrior(p)
	if err != nil {
		return 0, err
	}

	return ll + lp, nil
}
