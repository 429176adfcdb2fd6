// SPDX-License-Identifier: MIT

package objective

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvmode/density"
	"github.com/katalvlaran/lvmode/matrix"
	"github.com/katalvlaran/lvmode/param"
	"github.com/katalvlaran/lvmode/transform"
)

// Objective is f(y) = -log p(y) for a model, a density kind and a space.
// In unconstrained ("linked") space y is mapped through the model's layout
// before the model is called; in constrained space y is passed as-is.
type Objective struct {
	model    density.Model
	kind     density.Kind
	layout   *transform.Layout
	template param.Vector // canonical names, values unused
	space    param.Space
	jacobian bool
}

// Option configures New.
type Option func(*Objective)

// WithJacobian adds log|dx/dy| of the inverse transform to the target, so the
// minimizer is the mode of the density of the unconstrained coordinates.
// It has no effect in constrained space.
func WithJacobian(on bool) Option {
	return func(o *Objective) { o.jacobian = on }
}

// New builds a linked Objective for model and kind.
// Errors: density.ErrNilModel, density.ErrNoParameters, density.ErrBadKind,
// name validation errors from the model's parameter list.
func New(model density.Model, kind density.Kind, opts ...Option) (*Objective, error) {
	if kind != density.Likelihood && kind != density.Joint {
		return nil, fmt.Errorf("objective: %v: %w", kind, density.ErrBadKind)
	}
	layout, err := density.Layout(model)
	if err != nil {
		return nil, fmt.Errorf("objective: %w", err)
	}
	tpl, err := param.New(layout.Names(), make([]float64, layout.Len()), param.Constrained)
	if err != nil {
		return nil, fmt.Errorf("objective: %w", err)
	}
	o := &Objective{
		model:    model,
		kind:     kind,
		layout:   layout,
		template: tpl,
		space:    param.Unconstrained,
	}
	for _, set := range opts {
		set(o)
	}

	return o, nil
}

// InSpace returns a view of o that takes inputs in space s. The receiver is
// unchanged; when s equals o.Space() the receiver itself is returned.
// It panics on an undefined space, like an out-of-range index.
func (o *Objective) InSpace(s param.Space) *Objective {
	if !s.Valid() {
		panic(ErrBadSpace)
	}
	if s == o.space {
		return o
	}
	view := *o
	view.space = s

	return &view
}

// Space returns the space o takes its inputs in.
func (o *Objective) Space() param.Space { return o.space }

// Linked reports whether o takes unconstrained inputs.
func (o *Objective) Linked() bool { return o.space == param.Unconstrained }

// Kind returns the evaluated density kind.
func (o *Objective) Kind() density.Kind { return o.kind }

// Jacobian reports whether the log-Jacobian term is included in linked space.
func (o *Objective) Jacobian() bool { return o.jacobian }

// Names returns the canonical parameter order.
func (o *Objective) Names() []string { return o.layout.Names() }

// Len returns the number of parameters.
func (o *Objective) Len() int { return o.layout.Len() }

// Model returns the wrapped model.
func (o *Objective) Model() density.Model { return o.model }

// Layout returns the model's transform layout.
func (o *Objective) Layout() *transform.Layout { return o.layout }

// Point materializes x as a named vector in o's space.
// Errors: ErrDimension.
func (o *Objective) Point(x []float64) (param.Vector, error) {
	if len(x) != o.layout.Len() {
		return param.Vector{}, fmt.Errorf("objective: %d values for %d parameters: %w", len(x), o.layout.Len(), ErrDimension)
	}

	return o.template.WithValues(x, o.space)
}

// constrained returns the constrained point for x together with dx/dy
// (nil in constrained space).
func (o *Objective) constrained(x []float64) (param.Vector, []float64, error) {
	if len(x) != o.layout.Len() {
		return param.Vector{}, nil, fmt.Errorf("objective: %d values for %d parameters: %w", len(x), o.layout.Len(), ErrDimension)
	}
	if !o.Linked() {
		p, err := o.template.WithValues(x, param.Constrained)
		return p, nil, err
	}
	p, err := o.template.WithValues(o.layout.Constrain(x), param.Constrained)
	if err != nil {
		return param.Vector{}, nil, err
	}

	return p, o.layout.InverseDerivs(x), nil
}

// Value returns f(x). A non-finite log-density yields +Inf so that line
// searches back off instead of aborting; model errors are returned as-is.
func (o *Objective) Value(x []float64) (float64, error) {
	p, _, err := o.constrained(x)
	if err != nil {
		return 0, err
	}
	ld, err := density.LogDensity(o.model, o.kind, p)
	if err != nil {
		return 0, err
	}
	if o.Linked() && o.jacobian {
		lj, _ := o.layout.LogAbsDetJacobian(x)
		ld += lj
	}
	if math.IsNaN(ld) || math.IsInf(ld, 0) {
		return math.Inf(1), nil
	}

	return -ld, nil
}

// Gradient returns ∇f(x) with respect to o's input coordinates.
// In linked space ∂f/∂y_i = ∂f/∂x_i · dx_i/dy_i, plus the log-Jacobian
// gradient when enabled.
// Errors: ErrDimension, ErrNonFiniteGradient (a NaN or ±Inf entry where
// f(x) is finite), model errors as-is.
func (o *Objective) Gradient(x []float64) ([]float64, error) {
	p, dxdy, err := o.constrained(x)
	if err != nil {
		return nil, err
	}
	grad := make([]float64, len(x))
	if err = density.Gradient(o.model, o.kind, p, grad); err != nil {
		return nil, err
	}
	if dxdy != nil {
		floats.Mul(grad, dxdy)
		if o.jacobian {
			_, gj := o.layout.LogAbsDetJacobian(x)
			floats.Add(grad, gj)
		}
	}
	for i, g := range grad {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return o.nonFiniteGradient(x, i, g)
		}
	}
	floats.Scale(-1, grad)

	return grad, nil
}

// nonFiniteGradient handles a NaN or ±Inf gradient entry. Outside the support
// (f(x) == +Inf) the gradient is all zeros, matching Evaluate. At a finite
// f(x) it is ErrNonFiniteGradient.
func (o *Objective) nonFiniteGradient(x []float64, i int, g float64) ([]float64, error) {
	v, err := o.Value(x)
	if err != nil {
		return nil, err
	}
	if math.IsInf(v, 1) {
		return make([]float64, len(x)), nil
	}

	return nil, fmt.Errorf("objective: ∂f/∂%s = %g at f = %g: %w", o.layout.Names()[i], g, v, ErrNonFiniteGradient)
}

// Evaluate returns f(x) and ∇f(x).
// When f(x) is +Inf the gradient is all zeros.
func (o *Objective) Evaluate(x []float64) (float64, []float64, error) {
	v, err := o.Value(x)
	if err != nil {
		return 0, nil, err
	}
	if math.IsInf(v, 1) {
		return v, make([]float64, len(x)), nil
	}
	g, err := o.Gradient(x)
	if err != nil {
		return 0, nil, err
	}

	return v, g, nil
}

// Hessian returns ∇²f(x) in o's space.
//
// In constrained space the model's curvature is used through density.Hessian
// (analytic, then gradient differences, then value differences with the given
// step; step <= 0 selects density.HessianStep) and negated. In linked space
// the objective's own gradient is differenced and symmetrized.
func (o *Objective) Hessian(x []float64, step float64) (matrix.Matrix, error) {
	p, _, err := o.constrained(x)
	if err != nil {
		return nil, err
	}
	if !o.Linked() {
		h, err := density.Hessian(o.model, o.kind, p, step)
		if err != nil {
			return nil, err
		}

		return negate(h)
	}

	n := len(x)
	var firstErr error
	jac := mat.NewDense(n, n, nil)
	fd.Jacobian(jac, func(dst, y []float64) {
		if firstErr != nil {
			return
		}
		g, err := o.Gradient(y)
		if err != nil {
			firstErr = err
			return
		}
		copy(dst, g)
	}, x, &fd.JacobianSettings{Formula: fd.Central})
	if firstErr != nil {
		return nil, firstErr
	}
	raw, err := matrix.NewDenseFrom(n, n, jac.RawMatrix().Data)
	if err != nil {
		return nil, err
	}

	return matrix.Symmetrize(raw)
}

func negate(m matrix.Matrix) (matrix.Matrix, error) {
	out := m.Clone()
	var v float64
	var err error
	for i := 0; i < out.Rows(); i++ {
		for j := 0; j < out.Cols(); j++ {
			if v, err = out.At(i, j); err != nil {
				return nil, err
			}
			if err = out.Set(i, j, -v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
