// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"

	"github.com/katalvlaran/lvmode/param"
)

// Layout binds one Bijector to each parameter name, in canonical order.
// A Layout is immutable and safe for concurrent use.
type Layout struct {
	names []string
	bij   []Bijector
}

// NewLayout builds a Layout. A nil bijector means Identity.
// Errors: ErrLayoutMismatch when lengths differ; param name errors for empty
// or duplicate names.
func NewLayout(names []string, bijectors []Bijector) (*Layout, error) {
	if len(names) != len(bijectors) {
		return nil, fmt.Errorf("NewLayout: %d names, %d bijectors: %w", len(names), len(bijectors), ErrLayoutMismatch)
	}
	// Reuse the vector constructor for name validation.
	if _, err := param.New(names, make([]float64, len(names)), param.Constrained); err != nil {
		return nil, fmt.Errorf("NewLayout: %w", err)
	}
	l := &Layout{
		names: make([]string, len(names)),
		bij:   make([]Bijector, len(bijectors)),
	}
	copy(l.names, names)
	for i, b := range bijectors {
		if b == nil {
			b = Identity{}
		}
		l.bij[i] = b
	}

	return l, nil
}

// Len returns the number of parameters in the layout.
func (l *Layout) Len() int { return len(l.names) }

// Names returns a copy of the canonical names.
func (l *Layout) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)

	return out
}

// Bijector returns the bijector at position i.
func (l *Layout) Bijector(i int) Bijector { return l.bij[i] }

// check verifies that v follows the layout's names exactly.
func (l *Layout) check(op string, v param.Vector) error {
	if v.Len() != len(l.names) {
		return fmt.Errorf("%s: %d values for %d parameters: %w", op, v.Len(), len(l.names), ErrLayoutMismatch)
	}
	for i, n := range l.names {
		if v.Name(i) != n {
			return fmt.Errorf("%s: position %d is %q, want %q: %w", op, i, v.Name(i), n, ErrLayoutMismatch)
		}
	}

	return nil
}

// ToUnconstrained maps a constrained vector into unconstrained space.
// Errors: ErrAlreadyUnconstrained, ErrLayoutMismatch, ErrOutOfSupport.
// Complexity: O(n).
func (l *Layout) ToUnconstrained(v param.Vector) (param.Vector, error) {
	if v.Linked() {
		return param.Vector{}, fmt.Errorf("ToUnconstrained: %w", ErrAlreadyUnconstrained)
	}
	if err := l.check("ToUnconstrained", v); err != nil {
		return param.Vector{}, err
	}
	y := make([]float64, v.Len())
	var err error
	for i, b := range l.bij {
		if y[i], err = b.Forward(v.At(i)); err != nil {
			return param.Vector{}, fmt.Errorf("ToUnconstrained: %q: %w", l.names[i], err)
		}
	}

	return v.WithValues(y, param.Unconstrained)
}

// ToConstrained maps an unconstrained vector back into the model's support.
// Errors: ErrAlreadyConstrained, ErrLayoutMismatch.
// Complexity: O(n).
func (l *Layout) ToConstrained(v param.Vector) (param.Vector, error) {
	if !v.Linked() {
		return param.Vector{}, fmt.Errorf("ToConstrained: %w", ErrAlreadyConstrained)
	}
	if err := l.check("ToConstrained", v); err != nil {
		return param.Vector{}, err
	}

	return v.WithValues(l.Constrain(v.Values()), param.Constrained)
}

// Toggle applies whichever direction flips v's space.
func (l *Layout) Toggle(v param.Vector) (param.Vector, error) {
	if v.Linked() {
		return l.ToConstrained(v)
	}

	return l.ToUnconstrained(v)
}

// Constrain maps a raw unconstrained slice (canonical order) to constrained
// values. It is the allocation-light path used inside objective evaluation.
// len(y) must equal Len(); the caller guarantees it.
func (l *Layout) Constrain(y []float64) []float64 {
	x := make([]float64, len(y))
	for i, b := range l.bij {
		x[i] = b.Inverse(y[i])
	}

	return x
}

// InverseDerivs returns dx_i/dy_i for every coordinate of the raw
// unconstrained slice y. The transform is coordinate-wise, so this is the
// full (diagonal) Jacobian.
func (l *Layout) InverseDerivs(y []float64) []float64 {
	d := make([]float64, len(y))
	for i, b := range l.bij {
		d[i] = b.InverseDeriv(y[i])
	}

	return d
}

// LogAbsDetJacobian returns Σ log|dx_i/dy_i| and its gradient with respect
// to y for the raw unconstrained slice y.
func (l *Layout) LogAbsDetJacobian(y []float64) (float64, []float64) {
	var sum float64
	grad := make([]float64, len(y))
	for i, b := range l.bij {
		sum += b.LogAbsDetJacobian(y[i])
		grad[i] = b.GradLogAbsDetJacobian(y[i])
	}

	return sum, grad
}
