// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"math"
)

// Bijector is a smooth one-to-one map between a constrained support and ℝ.
//
// Forward maps constrained x to unconstrained y and validates the support.
// Inverse maps any real y back into the support. The derivative helpers are
// expressed with respect to y, the optimizer's coordinate.
type Bijector interface {
	// Forward returns y = f(x). Errors: ErrOutOfSupport.
	Forward(x float64) (float64, error)
	// Inverse returns x = f⁻¹(y).
	Inverse(y float64) float64
	// InverseDeriv returns dx/dy at y.
	InverseDeriv(y float64) float64
	// LogAbsDetJacobian returns log|dx/dy| at y.
	LogAbsDetJacobian(y float64) float64
	// GradLogAbsDetJacobian returns d/dy log|dx/dy| at y.
	GradLogAbsDetJacobian(y float64) float64
	String() string
}

// Identity leaves values unchanged; support is ℝ.
type Identity struct{}

// Forward implements Bijector.
func (Identity) Forward(x float64) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("identity: %v: %w", x, ErrOutOfSupport)
	}

	return x, nil
}

// Inverse implements Bijector.
func (Identity) Inverse(y float64) float64 { return y }

// InverseDeriv implements Bijector.
func (Identity) InverseDeriv(float64) float64 { return 1 }

// LogAbsDetJacobian implements Bijector.
func (Identity) LogAbsDetJacobian(float64) float64 { return 0 }

// GradLogAbsDetJacobian implements Bijector.
func (Identity) GradLogAbsDetJacobian(float64) float64 { return 0 }

func (Identity) String() string { return "real" }

// Lower constrains x > L through x = L + exp(y).
type Lower struct{ L float64 }

// Positive is the support (0, ∞).
func Positive() Bijector { return Lower{L: 0} }

// Forward implements Bijector.
func (b Lower) Forward(x float64) (float64, error) {
	if !(x > b.L) || math.IsInf(x, 1) {
		return 0, fmt.Errorf("%s: %v: %w", b, x, ErrOutOfSupport)
	}

	return math.Log(x - b.L), nil
}

// Inverse implements Bijector.
func (b Lower) Inverse(y float64) float64 { return b.L + math.Exp(y) }

// InverseDeriv implements Bijector.
func (b Lower) InverseDeriv(y float64) float64 { return math.Exp(y) }

// LogAbsDetJacobian implements Bijector.
func (b Lower) LogAbsDetJacobian(y float64) float64 { return y }

// GradLogAbsDetJacobian implements Bijector.
func (b Lower) GradLogAbsDetJacobian(float64) float64 { return 1 }

func (b Lower) String() string { return fmt.Sprintf("lower(%g)", b.L) }

// Upper constrains x < U through x = U - exp(y).
type Upper struct{ U float64 }

// Forward implements Bijector.
func (b Upper) Forward(x float64) (float64, error) {
	if !(x < b.U) || math.IsInf(x, -1) {
		return 0, fmt.Errorf("%s: %v: %w", b, x, ErrOutOfSupport)
	}

	return math.Log(b.U - x), nil
}

// Inverse implements Bijector.
func (b Upper) Inverse(y float64) float64 { return b.U - math.Exp(y) }

// InverseDeriv implements Bijector.
func (b Upper) InverseDeriv(y float64) float64 { return -math.Exp(y) }

// LogAbsDetJacobian implements Bijector.
func (b Upper) LogAbsDetJacobian(y float64) float64 { return y }

// GradLogAbsDetJacobian implements Bijector.
func (b Upper) GradLogAbsDetJacobian(float64) float64 { return 1 }

func (b Upper) String() string { return fmt.Sprintf("upper(%g)", b.U) }

// Interval constrains L < x < U through a scaled logistic map.
type Interval struct{ L, U float64 }

// NewInterval returns the (l, u) bijector. Panics unless l < u and both are finite:
// constraint metadata is authored with the model, so a bad interval is a
// programming error.
func NewInterval(l, u float64) Interval {
	if !(l < u) || math.IsInf(l, 0) || math.IsInf(u, 0) {
		panic(fmt.Sprintf("transform: NewInterval(%v, %v) requires finite l < u", l, u))
	}

	return Interval{L: l, U: u}
}

// UnitInterval is the support (0, 1).
func UnitInterval() Bijector { return Interval{L: 0, U: 1} }

// Forward implements Bijector.
func (b Interval) Forward(x float64) (float64, error) {
	if !(x > b.L && x < b.U) {
		return 0, fmt.Errorf("%s: %v: %w", b, x, ErrOutOfSupport)
	}
	p := (x - b.L) / (b.U - b.L)

	return math.Log(p) - math.Log1p(-p), nil
}

// Inverse implements Bijector.
func (b Interval) Inverse(y float64) float64 { return b.L + (b.U-b.L)*sigmoid(y) }

// InverseDeriv implements Bijector.
func (b Interval) InverseDeriv(y float64) float64 {
	s := sigmoid(y)

	return (b.U - b.L) * s * (1 - s)
}

// LogAbsDetJacobian implements Bijector.
// log((U-L)·s·(1-s)) = log(U-L) - softplus(-y) - softplus(y).
func (b Interval) LogAbsDetJacobian(y float64) float64 {
	return math.Log(b.U-b.L) - softplus(-y) - softplus(y)
}

// GradLogAbsDetJacobian implements Bijector.
func (b Interval) GradLogAbsDetJacobian(y float64) float64 { return 1 - 2*sigmoid(y) }

func (b Interval) String() string { return fmt.Sprintf("interval(%g,%g)", b.L, b.U) }

// sigmoid is the logistic function, evaluated without overflow for either sign.
func sigmoid(y float64) float64 {
	if y >= 0 {
		return 1 / (1 + math.Exp(-y))
	}
	e := math.Exp(y)

	return e / (1 + e)
}

// softplus returns log(1+exp(y)) without overflow.
func softplus(y float64) float64 {
	if y > 0 {
		return y + math.Log1p(math.Exp(-y))
	}

	return math.Log1p(math.Exp(y))
}
