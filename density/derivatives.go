// SPDX-License-Identifier: MIT

package density

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvmode/matrix"
	"github.com/katalvlaran/lvmode/param"
)

// HessianStep is the default finite-difference step for value-only Hessians.
// Second differences lose accuracy as eps/h², so the step is larger than the
// first-derivative default of fd.Central.
const HessianStep = 1e-4

// HasGradient reports whether m supplies an analytic gradient for kind k.
func HasGradient(m Model, k Kind) bool {
	if _, ok := m.(LikelihoodGradient); !ok {
		return false
	}
	if k == Likelihood {
		return true
	}
	_, ok := m.(PriorGradient)

	return ok
}

// HasHessian reports whether m supplies an analytic Hessian for kind k.
func HasHessian(m Model, k Kind) bool {
	if _, ok := m.(LikelihoodHessian); !ok {
		return false
	}
	if k == Likelihood {
		return true
	}
	_, ok := m.(PriorHessian)

	return ok
}

// Gradient fills grad with ∇ log-density of kind k at p (constrained space).
// Analytic gradients are used when the model provides every required term;
// otherwise central finite differences are taken on LogDensity.
// The first model error met during differencing is returned.
func Gradient(m Model, k Kind, p param.Vector, grad []float64) error {
	if err := k.valid(); err != nil {
		return err
	}
	if len(grad) != p.Len() {
		return fmt.Errorf("Gradient: %d slots for %d parameters: %w", len(grad), p.Len(), ErrGradientLength)
	}
	if HasGradient(m, k) {
		return analyticGradient(m, k, p, grad)
	}

	var firstErr error
	f := valueFunc(m, k, p, &firstErr)
	fd.Gradient(grad, f, p.Values(), &fd.Settings{Formula: fd.Central})

	return firstErr
}

func analyticGradient(m Model, k Kind, p param.Vector, grad []float64) error {
	for i := range grad {
		grad[i] = 0
	}
	if err := m.(LikelihoodGradient).LogLikelihoodGrad(p, grad); err != nil {
		return err
	}
	if k == Likelihood {
		return nil
	}
	prior := make([]float64, len(grad))
	if err := m.(PriorGradient).LogPriorGrad(p, prior); err != nil {
		return err
	}
	floats.Add(grad, prior)

	return nil
}

// Hessian returns ∇² log-density of kind k at p (constrained space), n×n.
//
// Provider order:
//   - analytic Hessian when the model implements every required term;
//   - central differences of the analytic gradient (fd.Jacobian), symmetrized;
//   - second differences of the value (fd.Hessian) with the given step
//     (step <= 0 selects HessianStep).
func Hessian(m Model, k Kind, p param.Vector, step float64) (matrix.Matrix, error) {
	if err := k.valid(); err != nil {
		return nil, err
	}
	n := p.Len()
	if HasHessian(m, k) {
		return analyticHessian(m, k, p)
	}

	if HasGradient(m, k) {
		var firstErr error
		jac := mat.NewDense(n, n, nil)
		g := func(dst, x []float64) {
			if firstErr != nil {
				return
			}
			q, err := p.WithValues(x, param.Constrained)
			if err == nil {
				err = analyticGradient(m, k, q, dst)
			}
			if err != nil {
				firstErr = err
			}
		}
		fd.Jacobian(jac, g, p.Values(), &fd.JacobianSettings{Formula: fd.Central})
		if firstErr != nil {
			return nil, firstErr
		}
		raw, err := matrix.NewDenseFrom(n, n, jac.RawMatrix().Data)
		if err != nil {
			return nil, err
		}

		return matrix.Symmetrize(raw)
	}

	if step <= 0 {
		step = HessianStep
	}
	var firstErr error
	f := valueFunc(m, k, p, &firstErr)
	sym := mat.NewSymDense(n, nil)
	fd.Hessian(sym, f, p.Values(), &fd.Settings{Formula: fd.Central, Step: step})
	if firstErr != nil {
		return nil, firstErr
	}

	return fromSym(sym)
}

func analyticHessian(m Model, k Kind, p param.Vector) (matrix.Matrix, error) {
	n := p.Len()
	h, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	if err = m.(LikelihoodHessian).LogLikelihoodHess(p, h); err != nil {
		return nil, err
	}
	if k == Likelihood {
		return h, nil
	}
	ph, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	if err = m.(PriorHessian).LogPriorHess(p, ph); err != nil {
		return nil, err
	}
	var a, b float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, _ = h.At(i, j)
			b, _ = ph.At(i, j)
			_ = h.Set(i, j, a+b)
		}
	}

	return h, nil
}

// valueFunc adapts LogDensity to the error-free signature fd expects.
// The first error is stored in *firstErr; later calls short-circuit to 0.
func valueFunc(m Model, k Kind, p param.Vector, firstErr *error) func([]float64) float64 {
	return func(x []float64) float64 {
		if *firstErr != nil {
			return 0
		}
		q, err := p.WithValues(x, param.Constrained)
		if err != nil {
			*firstErr = err
			return 0
		}
		v, err := LogDensity(m, k, q)
		if err != nil {
			*firstErr = err
			return 0
		}

		return v
	}
}

// fromSym copies a gonum symmetric matrix into a matrix.Dense.
func fromSym(s *mat.SymDense) (matrix.Matrix, error) {
	n := s.SymmetricDim()
	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if err = out.Set(i, j, s.At(i, j)); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
