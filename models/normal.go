// SPDX-License-Identifier: MIT

package models

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvmode/density"
	"github.com/katalvlaran/lvmode/matrix"
	"github.com/katalvlaran/lvmode/param"
	"github.com/katalvlaran/lvmode/transform"
)

// log(2π)/2, the Normal log-density constant.
var halfLog2Pi = 0.5 * math.Log(2*math.Pi)

// NormalPrior is a Normal(Mean, SD) prior on a real parameter.
type NormalPrior struct {
	Mean float64
	SD   float64
}

func (p NormalPrior) logDensity(x float64) float64 {
	z := (x - p.Mean) / p.SD

	return -halfLog2Pi - math.Log(p.SD) - 0.5*z*z
}

func (p NormalPrior) grad(x float64) float64 { return -(x - p.Mean) / (p.SD * p.SD) }

func (p NormalPrior) hess() float64 { return -1 / (p.SD * p.SD) }

// NormalMean is y_i ~ Normal(mu, Sigma) with Sigma known and a single free
// parameter "mu". A nil Prior is flat (log-prior 0).
//
// Closed forms: the MLE is mean(y) with standard error Sigma/√n; under a
// Normal(m, s) prior the MAP is (n·ȳ/Sigma² + m/s²) / (n/Sigma² + 1/s²).
// NormalMean supplies analytic gradients and Hessians.
type NormalMean struct {
	Data  []float64
	Sigma float64
	Prior *NormalPrior
}

var (
	_ density.Model              = (*NormalMean)(nil)
	_ density.LikelihoodGradient = (*NormalMean)(nil)
	_ density.PriorGradient      = (*NormalMean)(nil)
	_ density.LikelihoodHessian  = (*NormalMean)(nil)
	_ density.PriorHessian       = (*NormalMean)(nil)
)

// Parameters implements density.Model.
func (m *NormalMean) Parameters() []density.Parameter {
	def := 0.0
	if m.Prior != nil {
		def = m.Prior.Mean
	}

	return []density.Parameter{{Name: "mu", Support: transform.Identity{}, Default: def}}
}

func (m *NormalMean) check() error {
	if len(m.Data) == 0 {
		return ErrEmptyData
	}
	if !(m.Sigma > 0) {
		return ErrBadScale
	}
	if m.Prior != nil && !(m.Prior.SD > 0) {
		return ErrBadScale
	}

	return nil
}

// LogLikelihood implements density.Model.
func (m *NormalMean) LogLikelihood(p param.Vector) (float64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	mu := p.At(0)
	n := float64(len(m.Data))
	var ss float64
	for _, y := range m.Data {
		ss += (y - mu) * (y - mu)
	}

	return -n*(halfLog2Pi+math.Log(m.Sigma)) - 0.5*ss/(m.Sigma*m.Sigma), nil
}

// LogPrior implements density.Model.
func (m *NormalMean) LogPrior(p param.Vector) (float64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	if m.Prior == nil {
		return 0, nil
	}

	return m.Prior.logDensity(p.At(0)), nil
}

// LogLikelihoodGrad implements density.LikelihoodGradient.
func (m *NormalMean) LogLikelihoodGrad(p param.Vector, grad []float64) error {
	if err := m.check(); err != nil {
		return err
	}
	n := float64(len(m.Data))
	grad[0] = n * (floats.Sum(m.Data)/n - p.At(0)) / (m.Sigma * m.Sigma)

	return nil
}

// LogPriorGrad implements density.PriorGradient.
func (m *NormalMean) LogPriorGrad(p param.Vector, grad []float64) error {
	if err := m.check(); err != nil {
		return err
	}
	grad[0] = 0
	if m.Prior != nil {
		grad[0] = m.Prior.grad(p.At(0))
	}

	return nil
}

// LogLikelihoodHess implements density.LikelihoodHessian.
func (m *NormalMean) LogLikelihoodHess(_ param.Vector, hess matrix.Matrix) error {
	if err := m.check(); err != nil {
		return err
	}

	return hess.Set(0, 0, -float64(len(m.Data))/(m.Sigma*m.Sigma))
}

// LogPriorHess implements density.PriorHessian.
func (m *NormalMean) LogPriorHess(_ param.Vector, hess matrix.Matrix) error {
	if err := m.check(); err != nil {
		return err
	}
	if m.Prior == nil {
		return nil
	}

	return hess.Set(0, 0, m.Prior.hess())
}

// MLE returns the closed-form maximum-likelihood estimate mean(y).
func (m *NormalMean) MLE() float64 { return stat.Mean(m.Data, nil) }

// MAP returns the closed-form posterior mode; with a nil Prior it is the MLE.
func (m *NormalMean) MAP() float64 {
	if m.Prior == nil {
		return m.MLE()
	}
	n := float64(len(m.Data))
	s2, t2 := m.Sigma*m.Sigma, m.Prior.SD*m.Prior.SD

	return (n*m.MLE()/s2 + m.Prior.Mean/t2) / (n/s2 + 1/t2)
}

// Normal is y_i ~ Normal(mu, sigma) with "mu" real and "sigma" positive.
// MuPrior is an optional Normal prior on mu; SigmaRate, when positive, puts an
// Exponential(SigmaRate) prior on sigma. Absent priors are flat.
//
// Closed form MLE: mu = mean(y), sigma = sqrt(mean((y-ȳ)²)).
// Normal supplies analytic gradients only, so curvature comes from
// differencing the gradient.
type Normal struct {
	Data      []float64
	MuPrior   *NormalPrior
	SigmaRate float64
}

var (
	_ density.LikelihoodGradient = (*Normal)(nil)
	_ density.PriorGradient      = (*Normal)(nil)
)

// Parameters implements density.Model.
func (m *Normal) Parameters() []density.Parameter {
	mu := 0.0
	if m.MuPrior != nil {
		mu = m.MuPrior.Mean
	}

	return []density.Parameter{
		{Name: "mu", Support: transform.Identity{}, Default: mu},
		{Name: "sigma", Support: transform.Positive(), Default: 1},
	}
}

func (m *Normal) check() error {
	if len(m.Data) == 0 {
		return ErrEmptyData
	}
	if m.MuPrior != nil && !(m.MuPrior.SD > 0) {
		return ErrBadScale
	}
	if m.SigmaRate < 0 {
		return ErrBadScale
	}

	return nil
}

// LogLikelihood implements density.Model.
// A non-positive sigma has zero likelihood: -Inf, not an error.
func (m *Normal) LogLikelihood(p param.Vector) (float64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	mu, sigma := p.At(0), p.At(1)
	if !(sigma > 0) {
		return math.Inf(-1), nil
	}
	n := float64(len(m.Data))
	var ss float64
	for _, y := range m.Data {
		ss += (y - mu) * (y - mu)
	}

	return -n*(halfLog2Pi+math.Log(sigma)) - 0.5*ss/(sigma*sigma), nil
}

// LogPrior implements density.Model.
func (m *Normal) LogPrior(p param.Vector) (float64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	var lp float64
	if m.MuPrior != nil {
		lp += m.MuPrior.logDensity(p.At(0))
	}
	if m.SigmaRate > 0 {
		lp += math.Log(m.SigmaRate) - m.SigmaRate*p.At(1)
	}

	return lp, nil
}

// LogLikelihoodGrad implements density.LikelihoodGradient.
func (m *Normal) LogLikelihoodGrad(p param.Vector, grad []float64) error {
	if err := m.check(); err != nil {
		return err
	}
	mu, sigma := p.At(0), p.At(1)
	n := float64(len(m.Data))
	var s1, ss float64
	for _, y := range m.Data {
		s1 += y - mu
		ss += (y - mu) * (y - mu)
	}
	s2 := sigma * sigma
	grad[0] = s1 / s2
	grad[1] = -n/sigma + ss/(s2*sigma)

	return nil
}

// LogPriorGrad implements density.PriorGradient.
func (m *Normal) LogPriorGrad(p param.Vector, grad []float64) error {
	if err := m.check(); err != nil {
		return err
	}
	grad[0], grad[1] = 0, 0
	if m.MuPrior != nil {
		grad[0] = m.MuPrior.grad(p.At(0))
	}
	if m.SigmaRate > 0 {
		grad[1] = -m.SigmaRate
	}

	return nil
}

// MLE returns the closed-form maximum-likelihood estimates (mu, sigma).
func (m *Normal) MLE() (mu, sigma float64) {
	mu = stat.Mean(m.Data, nil)
	var ss float64
	for _, y := range m.Data {
		ss += (y - mu) * (y - mu)
	}

	return mu, math.Sqrt(ss / float64(len(m.Data)))
}
