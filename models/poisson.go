// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvmode/density"
	"github.com/katalvlaran/lvmode/param"
	"github.com/katalvlaran/lvmode/transform"
)

// PoissonGamma is y_i ~ Poisson(lambda) with lambda ~ Gamma(Shape, Rate)
// and a single positive parameter "lambda".
//
// Closed forms: MLE = mean(y); MAP = (Shape-1+Σy)/(Rate+n) for Shape >= 1.
// PoissonGamma supplies no derivatives, so every gradient and curvature is
// obtained by finite differences.
type PoissonGamma struct {
	Counts []int
	Shape  float64
	Rate   float64
}

var _ density.Model = (*PoissonGamma)(nil)

// Parameters implements density.Model. The default is the prior mean.
func (m *PoissonGamma) Parameters() []density.Parameter {
	def := 1.0
	if m.Shape > 0 && m.Rate > 0 {
		def = m.Shape / m.Rate
	}

	return []density.Parameter{{Name: "lambda", Support: transform.Positive(), Default: def}}
}

func (m *PoissonGamma) check() error {
	if len(m.Counts) == 0 {
		return ErrEmptyData
	}
	if !(m.Shape > 0) || !(m.Rate > 0) {
		return ErrBadScale
	}
	for i, y := range m.Counts {
		if y < 0 {
			return fmt.Errorf("count %d: %w", i, ErrNegativeCount)
		}
	}

	return nil
}

// LogLikelihood implements density.Model.
func (m *PoissonGamma) LogLikelihood(p param.Vector) (float64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	lambda := p.At(0)
	if !(lambda > 0) {
		return math.Inf(-1), nil
	}
	var ll float64
	logL := math.Log(lambda)
	for _, y := range m.Counts {
		lg, _ := math.Lgamma(float64(y) + 1)
		ll += float64(y)*logL - lambda - lg
	}

	return ll, nil
}

// LogPrior implements density.Model.
func (m *PoissonGamma) LogPrior(p param.Vector) (float64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	lambda := p.At(0)
	if !(lambda > 0) {
		return math.Inf(-1), nil
	}
	lg, _ := math.Lgamma(m.Shape)

	return m.Shape*math.Log(m.Rate) - lg + (m.Shape-1)*math.Log(lambda) - m.Rate*lambda, nil
}

func (m *PoissonGamma) sum() float64 {
	var s float64
	for _, y := range m.Counts {
		s += float64(y)
	}

	return s
}

// MLE returns mean(y).
func (m *PoissonGamma) MLE() float64 { return m.sum() / float64(len(m.Counts)) }

// MAP returns the constrained-space posterior mode (Shape-1+Σy)/(Rate+n).
func (m *PoissonGamma) MAP() float64 {
	return (m.Shape - 1 + m.sum()) / (m.Rate + float64(len(m.Counts)))
}

// LogMAP returns the mode of the posterior of log(lambda), (Shape+Σy)/(Rate+n):
// the estimate obtained when the log-Jacobian of the positivity transform is
// kept in the objective.
func (m *PoissonGamma) LogMAP() float64 {
	return (m.Shape + m.sum()) / (m.Rate + float64(len(m.Counts)))
}
