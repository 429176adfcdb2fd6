// SPDX-License-Identifier: MIT

package models

import (
	"github.com/katalvlaran/lvmode/density"
	"github.com/katalvlaran/lvmode/param"
	"github.com/katalvlaran/lvmode/transform"
)

// Unidentified appends a real parameter named Extra to Inner. No likelihood
// or prior term depends on it, so the data carry no information about it:
// its row and column of the information matrix are identically zero.
type Unidentified struct {
	Inner   density.Model
	Extra   string
	Default float64
}

// Parameters implements density.Model.
func (m *Unidentified) Parameters() []density.Parameter {
	ps := m.Inner.Parameters()
	out := make([]density.Parameter, 0, len(ps)+1)
	out = append(out, ps...)

	return append(out, density.Parameter{Name: m.Extra, Support: transform.Identity{}, Default: m.Default})
}

// LogLikelihood implements density.Model.
func (m *Unidentified) LogLikelihood(p param.Vector) (float64, error) {
	inner, err := p.Drop(m.Extra)
	if err != nil {
		return 0, err
	}

	return m.Inner.LogLikelihood(inner)
}

// LogPrior implements density.Model.
func (m *Unidentified) LogPrior(p param.Vector) (float64, error) {
	inner, err := p.Drop(m.Extra)
	if err != nil {
		return 0, err
	}

	return m.Inner.LogPrior(inner)
}
