// SPDX-License-Identifier: MIT

package mode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmode/optimizer"
)

// fileConfig is the YAML form of the tunable options. Absent keys keep
// their defaults.
type fileConfig struct {
	Method            *optimizer.Method  `yaml:"method"`
	MaxIterations     *int               `yaml:"max_iterations"`
	GradientTolerance *float64           `yaml:"gradient_tolerance"`
	FunctionTolerance *float64           `yaml:"function_tolerance"`
	Runtime           string             `yaml:"runtime"`
	Jacobian          *bool              `yaml:"jacobian"`
	Init              map[string]float64 `yaml:"init"`
}

// LoadOptions reads estimation options from a YAML document:
//
//	method: lbfgs            # lbfgs | bfgs | cg | gradient-descent | nelder-mead
//	max_iterations: 500
//	gradient_tolerance: 1e-8
//	function_tolerance: 1e-10
//	runtime: 2s
//	jacobian: false
//	init:
//	  mu: 0.5
//	  sigma: 1
//
// Unknown keys and out-of-range values are rejected with ErrInvalidInput.
// An empty document yields no options.
func LoadOptions(r io.Reader) ([]Option, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("LoadOptions: %w: %w", ErrInvalidInput, err)
	}

	return fc.options()
}

func (fc fileConfig) options() ([]Option, error) {
	var opts []Option
	if fc.Method != nil {
		opts = append(opts, WithMethod(*fc.Method))
	}
	if fc.MaxIterations != nil {
		if *fc.MaxIterations < 0 {
			return nil, fmt.Errorf("LoadOptions: max_iterations %d: %w", *fc.MaxIterations, ErrInvalidInput)
		}
		opts = append(opts, WithMaxIterations(*fc.MaxIterations))
	}
	if fc.GradientTolerance != nil {
		if !validTolerance(*fc.GradientTolerance) {
			return nil, fmt.Errorf("LoadOptions: gradient_tolerance %v: %w", *fc.GradientTolerance, ErrInvalidInput)
		}
		opts = append(opts, WithGradientTolerance(*fc.GradientTolerance))
	}
	if fc.FunctionTolerance != nil {
		if !validTolerance(*fc.FunctionTolerance) {
			return nil, fmt.Errorf("LoadOptions: function_tolerance %v: %w", *fc.FunctionTolerance, ErrInvalidInput)
		}
		opts = append(opts, WithFunctionTolerance(*fc.FunctionTolerance))
	}
	if fc.Runtime != "" {
		d, err := time.ParseDuration(fc.Runtime)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("LoadOptions: runtime %q: %w", fc.Runtime, ErrInvalidInput)
		}
		opts = append(opts, WithRuntime(d))
	}
	if fc.Jacobian != nil {
		opts = append(opts, WithJacobian(*fc.Jacobian))
	}
	if fc.Init != nil {
		opts = append(opts, WithInitValues(fc.Init))
	}

	return opts, nil
}

func validTolerance(tol float64) bool {
	return tol >= 0 && !math.IsInf(tol, 0)
}
