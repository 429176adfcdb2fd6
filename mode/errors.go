// SPDX-License-Identifier: MIT

package mode

import "errors"

var (
	// ErrInvalidInput is returned when initial values do not cover exactly the
	// model's parameters, or a mode or option value is outside its domain.
	ErrInvalidInput = errors.New("mode: invalid input")

	// ErrParameterDrift is returned when the model's parameter list no longer
	// matches the vector the optimizer worked on.
	ErrParameterDrift = errors.New("mode: parameter names drifted during estimation")

	// ErrNilModel is returned by Estimate for a nil model.
	ErrNilModel = errors.New("mode: nil model")
)
