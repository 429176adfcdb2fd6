// SPDX-License-Identifier: MIT

package objective

import "errors"

var (
	// ErrDimension is returned when an input vector does not have one entry
	// per model parameter.
	ErrDimension = errors.New("objective: vector length does not match parameters")

	// ErrBadSpace is returned by New and InSpace for an undefined param.Space.
	ErrBadSpace = errors.New("objective: invalid space")

	// ErrNonFiniteGradient is returned by Gradient when an entry is NaN or ±Inf
	// at a point where the objective itself is finite.
	ErrNonFiniteGradient = errors.New("objective: non-finite gradient")
)
