// SPDX-License-Identifier: MIT

package summary

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmode/mode"
)

var (
	// ErrNilResult is returned for a nil *mode.Result.
	ErrNilResult = errors.New("summary: nil result")

	// ErrSingularMatrix is returned when the information matrix cannot be
	// inverted, for example when a parameter is not identified at the mode.
	ErrSingularMatrix = errors.New("summary: information matrix is singular")

	// ErrNotPositiveDefinite is returned when the covariance has a negative
	// variance, i.e. the estimate is not a local maximum.
	ErrNotPositiveDefinite = errors.New("summary: covariance is not positive definite")

	// ErrInvalidLevel is returned for a confidence level outside (0, 1).
	ErrInvalidLevel = fmt.Errorf("summary: confidence level must lie in (0, 1): %w", mode.ErrInvalidInput)

	// ErrBadHessian is returned when a Hessian provider returns a matrix of
	// the wrong shape or a visibly asymmetric one.
	ErrBadHessian = errors.New("summary: hessian provider returned an invalid matrix")
)
