// SPDX-License-Identifier: MIT

package density

import "errors"

var (
	// ErrNilModel is returned when a nil Model is supplied.
	ErrNilModel = errors.New("density: nil model")

	// ErrNoParameters is returned when a model declares no parameters.
	ErrNoParameters = errors.New("density: model declares no parameters")

	// ErrBadKind is returned for a Kind outside {Likelihood, Joint}.
	ErrBadKind = errors.New("density: invalid density kind")

	// ErrGradientLength is returned when an analytic gradient has the wrong size.
	ErrGradientLength = errors.New("density: gradient length mismatch")
)
