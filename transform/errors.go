// SPDX-License-Identifier: MIT

package transform

import "errors"

var (
	// ErrAlreadyUnconstrained is returned by ToUnconstrained for a linked vector.
	ErrAlreadyUnconstrained = errors.New("transform: vector is already unconstrained")

	// ErrAlreadyConstrained is returned by ToConstrained for an unlinked vector.
	ErrAlreadyConstrained = errors.New("transform: vector is already constrained")

	// ErrOutOfSupport is returned when a constrained value lies outside the
	// support of its bijector (e.g. x <= 0 for Positive).
	ErrOutOfSupport = errors.New("transform: value outside support")

	// ErrLayoutMismatch is returned when a vector's names differ from the layout.
	ErrLayoutMismatch = errors.New("transform: vector does not match layout")
)
