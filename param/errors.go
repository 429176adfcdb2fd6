// SPDX-License-Identifier: MIT

package param

import "errors"

var (
	// ErrEmptyName is returned when a parameter name is the empty string.
	ErrEmptyName = errors.New("param: empty parameter name")

	// ErrDuplicateName is returned when a name occurs more than once.
	ErrDuplicateName = errors.New("param: duplicate parameter name")

	// ErrLengthMismatch is returned when names and values differ in length.
	ErrLengthMismatch = errors.New("param: names and values length mismatch")

	// ErrNonFinite is returned when a value is NaN or ±Inf.
	ErrNonFinite = errors.New("param: non-finite value")

	// ErrUnknownName is returned when a lookup names a parameter that is absent.
	ErrUnknownName = errors.New("param: unknown parameter name")

	// ErrNameSetMismatch is returned when two vectors do not carry the same set of names.
	ErrNameSetMismatch = errors.New("param: parameter sets differ")

	// ErrBadSpace is returned for a Space value outside {Constrained, Unconstrained}.
	ErrBadSpace = errors.New("param: invalid space")
)
