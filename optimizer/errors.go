// SPDX-License-Identifier: MIT

package optimizer

import "errors"

var (
	// ErrUnknownMethod is returned by ParseMethod for an unrecognized name.
	ErrUnknownMethod = errors.New("optimizer: unknown method")

	// ErrDimension is returned when the starting vector is empty.
	ErrDimension = errors.New("optimizer: empty starting vector")

	// ErrNoLocation is returned when the backend fails without producing a
	// usable location.
	ErrNoLocation = errors.New("optimizer: no usable location")
)
