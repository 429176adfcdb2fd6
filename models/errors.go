// SPDX-License-Identifier: MIT

package models

import "errors"

var (
	// ErrEmptyData is returned when a model has no observations.
	ErrEmptyData = errors.New("models: empty data")

	// ErrBadScale is returned for a non-positive scale, shape or rate.
	ErrBadScale = errors.New("models: scale parameters must be > 0")

	// ErrNegativeCount is returned for a negative Poisson count.
	ErrNegativeCount = errors.New("models: negative count")
)
