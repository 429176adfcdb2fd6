// SPDX-License-Identifier: MIT

package mode

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvmode/density"
)

// Mode selects the estimated quantity.
type Mode uint8

const (
	// MLE maximizes the log-likelihood.
	MLE Mode = iota
	// MAP maximizes the joint log-density, log-likelihood plus log-prior.
	MAP
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case MLE:
		return "mle"
	case MAP:
		return "map"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Kind returns the density evaluated for m.
func (m Mode) Kind() density.Kind {
	if m == MAP {
		return density.Joint
	}

	return density.Likelihood
}

// Valid reports whether m is MLE or MAP.
func (m Mode) Valid() bool { return m == MLE || m == MAP }

// ParseMode accepts "mle" or "map" in any case.
// Errors: ErrInvalidInput.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mle":
		return MLE, nil
	case "map":
		return MAP, nil
	default:
		return 0, fmt.Errorf("mode %q: %w", s, ErrInvalidInput)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}
