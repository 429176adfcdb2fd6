// SPDX-License-Identifier: MIT

package optimizer

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/optimize"
)

// Method selects the minimization algorithm.
type Method uint8

const (
	// LBFGS is limited-memory BFGS, the default quasi-Newton method.
	LBFGS Method = iota
	// BFGS is full-memory BFGS.
	BFGS
	// CG is nonlinear conjugate gradient.
	CG
	// GradientDescent is steepest descent with a line search.
	GradientDescent
	// NelderMead is the derivative-free simplex method.
	NelderMead
)

var methodNames = [...]string{
	LBFGS:           "lbfgs",
	BFGS:            "bfgs",
	CG:              "cg",
	GradientDescent: "gradient-descent",
	NelderMead:      "nelder-mead",
}

// String implements fmt.Stringer.
func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}

	return fmt.Sprintf("Method(%d)", uint8(m))
}

// ParseMethod maps a name to a Method. Matching ignores case, '-' and '_',
// so "L-BFGS", "lbfgs" and "Nelder_Mead" are all accepted.
// Errors: ErrUnknownMethod.
func ParseMethod(s string) (Method, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, n := range methodNames {
		if strings.ReplaceAll(n, "-", "") == key {
			return Method(i), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// gonumMethod returns a fresh gonum method value; methods keep state between
// iterations and must not be shared across runs.
func (m Method) gonumMethod() (optimize.Method, error) {
	switch m {
	case LBFGS:
		return &optimize.LBFGS{}, nil
	case BFGS:
		return &optimize.BFGS{}, nil
	case CG:
		return &optimize.CG{}, nil
	case GradientDescent:
		return &optimize.GradientDescent{}, nil
	case NelderMead:
		return &optimize.NelderMead{}, nil
	default:
		return nil, fmt.Errorf("%v: %w", m, ErrUnknownMethod)
	}
}
