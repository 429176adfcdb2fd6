// SPDX-License-Identifier: MIT

package param

import (
	"fmt"
	"math"
	"strings"
)

// Space tags the representation a Vector is expressed in.
// Exactly one of Constrained / Unconstrained holds for any Vector.
type Space uint8

const (
	// Constrained is the model's natural parameter domain ("unlinked").
	Constrained Space = iota
	// Unconstrained is the transformed domain covering ℝⁿ ("linked").
	Unconstrained
)

// String implements fmt.Stringer.
func (s Space) String() string {
	switch s {
	case Constrained:
		return "constrained"
	case Unconstrained:
		return "unconstrained"
	default:
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the two defined spaces.
func (s Space) Valid() bool { return s == Constrained || s == Unconstrained }

// Vector is an immutable ordered sequence of named scalar parameters.
// The zero value is an empty constrained vector.
type Vector struct {
	names  []string
	values []float64
	index  map[string]int
	space  Space
}

// New builds a Vector from parallel names/values slices. Inputs are copied.
//
// Errors:
//   - ErrLengthMismatch if len(names) != len(values).
//   - ErrEmptyName / ErrDuplicateName for invalid names.
//   - ErrNonFinite for NaN/±Inf values.
//   - ErrBadSpace for an undefined space.
//
// Complexity: O(n).
func New(names []string, values []float64, space Space) (Vector, error) {
	if len(names) != len(values) {
		return Vector{}, fmt.Errorf("New: %d names, %d values: %w", len(names), len(values), ErrLengthMismatch)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Vector{}, fmt.Errorf("New: %q=%v: %w", names[i], v, ErrNonFinite)
		}
	}

	return build(names, values, space)
}

// MustNew is New that panics on error. Intended for tests and fixtures.
func MustNew(names []string, values []float64, space Space) Vector {
	v, err := New(names, values, space)
	if err != nil {
		panic(err)
	}

	return v
}

// build validates names and copies the inputs; values are not checked for
// finiteness so that transforms may legitimately overflow to ±Inf.
func build(names []string, values []float64, space Space) (Vector, error) {
	if !space.Valid() {
		return Vector{}, ErrBadSpace
	}
	idx := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			return Vector{}, fmt.Errorf("New: position %d: %w", i, ErrEmptyName)
		}
		if _, dup := idx[n]; dup {
			return Vector{}, fmt.Errorf("New: %q: %w", n, ErrDuplicateName)
		}
		idx[n] = i
	}
	ns := make([]string, len(names))
	copy(ns, names)
	vs := make([]float64, len(values))
	copy(vs, values)

	return Vector{names: ns, values: vs, index: idx, space: space}, nil
}

// Len returns the number of parameters.
func (v Vector) Len() int { return len(v.names) }

// Space returns the representation the values are expressed in.
func (v Vector) Space() Space { return v.space }

// Linked reports whether the vector is in unconstrained space.
func (v Vector) Linked() bool { return v.space == Unconstrained }

// Names returns a copy of the ordered names.
func (v Vector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)

	return out
}

// Values returns a copy of the ordered values.
func (v Vector) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)

	return out
}

// Name returns the i-th name; it panics when i is out of range, like a slice index.
func (v Vector) Name(i int) string { return v.names[i] }

// At returns the i-th value; it panics when i is out of range, like a slice index.
func (v Vector) At(i int) float64 { return v.values[i] }

// Value returns the value bound to name.
// Errors: ErrUnknownName.
func (v Vector) Value(name string) (float64, error) {
	i, ok := v.index[name]
	if !ok {
		return 0, fmt.Errorf("Value(%q): %w", name, ErrUnknownName)
	}

	return v.values[i], nil
}

// WithValues returns a fresh Vector with the same names, the given values and
// space. Values are not checked for finiteness.
// Errors: ErrLengthMismatch, ErrBadSpace.
func (v Vector) WithValues(values []float64, space Space) (Vector, error) {
	if len(values) != len(v.names) {
		return Vector{}, fmt.Errorf("WithValues: %d names, %d values: %w", len(v.names), len(values), ErrLengthMismatch)
	}
	if !space.Valid() {
		return Vector{}, ErrBadSpace
	}
	vs := make([]float64, len(values))
	copy(vs, values)

	// names and index are never mutated after build, so they are shared.
	return Vector{names: v.names, values: vs, index: v.index, space: space}, nil
}

// Reorder returns a fresh Vector whose names follow order exactly.
// Errors: ErrNameSetMismatch when order is not a permutation of v's names.
// Complexity: O(n).
func (v Vector) Reorder(order []string) (Vector, error) {
	if len(order) != len(v.names) {
		return Vector{}, fmt.Errorf("Reorder: %w: have %s, want %s", ErrNameSetMismatch, v.namesString(), strings.Join(order, ","))
	}
	vals := make([]float64, len(order))
	for i, n := range order {
		j, ok := v.index[n]
		if !ok {
			return Vector{}, fmt.Errorf("Reorder: %q: %w", n, ErrNameSetMismatch)
		}
		vals[i] = v.values[j]
	}

	return build(order, vals, v.space)
}

// Drop returns a fresh Vector without the named parameter, preserving the
// order of the rest.
// Errors: ErrUnknownName.
func (v Vector) Drop(name string) (Vector, error) {
	j, ok := v.index[name]
	if !ok {
		return Vector{}, fmt.Errorf("Drop(%q): %w", name, ErrUnknownName)
	}
	names := make([]string, 0, len(v.names)-1)
	vals := make([]float64, 0, len(v.values)-1)
	for i := range v.names {
		if i == j {
			continue
		}
		names = append(names, v.names[i])
		vals = append(vals, v.values[i])
	}

	return build(names, vals, v.space)
}

// String renders "name=value" pairs followed by the space tag.
func (v Vector) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, n := range v.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%g", n, v.values[i])
	}
	b.WriteString("} (")
	b.WriteString(v.space.String())
	b.WriteString(")")

	return b.String()
}

func (v Vector) namesString() string { return strings.Join(v.names, ",") }

// SameNameSet reports whether a carries exactly the names in want, in any order.
func SameNameSet(a Vector, want []string) bool {
	if len(a.names) != len(want) {
		return false
	}
	for _, n := range want {
		if _, ok := a.index[n]; !ok {
			return false
		}
	}

	return true
}
