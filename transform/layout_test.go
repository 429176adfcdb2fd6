package transform_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmode/param"
	"github.com/katalvlaran/lvmode/transform"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

// bijectorCases pairs each bijector with in-support sample points.
var bijectorCases = []struct {
	name string
	b    transform.Bijector
	xs   []float64
}{
	{"identity", transform.Identity{}, []float64{-1e3, -2.5, 0, 1e-9, 7}},
	{"positive", transform.Positive(), []float64{1e-8, 0.3, 1, 42, 1e6}},
	{"lower", transform.Lower{L: -3}, []float64{-2.999, -1, 0, 10}},
	{"upper", transform.Upper{U: 2}, []float64{-50, 0, 1.999}},
	{"unit", transform.UnitInterval(), []float64{1e-6, 0.25, 0.5, 0.9, 1 - 1e-6}},
	{"interval", transform.NewInterval(-1, 4), []float64{-0.99, 0, 3.5}},
}

// TestBijectorRoundTrip checks Inverse(Forward(x)) ≈ x across supports.
func TestBijectorRoundTrip(t *testing.T) {
	t.Parallel()
	for _, tc := range bijectorCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, x := range tc.xs {
				y, err := tc.b.Forward(x)
				require.NoError(t, err)
				require.InDelta(t, x, tc.b.Inverse(y), 1e-9*math.Max(1, math.Abs(x)))
			}
		})
	}
}

// TestBijectorDerivatives compares the analytic derivatives with finite differences.
func TestBijectorDerivatives(t *testing.T) {
	t.Parallel()
	for _, tc := range bijectorCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, y := range []float64{-2, -0.3, 0, 0.7, 1.5} {
				d := fd.Derivative(tc.b.Inverse, y, &fd.Settings{Formula: fd.Central})
				require.InDelta(t, d, tc.b.InverseDeriv(y), 1e-6*math.Max(1, math.Abs(d)))

				require.InDelta(t, math.Log(math.Abs(tc.b.InverseDeriv(y))), tc.b.LogAbsDetJacobian(y), 1e-12)

				g := fd.Derivative(tc.b.LogAbsDetJacobian, y, &fd.Settings{Formula: fd.Central})
				require.InDelta(t, g, tc.b.GradLogAbsDetJacobian(y), 1e-6)
			}
		})
	}
}

func TestBijectorSupport(t *testing.T) {
	t.Parallel()
	_, err := transform.Positive().Forward(0)
	require.ErrorIs(t, err, transform.ErrOutOfSupport)
	_, err = transform.Upper{U: 1}.Forward(1)
	require.ErrorIs(t, err, transform.ErrOutOfSupport)
	_, err = transform.UnitInterval().Forward(1)
	require.ErrorIs(t, err, transform.ErrOutOfSupport)
	_, err = transform.Identity{}.Forward(math.NaN())
	require.ErrorIs(t, err, transform.ErrOutOfSupport)

	require.Panics(t, func() { transform.NewInterval(1, 1) })
}

func newLayout(t *testing.T) *transform.Layout {
	t.Helper()
	l, err := transform.NewLayout(
		[]string{"mu", "sigma", "p"},
		[]transform.Bijector{nil, transform.Positive(), transform.UnitInterval()},
	)
	require.NoError(t, err)

	return l
}

// TestLayoutRoundTrip is the vector-level round-trip property.
func TestLayoutRoundTrip(t *testing.T) {
	t.Parallel()
	l := newLayout(t)
	p := param.MustNew([]string{"mu", "sigma", "p"}, []float64{-1.5, 0.2, 0.7}, param.Constrained)

	u, err := l.ToUnconstrained(p)
	require.NoError(t, err)
	require.True(t, u.Linked())
	require.Equal(t, p.Names(), u.Names())
	require.InDelta(t, math.Log(0.2), u.At(1), 1e-15)

	back, err := l.ToConstrained(u)
	require.NoError(t, err)
	require.False(t, back.Linked())
	require.InDeltaSlice(t, p.Values(), back.Values(), 1e-12)

	// Toggle is the same pair of maps.
	tog, err := l.Toggle(p)
	require.NoError(t, err)
	require.Equal(t, u.Values(), tog.Values())
	again, err := l.Toggle(tog)
	require.NoError(t, err)
	require.InDeltaSlice(t, p.Values(), again.Values(), 1e-12)

	// The input was not touched.
	require.Equal(t, []float64{-1.5, 0.2, 0.7}, p.Values())
}

// TestLayoutStaleState rejects transforming a vector twice in the same direction.
func TestLayoutStaleState(t *testing.T) {
	t.Parallel()
	l := newLayout(t)
	p := param.MustNew([]string{"mu", "sigma", "p"}, []float64{0, 1, 0.5}, param.Constrained)
	u, err := l.ToUnconstrained(p)
	require.NoError(t, err)

	_, err = l.ToUnconstrained(u)
	require.ErrorIs(t, err, transform.ErrAlreadyUnconstrained)
	_, err = l.ToConstrained(p)
	require.ErrorIs(t, err, transform.ErrAlreadyConstrained)
}

func TestLayoutMismatch(t *testing.T) {
	t.Parallel()
	l := newLayout(t)
	swapped := param.MustNew([]string{"sigma", "mu", "p"}, []float64{1, 0, 0.5}, param.Constrained)
	_, err := l.ToUnconstrained(swapped)
	require.ErrorIs(t, err, transform.ErrLayoutMismatch)

	short := param.MustNew([]string{"mu"}, []float64{0}, param.Constrained)
	_, err = l.ToUnconstrained(short)
	require.ErrorIs(t, err, transform.ErrLayoutMismatch)

	bad := param.MustNew([]string{"mu", "sigma", "p"}, []float64{0, -1, 0.5}, param.Constrained)
	_, err = l.ToUnconstrained(bad)
	require.ErrorIs(t, err, transform.ErrOutOfSupport)

	_, err = transform.NewLayout([]string{"a"}, nil)
	require.ErrorIs(t, err, transform.ErrLayoutMismatch)
	_, err = transform.NewLayout([]string{"a", "a"}, make([]transform.Bijector, 2))
	require.ErrorIs(t, err, param.ErrDuplicateName)
}

func TestLayoutJacobian(t *testing.T) {
	t.Parallel()
	l := newLayout(t)
	y := []float64{0.3, -0.2, 1.1}

	lj, grad := l.LogAbsDetJacobian(y)
	var want float64
	for i, d := range l.InverseDerivs(y) {
		want += math.Log(math.Abs(d))
		require.Equal(t, l.Bijector(i).GradLogAbsDetJacobian(y[i]), grad[i])
	}
	require.InDelta(t, want, lj, 1e-12)
}
