package param_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmode/param"
	"github.com/stretchr/testify/require"
)

func TestNewValidates(t *testing.T) {
	t.Parallel()
	_, err := param.New([]string{"a"}, []float64{1, 2}, param.Constrained)
	require.ErrorIs(t, err, param.ErrLengthMismatch)

	_, err = param.New([]string{"a", ""}, []float64{1, 2}, param.Constrained)
	require.ErrorIs(t, err, param.ErrEmptyName)

	_, err = param.New([]string{"a", "a"}, []float64{1, 2}, param.Constrained)
	require.ErrorIs(t, err, param.ErrDuplicateName)

	_, err = param.New([]string{"a"}, []float64{math.NaN()}, param.Constrained)
	require.ErrorIs(t, err, param.ErrNonFinite)

	_, err = param.New([]string{"a"}, []float64{1}, param.Space(7))
	require.ErrorIs(t, err, param.ErrBadSpace)
}

func TestVectorIsImmutable(t *testing.T) {
	t.Parallel()
	names := []string{"mu", "sigma"}
	vals := []float64{0.5, 2}
	v := param.MustNew(names, vals, param.Constrained)

	// Mutating the inputs or the accessor copies leaves v untouched.
	names[0] = "x"
	vals[0] = 99
	v.Values()[1] = -1
	v.Names()[1] = "y"

	require.Equal(t, []string{"mu", "sigma"}, v.Names())
	require.Equal(t, []float64{0.5, 2}, v.Values())
	require.False(t, v.Linked())
}

func TestWithValuesKeepsNames(t *testing.T) {
	t.Parallel()
	v := param.MustNew([]string{"a", "b"}, []float64{1, 2}, param.Constrained)
	w, err := v.WithValues([]float64{math.Inf(1), 4}, param.Unconstrained)
	require.NoError(t, err)

	require.Equal(t, v.Names(), w.Names())
	require.True(t, w.Linked())
	require.Equal(t, []float64{1, 2}, v.Values())

	_, err = v.WithValues([]float64{1}, param.Constrained)
	require.ErrorIs(t, err, param.ErrLengthMismatch)
}

func TestReorder(t *testing.T) {
	t.Parallel()
	v := param.MustNew([]string{"b", "a", "c"}, []float64{2, 1, 3}, param.Unconstrained)
	r, err := v.Reorder([]string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, r.Names())
	require.Equal(t, []float64{1, 2, 3}, r.Values())
	require.Equal(t, param.Unconstrained, r.Space())

	_, err = v.Reorder([]string{"a", "b"})
	require.ErrorIs(t, err, param.ErrNameSetMismatch)
	_, err = v.Reorder([]string{"a", "b", "z"})
	require.ErrorIs(t, err, param.ErrNameSetMismatch)
}

func TestLookupAndSets(t *testing.T) {
	t.Parallel()
	v := param.MustNew([]string{"a", "b"}, []float64{1, 2}, param.Constrained)

	x, err := v.Value("b")
	require.NoError(t, err)
	require.Equal(t, 2.0, x)
	_, err = v.Value("z")
	require.ErrorIs(t, err, param.ErrUnknownName)

	require.True(t, param.SameNameSet(v, []string{"b", "a"}))
	require.False(t, param.SameNameSet(v, []string{"a", "c"}))
	require.Equal(t, "{a=1, b=2} (constrained)", v.String())
}

func TestSpace(t *testing.T) {
	t.Parallel()
	require.True(t, param.Constrained.Valid())
	require.True(t, param.Unconstrained.Valid())
	require.Equal(t, "unconstrained", param.Unconstrained.String())
	require.False(t, param.Space(3).Valid())
}

func TestDrop(t *testing.T) {
	t.Parallel()
	v := param.MustNew([]string{"a", "b", "c"}, []float64{1, 2, 3}, param.Unconstrained)
	d, err := v.Drop("b")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, d.Names())
	require.Equal(t, []float64{1, 3}, d.Values())
	require.True(t, d.Linked())
	require.Equal(t, 3, v.Len())

	_, err = v.Drop("z")
	require.ErrorIs(t, err, param.ErrUnknownName)
}
