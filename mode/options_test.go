package mode_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/lvmode/mode"
	"github.com/katalvlaran/lvmode/models"
	"github.com/katalvlaran/lvmode/optimizer"
)

func TestDefaultOptions(t *testing.T) {
	t.Parallel()
	o := mode.DefaultOptions()
	require.Equal(t, optimizer.Gonum{}, o.Optimizer)
	require.Equal(t, optimizer.DefaultSettings(), o.Settings)
	require.False(t, o.Jacobian)
	require.NotNil(t, o.Logger)
	require.Nil(t, o.Init)
}

func TestOptionConstructorsPanicOnNonsense(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { mode.WithOptimizer(nil) })
	require.Panics(t, func() { mode.WithMethod(optimizer.Method(99)) })
	require.Panics(t, func() { mode.WithMaxIterations(-1) })
	require.Panics(t, func() { mode.WithGradientTolerance(-1e-3) })
	require.Panics(t, func() { mode.WithFunctionTolerance(-1) })
	require.Panics(t, func() { mode.WithRuntime(-time.Second) })
	require.NotPanics(t, func() { mode.WithLogger(nil) })
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	m, err := mode.ParseMode(" MAP ")
	require.NoError(t, err)
	require.Equal(t, mode.MAP, m)
	require.Equal(t, "map", m.String())

	_, err = mode.ParseMode("mode")
	require.ErrorIs(t, err, mode.ErrInvalidInput)
}

// capture records the settings Estimate hands to the optimizer.
func capture(dst *optimizer.Settings) optimizer.Optimizer {
	return optimizer.Func(func(p optimize.Problem, x0 []float64, s optimizer.Settings) (optimizer.Result, error) {
		*dst = s
		return optimizer.Gonum{}.Minimize(p, x0, s)
	})
}

func TestLoadOptions(t *testing.T) {
	t.Parallel()
	doc := `
method: nelder-mead
max_iterations: 400
gradient_tolerance: 1e-6
function_tolerance: 1e-9
runtime: 3s
jacobian: false
init:
  mu: 2.5
  sigma: 1.5
`
	opts, err := mode.LoadOptions(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, opts, 7)

	var got optimizer.Settings
	m := &models.Normal{Data: sample}
	res, err := mode.Estimate(m, mode.MLE, append(opts, mode.WithOptimizer(capture(&got)))...)
	require.NoError(t, err)

	require.Equal(t, optimizer.NelderMead, got.Method)
	require.Equal(t, 400, got.MaxIterations)
	require.Equal(t, 1e-6, got.GradientTolerance)
	require.Equal(t, 1e-9, got.FunctionTolerance)
	require.Equal(t, 3*time.Second, got.Runtime)
	require.NotNil(t, got.Logger)

	mu, _ := m.MLE()
	est, _ := res.Value("mu")
	require.InDelta(t, mu, est, 1e-3)
}

func TestLoadOptionsRejectsBadDocuments(t *testing.T) {
	t.Parallel()
	for name, doc := range map[string]string{
		"unknown key":    "iterations: 5\n",
		"bad method":     "method: newton\n",
		"negative iter":  "max_iterations: -2\n",
		"negative tol":   "gradient_tolerance: -1\n",
		"bad runtime":    "runtime: soon\n",
		"wrong type":     "jacobian: [1, 2]\n",
		"negative clock": "runtime: -1s\n",
	} {
		_, err := mode.LoadOptions(strings.NewReader(doc))
		require.ErrorIs(t, err, mode.ErrInvalidInput, name)
	}

	opts, err := mode.LoadOptions(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, opts)
}
