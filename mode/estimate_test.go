package mode_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/lvmode/density"
	"github.com/katalvlaran/lvmode/mode"
	"github.com/katalvlaran/lvmode/models"
	"github.com/katalvlaran/lvmode/objective"
	"github.com/katalvlaran/lvmode/optimizer"
	"github.com/katalvlaran/lvmode/param"
	"github.com/katalvlaran/lvmode/transform"
)

var errBoom = errors.New("boom")

// broken fails on every evaluation.
type broken struct{}

func (broken) Parameters() []density.Parameter            { return []density.Parameter{{Name: "x"}} }
func (broken) LogLikelihood(param.Vector) (float64, error) { return 0, errBoom }
func (broken) LogPrior(param.Vector) (float64, error)      { return 0, nil }

// drifting renames its second parameter once drift is set.
type drifting struct{ drift bool }

func (d *drifting) Parameters() []density.Parameter {
	second := "b"
	if d.drift {
		second = "c"
	}

	return []density.Parameter{{Name: "a"}, {Name: second}}
}
func (d *drifting) LogLikelihood(p param.Vector) (float64, error) {
	return -p.At(0)*p.At(0) - p.At(1)*p.At(1), nil
}
func (d *drifting) LogPrior(param.Vector) (float64, error) { return 0, nil }

// nanGradient has a finite log-likelihood -(x-3)² and an analytic gradient
// that is always NaN.
type nanGradient struct{}

func (nanGradient) Parameters() []density.Parameter { return []density.Parameter{{Name: "x"}} }
func (nanGradient) LogLikelihood(p param.Vector) (float64, error) {
	d := p.At(0) - 3

	return -d * d, nil
}
func (nanGradient) LogPrior(param.Vector) (float64, error) { return 0, nil }
func (nanGradient) LogLikelihoodGrad(_ param.Vector, grad []float64) error {
	grad[0] = math.NaN()

	return nil
}

var sample = []float64{2.1, 3.4, 1.9, 4.2, 2.8, 3.1}

func TestMLEMatchesClosedForm(t *testing.T) {
	t.Parallel()
	m := &models.Normal{Data: sample}
	res, err := mode.Estimate(m, mode.MLE)
	require.NoError(t, err)
	require.True(t, res.Converged())
	require.Equal(t, mode.MLE, res.Mode())
	require.Equal(t, []string{"mu", "sigma"}, res.Names())
	require.False(t, res.Values().Linked())
	require.True(t, res.Objective().Linked())

	mu, sigma := m.MLE()
	got := res.Values().Values()
	require.InDelta(t, mu, got[0], 1e-6)
	require.InDelta(t, sigma, got[1], 1e-6)

	n := float64(len(sample))
	maxLL := -n / 2 * (math.Log(2*math.Pi*sigma*sigma) + 1)
	require.InDelta(t, maxLL, res.LogDensity(), 1e-9)
}

// TestMAPShrinksTowardPrior checks direction and the joint-density value.
func TestMAPShrinksTowardPrior(t *testing.T) {
	t.Parallel()
	m := &models.NormalMean{Data: sample, Sigma: 1, Prior: &models.NormalPrior{Mean: 0, SD: 0.5}}

	mle, err := mode.Estimate(m, mode.MLE)
	require.NoError(t, err)
	mapRes, err := mode.Estimate(m, mode.MAP)
	require.NoError(t, err)

	mleMu, _ := mle.Value("mu")
	mapMu, _ := mapRes.Value("mu")
	require.InDelta(t, m.MLE(), mleMu, 1e-6)
	require.InDelta(t, m.MAP(), mapMu, 1e-6)
	require.Less(t, mapMu, mleMu)
	require.Greater(t, mapMu, m.Prior.Mean)

	joint, err := density.LogDensity(m, density.Joint, mapRes.Values())
	require.NoError(t, err)
	require.InDelta(t, joint, mapRes.LogDensity(), 1e-9)
	ll, err := density.LogDensity(m, density.Likelihood, mapRes.Values())
	require.NoError(t, err)
	require.Greater(t, math.Abs(mapRes.LogDensity()-ll), 1e-3)
}

func TestPoissonGammaMAP(t *testing.T) {
	t.Parallel()
	m := &models.PoissonGamma{Counts: []int{3, 1, 4, 1, 5, 9, 2, 6}, Shape: 2, Rate: 0.5}

	res, err := mode.Estimate(m, mode.MAP)
	require.NoError(t, err)
	lambda, _ := res.Value("lambda")
	require.InDelta(t, m.MAP(), lambda, 1e-5)

	res, err = mode.Estimate(m, mode.MAP, mode.WithJacobian(true))
	require.NoError(t, err)
	lambda, _ = res.Value("lambda")
	require.InDelta(t, m.LogMAP(), lambda, 1e-5)

	res, err = mode.Estimate(m, mode.MLE, mode.WithMethod(optimizer.NelderMead))
	require.NoError(t, err)
	lambda, _ = res.Value("lambda")
	require.InDelta(t, m.MLE(), lambda, 1e-3)
}

// TestNonConvergenceWarns uses a stub optimizer that gives up immediately.
func TestNonConvergenceWarns(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.WarnLevel)
	stub := optimizer.Func(func(p optimize.Problem, x0 []float64, s optimizer.Settings) (optimizer.Result, error) {
		return optimizer.Result{
			X:           x0,
			F:           p.Func(x0),
			Diagnostics: optimizer.Diagnostics{Converged: false, Status: "IterationLimit", Method: s.Method},
		}, nil
	})

	m := &models.Normal{Data: sample}
	res, err := mode.Estimate(m, mode.MLE, mode.WithOptimizer(stub), mode.WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.NotNil(t, res)
	require.False(t, res.Converged())
	require.Equal(t, []float64{0, 1}, res.Values().Values())

	warn := logs.FilterMessage("optimizer did not converge").All()
	require.Len(t, warn, 1)
	require.Equal(t, "IterationLimit", warn[0].ContextMap()["status"])
	require.Equal(t, "mle", warn[0].ContextMap()["mode"])
}

func TestReadyLogCountsEvaluations(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	stub := optimizer.Func(func(p optimize.Problem, x0 []float64, s optimizer.Settings) (optimizer.Result, error) {
		f := p.Func(x0)
		f = math.Min(f, p.Func(x0))

		return optimizer.Result{X: x0, F: f, Diagnostics: optimizer.Diagnostics{Converged: true, Method: s.Method}}, nil
	})

	_, err := mode.Estimate(&models.Normal{Data: sample}, mode.MLE, mode.WithOptimizer(stub), mode.WithLogger(zap.New(core)))
	require.NoError(t, err)

	ready := logs.FilterMessage("estimate ready").All()
	require.Len(t, ready, 1)
	require.Equal(t, int64(2), ready[0].ContextMap()["evaluations"])
}

func TestInitValidation(t *testing.T) {
	t.Parallel()
	m := &models.Normal{Data: sample}

	_, err := mode.Estimate(m, mode.MLE, mode.WithInitValues(map[string]float64{"mu": 1}))
	require.ErrorIs(t, err, mode.ErrInvalidInput)

	_, err = mode.Estimate(m, mode.MLE, mode.WithInitValues(map[string]float64{"mu": 1, "sigma": 1, "tau": 2}))
	require.ErrorIs(t, err, mode.ErrInvalidInput)

	_, err = mode.Estimate(m, mode.MLE, mode.WithInitValues(map[string]float64{"mu": math.NaN(), "sigma": 1}))
	require.ErrorIs(t, err, mode.ErrInvalidInput)

	_, err = mode.Estimate(m, mode.MLE, mode.WithInit(param.MustNew([]string{"mu", "tau"}, []float64{1, 1}, param.Constrained)))
	require.ErrorIs(t, err, mode.ErrInvalidInput)

	_, err = mode.Estimate(m, mode.Mode(3))
	require.ErrorIs(t, err, mode.ErrInvalidInput)

	_, err = mode.Estimate(nil, mode.MLE)
	require.ErrorIs(t, err, mode.ErrNilModel)

	// Out-of-support init is a transform error, passed through.
	_, err = mode.Estimate(m, mode.MLE, mode.WithInitValues(map[string]float64{"mu": 1, "sigma": -1}))
	require.ErrorIs(t, err, transform.ErrOutOfSupport)
}

func TestInitOrderAndSpace(t *testing.T) {
	t.Parallel()
	m := &models.Normal{Data: sample}
	mu, sigma := m.MLE()

	shuffled := param.MustNew([]string{"sigma", "mu"}, []float64{2, 0}, param.Constrained)
	res, err := mode.Estimate(m, mode.MLE, mode.WithInit(shuffled))
	require.NoError(t, err)
	require.Equal(t, []string{"mu", "sigma"}, res.Names())
	require.InDeltaSlice(t, []float64{mu, sigma}, res.Values().Values(), 1e-6)

	linked := param.MustNew([]string{"mu", "sigma"}, []float64{0, math.Log(2)}, param.Unconstrained)
	var start []float64
	spy := optimizer.Func(func(p optimize.Problem, x0 []float64, s optimizer.Settings) (optimizer.Result, error) {
		start = append([]float64(nil), x0...)
		return optimizer.Gonum{}.Minimize(p, x0, s)
	})
	res, err = mode.Estimate(m, mode.MLE, mode.WithInit(linked), mode.WithOptimizer(spy))
	require.NoError(t, err)
	require.Equal(t, []float64{0, math.Log(2)}, start)
	require.InDeltaSlice(t, []float64{mu, sigma}, res.Values().Values(), 1e-6)
}

func TestEvaluatorErrorPropagates(t *testing.T) {
	t.Parallel()
	_, err := mode.Estimate(broken{}, mode.MLE)
	require.Equal(t, errBoom, err)
}

func TestParameterDrift(t *testing.T) {
	t.Parallel()
	d := &drifting{}
	stub := optimizer.Func(func(p optimize.Problem, x0 []float64, _ optimizer.Settings) (optimizer.Result, error) {
		d.drift = true
		return optimizer.Result{X: x0, F: p.Func(x0), Diagnostics: optimizer.Diagnostics{Converged: true}}, nil
	})
	_, err := mode.Estimate(d, mode.MLE, mode.WithOptimizer(stub))
	require.ErrorIs(t, err, mode.ErrParameterDrift)

	short := optimizer.Func(func(optimize.Problem, []float64, optimizer.Settings) (optimizer.Result, error) {
		return optimizer.Result{X: []float64{1}, Diagnostics: optimizer.Diagnostics{Converged: true}}, nil
	})
	_, err = mode.Estimate(&drifting{}, mode.MLE, mode.WithOptimizer(short))
	require.ErrorIs(t, err, mode.ErrParameterDrift)
}

func TestResultIsolation(t *testing.T) {
	t.Parallel()
	stub := optimizer.Func(func(p optimize.Problem, x0 []float64, _ optimizer.Settings) (optimizer.Result, error) {
		return optimizer.Result{X: x0, F: p.Func(x0), Diagnostics: optimizer.Diagnostics{Converged: true, Gradient: []float64{0, 0}}}, nil
	})
	res, err := mode.Estimate(&models.Normal{Data: sample}, mode.MLE, mode.WithOptimizer(stub))
	require.NoError(t, err)

	d := res.Diagnostics()
	d.Gradient[0] = 42
	require.Equal(t, 0.0, res.Diagnostics().Gradient[0])
	res.Values().Values()[0] = 42
	require.Equal(t, 0.0, res.Values().At(0))
}

// TestNonFiniteGradientFails checks that a NaN gradient at a finite objective
// stops the run with an error instead of a converged result at the start point.
func TestNonFiniteGradientFails(t *testing.T) {
	t.Parallel()
	for _, method := range []optimizer.Method{optimizer.LBFGS, optimizer.BFGS, optimizer.GradientDescent} {
		res, err := mode.Estimate(nanGradient{}, mode.MLE, mode.WithMethod(method))
		require.ErrorIs(t, err, objective.ErrNonFiniteGradient, method.String())
		require.Nil(t, res)
	}
}
