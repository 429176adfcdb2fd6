// SPDX-License-Identifier: MIT

package optimizer

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// Gonum minimizes with gonum.org/v1/gonum/optimize.
//
// Settings map onto gonum as MaxIterations→MajorIterations,
// GradientTolerance→GradientThreshold, MaxEvaluations→FuncEvaluations and
// FunctionTolerance/FunctionIterations→FunctionConverge.
type Gonum struct{}

var _ Optimizer = Gonum{}

// Minimize implements Optimizer.
//
// When gonum stops with an error but still holds a finite location of the
// right size (a stalled line search, an evaluation limit), that location is
// returned with Converged == false and the error text in Message.
// Errors: ErrDimension, ErrUnknownMethod, ErrNoLocation.
func (Gonum) Minimize(p optimize.Problem, x0 []float64, s Settings) (Result, error) {
	if len(x0) == 0 {
		return Result{}, ErrDimension
	}
	method, err := s.Method.gonumMethod()
	if err != nil {
		return Result{}, err
	}
	log := s.logger().With(zap.Stringer("method", s.Method))

	var conv optimize.Converger = optimize.NeverTerminate{}
	if s.FunctionIterations > 0 {
		conv = &optimize.FunctionConverge{Absolute: s.FunctionTolerance, Iterations: s.FunctionIterations}
	}
	settings := &optimize.Settings{
		GradientThreshold: s.GradientTolerance,
		MajorIterations:   s.MaxIterations,
		Runtime:           s.Runtime,
		FuncEvaluations:   s.MaxEvaluations,
		Converger:         conv,
		Recorder:          &recorder{log: log},
	}

	start := make([]float64, len(x0))
	copy(start, x0)
	res, err := optimize.Minimize(p, start, settings, method)
	if res == nil || len(res.X) != len(x0) || !finite(res.X) {
		if err != nil {
			return Result{}, fmt.Errorf("optimizer: %v: %w: %w", s.Method, ErrNoLocation, err)
		}

		return Result{}, fmt.Errorf("optimizer: %v: %w", s.Method, ErrNoLocation)
	}

	d := Diagnostics{
		Converged:       err == nil && converged(res.Status),
		Status:          res.Status.String(),
		Method:          s.Method,
		Iterations:      res.MajorIterations,
		FuncEvaluations: res.FuncEvaluations,
		GradEvaluations: res.GradEvaluations,
		Runtime:         res.Runtime,
	}
	if res.Gradient != nil {
		d.Gradient = make([]float64, len(res.Gradient))
		copy(d.Gradient, res.Gradient)
	}
	if err != nil {
		d.Message = err.Error()
	}
	log.Debug("minimize finished",
		zap.String("status", d.Status),
		zap.Bool("converged", d.Converged),
		zap.Int("iterations", d.Iterations),
		zap.Float64("f", res.F),
	)

	x := make([]float64, len(res.X))
	copy(x, res.X)

	return Result{X: x, F: res.F, Diagnostics: d}, nil
}

// converged reports whether status is one of gonum's successful terminations.
func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success,
		optimize.FunctionThreshold,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	default:
		return false
	}
}

func finite(xs []float64) bool {
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// recorder traces major iterations at debug level.
type recorder struct {
	log *zap.Logger
}

func (r *recorder) Init() error { return nil }

func (r *recorder) Record(loc *optimize.Location, op optimize.Operation, st *optimize.Stats) error {
	if op != optimize.MajorIteration {
		return nil
	}
	fields := []zap.Field{
		zap.Int("iteration", st.MajorIterations),
		zap.Float64("f", loc.F),
		zap.Int("evaluations", st.FuncEvaluations),
	}
	if loc.Gradient != nil {
		fields = append(fields, zap.Float64("grad_norm", floats.Norm(loc.Gradient, math.Inf(1))))
	}
	r.log.Debug("iteration", fields...)

	return nil
}
