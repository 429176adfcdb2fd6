// SPDX-License-Identifier: MIT

package mode

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmode/density"
	"github.com/katalvlaran/lvmode/objective"
	"github.com/katalvlaran/lvmode/param"
	"github.com/katalvlaran/lvmode/transform"
)

// Estimate finds the MLE or MAP estimate of model.
//
// Implementation:
//   - Stage 1: Resolve initial values, reorder them to the model's canonical
//     order and map them into unconstrained space.
//   - Stage 2: Build a linked objective for m.Kind().
//   - Stage 3: Minimize. Evaluation errors captured during the run win over
//     whatever the optimizer reports.
//   - Stage 4: Warn on non-convergence and keep the returned point.
//   - Stage 5: Map back to constrained space, re-read the model's parameter
//     list and evaluate the model once at the estimate.
//   - Stage 6: logDensity = -F.
//   - Stage 7: Assemble the Result.
//
// Errors:
//   - ErrNilModel, ErrInvalidInput (unknown mode, init set mismatch,
//     non-finite init), ErrParameterDrift.
//   - Model, transform and optimizer errors, returned unmodified.
func Estimate(model density.Model, m Mode, opts ...Option) (*Result, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if !m.Valid() {
		return nil, fmt.Errorf("Estimate: %v: %w", m, ErrInvalidInput)
	}
	cfg := gatherOptions(opts...)
	log := cfg.Logger.With(zap.Stringer("mode", m))

	// Stage 1
	layout, err := density.Layout(model)
	if err != nil {
		return nil, err
	}
	start, err := resolveInit(model, layout, cfg)
	if err != nil {
		return nil, err
	}
	x0 := start
	if !start.Linked() {
		if x0, err = layout.ToUnconstrained(start); err != nil {
			return nil, err
		}
	}

	// Stage 2
	obj, err := objective.New(model, m.Kind(), objective.WithJacobian(cfg.Jacobian))
	if err != nil {
		return nil, err
	}

	// Stage 3
	settings := cfg.Settings
	if settings.Logger == nil {
		settings.Logger = log
	}
	prob, session := obj.Problem()
	out, err := cfg.Optimizer.Minimize(prob, x0.Values(), settings)
	if serr := session.Err(); serr != nil {
		return nil, serr
	}
	if err != nil {
		return nil, err
	}
	if len(out.X) != layout.Len() {
		return nil, fmt.Errorf("Estimate: optimizer returned %d values for %d parameters: %w", len(out.X), layout.Len(), ErrParameterDrift)
	}

	// Stage 4
	diag := out.Diagnostics.Clone()
	if !diag.Converged {
		log.Warn("optimizer did not converge",
			zap.Stringer("method", diag.Method),
			zap.String("status", diag.Status),
			zap.Int("iterations", diag.Iterations),
			zap.String("message", diag.Message),
		)
	}

	// Stage 5
	linked, err := x0.WithValues(out.X, param.Unconstrained)
	if err != nil {
		return nil, err
	}
	values, err := canonicalize(model, layout, linked)
	if err != nil {
		return nil, err
	}
	if _, err = density.LogDensity(model, m.Kind(), values); err != nil {
		return nil, err
	}

	// Stage 6, 7
	log.Debug("estimate ready",
		zap.Stringer("values", values),
		zap.Float64("log_density", -out.F),
		zap.Int("evaluations", session.Evaluations()),
	)

	return &Result{
		values:     values,
		diag:       diag,
		logDensity: -out.F,
		obj:        obj,
		mode:       m,
	}, nil
}

// resolveInit returns the starting vector in canonical order, in whichever
// space the caller supplied it.
func resolveInit(model density.Model, layout *transform.Layout, cfg Options) (param.Vector, error) {
	names := layout.Names()
	switch {
	case cfg.Init != nil:
		v := *cfg.Init
		if !param.SameNameSet(v, names) {
			return param.Vector{}, fmt.Errorf("Estimate: init names %v, model has %v: %w", v.Names(), names, ErrInvalidInput)
		}
		for _, x := range v.Values() {
			if !finite(x) {
				return param.Vector{}, fmt.Errorf("Estimate: init %s: %w", v, ErrInvalidInput)
			}
		}

		return v.Reorder(names)

	case cfg.InitValues != nil:
		vals := make([]float64, len(names))
		var missing []string
		for i, n := range names {
			x, ok := cfg.InitValues[n]
			if !ok {
				missing = append(missing, n)
				continue
			}
			vals[i] = x
		}
		if len(missing) > 0 || len(cfg.InitValues) != len(names) {
			return param.Vector{}, fmt.Errorf("Estimate: init values missing [%s] or carrying extras (model has %v): %w",
				strings.Join(missing, ","), names, ErrInvalidInput)
		}
		v, err := param.New(names, vals, param.Constrained)
		if err != nil {
			return param.Vector{}, fmt.Errorf("Estimate: %w: %w", ErrInvalidInput, err)
		}

		return v, nil

	default:
		return density.Defaults(model)
	}
}

// canonicalize maps the optimizer's vector to constrained space and lays it
// out in the order the model reports now.
func canonicalize(model density.Model, layout *transform.Layout, linked param.Vector) (param.Vector, error) {
	constrained, err := layout.ToConstrained(linked)
	if err != nil {
		return param.Vector{}, err
	}
	names := density.Names(model)
	if !param.SameNameSet(constrained, names) {
		return param.Vector{}, fmt.Errorf("Estimate: model now declares %v, optimized %v: %w", names, constrained.Names(), ErrParameterDrift)
	}

	return constrained.Reorder(names)
}
