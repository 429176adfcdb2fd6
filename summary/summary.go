// SPDX-License-Identifier: MIT

package summary

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/lvmode/matrix"
	"github.com/katalvlaran/lvmode/mode"
	"github.com/katalvlaran/lvmode/param"
)

// DefaultLevel is the conventional two-sided confidence level.
const DefaultLevel = 0.95

// Information is a square matrix indexed by parameter name on both axes.
// It holds either the information matrix or its inverse, the covariance.
type Information struct {
	Names  []string
	Matrix matrix.Matrix
}

// At returns the entry for the (row, col) parameter pair.
// Errors: param.ErrUnknownName.
func (in *Information) At(row, col string) (float64, error) {
	i, j := in.index(row), in.index(col)
	if i < 0 || j < 0 {
		return 0, fmt.Errorf("Information.At(%q, %q): %w", row, col, param.ErrUnknownName)
	}

	return in.Matrix.At(i, j)
}

func (in *Information) index(name string) int {
	for i, n := range in.Names {
		if n == name {
			return i
		}
	}

	return -1
}

// InformationMatrix returns the Hessian of the negated log-density of the
// result's kind at the estimate, with respect to the constrained parameters.
//
// Implementation:
//   - Stage 1: Take a constrained view of res.Objective(); the stored linked
//     objective is never modified, so nothing needs restoring on any path.
//   - Stage 2: Ask the provider for ∇²f at the constrained estimate.
//   - Stage 3: Check shape and symmetry, then symmetrize.
//
// Errors: ErrNilResult, ErrBadHessian, provider errors unmodified.
func InformationMatrix(res *mode.Result, opts ...Option) (*Information, error) {
	if res == nil {
		return nil, ErrNilResult
	}

	return information(res, gather(opts...))
}

func information(res *mode.Result, cfg config) (*Information, error) {
	// Stage 1
	view := res.Objective().InSpace(param.Constrained)
	names := view.Names()
	at, err := res.Values().Reorder(names)
	if err != nil {
		return nil, err
	}

	// Stage 2
	h, err := cfg.hessian(view, at.Values())
	if err != nil {
		return nil, err
	}

	// Stage 3
	n := len(names)
	if h == nil || h.Rows() != n || h.Cols() != n {
		return nil, fmt.Errorf("InformationMatrix: want %d×%d: %w", n, n, ErrBadHessian)
	}
	if err = matrix.ValidateSymmetric(h, cfg.symTol); err != nil {
		return nil, fmt.Errorf("InformationMatrix: %w: %w", ErrBadHessian, err)
	}
	sym, err := matrix.Symmetrize(h)
	if err != nil {
		return nil, err
	}

	return &Information{Names: names, Matrix: sym}, nil
}

// Covariance returns the inverse of the information matrix.
// Errors: ErrSingularMatrix (wrapping matrix.ErrSingular or matrix.ErrNaNInf)
// and everything InformationMatrix returns.
func Covariance(res *mode.Result, opts ...Option) (*Information, error) {
	if res == nil {
		return nil, ErrNilResult
	}

	return covariance(res, gather(opts...))
}

func covariance(res *mode.Result, cfg config) (*Information, error) {
	info, err := information(res, cfg)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(info.Matrix, matrix.WithPivotTolerance(cfg.pivotTol))
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) || errors.Is(err, matrix.ErrNaNInf) {
			return nil, fmt.Errorf("Covariance: %w: %w", ErrSingularMatrix, err)
		}

		return nil, err
	}
	sym, err := matrix.Symmetrize(inv)
	if err != nil {
		return nil, err
	}

	return &Information{Names: info.Names, Matrix: sym}, nil
}

// StdErr returns the standard errors, sqrt of the covariance diagonal, in
// the order of res.Names().
// Errors: ErrNotPositiveDefinite and everything Covariance returns.
func StdErr(res *mode.Result, opts ...Option) ([]float64, error) {
	if res == nil {
		return nil, ErrNilResult
	}
	cov, err := covariance(res, gather(opts...))
	if err != nil {
		return nil, err
	}

	return stdErr(cov)
}

// stdErr reads the covariance diagonal in cov.Names order, which is the
// canonical order shared by every Result.
func stdErr(cov *Information) ([]float64, error) {
	variances, err := matrix.Diag(cov.Matrix)
	if err != nil {
		return nil, err
	}
	se := make([]float64, len(variances))
	for i, v := range variances {
		if v < 0 {
			return nil, fmt.Errorf("StdErr: var(%s) = %g: %w", cov.Names[i], v, ErrNotPositiveDefinite)
		}
		se[i] = math.Sqrt(v)
	}

	return se, nil
}

// Row is one line of a coefficient table.
type Row struct {
	Name     string
	Estimate float64
	StdErr   float64
	// Z is Estimate/StdErr, the Wald statistic for a zero null.
	Z float64
	// P is the two-sided standard-normal tail probability of |Z|.
	P            float64
	Lower, Upper float64
}

// Table is a coefficient table at a confidence level, one row per parameter
// in canonical order.
type Table struct {
	Level float64
	Rows  []Row
}

// Row returns the row for name.
func (t *Table) Row(name string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Name == name {
			return r, true
		}
	}

	return Row{}, false
}

// CoefficientTable returns estimate, standard error, z, p and the
// level-confidence interval estimate ± Φ⁻¹((1+level)/2)·se for every
// parameter.
// Errors: ErrInvalidLevel (checked first), and everything StdErr returns.
func CoefficientTable(res *mode.Result, level float64, opts ...Option) (*Table, error) {
	if !(level > 0 && level < 1) {
		return nil, fmt.Errorf("CoefficientTable: level %v: %w", level, ErrInvalidLevel)
	}
	if res == nil {
		return nil, ErrNilResult
	}
	cov, err := covariance(res, gather(opts...))
	if err != nil {
		return nil, err
	}
	names := cov.Names
	se, err := stdErr(cov)
	if err != nil {
		return nil, err
	}

	q := distuv.UnitNormal.Quantile(0.5 + level/2)
	est := res.Values()
	t := &Table{Level: level, Rows: make([]Row, len(names))}
	for i, n := range names {
		x := est.At(i)
		z := x / se[i]
		t.Rows[i] = Row{
			Name:     n,
			Estimate: x,
			StdErr:   se[i],
			Z:        z,
			P:        2 * distuv.UnitNormal.Survival(math.Abs(z)),
			Lower:    x - q*se[i],
			Upper:    x + q*se[i],
		}
	}

	return t, nil
}

// PointEstimate returns the constrained estimate. It needs no curvature.
func PointEstimate(res *mode.Result) param.Vector { return res.Values() }

// ParameterNames returns the canonical parameter order.
func ParameterNames(res *mode.Result) []string { return res.Names() }

// LogLikelihood returns the log-density stored at the mode. For a MAP
// result this is the joint log-density (likelihood plus prior), not the
// likelihood alone; check res.Mode() before comparing it with an MLE value.
func LogLikelihood(res *mode.Result) float64 { return res.LogDensity() }
