// SPDX-License-Identifier: MIT

package objective

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/optimize"
)

// Session records what happened while an optimizer drove one Problem.
// The first evaluation error is kept; later ones are dropped.
type Session struct {
	mu    sync.Mutex
	err   error
	evals int
}

func (s *Session) record(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

func (s *Session) count() {
	s.mu.Lock()
	s.evals++
	s.mu.Unlock()
}

// Err returns the first evaluation error, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Evaluations returns the number of objective value evaluations.
func (s *Session) Evaluations() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.evals
}

// Problem exposes o as a gonum optimize.Problem together with a fresh Session.
//
// gonum's Func and Grad cannot return errors. A failing evaluation is stored in
// the Session, Func reports +Inf, and Status then returns optimize.Failure
// with the stored error so the run stops at the next check.
func (o *Objective) Problem() (optimize.Problem, *Session) {
	s := &Session{}
	p := optimize.Problem{
		Func: func(x []float64) float64 {
			s.count()
			v, err := o.Value(x)
			if err != nil {
				s.record(err)
				return math.Inf(1)
			}

			return v
		},
		Grad: func(grad, x []float64) {
			g, err := o.Gradient(x)
			if err != nil {
				s.record(err)
				for i := range grad {
					grad[i] = 0
				}
				return
			}
			copy(grad, g)
		},
		Status: func() (optimize.Status, error) {
			if err := s.Err(); err != nil {
				return optimize.Failure, err
			}

			return optimize.NotTerminated, nil
		},
	}

	return p, s
}
