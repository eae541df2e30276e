package model

import (
	"fmt"

	"github.com/milosgajdos/go-recon/matrix"
	"gonum.org/v1/gonum/mat"
)

// ConstAccel is the Taylor expansion order of the constant acceleration motion model
const ConstAccel = 2

// InitCond implements recon.InitCond
type InitCond struct {
	state *mat.VecDense
	cov   *mat.SymDense
}

// NewInitCond creates new InitCond and returns it
func NewInitCond(state mat.Vector, cov mat.Symmetric) *InitCond {
	s := &mat.VecDense{}
	s.CloneFromVec(state)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &InitCond{
		state: s,
		cov:   c,
	}
}

// NewZeroInitCond creates InitCond for a skeleton with n degrees of freedom
// which has zero state and diagonal covariance filled with errLevel.
func NewZeroInitCond(n int, errLevel float64) *InitCond {
	return &InitCond{
		state: mat.NewVecDense(3*n, nil),
		cov:   InitCov(n, errLevel),
	}
}

// State returns initial state
func (c *InitCond) State() mat.Vector {
	state := &mat.VecDense{}
	state.CloneFromVec(c.state)

	return state
}

// Cov returns initial covariance
func (c *InitCond) Cov() mat.Symmetric {
	cov := mat.NewSymDense(c.cov.SymmetricDim(), nil)
	cov.CopySym(c.cov)

	return cov
}

// Motion is a time invariant polynomial motion model of a skeleton.
// Its state stacks joint positions, velocities and accelerations.
type Motion struct {
	// n is number of degrees of freedom
	n int
	// a is state transition matrix
	a *mat.Dense
	// q is process noise covariance
	q *mat.SymDense
}

// NewMotion creates Motion for n degrees of freedom, Taylor expansion order
// and sampling period te and returns it.
// It returns error if n is not positive or order is negative.
func NewMotion(n, order int, te float64) (*Motion, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid degree of freedom count: %d", n)
	}

	if order < 0 {
		return nil, fmt.Errorf("invalid Taylor expansion order: %d", order)
	}

	return &Motion{
		n: n,
		a: TransitionMatrix(n, order, te),
		q: ProcessNoise(n, te),
	}, nil
}

// Propagate propagates state x to the next sampling step without noise.
func (m *Motion) Propagate(x mat.Vector) *mat.VecDense {
	out := mat.NewVecDense(3*m.n, nil)
	out.MulVec(m.a, x)

	return out
}

// PropagateCov propagates state covariance p to the next sampling step: A*P*A' + Q.
func (m *Motion) PropagateCov(p mat.Symmetric) *mat.SymDense {
	cov := &mat.Dense{}
	cov.Mul(m.a, p)
	cov.Mul(cov, m.a.T())
	cov.Add(cov, m.q)

	out := mat.NewSymDense(3*m.n, nil)
	matrix.CopySym(out, cov)

	return out
}

// DoF returns number of degrees of freedom.
func (m *Motion) DoF() int {
	return m.n
}

// StateMatrix returns state transition matrix
func (m *Motion) StateMatrix() mat.Matrix {
	a := &mat.Dense{}
	a.CloneFrom(m.a)

	return a
}

// NoiseCov returns process noise covariance
func (m *Motion) NoiseCov() mat.Symmetric {
	q := mat.NewSymDense(m.q.SymmetricDim(), nil)
	q.CopySym(m.q)

	return q
}
