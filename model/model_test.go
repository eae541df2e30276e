package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestTransitionMatrixZeroPeriod(t *testing.T) {
	assert := assert.New(t)

	for _, n := range []int{1, 2, 5} {
		for _, order := range []int{0, 1, 2, 3, 4} {
			a := TransitionMatrix(n, order, 0)
			r, c := a.Dims()
			assert.Equal(3*n, r)
			assert.Equal(3*n, c)

			eye := mat.NewDiagDense(3*n, nil)
			for i := 0; i < 3*n; i++ {
				eye.SetDiag(i, 1.0)
			}
			assert.True(mat.Equal(eye, a), "n=%d order=%d", n, order)
		}
	}
}

func TestTransitionMatrixConstAccel(t *testing.T) {
	assert := assert.New(t)

	te := 0.01
	a := TransitionMatrix(1, ConstAccel, te)
	assert.InDelta(0.01, a.At(0, 1), 1e-15)
	assert.InDelta(0.00005, a.At(0, 2), 1e-15)
	assert.InDelta(0.01, a.At(1, 2), 1e-15)
	assert.Equal(1.0, a.At(0, 0))
	assert.Equal(1.0, a.At(1, 1))
	assert.Equal(1.0, a.At(2, 2))
	assert.Equal(0.0, a.At(1, 0))
	assert.Equal(0.0, a.At(2, 0))
	assert.Equal(0.0, a.At(2, 1))

	// every DoF gets the same bands
	n := 3
	a = TransitionMatrix(n, ConstAccel, te)
	for j := 0; j < n; j++ {
		assert.InDelta(te, a.At(j, n+j), 1e-15)
		assert.InDelta(0.5*te*te, a.At(j, 2*n+j), 1e-15)
		assert.InDelta(te, a.At(n+j, 2*n+j), 1e-15)
	}
}

func TestTransitionMatrixLowOrder(t *testing.T) {
	assert := assert.New(t)

	// order 1 keeps only the velocity band
	a := TransitionMatrix(1, 1, 0.1)
	assert.InDelta(0.1, a.At(0, 1), 1e-15)
	assert.InDelta(0.1, a.At(1, 2), 1e-15)
	assert.Equal(0.0, a.At(0, 2))

	// bands past the matrix extent are dropped
	a = TransitionMatrix(1, 4, 0.1)
	b := TransitionMatrix(1, ConstAccel, 0.1)
	assert.True(mat.Equal(a, b))
}

func TestProcessNoise(t *testing.T) {
	assert := assert.New(t)

	te := 0.02
	q := ProcessNoise(1, te)
	assert.Equal(3, q.SymmetricDim())

	c1 := math.Pow(te, 5) / 20
	c2 := math.Pow(te, 4) / 8
	c3 := math.Pow(te, 3) / 6
	c4 := math.Pow(te, 3) / 3
	c5 := math.Pow(te, 2) / 2
	c6 := te

	assert.InDelta(1.6e-10, q.At(0, 0), 1e-22)
	assert.InDelta(c1, q.At(0, 0), 1e-22)
	assert.InDelta(c2, q.At(0, 1), 1e-22)
	assert.InDelta(c3, q.At(0, 2), 1e-22)
	assert.InDelta(c2, q.At(1, 0), 1e-22)
	assert.InDelta(c4, q.At(1, 1), 1e-22)
	assert.InDelta(c5, q.At(1, 2), 1e-22)
	assert.InDelta(c3, q.At(2, 0), 1e-22)
	assert.InDelta(c5, q.At(2, 1), 1e-22)
	assert.InDelta(0.02, q.At(2, 2), 1e-22)
	assert.InDelta(c6, q.At(2, 2), 1e-22)

	// no coupling between different DoFs
	n := 2
	q = ProcessNoise(n, te)
	for i := 0; i < 3*n; i++ {
		for j := 0; j < 3*n; j++ {
			if i%n != j%n {
				assert.Equal(0.0, q.At(i, j), "(%d,%d)", i, j)
			}
		}
	}
}

func TestMeasurementNoise(t *testing.T) {
	assert := assert.New(t)

	r := MeasurementNoise(4, 0.5)
	assert.Equal(4, r.SymmetricDim())
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				assert.Equal(0.5, r.At(i, j))
				continue
			}
			assert.Equal(0.0, r.At(i, j))
		}
	}
}

func TestInitCov(t *testing.T) {
	assert := assert.New(t)

	p := InitCov(2, 1e-5)
	assert.Equal(6, p.SymmetricDim())
	for i := 0; i < 6; i++ {
		assert.Equal(1e-5, p.At(i, i))
	}
	assert.Equal(0.0, p.At(0, 3))
}

func TestInitCond(t *testing.T) {
	assert := assert.New(t)

	state := mat.NewVecDense(3, []float64{1.0, 3.0, 0.0})
	cov := InitCov(1, 0.25)

	ic := NewInitCond(state, cov)

	s := ic.State()
	for i := 0; i < state.Len(); i++ {
		assert.Equal(state.AtVec(i), s.AtVec(i))
	}

	c := ic.Cov()
	for i := 0; i < cov.SymmetricDim(); i++ {
		for j := 0; j < cov.SymmetricDim(); j++ {
			assert.Equal(cov.At(i, j), c.At(i, j))
		}
	}

	// changing the source must not leak into InitCond
	state.SetVec(0, 10)
	assert.Equal(1.0, ic.State().AtVec(0))

	ic = NewZeroInitCond(2, 0.1)
	assert.Equal(6, ic.State().Len())
	assert.Equal(0.0, mat.Norm(ic.State(), 2))
	assert.Equal(0.1, ic.Cov().At(5, 5))
}

func TestMotion(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMotion(0, ConstAccel, 0.01)
	assert.Nil(m)
	assert.Error(err)

	m, err = NewMotion(1, -1, 0.01)
	assert.Nil(m)
	assert.Error(err)

	m, err = NewMotion(1, ConstAccel, 0.1)
	assert.NotNil(m)
	assert.NoError(err)
	assert.Equal(1, m.DoF())

	// constant acceleration: x + v*te + a*te^2/2
	x := mat.NewVecDense(3, []float64{1.0, 2.0, 4.0})
	next := m.Propagate(x)
	assert.InDelta(1.0+0.2+0.02, next.AtVec(0), 1e-12)
	assert.InDelta(2.0+0.4, next.AtVec(1), 1e-12)
	assert.InDelta(4.0, next.AtVec(2), 1e-12)

	// propagated covariance of a zero covariance is the process noise
	p := m.PropagateCov(mat.NewSymDense(3, nil))
	assert.True(mat.EqualApprox(p, m.NoiseCov(), 1e-15))

	a := m.StateMatrix()
	assert.True(mat.Equal(a, TransitionMatrix(1, ConstAccel, 0.1)))
}
