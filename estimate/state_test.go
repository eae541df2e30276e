package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewState(t *testing.T) {
	assert := assert.New(t)

	val := mat.NewVecDense(6, []float64{1, 2, 3, 4, 5, 6})

	s, err := NewState(val)
	assert.NotNil(s)
	assert.NoError(err)
	assert.Equal(2, s.DoF())

	s, err = NewStateWithCov(val, mat.NewSymDense(6, nil))
	assert.NotNil(s)
	assert.NoError(err)

	s, err = NewStateWithCov(val, mat.NewSymDense(3, nil))
	assert.Nil(s)
	assert.Error(err)

	s, err = NewState(mat.NewVecDense(4, nil))
	assert.Nil(s)
	assert.Error(err)
}

func TestStateBlocks(t *testing.T) {
	assert := assert.New(t)

	val := mat.NewVecDense(6, []float64{1, 2, 3, 4, 5, 6})
	cov := mat.NewSymDense(6, nil)
	cov.SetSym(0, 5, 0.5)

	s, err := NewStateWithCov(val, cov)
	assert.NoError(err)

	assert.Equal([]float64{1, 2}, mat.Col(nil, 0, s.Q()))
	assert.Equal([]float64{3, 4}, mat.Col(nil, 0, s.Qdot()))
	assert.Equal([]float64{5, 6}, mat.Col(nil, 0, s.Qddot()))

	assert.True(mat.Equal(val, s.Val()))
	assert.Equal(0.5, s.Cov().At(5, 0))

	// returned values are copies
	s.Q().(*mat.VecDense).SetVec(0, 100)
	s.Val().(*mat.VecDense).SetVec(0, 100)
	val.SetVec(0, 100)
	assert.Equal(1.0, s.Q().AtVec(0))
}

func TestStack(t *testing.T) {
	assert := assert.New(t)

	s1, err := NewState(mat.NewVecDense(3, []float64{1, 2, 3}))
	assert.NoError(err)
	s2, err := NewState(mat.NewVecDense(3, []float64{4, 5, 6}))
	assert.NoError(err)

	m, err := Stack([]*State{s1, s2})
	assert.NoError(err)
	assert.Equal([]float64{4, 5, 6}, mat.Row(nil, 1, m))

	_, err = Stack(nil)
	assert.Error(err)

	s3, err := NewState(mat.NewVecDense(6, nil))
	assert.NoError(err)
	_, err = Stack([]*State{s1, s3})
	assert.Error(err)
}
