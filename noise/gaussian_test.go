package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewGaussian(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian([]float64{2, 3}, mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1}))
	assert.NotNil(g)
	assert.NoError(err)

	// mean and covariance dimensions differ
	g, err = NewGaussian([]float64{2}, mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1}))
	assert.Nil(g)
	assert.Error(err)

	// covariance is not positive definite
	g, err = NewGaussian([]float64{0, 0}, mat.NewSymDense(2, []float64{1, 2, 2, 1}))
	assert.Nil(g)
	assert.Error(err)
}

func TestGaussianMeanCov(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	gCov := g.Cov()
	assert.Equal(cov.SymmetricDim(), gCov.SymmetricDim())
	assert.True(mat.Equal(cov, gCov))
	assert.EqualValues(mean, g.Mean())

	// internal state is not shared with the caller
	mean[0] = 100
	cov.SetSym(0, 0, 100)
	assert.Equal(2.0, g.Mean()[0])
	assert.Equal(1.0, g.Cov().At(0, 0))
}

func TestGaussianSample(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian([]float64{2, 3}, mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1}))
	assert.NoError(err)

	sample := g.Sample()
	r, _ := sample.Dims()
	assert.Equal(2, r)

	// sample mean converges to the distribution mean
	sum := mat.NewVecDense(2, nil)
	count := 5000
	for i := 0; i < count; i++ {
		sum.AddVec(sum, g.Sample())
	}
	sum.ScaleVec(1/float64(count), sum)
	assert.InDelta(2.0, sum.AtVec(0), 0.1)
	assert.InDelta(3.0, sum.AtVec(1), 0.1)
}

func TestGaussianSeed(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{0, 0}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g1, err := NewGaussianWithSeed(mean, cov, 7)
	assert.NoError(err)
	g2, err := NewGaussianWithSeed(mean, cov, 7)
	assert.NoError(err)

	sample1 := g1.Sample()
	assert.Equal(sample1, g2.Sample())

	// reset restarts the sequence
	err = g1.Reset()
	assert.NoError(err)
	assert.Equal(sample1, g1.Sample())
}

func TestGaussianString(t *testing.T) {
	assert := assert.New(t)

	str := `Gaussian{
Mean=[2 3]
Cov=⎡  1  0.1⎤
    ⎣0.1    1⎦
}`
	g, err := NewGaussian([]float64{2, 3}, mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1}))
	assert.NoError(err)
	assert.Equal(str, g.String())
}
