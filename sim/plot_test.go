package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewTrialPlot(t *testing.T) {
	assert := assert.New(t)

	truth := mat.NewDense(3, 6, nil)
	est := mat.NewDense(3, 6, nil)

	plt, err := NewTrialPlot(truth, est, 0)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = NewTrialPlot(nil, nil, 0)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewTrialPlot(mat.NewDense(3, 1, nil), est, 0)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewTrialPlot(truth, est, 6)
	assert.Nil(plt)
	assert.Error(err)
}
