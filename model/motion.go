package model

import (
	"math"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// TransitionMatrix returns the 3n x 3n state transition matrix of a truncated
// Taylor expansion of given order for n degrees of freedom sampled every te seconds.
// Derivative i is added onto the super-diagonal band offset by (i-1)*n with
// coefficient te^(i-1)/(i-1)!; bands which fall outside the matrix are dropped.
// It panics if n is not positive.
func TransitionMatrix(n, order int, te float64) *mat.Dense {
	size := 3 * n
	a, err := matrix.NewDenseValIdentity(size, 1.0)
	if err != nil {
		panic(err)
	}

	c := 1.0
	for i := 2; i <= order+1; i++ {
		off := (i - 1) * n
		c /= float64(i - 1)
		v := c * math.Pow(te, float64(i-1))

		for k := 0; k < size-off; k++ {
			a.Set(k, off+k, a.At(k, off+k)+v)
		}
	}

	return a
}

// ProcessNoise returns the 3n x 3n process noise covariance of a triple
// integrator driven by white noise on jerk, sampled every te seconds.
// It panics if n is not positive.
func ProcessNoise(n int, te float64) *mat.SymDense {
	c1 := math.Pow(te, 5) / 20.0
	c2 := math.Pow(te, 4) / 8.0
	c3 := math.Pow(te, 3) / 6.0
	c4 := math.Pow(te, 3) / 3.0
	c5 := math.Pow(te, 2) / 2.0
	c6 := te

	q := mat.NewSymDense(3*n, nil)
	for j := 0; j < n; j++ {
		q.SetSym(j, j, c1)
		q.SetSym(j, n+j, c2)
		q.SetSym(j, 2*n+j, c3)
		q.SetSym(n+j, n+j, c4)
		q.SetSym(n+j, 2*n+j, c5)
		q.SetSym(2*n+j, 2*n+j, c6)
	}

	return q
}
