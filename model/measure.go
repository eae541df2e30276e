package model

import "gonum.org/v1/gonum/mat"

// MeasurementNoise returns m x m diagonal measurement noise covariance
// with level on its diagonal.
func MeasurementNoise(m int, level float64) *mat.SymDense {
	return diag(m, level)
}

// InitCov returns 3n x 3n diagonal initial state covariance
// with level on its diagonal.
func InitCov(n int, level float64) *mat.SymDense {
	return diag(3*n, level)
}

func diag(size int, val float64) *mat.SymDense {
	d := mat.NewSymDense(size, nil)
	for i := 0; i < size; i++ {
		d.SetSym(i, i, val)
	}

	return d
}
