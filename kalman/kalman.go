package kalman

import (
	recon "github.com/milosgajdos/go-recon"
	"gonum.org/v1/gonum/mat"
)

// Kalman is Kalman filter based skeleton state estimator
type Kalman interface {
	// recon.Estimator is recursive skeleton state estimator
	recon.Estimator
	// Cov returns Kalman filter state covariance
	Cov() mat.Symmetric
	// Gain returns Kalman filter gain
	Gain() mat.Matrix
}
