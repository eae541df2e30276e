package recon

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrDimension is returned when vectors or matrices handed across
// package boundaries do not match the configured skeleton dimensions.
var ErrDimension = errors.New("dimension mismatch")

// Frame is a single sampling frame prepared for the estimator.
type Frame struct {
	// Measure is the measurement vector of length m
	Measure *mat.VecDense
	// Projected is the measurement predicted by forward kinematics at the current estimate
	Projected *mat.VecDense
	// Jacobian is the m x 3n derivative of Projected with respect to the full state
	Jacobian *mat.Dense
	// Occluded lists measurement channels unavailable in this frame
	Occluded []int
}

// Adapter turns a raw sensor reading into a Frame.
type Adapter interface {
	// Adapt computes the frame for raw reading given the current joint positions q
	Adapt(q, raw mat.Vector) (*Frame, error)
	// Dims returns the degree of freedom count and the number of measurement channels
	Dims() (dof, channels int)
}

// Estimator is a recursive skeleton state estimator.
type Estimator interface {
	// Init resets the estimator to its initial condition
	Init()
	// Iterate advances the estimator by one sampling period
	Iterate(y, yProj mat.Vector, h mat.Matrix, occluded []int) error
	// State writes position, velocity and acceleration into the non-nil outputs
	State(q, qdot, qddot *mat.VecDense)
	// SetInitState overwrites the state blocks whose inputs are non-nil
	SetInitState(q, qdot, qddot mat.Vector)
}

// InitCond is initial state condition of the filter
type InitCond interface {
	// State returns initial filter state
	State() mat.Vector
	// Cov returns initial state covariance
	Cov() mat.Symmetric
}

// Estimate is skeleton state estimate
type Estimate interface {
	// Val returns the full stacked state
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
	// Q returns joint positions
	Q() mat.Vector
	// Qdot returns joint velocities
	Qdot() mat.Vector
	// Qddot returns joint accelerations
	Qddot() mat.Vector
}

// Noise is measurement or process noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
}
