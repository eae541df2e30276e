package measure

import (
	"fmt"

	recon "github.com/milosgajdos/go-recon"
	"gonum.org/v1/gonum/mat"
)

// IMUSize is number of measurement channels per inertial sensor: a flattened 3x3 orientation
const IMUSize = 9

// IMUs adapts inertial sensor orientations.
// A sensor whose reading contains NaN or is all zeros has dropped out in that frame.
type IMUs struct {
	k IMUKinematics
}

// NewIMUs creates new inertial sensor adapter backed by kinematics k and returns it.
// It returns error if k reports non-positive dimensions.
func NewIMUs(k IMUKinematics) (*IMUs, error) {
	if k.DoF() <= 0 || k.NumIMUs() <= 0 {
		return nil, fmt.Errorf("invalid IMU kinematics dimensions: [%d x %d]", k.DoF(), k.NumIMUs())
	}

	return &IMUs{k: k}, nil
}

// Dims returns degree of freedom count and number of measurement channels
func (u *IMUs) Dims() (dof, channels int) {
	return u.k.DoF(), IMUSize * u.k.NumIMUs()
}

// Adapt computes the frame for raw stacked sensor orientations given joint positions q.
func (u *IMUs) Adapt(q, raw mat.Vector) (*recon.Frame, error) {
	dof, channels := u.Dims()
	if err := checkDims(q, raw, dof, channels); err != nil {
		return nil, err
	}

	yProj, err := u.k.IMUs(q)
	if err != nil {
		return nil, fmt.Errorf("failed to project IMUs: %w", err)
	}

	jac, err := u.k.IMUsJacobian(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compute IMUs jacobian: %w", err)
	}

	return project(raw, yProj, jac, dof, IMUSize, droppedIMU)
}

// droppedIMU reports whether an orientation reading is missing.
// A rotation matrix can never be all zeros.
func droppedIMU(vals []float64) bool {
	if hasNaN(vals) {
		return true
	}

	for _, v := range vals {
		if v != 0 {
			return false
		}
	}

	return true
}
