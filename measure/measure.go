// Package measure adapts raw kinematic sensor readings to estimator frames.
//
// Adapters rely on an external kinematics engine to project the measurement
// from the current joint positions and to differentiate that projection.
package measure

import (
	"fmt"
	"math"

	recon "github.com/milosgajdos/go-recon"
	"github.com/milosgajdos/go-recon/matrix"
	"gonum.org/v1/gonum/mat"
)

// MarkerKinematics computes skin marker positions of a skeleton
type MarkerKinematics interface {
	// DoF returns number of degrees of freedom
	DoF() int
	// NumMarkers returns number of markers
	NumMarkers() int
	// Markers returns stacked 3D marker positions for joint positions q
	Markers(q mat.Vector) (*mat.VecDense, error)
	// MarkersJacobian returns 3*NumMarkers x DoF Jacobian of Markers at q
	MarkersJacobian(q mat.Vector) (*mat.Dense, error)
}

// IMUKinematics computes inertial sensor orientations of a skeleton
type IMUKinematics interface {
	// DoF returns number of degrees of freedom
	DoF() int
	// NumIMUs returns number of inertial sensors
	NumIMUs() int
	// IMUs returns stacked row-major 3x3 sensor orientations for joint positions q
	IMUs(q mat.Vector) (*mat.VecDense, error)
	// IMUsJacobian returns 9*NumIMUs x DoF Jacobian of IMUs at q
	IMUsJacobian(q mat.Vector) (*mat.Dense, error)
}

// dropFunc reports whether a sensor reading is unavailable
type dropFunc func(vals []float64) bool

// project assembles the frame for raw reading given projected measurement yProj
// and its position Jacobian jac. Channels of sensors with size channels each are
// occluded together when drop reports their reading unavailable.
func project(raw mat.Vector, yProj *mat.VecDense, jac *mat.Dense, dof, size int, drop dropFunc) (*recon.Frame, error) {
	m := raw.Len()
	if yProj.Len() != m {
		return nil, fmt.Errorf("%w: projected measurement length %d, expected %d", recon.ErrDimension, yProj.Len(), m)
	}

	if r, c := jac.Dims(); r != m || c != dof {
		return nil, fmt.Errorf("%w: jacobian dims [%d x %d], expected [%d x %d]", recon.ErrDimension, r, c, m, dof)
	}

	y := mat.VecDenseCopyOf(raw)
	vals := y.RawVector().Data

	var occluded []int
	for s := 0; s < m/size; s++ {
		if !drop(vals[s*size : (s+1)*size]) {
			continue
		}
		for j := s * size; j < (s+1)*size; j++ {
			occluded = append(occluded, j)
			y.SetVec(j, 0)
		}
	}

	return &recon.Frame{
		Measure:   y,
		Projected: yProj,
		Jacobian:  matrix.Widen(jac, 3*dof),
		Occluded:  occluded,
	}, nil
}

func checkDims(q, raw mat.Vector, dof, channels int) error {
	if q.Len() != dof {
		return fmt.Errorf("%w: joint positions length %d, expected %d", recon.ErrDimension, q.Len(), dof)
	}

	if raw.Len() != channels {
		return fmt.Errorf("%w: measurement length %d, expected %d", recon.ErrDimension, raw.Len(), channels)
	}

	return nil
}

func hasNaN(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}
