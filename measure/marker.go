package measure

import (
	"fmt"

	recon "github.com/milosgajdos/go-recon"
	"gonum.org/v1/gonum/mat"
)

// MarkerSize is number of measurement channels per marker
const MarkerSize = 3

// Markers adapts optical marker positions.
// A marker with any NaN coordinate is occluded in that frame.
type Markers struct {
	k MarkerKinematics
}

// NewMarkers creates new marker adapter backed by kinematics k and returns it.
// It returns error if k reports non-positive dimensions.
func NewMarkers(k MarkerKinematics) (*Markers, error) {
	if k.DoF() <= 0 || k.NumMarkers() <= 0 {
		return nil, fmt.Errorf("invalid marker kinematics dimensions: [%d x %d]", k.DoF(), k.NumMarkers())
	}

	return &Markers{k: k}, nil
}

// Dims returns degree of freedom count and number of measurement channels
func (m *Markers) Dims() (dof, channels int) {
	return m.k.DoF(), MarkerSize * m.k.NumMarkers()
}

// Adapt computes the frame for raw stacked marker positions given joint positions q.
func (m *Markers) Adapt(q, raw mat.Vector) (*recon.Frame, error) {
	dof, channels := m.Dims()
	if err := checkDims(q, raw, dof, channels); err != nil {
		return nil, err
	}

	yProj, err := m.k.Markers(q)
	if err != nil {
		return nil, fmt.Errorf("failed to project markers: %w", err)
	}

	jac, err := m.k.MarkersJacobian(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compute markers jacobian: %w", err)
	}

	return project(raw, yProj, jac, dof, MarkerSize, hasNaN)
}
