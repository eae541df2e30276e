package sim

import (
	"fmt"
	"math"

	recon "github.com/milosgajdos/go-recon"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Chain is a planar serial chain of revolute joints rotating about the z axis.
// Every link carries one marker at its tip and one inertial sensor aligned with it.
// Chain implements measure.MarkerKinematics and measure.IMUKinematics.
type Chain struct {
	// lengths are link lengths
	lengths []float64
}

// NewChain creates new Chain with given link lengths and returns it.
// It returns error if there are no links or any link length is not positive.
func NewChain(lengths []float64) (*Chain, error) {
	if len(lengths) == 0 {
		return nil, fmt.Errorf("invalid chain: no links")
	}

	for i, l := range lengths {
		if l <= 0 {
			return nil, fmt.Errorf("invalid length of link %d: %f", i, l)
		}
	}

	ls := make([]float64, len(lengths))
	copy(ls, lengths)

	return &Chain{lengths: ls}, nil
}

// DoF returns number of degrees of freedom
func (c *Chain) DoF() int { return len(c.lengths) }

// NumMarkers returns number of markers
func (c *Chain) NumMarkers() int { return len(c.lengths) }

// NumIMUs returns number of inertial sensors
func (c *Chain) NumIMUs() int { return len(c.lengths) }

// Markers returns stacked link tip positions for joint positions q.
func (c *Chain) Markers(q mat.Vector) (*mat.VecDense, error) {
	if err := c.check(q); err != nil {
		return nil, err
	}

	y := make([]float64, 3*c.DoF())
	c.markers(y, mat.Col(nil, 0, q))

	return mat.NewVecDense(len(y), y), nil
}

// MarkersJacobian returns the Jacobian of Markers at q.
func (c *Chain) MarkersJacobian(q mat.Vector) (*mat.Dense, error) {
	if err := c.check(q); err != nil {
		return nil, err
	}

	return c.jacobian(3*c.DoF(), c.markers, q), nil
}

// IMUs returns stacked row-major link orientations for joint positions q.
func (c *Chain) IMUs(q mat.Vector) (*mat.VecDense, error) {
	if err := c.check(q); err != nil {
		return nil, err
	}

	y := make([]float64, 9*c.DoF())
	c.imus(y, mat.Col(nil, 0, q))

	return mat.NewVecDense(len(y), y), nil
}

// IMUsJacobian returns the Jacobian of IMUs at q.
func (c *Chain) IMUsJacobian(q mat.Vector) (*mat.Dense, error) {
	if err := c.check(q); err != nil {
		return nil, err
	}

	return c.jacobian(9*c.DoF(), c.imus, q), nil
}

func (c *Chain) check(q mat.Vector) error {
	if q.Len() != c.DoF() {
		return fmt.Errorf("%w: joint positions length %d, expected %d", recon.ErrDimension, q.Len(), c.DoF())
	}

	return nil
}

func (c *Chain) markers(y, q []float64) {
	theta, px, py := 0.0, 0.0, 0.0
	for i, l := range c.lengths {
		theta += q[i]
		px += l * math.Cos(theta)
		py += l * math.Sin(theta)

		y[3*i] = px
		y[3*i+1] = py
		y[3*i+2] = 0
	}
}

func (c *Chain) imus(y, q []float64) {
	theta := 0.0
	for i := range c.lengths {
		theta += q[i]
		s, co := math.Sincos(theta)

		copy(y[9*i:9*(i+1)], []float64{
			co, -s, 0,
			s, co, 0,
			0, 0, 1,
		})
	}
}

func (c *Chain) jacobian(rows int, f func(y, q []float64), q mat.Vector) *mat.Dense {
	jac := mat.NewDense(rows, c.DoF(), nil)
	fd.Jacobian(jac, f, mat.Col(nil, 0, q), &fd.JacobianSettings{
		Formula:    fd.Central,
		Concurrent: true,
	})

	return jac
}
