package estimate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// State is skeleton state estimate.
// It stacks joint positions, velocities and accelerations.
type State struct {
	// n is number of degrees of freedom
	n int
	// val is estimated state
	val *mat.VecDense
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewState returns state estimate given stacked state val with zero covariance.
// It returns error if val length is not a positive multiple of 3.
func NewState(val mat.Vector) (*State, error) {
	return NewStateWithCov(val, mat.NewSymDense(val.Len(), nil))
}

// NewStateWithCov returns state estimate given stacked state val and its covariance.
// It returns error if val length is not a positive multiple of 3 or cov does not match it.
func NewStateWithCov(val mat.Vector, cov mat.Symmetric) (*State, error) {
	rv := val.Len()
	if rv == 0 || rv%3 != 0 {
		return nil, fmt.Errorf("invalid state length: %d", rv)
	}

	rc := cov.SymmetricDim()
	if rv != rc {
		return nil, fmt.Errorf("invalid dimensions. Val: %d, Cov: %d x %d", rv, rc, rc)
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(rc, nil)
	c.CopySym(cov)

	return &State{
		n:   rv / 3,
		val: v,
		cov: c,
	}, nil
}

// DoF returns number of degrees of freedom
func (s *State) DoF() int {
	return s.n
}

// Val returns the full stacked state
func (s *State) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(s.val)

	return v
}

// Cov returns covariance estimate
func (s *State) Cov() mat.Symmetric {
	cov := mat.NewSymDense(s.cov.SymmetricDim(), nil)
	cov.CopySym(s.cov)

	return cov
}

// Q returns joint positions
func (s *State) Q() mat.Vector {
	return s.block(0)
}

// Qdot returns joint velocities
func (s *State) Qdot() mat.Vector {
	return s.block(1)
}

// Qddot returns joint accelerations
func (s *State) Qddot() mat.Vector {
	return s.block(2)
}

func (s *State) block(i int) *mat.VecDense {
	b := mat.NewVecDense(s.n, nil)
	b.CopyVec(s.val.SliceVec(i*s.n, (i+1)*s.n))

	return b
}

// Stack returns a matrix which stores the stacked state of every estimate in states in its rows.
// It returns error if states is empty or the estimates differ in size.
func Stack(states []*State) (*mat.Dense, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("no states to stack")
	}

	nx := states[0].val.Len()
	out := mat.NewDense(len(states), nx, nil)
	for i, s := range states {
		if s.val.Len() != nx {
			return nil, fmt.Errorf("invalid state %d length: %d, expected %d", i, s.val.Len(), nx)
		}
		out.SetRow(i, s.val.RawVector().Data)
	}

	return out, nil
}
