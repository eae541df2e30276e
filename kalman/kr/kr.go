// Package kr implements a Kalman filter which reconstructs joint positions,
// velocities and accelerations of a skeleton from kinematic measurements.
//
// The filter state stacks n positions, n velocities and n accelerations. It is
// propagated with a constant acceleration Taylor model driven by white jerk noise
// and corrected with a linearised measurement supplied each frame by the caller.
//
// KR is not safe for concurrent use: run one instance per trial.
package kr

import (
	"errors"
	"fmt"
	"math"

	recon "github.com/milosgajdos/go-recon"
	"github.com/milosgajdos/go-recon/estimate"
	"github.com/milosgajdos/go-recon/matrix"
	"github.com/milosgajdos/go-recon/model"
	"github.com/milosgajdos/go-recon/param"
	mx "github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// KR is Kalman Reconstruction filter
type KR struct {
	// n is number of degrees of freedom
	n int
	// m is number of measurement channels
	m int
	// p are filter parameters
	p param.Params
	// motion holds state transition matrix and process noise
	motion *model.Motion
	// r is measurement noise covariance
	r *mat.SymDense
	// x is the state estimate
	x *mat.VecDense
	// cov is the state covariance
	cov *mat.SymDense
	// inn is innovation vector
	inn *mat.VecDense
	// k is Kalman gain
	k *mat.Dense
}

// New creates new KR for a skeleton with n degrees of freedom observed
// through m measurement channels, initializes it and returns it.
// It returns error if either n or m is not positive.
func New(n, m int, p param.Params) (*KR, error) {
	if n <= 0 || m <= 0 {
		return nil, fmt.Errorf("invalid filter dimensions: [%d x %d]", n, m)
	}

	k := &KR{
		n: n,
		m: m,
		p: p,
	}
	k.Init()

	return k, nil
}

// Init (re)builds the motion and measurement models and resets the filter to
// zero state with diagonal covariance filled with the parameters error factor.
// Any accumulated filter state is discarded.
func (k *KR) Init() {
	// n is validated in New so this can't fail
	k.motion, _ = model.NewMotion(k.n, model.ConstAccel, k.p.Period())
	k.r = model.MeasurementNoise(k.m, k.p.NoiseFactor())

	ic := model.NewZeroInitCond(k.n, k.p.ErrorFactor())
	k.x = mat.VecDenseCopyOf(ic.State())
	k.cov = mat.NewSymDense(3*k.n, nil)
	k.cov.CopySym(ic.Cov())

	k.inn = mat.NewVecDense(k.m, nil)
	k.k = mat.NewDense(3*k.n, k.m, nil)
}

// Reset sets filter state and covariance to initial condition ic.
// It returns error if ic dimensions do not match the filter state.
func (k *KR) Reset(ic recon.InitCond) error {
	if ic.State().Len() != 3*k.n || ic.Cov().SymmetricDim() != 3*k.n {
		return fmt.Errorf("%w: initial condition must have %d states", recon.ErrDimension, 3*k.n)
	}

	k.x.CopyVec(ic.State())
	k.cov.CopySym(ic.Cov())

	return nil
}

// Iterate advances the filter by one sampling period.
// y is the measurement, yProj the measurement projected from the current state
// estimate, h its m x 3n Jacobian and occluded the measurement channels which are
// unavailable in this frame. y is not modified.
//
// Occluded channels are removed from the correction by zeroing their row and
// column of the inverted innovation covariance together with their measurement.
// Their Jacobian rows still take part in the innovation covariance before it is
// inverted, so their correlation with the other channels stays in the gain.
//
// Mismatched dimensions or out of range occluded channels make Iterate panic.
// It returns error if the innovation covariance is exactly singular, in which
// case the filter is left unchanged. A merely ill-conditioned innovation
// covariance is inverted anyway.
func (k *KR) Iterate(y, yProj mat.Vector, h mat.Matrix, occluded []int) error {
	// prediction
	xPred := k.motion.Propagate(k.x)
	pPred := k.motion.PropagateCov(k.cov)

	// P*H'
	pxy := mat.NewDense(3*k.n, k.m, nil)
	pxy.Mul(pPred, h.T())

	// H*P*H' + R
	pyy := mat.NewDense(k.m, k.m, nil)
	pyy.Mul(h, pxy)
	pyy.Add(pyy, k.r)

	pyyInv := &mat.Dense{}
	if err := pyyInv.Inverse(pyy); err != nil {
		var c mat.Condition
		if !errors.As(err, &c) || math.IsInf(float64(c), 1) {
			return fmt.Errorf("failed to invert innovation covariance: %w", err)
		}
	}

	z := mat.VecDenseCopyOf(y)
	maskOccluded(pyyInv, z, occluded)

	// calculate Kalman gain
	gain := &mat.Dense{}
	gain.Mul(pxy, pyyInv)

	// innovation vector
	inn := &mat.VecDense{}
	inn.SubVec(z, yProj)

	// update state x
	x := &mat.VecDense{}
	x.MulVec(gain, inn)
	x.AddVec(xPred, x)

	pCorr, err := joseph(gain, h, pPred, k.r)
	if err != nil {
		return err
	}

	k.x.CopyVec(x)
	matrix.CopySym(k.cov, pCorr)
	k.inn.CopyVec(inn)
	k.k.Copy(gain)

	return nil
}

// joseph returns the Joseph form covariance update (I-KH)*P*(I-KH)' + K*R*K'.
func joseph(gain *mat.Dense, h mat.Matrix, p, r mat.Symmetric) (*mat.Dense, error) {
	eye, err := mx.NewDenseValIdentity(p.SymmetricDim(), 1.0)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity matrix: %w", err)
	}
	a := &mat.Dense{}
	// K*H
	a.Mul(gain, h)
	// eye - K*H
	a.Sub(eye, a)

	// K*R*K'
	kr := &mat.Dense{}
	kr.Mul(gain, r)
	krk := &mat.Dense{}
	krk.Mul(kr, gain.T())

	pCorr := &mat.Dense{}
	pCorr.Mul(a, p)
	pCorr.Mul(pCorr, a.T())
	pCorr.Add(pCorr, krk)

	return pCorr, nil
}

// maskOccluded zeroes row and column j of the inverted innovation covariance
// and measurement channel j for every occluded channel j.
func maskOccluded(pyyInv *mat.Dense, z *mat.VecDense, occluded []int) {
	m, _ := pyyInv.Dims()
	for _, j := range occluded {
		for i := 0; i < m; i++ {
			pyyInv.Set(j, i, 0)
			pyyInv.Set(i, j, 0)
		}
		z.SetVec(j, 0)
	}
}

// State copies joint positions, velocities and accelerations into q, qdot and qddot.
// Nil outputs are skipped; empty outputs are resized to the degree of freedom count.
func (k *KR) State(q, qdot, qddot *mat.VecDense) {
	if q != nil {
		matrix.Block(q, k.x, 0, k.n)
	}

	if qdot != nil {
		matrix.Block(qdot, k.x, k.n, k.n)
	}

	if qddot != nil {
		matrix.Block(qddot, k.x, 2*k.n, k.n)
	}
}

// SetInitState overwrites joint positions, velocities and accelerations
// of the state estimate with q, qdot and qddot. Nil inputs leave their block as is.
func (k *KR) SetInitState(q, qdot, qddot mat.Vector) {
	if q != nil {
		matrix.SetBlock(k.x, 0, q)
	}

	if qdot != nil {
		matrix.SetBlock(k.x, k.n, qdot)
	}

	if qddot != nil {
		matrix.SetBlock(k.x, 2*k.n, qddot)
	}
}

// Val returns a copy of the full stacked state estimate
func (k *KR) Val() mat.Vector {
	x := &mat.VecDense{}
	x.CloneFromVec(k.x)

	return x
}

// Estimate returns current state estimate together with its covariance
func (k *KR) Estimate() (*estimate.State, error) {
	return estimate.NewStateWithCov(k.x, k.cov)
}

// Dims returns degree of freedom count and number of measurement channels
func (k *KR) Dims() (n, m int) {
	return k.n, k.m
}

// Params returns filter parameters
func (k *KR) Params() param.Params {
	return k.p
}

// Motion returns filter motion model
func (k *KR) Motion() *model.Motion {
	return k.motion
}

// MeasurementNoise returns measurement noise covariance
func (k *KR) MeasurementNoise() mat.Symmetric {
	r := mat.NewSymDense(k.m, nil)
	r.CopySym(k.r)

	return r
}

// Cov returns KR covariance
func (k *KR) Cov() mat.Symmetric {
	cov := mat.NewSymDense(k.cov.SymmetricDim(), nil)
	cov.CopySym(k.cov)

	return cov
}

// SetCov sets KR covariance matrix to cov.
// It returns error if either cov is nil or its dimensions are not the same as KR covariance dimensions.
func (k *KR) SetCov(cov mat.Symmetric) error {
	if cov == nil {
		return fmt.Errorf("invalid covariance matrix: %v", cov)
	}

	if cov.SymmetricDim() != k.cov.SymmetricDim() {
		return fmt.Errorf("%w: covariance matrix dims: [%d x %d]", recon.ErrDimension, cov.SymmetricDim(), cov.SymmetricDim())
	}

	k.cov.CopySym(cov)

	return nil
}

// Gain returns Kalman gain of the last iteration
func (k *KR) Gain() mat.Matrix {
	gain := &mat.Dense{}
	gain.CloneFrom(k.k)

	return gain
}

// Innovation returns innovation vector of the last iteration.
// Occluded channels carry minus their projected measurement.
func (k *KR) Innovation() mat.Vector {
	inn := &mat.VecDense{}
	inn.CloneFromVec(k.inn)

	return inn
}
