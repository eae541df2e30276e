package sim

import (
	"fmt"
	"math"

	recon "github.com/milosgajdos/go-recon"
	"github.com/milosgajdos/go-recon/model"
	"github.com/milosgajdos/go-recon/rnd"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Trajectory generates steps ground truth skeleton states which start at x0 and are
// propagated by motion model m driven by its process noise scaled by scale.
// It returns a matrix which stores one stacked state per row.
// If src is nil the global random source is used.
// It returns error if steps is not positive, x0 does not match m or the noise can't be sampled.
func Trajectory(m *model.Motion, x0 mat.Vector, steps int, scale float64, src rand.Source) (*mat.Dense, error) {
	nx := 3 * m.DoF()
	if x0.Len() != nx {
		return nil, fmt.Errorf("%w: initial state length %d, expected %d", recon.ErrDimension, x0.Len(), nx)
	}

	if steps <= 0 {
		return nil, fmt.Errorf("invalid number of steps: %d", steps)
	}

	cov := mat.NewSymDense(nx, nil)
	cov.ScaleSym(scale, m.NoiseCov())

	wd, err := rnd.WithCovN(cov, steps, src)
	if err != nil {
		return nil, fmt.Errorf("failed to sample process noise: %w", err)
	}

	truth := mat.NewDense(steps, nx, nil)
	x := mat.VecDenseCopyOf(x0)
	for i := 0; i < steps; i++ {
		x = m.Propagate(x)
		x.AddVec(x, wd.ColView(i))
		truth.SetRow(i, x.RawVector().Data)
	}

	return truth, nil
}

// Record projects the joint positions of every truth state through project,
// adds noise wn and, with probability occlusion per frame, removes one sensor
// of size channels by filling its channels with NaN. Sensors further down the
// chain are removed more often. wn may be nil.
// If src is nil the global random source is used.
// It returns error if projection fails or wn does not match the projected measurement.
func Record(truth *mat.Dense, project func(q mat.Vector) (*mat.VecDense, error), size int, wn recon.Noise, occlusion float64, src rand.Source) ([]*mat.VecDense, error) {
	steps, nx := truth.Dims()
	n := nx / 3

	u := distuv.Uniform{Min: 0, Max: 1, Src: src}

	var weights []float64
	readings := make([]*mat.VecDense, steps)
	for i := 0; i < steps; i++ {
		q := truth.RowView(i).(*mat.VecDense).SliceVec(0, n)

		y, err := project(q)
		if err != nil {
			return nil, fmt.Errorf("failed to project frame %d: %w", i, err)
		}

		if wn != nil {
			r := wn.Sample()
			if r.Len() != y.Len() {
				return nil, fmt.Errorf("%w: noise length %d, expected %d", recon.ErrDimension, r.Len(), y.Len())
			}
			y.AddVec(y, r)
		}

		if weights == nil {
			weights = make([]float64, y.Len()/size)
			for j := range weights {
				weights[j] = float64(j + 1)
			}
		}

		if occlusion > 0 && u.Rand() < occlusion {
			idx, err := rnd.RouletteDrawN(weights, 1, src)
			if err != nil {
				return nil, err
			}
			for j := idx[0] * size; j < (idx[0]+1)*size; j++ {
				y.SetVec(j, math.NaN())
			}
		}

		readings[i] = y
	}

	return readings, nil
}

// RMS returns per column root mean square difference between truth and est.
// It returns error if their dimensions differ.
func RMS(truth, est *mat.Dense) ([]float64, error) {
	r, c := truth.Dims()
	if re, ce := est.Dims(); re != r || ce != c {
		return nil, fmt.Errorf("%w: truth [%d x %d], estimate [%d x %d]", recon.ErrDimension, r, c, re, ce)
	}

	rms := make([]float64, c)
	for j := 0; j < c; j++ {
		rms[j] = floats.Distance(mat.Col(nil, j, truth), mat.Col(nil, j, est), 2) / math.Sqrt(float64(r))
	}

	return rms, nil
}
