// Package recons drives a skeleton state estimator through recorded trials.
package recons

import (
	"context"
	"fmt"

	recon "github.com/milosgajdos/go-recon"
	"github.com/milosgajdos/go-recon/estimate"
	"github.com/milosgajdos/go-recon/kalman/kr"
	"github.com/milosgajdos/go-recon/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Reconstructor reconstructs skeleton states frame by frame.
// On its first frame the estimator is run Warmup times over the same
// reading with velocities and accelerations reset after every pass so that
// the positions converge from the initial guess before tracking starts.
type Reconstructor struct {
	// est is skeleton state estimator
	est *kr.KR
	// a adapts raw readings
	a recon.Adapter
	// log is reconstruction logger
	log *zap.Logger
	// warmup is number of first frame passes
	warmup int
	// frame counts reconstructed frames
	frame int
}

// New creates new Reconstructor which feeds readings adapted by a into est and returns it.
// It returns error if est and a dimensions differ or the warm-up count is negative.
func New(est *kr.KR, a recon.Adapter, opts ...Option) (*Reconstructor, error) {
	o := Options{
		Logger: zap.NewNop(),
		Warmup: DefaultWarmup,
	}
	for _, apply := range opts {
		apply(&o)
	}

	if o.Warmup < 0 {
		return nil, fmt.Errorf("invalid warm-up count: %d", o.Warmup)
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	n, m := est.Dims()
	dof, channels := a.Dims()
	if n != dof || m != channels {
		return nil, fmt.Errorf("%w: estimator [%d x %d], adapter [%d x %d]", recon.ErrDimension, n, m, dof, channels)
	}

	return &Reconstructor{
		est:    est,
		a:      a,
		log:    o.Logger,
		warmup: o.Warmup,
	}, nil
}

// Frame reconstructs raw reading and writes the new joint positions, velocities
// and accelerations into the non-nil q, qdot and qddot.
// It returns error if the reading can't be adapted or the estimator fails to iterate.
// A failed frame leaves the estimator as it was before the call, so Frame can be
// retried with another reading.
func (r *Reconstructor) Frame(raw mat.Vector, q, qdot, qddot *mat.VecDense) error {
	if r.frame == 0 && r.warmup > 0 {
		start, err := r.est.Estimate()
		if err != nil {
			return fmt.Errorf("failed to read initial state: %w", err)
		}

		if err := r.warmUp(raw); err != nil {
			return r.restore(start, err)
		}

		if err := r.step(raw); err != nil {
			return r.restore(start, fmt.Errorf("frame %d: %w", r.frame, err))
		}
	} else if err := r.step(raw); err != nil {
		return fmt.Errorf("frame %d: %w", r.frame, err)
	}
	r.frame++

	r.est.State(q, qdot, qddot)

	return nil
}

// restore resets the estimator to start after the first frame failed with err.
func (r *Reconstructor) restore(start *estimate.State, err error) error {
	if rerr := r.est.Reset(model.NewInitCond(start.Val(), start.Cov())); rerr != nil {
		return fmt.Errorf("%w: failed to restore initial state: %v", err, rerr)
	}

	return err
}

func (r *Reconstructor) warmUp(raw mat.Vector) error {
	n, _ := r.est.Dims()
	zero := mat.NewVecDense(n, nil)

	r.log.Debug("warm-up started", zap.Int("passes", r.warmup))
	for i := 0; i < r.warmup; i++ {
		if err := r.step(raw); err != nil {
			return fmt.Errorf("warm-up pass %d: %w", i, err)
		}
		r.est.SetInitState(nil, zero, zero)
	}
	r.log.Debug("warm-up finished")

	return nil
}

func (r *Reconstructor) step(raw mat.Vector) error {
	q := &mat.VecDense{}
	r.est.State(q, nil, nil)

	f, err := r.a.Adapt(q, raw)
	if err != nil {
		return fmt.Errorf("failed to adapt reading: %w", err)
	}

	if len(f.Occluded) > 0 {
		r.log.Debug("occluded channels", zap.Int("frame", r.frame), zap.Ints("channels", f.Occluded))
	}

	return r.est.Iterate(f.Measure, f.Projected, f.Jacobian, f.Occluded)
}

// Frames returns number of reconstructed frames
func (r *Reconstructor) Frames() int {
	return r.frame
}

// Reset resets the estimator and restarts the reconstruction from the first frame.
func (r *Reconstructor) Reset() {
	r.est.Init()
	r.frame = 0
}

// Trial reconstructs every reading in raws and returns the state estimate after each one.
// It returns error if any frame fails or ctx is done.
func (r *Reconstructor) Trial(ctx context.Context, raws []mat.Vector) ([]*estimate.State, error) {
	states := make([]*estimate.State, 0, len(raws))
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := r.Frame(raw, nil, nil, nil); err != nil {
			return nil, err
		}

		s, err := r.est.Estimate()
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}

	r.log.Debug("trial reconstructed", zap.Int("frames", len(raws)))

	return states, nil
}

// RunTrials reconstructs independent trials in parallel with one Reconstructor
// per trial created by newRecons. It returns the estimates of every trial in the
// order of trials. It returns the first error encountered by any trial.
func RunTrials(ctx context.Context, trials [][]mat.Vector, newRecons func() (*Reconstructor, error)) ([][]*estimate.State, error) {
	results := make([][]*estimate.State, len(trials))

	g, ctx := errgroup.WithContext(ctx)
	for i := range trials {
		i := i
		g.Go(func() error {
			r, err := newRecons()
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}

			states, err := r.Trial(ctx, trials[i])
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = states

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
