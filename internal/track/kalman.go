// Package track selects a priority target and estimates its motion between
// ticks with a constant-velocity Kalman filter.
package track

import (
	"colortrack/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

const (
	// processNoise scales Q; higher values make the filter more responsive.
	processNoise = 0.2
	// measurementNoise scales R; lower values trust measurements more.
	measurementNoise = 0.2
	// initialCovariance is the diagonal of P at construction and after Reset.
	initialCovariance = 2.0
	// velocityNoiseFloor is the minimum per-tick displacement treated as
	// real motion rather than measurement jitter.
	velocityNoiseFloor = 0.5
	// velocityBlend is the weight given to the previous velocity estimate
	// when folding in a new displacement sample.
	velocityBlend = 0.8
	// lossInflation multiplies positional covariance on each missed tick.
	lossInflation = 2.0
)

// Filter is a constant-velocity Kalman filter over state [x, y, vx, vy].
// It tracks whichever candidate the selector currently prefers; there is no
// identity matching between ticks, so a selection change is absorbed as a
// continuous (if jumpy) measurement.
type Filter struct {
	state *mat.VecDense // [x, y, vx, vy]
	cov   *mat.Dense    // P, 4x4

	initialized bool
	velocitySet bool
	lastMeas    geometry.Point2D
}

// NewFilter creates an uninitialized filter. The first Update initializes
// position with zero velocity.
func NewFilter() *Filter {
	f := &Filter{}
	f.Reset()
	return f
}

// Reset returns the filter to its uninitialized state.
func (f *Filter) Reset() {
	f.state = mat.NewVecDense(4, nil)
	f.cov = scaledIdentity(4, initialCovariance)
	f.initialized = false
	f.velocitySet = false
	f.lastMeas = geometry.Point2D{}
}

// Initialized reports whether the filter has absorbed at least one
// measurement.
func (f *Filter) Initialized() bool {
	return f.initialized
}

// Position returns the current position estimate.
func (f *Filter) Position() geometry.Point2D {
	return geometry.Point2D{X: f.state.AtVec(0), Y: f.state.AtVec(1)}
}

// Velocity returns the current velocity estimate, or zero when
// uninitialized.
func (f *Filter) Velocity() geometry.Point2D {
	if !f.initialized {
		return geometry.Point2D{}
	}
	return geometry.Point2D{X: f.state.AtVec(2), Y: f.state.AtVec(3)}
}

// Confidence expresses trust in the current estimate as
// 1 / (1 + trace of positional covariance). It is 0 while uninitialized and
// in (0, 1] afterwards, shrinking as positional uncertainty grows.
func (f *Filter) Confidence() float64 {
	if !f.initialized {
		return 0
	}
	return 1.0 / (1.0 + f.PositionCovarianceTrace())
}

// PositionCovarianceTrace returns the trace of the positional block of P.
func (f *Filter) PositionCovarianceTrace() float64 {
	return f.cov.At(0, 0) + f.cov.At(1, 1)
}

// Predict advances the state by dt under the constant-velocity model and
// inflates covariance by the process noise. While uninitialized it is a
// no-op returning the current position.
func (f *Filter) Predict(dt float64) geometry.Point2D {
	if !f.initialized {
		return f.Position()
	}

	F := transition(dt)

	var next mat.VecDense
	next.MulVec(F, f.state)
	f.state.CopyVec(&next)

	// P = F P Fᵀ + Q
	var fp, fpft mat.Dense
	fp.Mul(F, f.cov)
	fpft.Mul(&fp, F.T())
	fpft.Add(&fpft, scaledIdentity(4, processNoise))
	f.cov.Copy(&fpft)

	return f.Position()
}

// Update folds a position measurement into the state. The first call
// initializes position with zero velocity. Later calls derive a raw velocity
// from the displacement since the previous measurement, ignore it below the
// noise floor, and otherwise blend it into the velocity estimate before the
// standard Kalman correction.
func (f *Filter) Update(meas geometry.Point2D) {
	if !f.initialized {
		f.state.SetVec(0, meas.X)
		f.state.SetVec(1, meas.Y)
		f.initialized = true
		f.lastMeas = meas
		return
	}

	raw := meas.Sub(f.lastMeas)
	if raw.Norm() > velocityNoiseFloor {
		if !f.velocitySet {
			f.state.SetVec(2, raw.X)
			f.state.SetVec(3, raw.Y)
			f.velocitySet = true
		} else {
			f.state.SetVec(2, f.state.AtVec(2)*velocityBlend+raw.X*(1-velocityBlend))
			f.state.SetVec(3, f.state.AtVec(3)*velocityBlend+raw.Y*(1-velocityBlend))
		}
	}
	f.lastMeas = meas

	f.correct(meas)
}

// correct runs the standard Kalman correction step.
func (f *Filter) correct(meas geometry.Point2D) {
	H := measurementMatrix()

	// S = H P Hᵀ + R
	var pht, s mat.Dense
	pht.Mul(f.cov, H.T())
	s.Mul(H, &pht)
	s.Add(&s, scaledIdentity(2, measurementNoise))

	// K = P Hᵀ S⁻¹ via linear solve: S Kᵀ = (P Hᵀ)ᵀ.
	var kt mat.Dense
	if err := kt.Solve(&s, pht.T()); err != nil {
		// Singular innovation covariance; skip the correction.
		return
	}
	k := kt.T()

	// innovation y = z - H s
	var hs mat.VecDense
	hs.MulVec(H, f.state)
	innov := mat.NewVecDense(2, []float64{meas.X - hs.AtVec(0), meas.Y - hs.AtVec(1)})

	// s = s + K y
	var corr mat.VecDense
	corr.MulVec(k, innov)
	f.state.AddVec(f.state, &corr)

	// P = (I - K H) P
	var kh, p mat.Dense
	kh.Mul(k, H)
	kh.Scale(-1, &kh)
	kh.Add(&kh, scaledIdentity(4, 1))
	p.Mul(&kh, f.cov)
	f.cov.Copy(&p)
}

// HandleTargetLoss inflates positional uncertainty after a tick with no
// selected target. State is kept so a reacquired target resumes smoothly;
// repeated losses compound the inflation multiplicatively.
func (f *Filter) HandleTargetLoss() {
	if !f.initialized {
		return
	}
	for _, idx := range [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		f.cov.Set(idx[0], idx[1], f.cov.At(idx[0], idx[1])*lossInflation)
	}
}

// transition builds the constant-velocity state transition matrix for dt.
func transition(dt float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, dt, 0,
		0, 1, 0, dt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// measurementMatrix extracts position from the state vector.
func measurementMatrix() *mat.Dense {
	return mat.NewDense(2, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
	})
}

// scaledIdentity returns s·I of the given size.
func scaledIdentity(n int, s float64) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, s)
	}
	return m
}
