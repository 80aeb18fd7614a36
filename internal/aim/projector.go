// Package aim converts a selected target into a smoothed aim point,
// optionally projected forward along the target's estimated motion.
package aim

import (
	"math"

	"colortrack/internal/detect"
	"colortrack/internal/track"
	"colortrack/pkg/geometry"
)

// PositionMode selects which part of the target the aim point lands on.
type PositionMode string

const (
	PositionBody   PositionMode = "Body"
	PositionHead   PositionMode = "Head"
	PositionCustom PositionMode = "Custom"
)

const (
	// headFraction places the head aim point this far down the bounding box.
	headFraction = 0.15
	// minConfidence gates prediction on the filter's estimate quality.
	minConfidence = 0.1
	// minSpeed gates prediction on target motion, in pixels per tick.
	minSpeed = 1.0
	// directionAgreement is the minimum dot product between instantaneous
	// and smoothed velocity directions for the smoothed one to be used.
	directionAgreement = 0.5
	// velocityRetention is the weight of the previous smoothed velocity.
	velocityRetention = 0.7
	// aimRetention is the weight of the previous tick's final aim point.
	aimRetention = 0.8
	// maxBlend caps how much the predicted point can displace the aim.
	maxBlend = 0.5
)

// Params carries the per-tick projection configuration.
type Params struct {
	Mode             PositionMode
	YOffset          float64
	Prediction       bool
	PredictionFactor float64 // raw control value; effective factor is /10
	Radius           int     // capture half-size, for clamping
}

// Output is the projection result for one tick.
type Output struct {
	Aim       geometry.Point2D // final smoothed aim point, capture coords
	Raw       geometry.Point2D // measured centroid
	Predicted geometry.Point2D // projected position (= Raw when not projected)
	Speed     float64          // filter velocity magnitude
}

// Projector holds the smoothing state that suppresses frame-to-frame jitter.
// It is owned by the scheduler and reset on target loss or when prediction
// is toggled off, so re-enabling starts clean.
type Projector struct {
	smoothedVel geometry.Point2D
	hasSmoothed bool
	lastAim     geometry.Point2D
	hasLastAim  bool
}

// NewProjector creates a Projector with empty accumulators.
func NewProjector() *Projector {
	return &Projector{}
}

// Reset clears the smoothing accumulators.
func (p *Projector) Reset() {
	p.smoothedVel = geometry.Point2D{}
	p.hasSmoothed = false
	p.lastAim = geometry.Point2D{}
	p.hasLastAim = false
}

// Project computes the aim point for the selected candidate. lastRaw is the
// previous tick's raw target position, or nil; it feeds the two-frame
// fallback when the filter's estimate is not trustworthy yet. When
// prediction is enabled the caller must have fed the filter this tick's
// measurement already.
func (p *Projector) Project(cand detect.Candidate, f *track.Filter, lastRaw *geometry.Point2D, prm Params) Output {
	raw := cand.Centroid

	base := raw
	switch prm.Mode {
	case PositionHead:
		base.Y = cand.Bounds.Y + cand.Bounds.Height*headFraction
	case PositionCustom:
		base.Y += prm.YOffset
	}

	if !prm.Prediction {
		p.Reset()
		return Output{Aim: base, Raw: raw, Predicted: raw}
	}

	vel := f.Velocity()
	speed := vel.Norm()
	confidence := f.Confidence()

	scaled := 0.0
	predicted := raw

	switch {
	case confidence > minConfidence && speed > minSpeed:
		scaled = (prm.PredictionFactor / 10.0) * confidence

		if p.hasSmoothed {
			p.smoothedVel = p.smoothedVel.Scale(velocityRetention).
				Add(vel.Scale(1 - velocityRetention))
		} else {
			p.smoothedVel = vel
			p.hasSmoothed = true
		}

		// Project along the smoothed velocity only while it still agrees
		// with the instantaneous direction; on disagreement the raw
		// velocity is the fresher signal.
		chosen := vel
		if vel.Unit().Dot(p.smoothedVel.Unit()) > directionAgreement {
			chosen = p.smoothedVel
		}
		predicted = raw.Add(chosen.Scale(scaled))

	case speed > minSpeed && lastRaw != nil:
		// Two-frame fallback while the filter is still uncertain.
		scaled = prm.PredictionFactor / 20.0
		predicted = raw.Add(raw.Sub(*lastRaw).Scale(scaled))
	}

	predicted = predicted.Clamp(0, float64(2*prm.Radius))

	blend := math.Min(maxBlend, scaled*0.05)
	current := base.Scale(1 - blend).Add(predicted.Scale(blend))

	aim := current
	if p.hasLastAim {
		aim = p.lastAim.Scale(aimRetention).Add(current.Scale(1 - aimRetention))
	}
	p.lastAim = aim
	p.hasLastAim = true

	return Output{Aim: aim, Raw: raw, Predicted: predicted, Speed: speed}
}
