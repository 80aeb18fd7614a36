package track

import (
	"testing"

	"colortrack/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterUninitialized(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	assert.False(t, f.Initialized())
	assert.Equal(t, geometry.Point2D{}, f.Velocity())
	assert.Zero(t, f.Confidence())

	// Predict before any measurement is a no-op.
	assert.Equal(t, geometry.Point2D{}, f.Predict(1))
	assert.False(t, f.Initialized())
}

func TestFilterFirstUpdate(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	f.Update(geometry.Point2D{X: 100, Y: 50})

	assert.True(t, f.Initialized())
	assert.Equal(t, geometry.Point2D{X: 100, Y: 50}, f.Position())
	assert.Equal(t, geometry.Point2D{}, f.Velocity())
	assert.Greater(t, f.Confidence(), 0.0)
	assert.LessOrEqual(t, f.Confidence(), 1.0)
}

func TestFilterConvergesOnConstantVelocity(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	prevConf := f.Confidence()

	// Target moving 5px per tick along +x.
	for i := 0; i < 20; i++ {
		f.Update(geometry.Point2D{X: 100 + 5*float64(i), Y: 100})

		conf := f.Confidence()
		assert.GreaterOrEqual(t, conf, prevConf, "confidence dipped at tick %d", i)
		prevConf = conf

		if i >= 10 {
			vel := f.Velocity()
			assert.InDelta(t, 5.0, vel.X, 0.25, "vx off at tick %d", i)
			assert.InDelta(t, 0.0, vel.Y, 0.25, "vy off at tick %d", i)
		}
	}

	assert.Greater(t, prevConf, 0.5)
}

func TestFilterIgnoresJitterBelowNoiseFloor(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	f.Update(geometry.Point2D{X: 100, Y: 100})
	f.Update(geometry.Point2D{X: 100.2, Y: 100.1})
	f.Update(geometry.Point2D{X: 100.1, Y: 99.9})

	// Sub-floor displacements never set a velocity.
	assert.Equal(t, geometry.Point2D{}, f.Velocity())
}

func TestFilterTargetLossInflatesCovariance(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	f.Update(geometry.Point2D{X: 100, Y: 100})
	f.Update(geometry.Point2D{X: 105, Y: 100})

	before := f.PositionCovarianceTrace()
	require.Greater(t, before, 0.0)
	confBefore := f.Confidence()

	f.HandleTargetLoss()
	f.HandleTargetLoss()
	f.HandleTargetLoss()

	assert.InDelta(t, before*8, f.PositionCovarianceTrace(), 1e-9)
	assert.Less(t, f.Confidence(), confBefore)

	// State survives the losses so reacquisition resumes smoothly.
	assert.True(t, f.Initialized())
	assert.InDelta(t, 5.0, f.Velocity().X, 0.1)
}

func TestFilterTargetLossBeforeInitIsNoop(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	f.HandleTargetLoss()
	assert.Zero(t, f.Confidence())
}

func TestFilterReset(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	f.Update(geometry.Point2D{X: 100, Y: 100})
	f.Update(geometry.Point2D{X: 110, Y: 100})
	require.True(t, f.Initialized())

	f.Reset()
	assert.False(t, f.Initialized())
	assert.Equal(t, geometry.Point2D{}, f.Velocity())
	assert.Zero(t, f.Confidence())
}

func TestFilterPredictAdvancesPosition(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	f.Update(geometry.Point2D{X: 100, Y: 100})
	f.Update(geometry.Point2D{X: 105, Y: 100})

	trace := f.PositionCovarianceTrace()
	pos := f.Position()
	vel := f.Velocity()

	got := f.Predict(2)
	assert.InDelta(t, pos.X+2*vel.X, got.X, 1e-9)
	assert.InDelta(t, pos.Y+2*vel.Y, got.Y, 1e-9)

	// Process noise grows uncertainty.
	assert.Greater(t, f.PositionCovarianceTrace(), trace)
}
