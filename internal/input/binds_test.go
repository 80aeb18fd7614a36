package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindsPressState(t *testing.T) {
	t.Parallel()

	b := NewBinds()
	b.Bind(FeatureAim, "mouse4")

	assert.False(t, b.IsPressed(FeatureAim))

	b.HandleInput("mouse4", true)
	assert.True(t, b.IsPressed(FeatureAim))

	b.HandleInput("mouse4", false)
	assert.False(t, b.IsPressed(FeatureAim))
}

func TestBindsUnboundKeyIsIgnored(t *testing.T) {
	t.Parallel()

	b := NewBinds()
	b.Bind(FeatureAim, "mouse4")

	b.HandleInput("f6", true)
	assert.False(t, b.IsPressed(FeatureAim))
}

func TestBindsKeyExclusivity(t *testing.T) {
	t.Parallel()

	b := NewBinds()
	b.Bind(FeatureAim, "mouse4")
	b.Bind(FeatureTrigger, "mouse4")

	// The key moved to trigger; aim lost its bind.
	_, ok := b.Key(FeatureAim)
	assert.False(t, ok)

	k, ok := b.Key(FeatureTrigger)
	require.True(t, ok)
	assert.Equal(t, "mouse4", k)

	b.HandleInput("mouse4", true)
	assert.False(t, b.IsPressed(FeatureAim))
	assert.True(t, b.IsPressed(FeatureTrigger))
}

func TestBindsCapture(t *testing.T) {
	t.Parallel()

	b := NewBinds()
	b.Bind(FeatureAim, "mouse4")
	b.ArmCapture(FeatureESP)

	// The armed press becomes the bind instead of a hold event.
	b.HandleInput("f7", true)

	k, ok := b.Key(FeatureESP)
	require.True(t, ok)
	assert.Equal(t, "f7", k)
	assert.False(t, b.IsPressed(FeatureESP))

	// Capture disarms after one press.
	b.HandleInput("f7", true)
	assert.True(t, b.IsPressed(FeatureESP))
}

func TestBindsCaptureIgnoresReleases(t *testing.T) {
	t.Parallel()

	b := NewBinds()
	b.ArmCapture(FeatureRadar)

	b.HandleInput("f8", false)
	_, ok := b.Key(FeatureRadar)
	assert.False(t, ok)

	b.HandleInput("f8", true)
	k, ok := b.Key(FeatureRadar)
	require.True(t, ok)
	assert.Equal(t, "f8", k)
}

func TestBindsSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	b := NewBinds()
	b.Bind(FeatureAim, "mouse4")

	snap := b.Snapshot()
	snap[FeatureAim] = "tampered"

	k, ok := b.Key(FeatureAim)
	require.True(t, ok)
	assert.Equal(t, "mouse4", k)
}
