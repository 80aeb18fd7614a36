package input

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingInjector captures emitted events for inspection.
type recordingInjector struct {
	moves  [][2]int
	events []string
}

func (r *recordingInjector) MoveRelative(dx, dy int) error {
	r.moves = append(r.moves, [2]int{dx, dy})
	r.events = append(r.events, "move")
	return nil
}

func (r *recordingInjector) ButtonDown() error {
	r.events = append(r.events, "down")
	return nil
}

func (r *recordingInjector) ButtonUp() error {
	r.events = append(r.events, "up")
	return nil
}

func TestScaleDelta(t *testing.T) {
	t.Parallel()

	t.Run("applies smoothing and speed factors", func(t *testing.T) {
		t.Parallel()
		mx, my := ScaleDelta(100, -50, 50, 10)
		assert.InDelta(t, 2.0, mx, 1e-9)
		assert.InDelta(t, -1.0, my, 1e-9)
	})

	t.Run("higher speed moves more", func(t *testing.T) {
		t.Parallel()
		slow, _ := ScaleDelta(100, 0, 50, 10)
		fast, _ := ScaleDelta(100, 0, 50, 20)
		assert.Greater(t, fast, slow)
	})

	t.Run("zero smoothness does not divide by zero", func(t *testing.T) {
		t.Parallel()
		mx, _ := ScaleDelta(100, 0, 0, 10)
		assert.InDelta(t, 100.0, mx, 1e-9)
	})
}

func TestInDeadZone(t *testing.T) {
	t.Parallel()

	assert.True(t, InDeadZone(0.3, 0.3))
	assert.True(t, InDeadZone(0.5, -0.5))
	assert.True(t, InDeadZone(0, 0))
	assert.False(t, InDeadZone(0.6, 0))
	assert.False(t, InDeadZone(0, -0.6))
}

func TestActuatorMove(t *testing.T) {
	t.Parallel()

	t.Run("suppresses sub-threshold movement", func(t *testing.T) {
		t.Parallel()
		rec := &recordingInjector{}
		a := NewActuator(rec, zerolog.Nop())

		// 10px error at smoothness 50, speed 10 scales to 0.2: inside
		// the dead zone.
		a.Move(10, 10, 50, 10)
		assert.Empty(t, rec.moves)
	})

	t.Run("emits scaled movement", func(t *testing.T) {
		t.Parallel()
		rec := &recordingInjector{}
		a := NewActuator(rec, zerolog.Nop())

		a.Move(100, -50, 50, 10)
		require.Len(t, rec.moves, 1)
		assert.Equal(t, [2]int{2, -1}, rec.moves[0])
	})
}

func TestActuatorClick(t *testing.T) {
	t.Parallel()

	rec := &recordingInjector{}
	a := NewActuator(rec, zerolog.Nop())

	a.Click()
	assert.Equal(t, []string{"down", "up"}, rec.events)
}

func TestNopInjectorReportsUnsupported(t *testing.T) {
	t.Parallel()

	var inj Injector = nopInjector{}
	assert.ErrorIs(t, inj.MoveRelative(1, 1), ErrUnsupported)
	assert.ErrorIs(t, inj.ButtonDown(), ErrUnsupported)
	assert.ErrorIs(t, inj.ButtonUp(), ErrUnsupported)
}
