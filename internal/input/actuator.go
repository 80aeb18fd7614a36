// Package input converts aim-error vectors into platform pointer events and
// holds the key-bind state shared with the asynchronous input listener.
package input

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnsupported reports that native input injection is not available on
// this platform. The actuator then degrades to a logged no-op.
var ErrUnsupported = errors.New("input injection unsupported on this platform")

// clickGap separates the press and release halves of a click.
const clickGap = 10 * time.Millisecond

// deadZone is the minimum scaled magnitude, per axis, below which no
// pointer-movement event is emitted. Suppresses sub-pixel jitter commands.
const deadZone = 0.5

// Injector emits raw pointer events. Implementations are per-platform.
type Injector interface {
	MoveRelative(dx, dy int) error
	ButtonDown() error
	ButtonUp() error
}

// Actuator applies smoothing/speed scaling and the dead zone before
// forwarding movement to the platform injector.
type Actuator struct {
	injector Injector
	log      zerolog.Logger
}

// NewActuator wraps an injector. Platform support is the caller's concern;
// see NewInjector.
func NewActuator(injector Injector, log zerolog.Logger) *Actuator {
	return &Actuator{
		injector: injector,
		log:      log.With().Str("component", "input").Logger(),
	}
}

// ScaleDelta applies the smoothing and speed factors to a raw aim-error
// vector: (1/smoothness) · (speed/10).
func ScaleDelta(dx, dy, smoothness, speed float64) (float64, float64) {
	if smoothness == 0 {
		smoothness = 1
	}
	f := (1.0 / smoothness) * (speed / 10.0)
	return dx * f, dy * f
}

// InDeadZone reports whether a scaled delta is too small to act on.
func InDeadZone(mx, my float64) bool {
	return math.Abs(mx) <= deadZone && math.Abs(my) <= deadZone
}

// Move scales the aim-error vector and emits a relative pointer movement,
// unless the scaled magnitude falls inside the dead zone on both axes.
func (a *Actuator) Move(dx, dy, smoothness, speed float64) {
	mx, my := ScaleDelta(dx, dy, smoothness, speed)
	if InDeadZone(mx, my) {
		return
	}
	if err := a.injector.MoveRelative(int(mx), int(my)); err != nil {
		a.log.Debug().Err(err).Msg("move injection failed")
	}
}

// Click emits a button press followed by a release after a fixed gap.
func (a *Actuator) Click() {
	if err := a.injector.ButtonDown(); err != nil {
		a.log.Debug().Err(err).Msg("click injection failed")
		return
	}
	time.Sleep(clickGap)
	if err := a.injector.ButtonUp(); err != nil {
		a.log.Debug().Err(err).Msg("click release failed")
	}
}

// nopInjector satisfies Injector on platforms without native injection.
type nopInjector struct{}

func (nopInjector) MoveRelative(dx, dy int) error { return ErrUnsupported }
func (nopInjector) ButtonDown() error             { return ErrUnsupported }
func (nopInjector) ButtonUp() error               { return ErrUnsupported }
