// Package engine drives the per-tick detection, tracking, prediction and
// actuation pipeline and forwards results to the rendering collaborators.
package engine

import (
	"context"
	"image"
	"time"

	"colortrack/internal/aim"
	"colortrack/internal/config"
	"colortrack/internal/detect"
	"colortrack/internal/input"
	"colortrack/internal/track"
	"colortrack/pkg/geometry"

	"github.com/rs/zerolog"
)

// perfLogInterval is the tick period of the throughput log line.
const perfLogInterval = 1000

// Detector runs one detection pass.
type Detector interface {
	Detect(req detect.Request) (*detect.Result, error)
}

// Actuator receives aim-error vectors and trigger conditions.
type Actuator interface {
	Move(dx, dy, smoothness, speed float64)
	Click()
}

// RenderData is the per-tick payload for the box/pixel rendering collaborator.
type RenderData struct {
	Bounds    geometry.Rect     // target bounding box, capture coords
	Mask      *image.Gray       // set in pixel mode
	Offset    geometry.PointInt // capture-region top-left, screen coords
	ScreenPos geometry.PointInt // target centroid, screen coords
}

// RenderSink consumes box/mask rendering state. Clear is called whenever a
// tick produces nothing to draw.
type RenderSink interface {
	UpdateTarget(RenderData)
	Clear()
}

// RadarTarget is one radar blip. The list is rebuilt every tick with no
// persistence: a target absent this tick is simply gone.
type RadarTarget struct {
	ID       int     `json:"id"`
	Angle    float64 `json:"angle"` // horizontal bearing, degrees, ±90
	Distance float64 `json:"distance"`
	Size     float64 `json:"size"`
	Visible  bool    `json:"visible"`
}

// RadarSink consumes the per-tick radar target list.
type RadarSink interface {
	UpdateTargets([]RadarTarget)
}

// VelocityLine describes the prediction visual: raw position to projected
// position, with the motion magnitude.
type VelocityLine struct {
	From  geometry.PointInt // screen coords
	To    geometry.PointInt
	Speed float64
}

// PredictionSink consumes the velocity-line visual.
type PredictionSink interface {
	UpdateLine(VelocityLine)
	Clear()
}

// CenterSource yields the current reference point in screen coordinates.
type CenterSource func() (geometry.PointInt, error)

// Engine owns the cross-tick control state and runs the pipeline once per
// timer tick. All per-tick work is synchronous; the only concurrent inputs
// are the bind store (written by the global listener) and the config store
// (written by the GUI collaborator), both internally synchronized.
type Engine struct {
	cfg        *config.Store
	binds      *input.Binds
	detector   Detector
	actuator   Actuator
	filter     *track.Filter
	projector  *aim.Projector
	render     RenderSink
	radar      RadarSink
	prediction PredictionSink
	center     CenterSource
	log        zerolog.Logger

	lastRaw        *geometry.Point2D
	lastAimEnabled bool
	ticks          uint64
}

// New assembles an engine. Nil sinks are replaced with no-ops.
func New(cfg *config.Store, binds *input.Binds, det Detector, act Actuator,
	center CenterSource, log zerolog.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		binds:      binds,
		detector:   det,
		actuator:   act,
		filter:     track.NewFilter(),
		projector:  aim.NewProjector(),
		render:     NopRenderSink{},
		radar:      NopRadarSink{},
		prediction: NopPredictionSink{},
		center:     center,
		log:        log.With().Str("component", "engine").Logger(),
	}
}

// SetRenderSink attaches the box/mask rendering collaborator.
func (e *Engine) SetRenderSink(s RenderSink) { e.render = s }

// SetRadarSink attaches the radar collaborator.
func (e *Engine) SetRadarSink(s RadarSink) { e.radar = s }

// SetPredictionSink attaches the prediction-visual collaborator.
func (e *Engine) SetPredictionSink(s PredictionSink) { e.prediction = s }

// Filter exposes the motion filter for diagnostics.
func (e *Engine) Filter() *track.Filter { return e.filter }

// Run executes Tick on every timer tick until the context is canceled.
// Ticks never overlap: each one completes before the next is scheduled.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.Info().Dur("interval", interval).Msg("control loop started")
	for {
		select {
		case <-ctx.Done():
			e.log.Info().Msg("control loop stopped")
			return
		case <-ticker.C:
			e.safeTick()
		}
	}
}

// safeTick guards the loop against a single tick's failure: any panic is
// logged and the loop proceeds to the next tick.
func (e *Engine) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Uint64("tick", e.ticks).Msg("tick failed")
		}
	}()
	e.Tick()
}

// Tick evaluates the full scan state machine once. Feature toggles are read
// fresh each call; there is no latched mode.
func (e *Engine) Tick() {
	e.ticks++
	s := e.cfg.Snapshot()
	aimHeld := e.binds.IsPressed(input.FeatureAim)

	// Flipping the aim toggle restarts motion estimation from scratch.
	if s.Enabled.Aim != e.lastAimEnabled {
		e.filter.Reset()
		e.lastAimEnabled = s.Enabled.Aim
	}

	if e.ticks%perfLogInterval == 0 {
		e.log.Debug().Uint64("tick", e.ticks).
			Bool("prediction", s.Enabled.Prediction).Msg("loop alive")
	}

	shouldScan := s.Enabled.Trigger || s.Enabled.ESP || s.Enabled.Radar ||
		(s.Enabled.Aim && aimHeld)
	if !shouldScan {
		// Cheap path: no capture work at all.
		e.render.Clear()
		e.prediction.Clear()
		if s.Enabled.Radar {
			e.radar.UpdateTargets(nil)
		}
		return
	}

	center, err := e.center()
	if err != nil {
		e.log.Warn().Err(err).Msg("no reference point; skipping tick")
		return
	}

	res, err := e.detector.Detect(detect.Request{
		Center:       center,
		Radius:       s.FOVRadius,
		Color:        s.TargetColor,
		Tolerance:    s.Tolerance,
		CheckTrigger: s.Enabled.Trigger && aimHeld,
		IncludeMask:  s.Enabled.ESP,
	})
	if err != nil {
		e.log.Warn().Err(err).Msg("capture failed; skipping tick")
		return
	}

	if res.TriggerHit {
		e.actuator.Click()
	}

	if len(res.Candidates) == 0 {
		e.lastRaw = nil
		if s.Enabled.Prediction {
			e.filter.HandleTargetLoss()
			e.projector.Reset()
		}
		e.render.Clear()
		e.prediction.Clear()
		if s.Enabled.Radar {
			e.radar.UpdateTargets(nil)
		}
		return
	}

	// The reference point sits at the center of the capture region.
	ref := geometry.Point2D{X: float64(s.FOVRadius), Y: float64(s.FOVRadius)}

	if s.Enabled.Radar {
		e.radar.UpdateTargets(RadarTargets(res.Candidates, ref, float64(s.FOVRadius)))
	}

	if !s.Enabled.ESP && !(s.Enabled.Aim && aimHeld) {
		return // radar-only tick
	}

	cand, ok := track.Select(res.Candidates, s.Priority, ref)
	if !ok {
		return
	}

	if s.Enabled.Prediction {
		e.filter.Update(cand.Centroid)
	}

	out := e.projector.Project(cand, e.filter, e.lastRaw, aim.Params{
		Mode:             s.AimPosition,
		YOffset:          s.YOffset,
		Prediction:       s.Enabled.Prediction,
		PredictionFactor: s.PredictionFactor,
		Radius:           s.FOVRadius,
	})

	raw := cand.Centroid
	e.lastRaw = &raw

	if s.Enabled.Aim && aimHeld {
		e.actuator.Move(out.Aim.X-ref.X, out.Aim.Y-ref.Y, s.Smoothness, s.Speed)
	}

	offset := geometry.PointInt{X: center.X - s.FOVRadius, Y: center.Y - s.FOVRadius}

	if s.Enabled.ESP {
		e.render.UpdateTarget(RenderData{
			Bounds: cand.Bounds,
			Mask:   res.Mask,
			Offset: offset,
			ScreenPos: geometry.PointInt{
				X: offset.X + int(raw.X),
				Y: offset.Y + int(raw.Y),
			},
		})
	}

	if s.Enabled.Prediction && s.Enabled.PredictionVisual {
		e.prediction.UpdateLine(VelocityLine{
			From:  geometry.PointInt{X: offset.X + int(raw.X), Y: offset.Y + int(raw.Y)},
			To:    geometry.PointInt{X: offset.X + int(out.Predicted.X), Y: offset.Y + int(out.Predicted.Y)},
			Speed: out.Speed,
		})
	} else {
		e.prediction.Clear()
	}
}
