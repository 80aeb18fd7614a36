package detect

import (
	"fmt"
	"image"

	"colortrack/pkg/geometry"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// FrameSource produces square BGR frames centered on a reference point.
type FrameSource interface {
	Grab(center geometry.PointInt, radius int) (gocv.Mat, error)
}

// Pipeline runs capture, segmentation, extraction and grouping for one tick.
type Pipeline struct {
	frames FrameSource
	log    zerolog.Logger

	MinArea       float64
	GroupDistance float64
	TriggerWindow int
}

// NewPipeline creates a detection pipeline with default thresholds.
func NewPipeline(frames FrameSource, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		frames:        frames,
		log:           log.With().Str("component", "detect").Logger(),
		MinArea:       MinContourArea,
		GroupDistance: DefaultGroupDistance,
		TriggerWindow: DefaultTriggerWindow,
	}
}

// Detect performs one full detection pass. Capture failures propagate so the
// scheduler can skip the tick; everything downstream of a successful capture
// is infallible (an empty mask simply yields zero candidates).
func (p *Pipeline) Detect(req Request) (*Result, error) {
	frame, err := p.frames.Grab(req.Center, req.Radius)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	defer frame.Close()

	mask := BuildMask(frame, req.Color, req.Tolerance)
	defer mask.Close()

	res := &Result{}

	if req.CheckTrigger {
		res.TriggerHit = windowHit(mask, req.Radius, p.TriggerWindow)
	}

	contours := ExtractContours(mask, p.MinArea)
	res.Candidates = GroupContours(contours, p.GroupDistance)

	if req.IncludeMask {
		if img, err := mask.ToImage(); err == nil {
			if gray, ok := img.(*image.Gray); ok {
				res.Mask = gray
			}
		} else {
			p.log.Warn().Err(err).Msg("mask export failed")
		}
	}

	return res, nil
}

// windowHit reports whether any mask pixel is set inside the small square
// window centered on the frame's own center (the crosshair position).
func windowHit(mask gocv.Mat, radius, window int) bool {
	if mask.Empty() {
		return false
	}

	half := window / 2
	x0 := clampInt(radius-half, 0, mask.Cols())
	x1 := clampInt(radius+half, 0, mask.Cols())
	y0 := clampInt(radius-half, 0, mask.Rows())
	y1 := clampInt(radius+half, 0, mask.Rows())
	if x1 <= x0 || y1 <= y0 {
		return false
	}

	roi := mask.Region(image.Rect(x0, y0, x1, y1))
	defer roi.Close()
	return gocv.CountNonZero(roi) > 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
