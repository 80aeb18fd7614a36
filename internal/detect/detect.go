// Package detect isolates color-matched regions in a frame and turns them
// into merged target candidates.
package detect

import (
	"image"

	"colortrack/pkg/colorutil"
	"colortrack/pkg/geometry"
)

// MinContourArea is the noise floor: contours smaller than this are dropped.
const MinContourArea = 10.0

// DefaultGroupDistance is the seed-to-candidate merge radius in pixels.
const DefaultGroupDistance = 80.0

// DefaultTriggerWindow is the side length of the crosshair inspection window.
const DefaultTriggerWindow = 4

// Contour is a closed boundary of one connected mask region.
type Contour struct {
	Points   []geometry.Point2D
	Centroid geometry.Point2D
	Area     float64
}

// Candidate is a merged contour group: one potential target for this tick.
// Candidates are rebuilt from scratch every tick and never carry identity
// across ticks.
type Candidate struct {
	Centroid geometry.Point2D
	Bounds   geometry.Rect
	Area     float64
	Points   []geometry.Point2D
}

// Request describes one tick's detection work.
type Request struct {
	Center       geometry.PointInt // reference point, screen coordinates
	Radius       int               // half side of the capture square
	Color        colorutil.RGB     // target color signature
	Tolerance    int               // raw tolerance, 0-255 control units
	CheckTrigger bool              // inspect the crosshair window
	IncludeMask  bool              // export the mask for pixel rendering
}

// Result is what one detection pass produced.
type Result struct {
	Candidates []Candidate
	TriggerHit bool        // a matched pixel sits in the crosshair window
	Mask       *image.Gray // only set when Request.IncludeMask
}

// newCandidate builds a Candidate from a polygon.
func newCandidate(points []geometry.Point2D, area float64) Candidate {
	return Candidate{
		Centroid: geometry.Centroid(points),
		Bounds:   geometry.BoundingBox(points),
		Area:     area,
		Points:   points,
	}
}
