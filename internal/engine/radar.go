package engine

import (
	"math"

	"colortrack/internal/detect"
	"colortrack/pkg/geometry"
)

// maxRadarSize caps the blip size so a huge blob does not swallow the dial.
const maxRadarSize = 50.0

// RadarTargets converts detection candidates into radar blips relative to
// ref. Candidates outside the scan circle are dropped; the bearing maps the
// horizontal offset across the scan radius onto ±90 degrees.
func RadarTargets(cands []detect.Candidate, ref geometry.Point2D, radius float64) []RadarTarget {
	if radius <= 0 {
		return nil
	}
	targets := make([]RadarTarget, 0, len(cands))
	for i, c := range cands {
		d := c.Centroid.Distance(ref)
		if d > radius {
			continue
		}
		angle := (c.Centroid.X - ref.X) / radius * 90
		angle = math.Max(-90, math.Min(90, angle))
		targets = append(targets, RadarTarget{
			ID:       i,
			Angle:    angle,
			Distance: d,
			Size:     math.Min(c.Area/100, maxRadarSize),
			Visible:  true,
		})
	}
	return targets
}
