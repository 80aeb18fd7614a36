package track

import (
	"colortrack/internal/detect"
	"colortrack/pkg/geometry"
)

// PriorityMode decides which candidate wins when several are present.
type PriorityMode string

const (
	// PriorityProximity selects the candidate closest to the reference point.
	PriorityProximity PriorityMode = "Proximity"
	// PrioritySize selects the candidate with the largest area.
	PrioritySize PriorityMode = "Size"
)

// Select picks one candidate per tick by the configured priority policy.
// Ties go to the first candidate encountered. The second return value is
// false when there are no candidates (target loss).
func Select(candidates []detect.Candidate, mode PriorityMode, ref geometry.Point2D) (detect.Candidate, bool) {
	if len(candidates) == 0 {
		return detect.Candidate{}, false
	}

	best := 0
	switch mode {
	case PrioritySize:
		for i := 1; i < len(candidates); i++ {
			if candidates[i].Area > candidates[best].Area {
				best = i
			}
		}
	default: // PriorityProximity
		bestDist := candidates[0].Centroid.Distance(ref)
		for i := 1; i < len(candidates); i++ {
			if d := candidates[i].Centroid.Distance(ref); d < bestDist {
				best = i
				bestDist = d
			}
		}
	}

	return candidates[best], true
}
