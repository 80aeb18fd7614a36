package detect

import (
	"sort"

	"colortrack/pkg/geometry"
)

// GroupContours merges nearby contours into unified candidates using greedy
// single-pass clustering. Contours are sorted by area descending so larger
// contours act as cluster seeds; each unassigned contour whose centroid lies
// within maxDistance of the seed's centroid joins the seed's group. Distance
// is measured seed-to-candidate, not group-to-candidate, so clusters can
// chain asymmetrically; that bias toward large seeds is intentional.
//
// Groups with more than one member become the convex hull of the union of
// their points; a union with fewer than 3 points falls back to the
// largest-area member. Output order follows seed processing order.
func GroupContours(contours []Contour, maxDistance float64) []Candidate {
	if len(contours) == 0 {
		return nil
	}

	ordered := make([]Contour, len(contours))
	copy(ordered, contours)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Area > ordered[j].Area
	})

	used := make([]bool, len(ordered))
	var candidates []Candidate

	for i, seed := range ordered {
		if used[i] {
			continue
		}
		used[i] = true

		group := []Contour{seed}
		for j := i + 1; j < len(ordered); j++ {
			if used[j] {
				continue
			}
			if seed.Centroid.Distance(ordered[j].Centroid) <= maxDistance {
				group = append(group, ordered[j])
				used[j] = true
			}
		}

		candidates = append(candidates, mergeGroup(group))
	}

	return candidates
}

// mergeGroup collapses a group of contours into a single candidate.
func mergeGroup(group []Contour) Candidate {
	if len(group) == 1 {
		c := group[0]
		return newCandidate(c.Points, c.Area)
	}

	var union []geometry.Point2D
	for _, c := range group {
		union = append(union, c.Points...)
	}

	if len(union) < 3 {
		// Degenerate union, keep the largest member as-is.
		largest := group[0]
		for _, c := range group[1:] {
			if c.Area > largest.Area {
				largest = c
			}
		}
		return newCandidate(largest.Points, largest.Area)
	}

	hull := geometry.ConvexHull(union)
	return newCandidate(hull, geometry.PolygonArea(hull))
}

// Regroup runs the merge step over already-built candidates. Candidates whose
// centroids sit farther apart than maxDistance pass through unchanged, so
// regrouping a merged set is idempotent.
func Regroup(candidates []Candidate, maxDistance float64) []Candidate {
	contours := make([]Contour, len(candidates))
	for i, c := range candidates {
		contours[i] = Contour{Points: c.Points, Centroid: c.Centroid, Area: c.Area}
	}
	return GroupContours(contours, maxDistance)
}
