package track

import (
	"testing"

	"colortrack/internal/detect"
	"colortrack/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(x, y, area float64) detect.Candidate {
	return detect.Candidate{Centroid: geometry.Point2D{X: x, Y: y}, Area: area}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	ref := geometry.Point2D{X: 200, Y: 200}

	t.Run("proximity prefers the closest regardless of size", func(t *testing.T) {
		t.Parallel()
		small := cand(210, 200, 50)
		large := cand(300, 300, 5000)

		got, ok := Select([]detect.Candidate{large, small}, PriorityProximity, ref)
		require.True(t, ok)
		assert.Equal(t, small, got)
	})

	t.Run("size prefers the largest regardless of distance", func(t *testing.T) {
		t.Parallel()
		small := cand(210, 200, 50)
		large := cand(300, 300, 5000)

		got, ok := Select([]detect.Candidate{small, large}, PrioritySize, ref)
		require.True(t, ok)
		assert.Equal(t, large, got)
	})

	t.Run("ties go to the first candidate", func(t *testing.T) {
		t.Parallel()
		a := cand(210, 200, 100)
		b := cand(190, 200, 100) // same distance, same area

		got, ok := Select([]detect.Candidate{a, b}, PriorityProximity, ref)
		require.True(t, ok)
		assert.Equal(t, a, got)

		got, ok = Select([]detect.Candidate{a, b}, PrioritySize, ref)
		require.True(t, ok)
		assert.Equal(t, a, got)
	})

	t.Run("unknown mode falls back to proximity", func(t *testing.T) {
		t.Parallel()
		near := cand(205, 200, 10)
		far := cand(400, 400, 10)

		got, ok := Select([]detect.Candidate{far, near}, PriorityMode("bogus"), ref)
		require.True(t, ok)
		assert.Equal(t, near, got)
	})

	t.Run("empty input reports loss", func(t *testing.T) {
		t.Parallel()
		_, ok := Select(nil, PriorityProximity, ref)
		assert.False(t, ok)
	})
}
