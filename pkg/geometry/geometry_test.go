package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvexHull(t *testing.T) {
	t.Parallel()

	t.Run("interior points are dropped", func(t *testing.T) {
		t.Parallel()
		pts := []Point2D{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			{X: 5, Y: 5}, {X: 3, Y: 7},
		}
		hull := ConvexHull(pts)
		require.Len(t, hull, 4)
		for _, h := range hull {
			assert.NotEqual(t, Point2D{X: 5, Y: 5}, h)
		}
	})

	t.Run("fewer than three points pass through", func(t *testing.T) {
		t.Parallel()
		pts := []Point2D{{X: 1, Y: 2}, {X: 3, Y: 4}}
		assert.Equal(t, pts, ConvexHull(pts))
	})
}

func TestPolygonArea(t *testing.T) {
	t.Parallel()

	t.Run("unit square", func(t *testing.T) {
		t.Parallel()
		sq := []Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
		assert.InDelta(t, 1.0, PolygonArea(sq), 1e-9)
	})

	t.Run("winding order does not flip the sign", func(t *testing.T) {
		t.Parallel()
		cw := []Point2D{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
		assert.InDelta(t, 1.0, PolygonArea(cw), 1e-9)
	})

	t.Run("degenerate polygon has zero area", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, PolygonArea([]Point2D{{X: 0, Y: 0}, {X: 5, Y: 5}}))
	})
}

func TestCentroid(t *testing.T) {
	t.Parallel()

	pts := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	c := Centroid(pts)
	assert.InDelta(t, 5.0, c.X, 1e-9)
	assert.InDelta(t, 5.0, c.Y, 1e-9)

	assert.Equal(t, Point2D{}, Centroid(nil))
}

func TestBoundingBox(t *testing.T) {
	t.Parallel()

	r := BoundingBox([]Point2D{{X: 2, Y: 8}, {X: -1, Y: 3}, {X: 5, Y: 4}})
	assert.Equal(t, Rect{X: -1, Y: 3, Width: 6, Height: 5}, r)
}

func TestPoint2DVectorOps(t *testing.T) {
	t.Parallel()

	t.Run("norm and dot", func(t *testing.T) {
		t.Parallel()
		v := Point2D{X: 3, Y: 4}
		assert.InDelta(t, 5.0, v.Norm(), 1e-9)
		assert.InDelta(t, 25.0, v.Dot(v), 1e-9)
	})

	t.Run("unit of a zero vector stays zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Point2D{}, Point2D{}.Unit())
	})

	t.Run("unit has length one", func(t *testing.T) {
		t.Parallel()
		u := Point2D{X: 3, Y: -4}.Unit()
		assert.InDelta(t, 1.0, math.Hypot(u.X, u.Y), 1e-5)
	})

	t.Run("clamp bounds both axes", func(t *testing.T) {
		t.Parallel()
		p := Point2D{X: -5, Y: 500}.Clamp(0, 400)
		assert.Equal(t, Point2D{X: 0, Y: 400}, p)
	})
}

func TestRectContainsAndCenter(t *testing.T) {
	t.Parallel()

	r := NewRect(10, 10, 20, 10)
	assert.True(t, r.Contains(Point2D{X: 15, Y: 15}))
	assert.False(t, r.Contains(Point2D{X: 31, Y: 15}))
	assert.Equal(t, Point2D{X: 20, Y: 15}, r.Center())
}
