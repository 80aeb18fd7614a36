// Package capture grabs fixed-size screen regions for the detection pipeline.
package capture

import (
	"errors"
	"fmt"
	"image"

	"colortrack/pkg/geometry"

	"github.com/kbinani/screenshot"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// ErrUnavailable reports that the capture backend could not produce a frame.
// Callers skip the current tick and retry on the next one.
var ErrUnavailable = errors.New("capture unavailable")

// Sampler captures square pixel regions centered on a reference point.
type Sampler struct {
	log zerolog.Logger
}

// NewSampler creates a Sampler.
func NewSampler(log zerolog.Logger) *Sampler {
	return &Sampler{log: log.With().Str("component", "capture").Logger()}
}

// PrimaryCenter returns the center of the primary display in screen
// coordinates. It queries the display every call so resolution changes are
// picked up on the next tick.
func PrimaryCenter() (geometry.PointInt, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return geometry.PointInt{}, fmt.Errorf("no active displays: %w", ErrUnavailable)
	}
	b := screenshot.GetDisplayBounds(0)
	return geometry.PointInt{
		X: b.Min.X + b.Dx()/2,
		Y: b.Min.Y + b.Dy()/2,
	}, nil
}

// PrimaryBounds returns the bounds of the primary display.
func PrimaryBounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays: %w", ErrUnavailable)
	}
	return screenshot.GetDisplayBounds(0), nil
}

// Region returns the 2r x 2r capture rectangle around center.
func Region(center geometry.PointInt, radius int) image.Rectangle {
	return image.Rect(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius)
}

// Grab captures the square region of the given radius around center and
// returns it as a BGR Mat. The full region must be available: a region that
// falls off the display, or any backend failure, yields ErrUnavailable
// rather than a partial frame.
func (s *Sampler) Grab(center geometry.PointInt, radius int) (gocv.Mat, error) {
	region := Region(center, radius)

	display, err := PrimaryBounds()
	if err != nil {
		return gocv.Mat{}, err
	}
	if !region.In(display) {
		return gocv.Mat{}, fmt.Errorf("region %v outside display %v: %w", region, display, ErrUnavailable)
	}

	img, err := screenshot.CaptureRect(region)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("screen grab failed: %w: %v", ErrUnavailable, err)
	}

	mat := rgbaToBGRMat(img)
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, fmt.Errorf("empty frame: %w", ErrUnavailable)
	}
	return mat, nil
}

// rgbaToBGRMat converts a captured RGBA image to a 3-channel BGR Mat.
func rgbaToBGRMat(img *image.RGBA) gocv.Mat {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			mat.SetUCharAt(y, x*3+0, row[x*4+2])
			mat.SetUCharAt(y, x*3+1, row[x*4+1])
			mat.SetUCharAt(y, x*3+2, row[x*4+0])
		}
	}
	return mat
}
