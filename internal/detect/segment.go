package detect

import (
	"colortrack/pkg/colorutil"
	"colortrack/pkg/geometry"

	"gocv.io/x/gocv"
)

// BuildMask segments a BGR frame into a binary mask of pixels whose hue lies
// within the tolerance-derived window around the target color's hue.
// Saturation and value are bounded at [100, 255] so near-black, near-white
// and washed-out pixels never match.
func BuildMask(frame gocv.Mat, target colorutil.RGB, tolerance int) gocv.Mat {
	if frame.Empty() {
		return gocv.NewMat()
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	hue, _, _ := target.HSV()
	lowerH, upperH := colorutil.HueBounds(hue, tolerance)

	mask := gocv.NewMat()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(lowerH, 100, 100, 0),
		gocv.NewScalar(upperH, 255, 255, 0),
		&mask)

	return mask
}

// ExtractContours finds the external boundaries of connected mask regions and
// discards those below the noise floor.
func ExtractContours(mask gocv.Mat, minArea float64) []Contour {
	if mask.Empty() {
		return nil
	}

	found := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	var contours []Contour
	for i := 0; i < found.Size(); i++ {
		pv := found.At(i)
		area := gocv.ContourArea(pv)
		if area < minArea {
			continue
		}

		pts := make([]geometry.Point2D, pv.Size())
		for j := 0; j < pv.Size(); j++ {
			p := pv.At(j)
			pts[j] = geometry.Point2D{X: float64(p.X), Y: float64(p.Y)}
		}

		contours = append(contours, Contour{
			Points:   pts,
			Centroid: geometry.Centroid(pts),
			Area:     area,
		})
	}
	return contours
}
