// Command scantest runs color detection on a still image and outputs the
// grouped targets. Useful for tuning color and tolerance without a live
// screen.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"colortrack/internal/detect"
	"colortrack/pkg/colorutil"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/tiff"
)

func main() {
	imagePath := flag.String("image", "", "Path to image (TIFF, PNG, or JPEG)")
	red := flag.Int("r", 255, "Target red component")
	green := flag.Int("g", 0, "Target green component")
	blue := flag.Int("b", 0, "Target blue component")
	tolerance := flag.Int("tolerance", 40, "Color tolerance (0-100)")
	groupDist := flag.Float64("group", detect.DefaultGroupDistance, "Max grouping distance in pixels")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: scantest -image <path> [-r 255 -g 0 -b 0] [-tolerance 40]")
		os.Exit(1)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())

	frame, err := toBGRMat(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to convert image: %v\n", err)
		os.Exit(1)
	}
	defer frame.Close()

	target := colorutil.RGB{R: uint8(*red), G: uint8(*green), B: uint8(*blue)}
	h, s, v := target.HSV()
	lo, hi := colorutil.HueBounds(h, *tolerance)
	fmt.Printf("Target color: RGB(%d,%d,%d) HSV(%.0f,%.0f,%.0f)\n", target.R, target.G, target.B, h, s, v)
	fmt.Printf("Hue window: %d-%d\n", lo, hi)

	mask := detect.BuildMask(frame, target, *tolerance)
	defer mask.Close()

	matched := gocv.CountNonZero(mask)
	fmt.Printf("Matched pixels: %d (%.2f%%)\n", matched,
		100*float64(matched)/float64(bounds.Dx()*bounds.Dy()))

	contours := detect.ExtractContours(mask, detect.MinContourArea)
	fmt.Printf("Contours above %.0fpx area: %d\n", detect.MinContourArea, len(contours))

	candidates := detect.GroupContours(contours, *groupDist)
	fmt.Printf("\nGrouped targets: %d\n", len(candidates))
	for i, c := range candidates {
		fmt.Printf("  [%d] centroid=(%.1f,%.1f) area=%.0f box=(%.0f,%.0f %.0fx%.0f)\n",
			i, c.Centroid.X, c.Centroid.Y, c.Area,
			c.Bounds.X, c.Bounds.Y, c.Bounds.Width, c.Bounds.Height)
	}
}

// toBGRMat converts a decoded image into the 3-channel BGR layout the
// detection path expects.
func toBGRMat(img image.Image) (gocv.Mat, error) {
	rgba, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}
