package centering

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var overlayColor = color.RGBA{B: 255}

// Translate shifts the frame contents by offset, in place. Pixels vacated
// by the shift are constant black so repeated runs stay bit-identical.
func Translate(frame *gocv.Mat, offset image.Point) {
	if offset.X == 0 && offset.Y == 0 {
		return
	}

	m := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer m.Close()
	m.SetDoubleAt(0, 0, 1)
	m.SetDoubleAt(0, 1, 0)
	m.SetDoubleAt(0, 2, float64(offset.X))
	m.SetDoubleAt(1, 0, 0)
	m.SetDoubleAt(1, 1, 1)
	m.SetDoubleAt(1, 2, float64(offset.Y))

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpAffineWithParams(*frame, &dst, m, image.Pt(frame.Cols(), frame.Rows()),
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{})
	dst.CopyTo(frame)
}

// DrawROI draws the recentered bounding box on the frame for overlay
// output.
func DrawROI(frame *gocv.Mat, roi image.Rectangle) {
	gocv.Rectangle(frame, roi, overlayColor, 2)
}
