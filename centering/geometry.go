package centering

import "image"

// CenterOffset returns the translation that moves the center of roi onto
// the center of a frame of the given size. All division is integer floor,
// consistent with the discrete pixel grid.
func CenterOffset(frameSize image.Point, roi image.Rectangle) image.Point {
	cx := frameSize.X / 2
	cy := frameSize.Y / 2
	rx := roi.Min.X + roi.Dx()/2
	ry := roi.Min.Y + roi.Dy()/2
	return image.Pt(cx-rx, cy-ry)
}

// Feasible reports whether roi, shifted by offset, still lies fully inside
// the frame. A roi that already sticks out of the frame is never feasible:
// the tracker is following a subject partially outside the picture, and
// centering it would put clipped pixels at the middle of the output.
func Feasible(frameSize image.Point, roi image.Rectangle, offset image.Point) bool {
	bounds := image.Rect(0, 0, frameSize.X, frameSize.Y)
	if !roi.In(bounds) {
		return false
	}
	return roi.Add(offset).In(bounds)
}
