package tracking

import (
	"fmt"
	"image"
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// Tracker is the visual-tracking capability the centering engine drives.
// Init binds the tracker to a subject on the seed frame; Update predicts
// the subject's bounding box on each following frame. Implementations own
// their internal model; callers only ever see rectangles.
type Tracker interface {
	Init(frame gocv.Mat, roi image.Rectangle) bool
	Update(frame gocv.Mat) (image.Rectangle, bool)
	Close() error
}

// New returns a tracker by algorithm name. CSRT is the most accurate of
// the three on slow-moving subjects and is the default; KCF and MIL are
// faster and less precise.
func New(name string) (Tracker, error) {
	switch strings.ToLower(name) {
	case "csrt":
		return contrib.NewTrackerCSRT(), nil
	case "kcf":
		return contrib.NewTrackerKCF(), nil
	case "mil":
		return gocv.NewTrackerMIL(), nil
	default:
		return nil, errors.Errorf("unknown tracker %q (want csrt, kcf or mil)", name)
	}
}

// ErrInvalidROI reports a degenerate or out-of-bounds region of interest.
var ErrInvalidROI = errors.New("invalid region of interest")

// ValidateROI checks that roi has positive extent and lies fully inside a
// frame of the given size.
func ValidateROI(frameSize image.Point, roi image.Rectangle) error {
	if roi.Dx() <= 0 || roi.Dy() <= 0 {
		return errors.Wrap(ErrInvalidROI, "empty rectangle")
	}
	bounds := image.Rect(0, 0, frameSize.X, frameSize.Y)
	if !roi.In(bounds) {
		return errors.Wrap(ErrInvalidROI,
			fmt.Sprintf("rectangle %v outside frame %dx%d", roi, frameSize.X, frameSize.Y))
	}
	return nil
}
