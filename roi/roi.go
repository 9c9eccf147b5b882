package roi

import (
	"image"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Provider supplies the initial region of interest for a stream, given
// its first frame.
type Provider interface {
	Select(frame gocv.Mat) (image.Rectangle, error)
}

// Static returns a fixed rectangle, for scripted runs and tests.
type Static struct {
	Rect image.Rectangle
}

func (s Static) Select(gocv.Mat) (image.Rectangle, error) {
	return s.Rect, nil
}

// Interactive opens a window and lets the user drag a rectangle.
type Interactive struct {
	Window string
}

func (i Interactive) Select(frame gocv.Mat) (image.Rectangle, error) {
	name := i.Window
	if name == "" {
		name = "Select subject, then press ENTER"
	}
	rect := gocv.SelectROI(name, frame)
	if rect.Empty() {
		return image.Rectangle{}, errors.New("roi selection cancelled")
	}
	return rect, nil
}

// Parse reads a rectangle from its "x,y,w,h" flag form.
func Parse(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, errors.Errorf("roi %q: want x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, errors.Wrapf(err, "roi %q", s)
		}
		vals[i] = v
	}
	x, y, w, h := vals[0], vals[1], vals[2], vals[3]
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, errors.Errorf("roi %q: width and height must be positive", s)
	}
	return image.Rect(x, y, x+w, y+h), nil
}
