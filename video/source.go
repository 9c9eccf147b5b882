package video

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Source reads decoded frames from a video container in temporal order.
type Source struct {
	capture *gocv.VideoCapture
	path    string
}

// OpenSource opens a video file for sequential reading.
func OpenSource(path string) (*Source, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open video %s", path)
	}
	return &Source{capture: capture, path: path}, nil
}

// Next reads the next frame into frame. It returns false at end of
// stream.
func (s *Source) Next(frame *gocv.Mat) bool {
	if ok := s.capture.Read(frame); !ok || frame.Empty() {
		return false
	}
	return true
}

// Size returns the frame dimensions reported by the container.
func (s *Source) Size() image.Point {
	return image.Pt(
		int(s.capture.Get(gocv.VideoCaptureFrameWidth)),
		int(s.capture.Get(gocv.VideoCaptureFrameHeight)),
	)
}

// FPS returns the container frame rate, or 0 when unknown.
func (s *Source) FPS() float64 {
	return s.capture.Get(gocv.VideoCaptureFPS)
}

// FrameCount returns the total frame count, or 0 when the container does
// not report one.
func (s *Source) FrameCount() int {
	return int(s.capture.Get(gocv.VideoCaptureFrameCount))
}

func (s *Source) Close() error {
	return s.capture.Close()
}
