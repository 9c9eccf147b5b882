package video

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// SinkConfig describes an output video container.
type SinkConfig struct {
	Path string
	FPS  float64
	Size image.Point
	// Codecs are fourcc candidates tried in order; the first one the
	// backend accepts wins.
	Codecs []string
}

// Validate checks the config before any file is touched.
func (c SinkConfig) Validate() error {
	if c.Path == "" {
		return errors.New("sink: empty output path")
	}
	if c.FPS <= 0 {
		return errors.Errorf("sink: frame rate must be positive, got %v", c.FPS)
	}
	if c.Size.X <= 0 || c.Size.Y <= 0 {
		return errors.Errorf("sink: invalid frame size %dx%d", c.Size.X, c.Size.Y)
	}
	if len(c.Codecs) == 0 {
		return errors.New("sink: no codec candidates")
	}
	return nil
}

// Sink writes frames, in call order, to an output video container.
type Sink struct {
	writer *gocv.VideoWriter
	codec  string
	frames int
}

// NewSink opens the output container, trying each codec candidate until
// one is accepted.
func NewSink(cfg SinkConfig) (*Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var writer *gocv.VideoWriter
	var err error
	var used string
	for _, fourcc := range cfg.Codecs {
		writer, err = gocv.VideoWriterFile(cfg.Path, fourcc, cfg.FPS, cfg.Size.X, cfg.Size.Y, true)
		if err == nil {
			used = fourcc
			break
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "sink: no usable codec among %v", cfg.Codecs)
	}

	return &Sink{writer: writer, codec: used}, nil
}

// Write appends one frame to the container.
func (s *Sink) Write(frame gocv.Mat) error {
	if err := s.writer.Write(frame); err != nil {
		return errors.Wrap(err, "sink: write frame")
	}
	s.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (s *Sink) Frames() int {
	return s.frames
}

// Codec returns the fourcc that was accepted at open time.
func (s *Sink) Codec() string {
	return s.codec
}

// Close finalizes the container.
func (s *Sink) Close() error {
	if s.writer == nil {
		return nil
	}
	err := s.writer.Close()
	s.writer = nil
	return errors.Wrap(err, "sink: close")
}
