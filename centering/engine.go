package centering

import (
	"context"
	"image"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"planetcam/tracking"
)

var (
	// ErrTrackingLost fires once the consecutive-miss streak exceeds the
	// configured tolerance. Frames emitted before the loss remain valid.
	ErrTrackingLost = errors.New("tracking lost")

	// ErrTrackerInit reports that the tracker refused the seed frame.
	ErrTrackerInit = errors.New("tracker rejected initialization")
)

// Source supplies decoded frames in temporal order. Next returns false
// when the stream is exhausted.
type Source interface {
	Next(frame *gocv.Mat) bool
}

// Sink receives translated frames in emission order.
type Sink interface {
	Write(frame gocv.Mat) error
}

// Options configures an Engine.
type Options struct {
	// MaxMisses is the number of consecutive uncentered frames tolerated
	// before the stream aborts. The streak is shared between tracker
	// failures and boundary infeasibility.
	MaxMisses int
	// Annotate draws the recentered bounding box on emitted frames.
	Annotate bool
	// OnFrame, if set, is called after every processed frame.
	OnFrame func(emitted bool)
}

// Report summarizes one stabilization run.
type Report struct {
	RunID          uuid.UUID
	FramesRead     int
	FramesEmitted  int
	FramesSkipped  int
	TrackerMisses  int
	BoundaryMisses int
}

type missCause int

const (
	missTracker missCause = iota
	missBoundary
)

type stepAction struct {
	emit   bool
	abort  bool
	offset image.Point
	roi    image.Rectangle
	cause  missCause
}

// Engine keeps one tracked subject centered across a frame stream. It is
// not safe for concurrent use; the pipeline is strictly sequential with a
// single frame in flight.
type Engine struct {
	tracker tracking.Tracker
	sink    Sink
	log     *zap.Logger

	frameSize  image.Point
	maxMisses  int
	annotate   bool
	onFrame    func(bool)
	missStreak int
	lost       bool

	report Report
}

// NewEngine wires a tracker to a sink. Init must be called with the seed
// frame before the first Step.
func NewEngine(tracker tracking.Tracker, sink Sink, log *zap.Logger, opts Options) *Engine {
	if opts.MaxMisses < 0 {
		opts.MaxMisses = 0
	}
	return &Engine{
		tracker:   tracker,
		sink:      sink,
		log:       log,
		maxMisses: opts.MaxMisses,
		annotate:  opts.Annotate,
		onFrame:   opts.OnFrame,
		report:    Report{RunID: uuid.New()},
	}
}

// Init binds the tracker to the subject on the seed frame. The seed frame
// is not emitted; output begins with the next frame.
func (e *Engine) Init(first gocv.Mat, roi image.Rectangle) error {
	size := image.Pt(first.Cols(), first.Rows())
	if err := tracking.ValidateROI(size, roi); err != nil {
		return err
	}
	if !e.tracker.Init(first, roi) {
		return ErrTrackerInit
	}
	e.frameSize = size
	e.log.Info("tracker initialized",
		zap.String("run_id", e.report.RunID.String()),
		zap.Int("frame_w", size.X),
		zap.Int("frame_h", size.Y),
		zap.Any("roi", roi),
	)
	return nil
}

// Step processes one frame: tracker update, offset computation, boundary
// validation, translation, emission. It reports whether the frame was
// emitted. After ErrTrackingLost every further call returns the same
// error and emits nothing.
func (e *Engine) Step(frame *gocv.Mat) (bool, error) {
	if e.lost {
		return false, ErrTrackingLost
	}
	e.report.FramesRead++

	rect, ok := e.tracker.Update(*frame)
	act := e.advance(ok, rect)

	switch {
	case act.abort:
		e.log.Warn("tracking lost",
			zap.Int("miss_streak", e.missStreak),
			zap.Int("frames_emitted", e.report.FramesEmitted))
		return false, errors.Wrapf(ErrTrackingLost, "%d consecutive misses", e.missStreak)
	case !act.emit:
		e.log.Debug("frame skipped",
			zap.Int("miss_streak", e.missStreak),
			zap.Bool("tracker_miss", act.cause == missTracker))
		if e.onFrame != nil {
			e.onFrame(false)
		}
		return false, nil
	}

	Translate(frame, act.offset)
	if e.annotate {
		DrawROI(frame, act.roi)
	}
	if err := e.sink.Write(*frame); err != nil {
		return false, errors.Wrap(err, "write frame")
	}
	e.report.FramesEmitted++
	if e.onFrame != nil {
		e.onFrame(true)
	}
	return true, nil
}

// advance runs the miss-streak state machine on one tracker result. It is
// free of any pixel work so the keep/skip/abort policy can be exercised
// on bare rectangles.
func (e *Engine) advance(ok bool, rect image.Rectangle) stepAction {
	if !ok {
		e.report.TrackerMisses++
		return e.miss(missTracker)
	}

	offset := CenterOffset(e.frameSize, rect)
	if !Feasible(e.frameSize, rect, offset) {
		e.report.BoundaryMisses++
		return e.miss(missBoundary)
	}

	e.missStreak = 0
	return stepAction{emit: true, offset: offset, roi: rect.Add(offset)}
}

func (e *Engine) miss(cause missCause) stepAction {
	e.missStreak++
	e.report.FramesSkipped++
	if e.missStreak > e.maxMisses {
		e.lost = true
		return stepAction{abort: true, cause: cause}
	}
	return stepAction{cause: cause}
}

// Run drains the source through Step until exhaustion, loss, or context
// cancellation. Cancellation is honored only at frame boundaries: a frame
// is either fully translated and written, or not written at all.
func (e *Engine) Run(ctx context.Context, src Source) (Report, error) {
	frame := gocv.NewMat()
	defer frame.Close()

	for {
		if err := ctx.Err(); err != nil {
			return e.report, err
		}
		if ok := src.Next(&frame); !ok {
			return e.report, nil
		}
		if _, err := e.Step(&frame); err != nil {
			return e.report, err
		}
	}
}

// Report returns the counters accumulated so far.
func (e *Engine) Report() Report {
	return e.report
}
