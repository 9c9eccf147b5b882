package cmd

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"planetcam/centering"
	"planetcam/roi"
	"planetcam/tracking"
	"planetcam/video"
)

var stabilizeOpts struct {
	Input     string
	Output    string
	ROISpec   string
	SelectROI bool
	FPS       float64
	MaxMisses int
	Tracker   string
	Annotate  bool
}

var stabilizeCmd = &cobra.Command{
	Use:   "stabilize",
	Short: "Recenter the tracked subject in every frame of a video",
	Long: `Stabilize tracks one subject through the input video and translates
each frame so the subject sits at the frame center. Frames where the
subject cannot be safely centered are dropped; after more than the
tolerated number of consecutive drops the stream aborts and the frames
written so far remain valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStabilize(cmd.Context())
	},
}

func init() {
	f := stabilizeCmd.Flags()
	f.StringVarP(&stabilizeOpts.Input, "input", "i", "", "input video path")
	f.StringVarP(&stabilizeOpts.Output, "output", "o", "", "output video path")
	f.StringVar(&stabilizeOpts.ROISpec, "roi", "", "initial subject rectangle as x,y,w,h")
	f.BoolVar(&stabilizeOpts.SelectROI, "select", false, "pick the subject interactively on the first frame")
	f.Float64Var(&stabilizeOpts.FPS, "fps", 0, "output frame rate (default: source rate)")
	f.IntVar(&stabilizeOpts.MaxMisses, "max-misses", -1, "consecutive uncentered frames tolerated before aborting (default from config)")
	f.StringVar(&stabilizeOpts.Tracker, "tracker", "", "tracking algorithm: csrt, kcf or mil")
	f.BoolVar(&stabilizeOpts.Annotate, "annotate", false, "draw the recentered bounding box on output frames")
	_ = stabilizeCmd.MarkFlagRequired("input")
	_ = stabilizeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(stabilizeCmd)
}

func runStabilize(ctx context.Context) error {
	if stabilizeOpts.ROISpec == "" && !stabilizeOpts.SelectROI {
		return errors.New("either --roi or --select is required")
	}

	src, err := video.OpenSource(stabilizeOpts.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	// The first frame only seeds the tracker; output starts at the second.
	seed := gocv.NewMat()
	defer seed.Close()
	if !src.Next(&seed) {
		return errors.Errorf("input %s has no frames", stabilizeOpts.Input)
	}

	var provider roi.Provider
	if stabilizeOpts.SelectROI {
		provider = roi.Interactive{}
	} else {
		rect, err := roi.Parse(stabilizeOpts.ROISpec)
		if err != nil {
			return err
		}
		provider = roi.Static{Rect: rect}
	}
	rect, err := provider.Select(seed)
	if err != nil {
		return err
	}

	trackerName := stabilizeOpts.Tracker
	if trackerName == "" {
		trackerName = cfg.Tracker
	}
	trk, err := tracking.New(trackerName)
	if err != nil {
		return err
	}
	defer trk.Close()

	fps := stabilizeOpts.FPS
	if fps <= 0 {
		fps = src.FPS()
	}
	if fps <= 0 {
		fps = cfg.OutputFPS
	}

	sink, err := video.NewSink(video.SinkConfig{
		Path:   stabilizeOpts.Output,
		FPS:    fps,
		Size:   image.Pt(seed.Cols(), seed.Rows()),
		Codecs: cfg.Codecs,
	})
	if err != nil {
		return err
	}
	defer sink.Close()

	maxMisses := stabilizeOpts.MaxMisses
	if maxMisses < 0 {
		maxMisses = cfg.MaxMisses
	}

	bar := progressbar.Default(int64(src.FrameCount()-1), "stabilizing")
	engine := centering.NewEngine(trk, sink, log, centering.Options{
		MaxMisses: maxMisses,
		Annotate:  stabilizeOpts.Annotate,
		OnFrame:   func(bool) { _ = bar.Add(1) },
	})

	if err := engine.Init(seed, rect); err != nil {
		return errors.Wrap(err, "initialize tracking")
	}

	report, runErr := engine.Run(ctx, src)
	_ = bar.Finish()

	log.Info("stabilization finished",
		zap.String("run_id", report.RunID.String()),
		zap.Int("frames_read", report.FramesRead),
		zap.Int("frames_emitted", report.FramesEmitted),
		zap.Int("frames_skipped", report.FramesSkipped),
		zap.Int("tracker_misses", report.TrackerMisses),
		zap.Int("boundary_misses", report.BoundaryMisses),
		zap.String("codec", sink.Codec()),
	)

	if runErr != nil {
		return errors.Wrapf(runErr, "emitted %d frames", report.FramesEmitted)
	}
	return nil
}
