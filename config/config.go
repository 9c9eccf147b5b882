package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings. Per-invocation knobs (paths, ROI,
// thresholds) come from command-line flags instead.
type Config struct {
	LogLevel string `env:"PLANETCAM_LOG_LEVEL" envDefault:"info"`

	FFmpegBin string `env:"PLANETCAM_FFMPEG_BIN" envDefault:"ffmpeg"`

	OutputFPS float64 `env:"PLANETCAM_OUTPUT_FPS" envDefault:"30"`
	// Codec fourcc candidates tried in order when opening a video writer.
	Codecs []string `env:"PLANETCAM_CODECS" envSeparator:"," envDefault:"MJPG,mp4v,avc1,XVID"`

	// Consecutive uncentered frames tolerated before tracking is
	// declared lost. Lost fires when the streak exceeds this value.
	MaxMisses int `env:"PLANETCAM_MAX_MISSES" envDefault:"2"`

	Tracker string `env:"PLANETCAM_TRACKER" envDefault:"csrt"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
