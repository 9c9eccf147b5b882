package archive

import (
	"context"
	"os/exec"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Transcoder converts the intermediate container into a viewable one by
// shelling out to ffmpeg.
type Transcoder struct {
	bin string
	log *zap.Logger
}

func NewTranscoder(bin string, log *zap.Logger) *Transcoder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &Transcoder{bin: bin, log: log}
}

// Transcode re-encodes in into out with the given video codec.
func (t *Transcoder) Transcode(ctx context.Context, in, out, codec string) error {
	cmd := exec.CommandContext(ctx, t.bin,
		"-i", in,
		"-c:v", codec,
		"-pix_fmt", "yuv420p",
		"-y",
		out,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "ffmpeg: %s", string(output))
	}

	t.log.Info("transcode complete",
		zap.String("input", in),
		zap.String("output", out),
		zap.String("codec", codec),
	)
	return nil
}
