package archive

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/facette/natsort"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"planetcam/video"
)

var stillExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// ListStills returns the still images in dir in natural order, so that
// "img2.png" sorts before "img10.png" the way the archive numbered them.
func ListStills(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read stills dir %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if stillExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	natsort.Sort(names)

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// AssembleOptions configures an assembly run.
type AssembleOptions struct {
	FPS    float64
	Codecs []string
	// OnStill, if set, is called after each still is written.
	OnStill func(i, total int)
}

// Assemble decodes the stills in dir, in natural order, into a raw video
// at outPath. Every still must have the same dimensions; a mismatch
// aborts with an error naming the file.
func Assemble(ctx context.Context, dir, outPath string, opts AssembleOptions, log *zap.Logger) (int, error) {
	paths, err := ListStills(dir)
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, errors.Errorf("no stills found in %s", dir)
	}

	var sink *video.Sink
	var size image.Point
	written := 0

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		img := gocv.IMRead(path, gocv.IMReadColor)
		if img.Empty() {
			return written, errors.Errorf("cannot decode still %s", path)
		}

		cur := image.Pt(img.Cols(), img.Rows())
		if sink == nil {
			size = cur
			sink, err = video.NewSink(video.SinkConfig{
				Path:   outPath,
				FPS:    opts.FPS,
				Size:   size,
				Codecs: opts.Codecs,
			})
			if err != nil {
				img.Close()
				return written, err
			}
			defer sink.Close()
			log.Info("assembling stills",
				zap.Int("count", len(paths)),
				zap.Int("frame_w", size.X),
				zap.Int("frame_h", size.Y),
				zap.String("codec", sink.Codec()),
			)
		} else if cur != size {
			img.Close()
			return written, errors.Errorf("still %s is %dx%d, sequence is %dx%d",
				path, cur.X, cur.Y, size.X, size.Y)
		}

		err = sink.Write(img)
		img.Close()
		if err != nil {
			return written, err
		}
		written++
		if opts.OnStill != nil {
			opts.OnStill(i+1, len(paths))
		}
	}

	return written, nil
}
