package cmd

import (
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"planetcam/archive"
)

var assembleOpts struct {
	Dir    string
	Output string
	FPS    float64
}

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble archive stills into a raw video in natural order",
	RunE: func(cmd *cobra.Command, args []string) error {
		fps := assembleOpts.FPS
		if fps <= 0 {
			fps = cfg.OutputFPS
		}

		var bar *progressbar.ProgressBar
		count, err := archive.Assemble(cmd.Context(), assembleOpts.Dir, assembleOpts.Output,
			archive.AssembleOptions{
				FPS:    fps,
				Codecs: cfg.Codecs,
				OnStill: func(i, total int) {
					if bar == nil {
						bar = progressbar.Default(int64(total), "assembling")
					}
					_ = bar.Add(1)
				},
			}, log)
		if bar != nil {
			_ = bar.Finish()
		}
		if err != nil {
			return err
		}

		log.Info("assembly finished",
			zap.Int("frames", count),
			zap.String("output", assembleOpts.Output),
		)
		return nil
	},
}

func init() {
	f := assembleCmd.Flags()
	f.StringVarP(&assembleOpts.Dir, "dir", "d", "", "directory of archive stills")
	f.StringVarP(&assembleOpts.Output, "output", "o", "", "output video path")
	f.Float64Var(&assembleOpts.FPS, "fps", 0, "output frame rate (default from config)")
	_ = assembleCmd.MarkFlagRequired("dir")
	_ = assembleCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(assembleCmd)
}
