package cmd

import (
	"github.com/spf13/cobra"

	"planetcam/archive"
)

var transcodeOpts struct {
	Input  string
	Output string
	Codec  string
}

var transcodeCmd = &cobra.Command{
	Use:   "transcode",
	Short: "Convert the intermediate container to a viewable one with ffmpeg",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := archive.NewTranscoder(cfg.FFmpegBin, log)
		return t.Transcode(cmd.Context(), transcodeOpts.Input, transcodeOpts.Output, transcodeOpts.Codec)
	},
}

func init() {
	f := transcodeCmd.Flags()
	f.StringVarP(&transcodeOpts.Input, "input", "i", "", "input video path")
	f.StringVarP(&transcodeOpts.Output, "output", "o", "", "output video path")
	f.StringVar(&transcodeOpts.Codec, "codec", "libx264", "ffmpeg video codec")
	_ = transcodeCmd.MarkFlagRequired("input")
	_ = transcodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(transcodeCmd)
}
