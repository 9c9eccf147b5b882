package cmd

import (
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"planetcam/archive"
)

var fetchOpts struct {
	Manifest string
	Dir      string
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download archive stills listed in a manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		var bar *progressbar.ProgressBar
		count, err := archive.Fetch(cmd.Context(), fetchOpts.Manifest, fetchOpts.Dir,
			archive.FetchOptions{
				OnFile: func(i, total int) {
					if bar == nil {
						bar = progressbar.Default(int64(total), "fetching")
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

		log.Info("fetch finished",
			zap.Int("files", count),
			zap.String("dir", fetchOpts.Dir),
		)
		return nil
	},
}

func init() {
	f := fetchCmd.Flags()
	f.StringVarP(&fetchOpts.Manifest, "manifest", "m", "", "manifest file, one URL per line")
	f.StringVarP(&fetchOpts.Dir, "dir", "d", "", "destination directory")
	_ = fetchCmd.MarkFlagRequired("manifest")
	_ = fetchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(fetchCmd)
}
