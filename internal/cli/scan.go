package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/backmassage/seqpath/internal/check"
	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/pipeline"
	"github.com/backmassage/seqpath/pkg/imagepath"
)

func newScanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan ROOT",
		Short: "List image files under ROOT with their decomposition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.setRoot(args[0])
			files, err := pipeline.Discover(&app.cfg, app.log)
			if err != nil {
				return err
			}
			if app.cfg.Sequences {
				return app.print(cmd, check.Sequences(check.Group(files)))
			}
			return app.print(cmd, lo.Map(files, func(p string, _ int) imagepath.Descriptor {
				return app.image(p).Descriptor()
			}))
		},
	}
	config.AddScanFlags(cmd.Flags())
	config.AddMajorMinorFlag(cmd.Flags())
	cmd.Flags().Bool("sequences", false, "Collapse frame files into sequences")
	return cmd
}
