package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/pkg/imagepath"
)

func newInspectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect PATH...",
		Short: "Print the frame and version decomposition of image paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descs := lo.Map(args, func(p string, _ int) imagepath.Descriptor {
				return app.image(p).Descriptor()
			})
			if len(descs) == 1 {
				return app.print(cmd, descs[0])
			}
			return app.print(cmd, descs)
		},
	}
	config.AddMajorMinorFlag(cmd.Flags())
	return cmd
}

// image parses path in the configured version mode.
func (a *App) image(path string) *imagepath.Image {
	if a.cfg.MajorMinor {
		return imagepath.New(path, imagepath.MajorMinor())
	}
	return imagepath.New(path)
}
