package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/planner"
	"github.com/backmassage/seqpath/pkg/imagepath"
)

func newSetFrameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-frame PATH FRAME",
		Short: "Print PATH with its frame token replaced (digits, %0Nd or #...)",
		Long: "Print PATH with its frame token replaced. Nothing on disk is touched.\n" +
			"FRAME may be a digit run, printf notation (%04d) or a hash run (####).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []imagepath.FrameOption
			if app.cfg.FramePrefix != "" {
				opts = append(opts, imagepath.WithFramePrefix(app.cfg.FramePrefix))
			}
			out, err := app.image(args[0]).SetFrame(args[1], opts...)
			if err != nil {
				return err
			}
			return app.print(cmd, out)
		},
	}
	config.AddFrameFlags(cmd.Flags())
	return cmd
}

func newSetVersionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-version PATH VERSION [MINOR]",
		Short: "Print PATH with its file and folder version replaced",
		Long: "Print PATH with its version replaced in the file name and, unless\n" +
			"--no-folder is given, in the nearest versioned folder. Nothing on disk is touched.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			cfg.Operation = config.OpSetVersion
			cfg.Version = args[1]
			if len(args) == 3 {
				cfg.Minor = args[2]
			}
			plan, err := planner.BuildPlan(&cfg, args[0])
			if err != nil {
				return err
			}
			if plan.SkipReason == planner.SkipNoVersion {
				return fmt.Errorf("%s: %s", args[0], plan.SkipReason)
			}
			return app.print(cmd, plan.OutputPath)
		},
	}
	config.AddVersionFlags(cmd.Flags())
	return cmd
}
