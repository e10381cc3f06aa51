package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/display"
	"github.com/backmassage/seqpath/internal/pipeline"
)

func newRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename ROOT",
		Short: "Rename image files under ROOT (set or bump versions, offset frames)",
		Example: "  seqpath rename shots/ --version 4\n" +
			"  seqpath rename shots/ --op bump-version --no-folder\n" +
			"  seqpath rename plates/ --op offset-frames --frame-offset 1000 -d",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.setRoot(args[0])
			if err := app.cfg.ValidateOperation(); err != nil {
				return err
			}
			display.PrintBanner(cmd.ErrOrStderr(), app.Version)
			stats, err := pipeline.Run(cmd.Context(), &app.cfg, app.log)
			if err != nil {
				return err
			}
			if !stats.OK() {
				return fmt.Errorf("%s failed", display.Plural(stats.Failed, "file"))
			}
			return nil
		},
	}
	config.AddScanFlags(cmd.Flags())
	config.AddRenameFlags(cmd.Flags())
	return cmd
}

func newUndoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent rename run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := pipeline.Undo(cmd.Context(), &app.cfg, app.log)
			if err != nil {
				return err
			}
			if !stats.OK() {
				return fmt.Errorf("%s could not be restored", display.Plural(stats.Failed, "file"))
			}
			return nil
		},
	}
	config.AddJournalFlags(cmd.Flags())
	return cmd
}
