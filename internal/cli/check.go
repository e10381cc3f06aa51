package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/seqpath/internal/check"
	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/pipeline"
)

// errIssues makes check exit non-zero when it found something.
var errIssues = errors.New("sequence check found issues")

func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check ROOT",
		Short: "Report frame gaps, mixed padding and version mismatches under ROOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.setRoot(args[0])
			files, err := pipeline.Discover(&app.cfg, app.log)
			if err != nil {
				return err
			}

			if app.cfg.Output == config.OutputText {
				if !check.RunCheck(files, app.cfg.MajorMinor, app.log) {
					return errIssues
				}
				return nil
			}
			issues := check.Inspect(files, app.cfg.MajorMinor)
			if issues == nil {
				issues = check.Issues{}
			}
			if err := app.print(cmd, issues); err != nil {
				return err
			}
			if len(issues) > 0 {
				return errIssues
			}
			return nil
		},
	}
	config.AddScanFlags(cmd.Flags())
	config.AddMajorMinorFlag(cmd.Flags())
	return cmd
}
