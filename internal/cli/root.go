// Package cli implements the seqpath cobra commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/logging"
	"github.com/backmassage/seqpath/internal/printer"
)

// App carries state shared by all commands of one invocation: the loaded
// config and the logger built from it.
type App struct {
	Version string
	Commit  string

	cfg config.Config
	log *logging.Logger
}

// Close releases the logger. Safe to call when no command ran.
func (a *App) Close() error {
	if a.log == nil {
		return nil
	}
	return a.log.Close()
}

// NewRootCmd creates the root seqpath command with all subcommands registered.
func NewRootCmd(app *App) *cobra.Command {
	app.cfg = config.DefaultConfig()
	root := &cobra.Command{
		Use:               "seqpath",
		Short:             "seqpath - inspect and rewrite frame and version tokens in image sequence paths",
		Version:           fmt.Sprintf("%s (%s)", app.Version, app.Commit),
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
	}
	config.AddGlobalFlags(root.PersistentFlags(), &app.cfg)

	root.AddCommand(newInspectCmd(app))
	root.AddCommand(newSetFrameCmd(app))
	root.AddCommand(newSetVersionCmd(app))
	root.AddCommand(newScanCmd(app))
	root.AddCommand(newRenameCmd(app))
	root.AddCommand(newUndoCmd(app))
	root.AddCommand(newCheckCmd(app))
	return root
}

// setup layers defaults, config file, environment and changed flags, then
// builds the logger. Logs go to the command's stderr.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Load(&a.cfg, cmd.Flags()); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.NewWithOutput(&a.cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// setRoot records the positional root directory.
func (a *App) setRoot(dir string) {
	a.cfg.Root = config.NormalizeDirArg(dir)
}

func (a *App) print(cmd *cobra.Command, obj any) error {
	return printer.New(a.cfg.Output).PrintObj(obj, cmd.OutOrStdout())
}
