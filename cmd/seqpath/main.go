// Command seqpath is the CLI entrypoint for the image sequence path tool.
//
// It inspects and rewrites the frame and version tokens of VFX image paths,
// and batch-renames, checks and undoes renames over directory trees.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/seqpath/internal/cli"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Signal handling: cancel the context on SIGINT/SIGTERM so a batch run
	// stops between files instead of mid-rename.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "seqpath: received interrupt, finishing current file")
			cancel()
		case <-ctx.Done():
		}
	}()

	app := &cli.App{Version: version, Commit: commit}
	defer app.Close()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seqpath: %v\n", err)
		return 1
	}
	return 0
}
