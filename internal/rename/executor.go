package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/backmassage/seqpath/internal/planner"
)

const (
	defaultAttempts = 4
	initialInterval = 50 * time.Millisecond
	maxInterval     = 2 * time.Second
)

// renameFile is swapped in tests to inject failures.
var renameFile = os.Rename

// Options control one rename.
type Options struct {
	Force       bool // Overwrite an existing target.
	MaxAttempts int  // Total attempts on transient errors; <= 0 means the default.

	// Notify, if set, is called before each retry.
	Notify func(err error, wait time.Duration)
}

// Result holds the outcome of a single rename.
type Result struct {
	Attempts int
	Err      error
}

// Execute renames plan.InputPath to plan.OutputPath, creating the target
// directory. Skip plans are a no-op.
func Execute(ctx context.Context, plan *planner.FilePlan, opts Options) Result {
	if plan.Action != planner.ActionRename {
		return Result{}
	}
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}

	from, to := plan.InputPath, plan.OutputPath
	if !opts.Force {
		if _, err := os.Lstat(to); err == nil {
			return Result{Err: fmt.Errorf("%s: %w", to, ErrTargetExists)}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Result{Err: err}
		}
	}
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return Result{Err: fmt.Errorf("create target directory: %w", err)}
	}

	var res Result
	op := func() error {
		res.Attempts++
		err := renameFile(from, to)
		if err == nil || IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}
	if opts.Notify != nil {
		res.Err = backoff.RetryNotify(op, newBackOff(ctx, opts.MaxAttempts), opts.Notify)
	} else {
		res.Err = backoff.Retry(op, newBackOff(ctx, opts.MaxAttempts))
	}
	return res
}

// newBackOff returns an exponential policy bounded to attempts total tries
// and cancelled with ctx.
func newBackOff(ctx context.Context, attempts int) backoff.BackOff {
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = initialInterval
	exp.MaxInterval = maxInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)
}

// PruneEmptyDirs removes dir and its ancestors while they are empty,
// stopping at (and never removing) stop. Returns the directories removed.
func PruneEmptyDirs(dir, stop string) ([]string, error) {
	dir, stop = filepath.Clean(dir), filepath.Clean(stop)
	var removed []string
	for dir != stop && dir != filepath.Dir(dir) {
		if rel, err := filepath.Rel(stop, dir); err != nil || rel == ".." ||
			strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			break
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				dir = filepath.Dir(dir)
				continue
			}
			return removed, err
		}
		if len(entries) > 0 {
			break
		}
		if err := os.Remove(dir); err != nil {
			return removed, err
		}
		removed = append(removed, dir)
		dir = filepath.Dir(dir)
	}
	return removed, nil
}
