package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/display"
	"github.com/backmassage/seqpath/internal/journal"
	"github.com/backmassage/seqpath/internal/logging"
	"github.com/backmassage/seqpath/internal/naming"
	"github.com/backmassage/seqpath/internal/planner"
	"github.com/backmassage/seqpath/internal/rename"
)

// maxNameWidth bounds file names in progress lines.
const maxNameWidth = 72

// Run is the top-level batch entry point. It discovers files under
// cfg.Root, plans the configured operation for each, and renames them.
// The error is only set when the run could not start; per-file failures
// are logged and counted in the returned stats.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg, log)
	if err != nil {
		return stats, fmt.Errorf("discover: %w", err)
	}
	stats.Total = len(files)
	logBatchHeader(cfg, log, &stats)

	plans := planAll(cfg, log, files, &stats)

	var jr *runJournal
	if !cfg.DryRun && len(plans) > 0 && cfg.Journal != "" {
		jr, err = beginJournal(cfg.Journal)
		if err != nil {
			return stats, err
		}
		defer jr.close(log)
	}

	execute(ctx, cfg, log, plans, jr, &stats)
	logSummary(cfg, log, &stats)
	return stats, nil
}

// planAll builds a plan per file and claims every output. Skipped files
// claim their own path first, so a rename onto a file that stays put is
// rejected. Returns the renames that survived, in discovery order.
func planAll(cfg *config.Config, log *logging.Logger, files []string, stats *RunStats) []*planner.FilePlan {
	resolver := naming.NewCollisionResolver()

	var renames []*planner.FilePlan
	for _, path := range files {
		plan, err := planner.BuildPlan(cfg, path)
		if err != nil {
			log.Error("Cannot plan: %v", err)
			stats.Failed++
			continue
		}
		if plan.Action == planner.ActionSkip {
			log.Debug("Skip (%s): %s", plan.SkipReason, path)
			stats.Skipped++
			_ = resolver.Claim(path, path)
			continue
		}
		renames = append(renames, plan)
	}

	kept := renames[:0]
	for _, plan := range renames {
		if err := resolver.Claim(plan.InputPath, plan.OutputPath); err != nil {
			log.Error("Conflict: %v", err)
			stats.Failed++
			continue
		}
		kept = append(kept, plan)
	}
	return kept
}

// execute runs plans so that no rename lands on a file that is still waiting
// to be moved. Each pass runs every plan whose target is free; a pass that
// makes no progress means the rest form a cycle or wait on a failed rename.
func execute(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	plans []*planner.FilePlan,
	jr *runJournal,
	stats *RunStats,
) {
	pending := make(map[string]bool, len(plans))
	for _, p := range plans {
		pending[p.InputPath] = true
	}

	queue := plans
	for len(queue) > 0 {
		var blocked []*planner.FilePlan
		for _, plan := range queue {
			if ctx.Err() != nil {
				log.Warn("Interrupted")
				return
			}
			if pending[plan.OutputPath] {
				blocked = append(blocked, plan)
				continue
			}

			stats.Current++
			if renameOne(ctx, cfg, log, plan, jr, stats) {
				delete(pending, plan.InputPath)
			}
		}
		if len(blocked) == len(queue) {
			for _, plan := range blocked {
				stats.Current++
				stats.Failed++
				log.WithPath(plan.InputPath).Errorf("Blocked: %s is still occupied (rename cycle or failed move)", plan.OutputPath)
			}
			return
		}
		queue = blocked
	}
}

// renameOne executes a single plan and reports whether the source moved.
// A failed source stays pending so plans targeting it remain blocked.
func renameOne(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	plan *planner.FilePlan,
	jr *runJournal,
	stats *RunStats,
) bool {
	log.Info("[%d/%d] %s", stats.Current, stats.Total, display.Truncate(filepath.Base(plan.InputPath), maxNameWidth))
	log.Debug("  %s", plan.InputPath)
	if plan.Note != "" {
		log.Debug("  %s", plan.Note)
	}

	if cfg.DryRun {
		log.Success("[DRY] Would rename -> %s", plan.OutputPath)
		stats.Renamed++
		return true
	}

	var size int64
	if fi, err := os.Lstat(plan.InputPath); err == nil {
		size = fi.Size()
	}
	start := time.Now()
	res := rename.Execute(ctx, plan, rename.Options{
		Force:       cfg.Force,
		MaxAttempts: cfg.MaxAttempts,
		Notify: func(err error, wait time.Duration) {
			log.Warn("Rename failed (%v), retrying in %s", err, wait.Round(time.Millisecond))
		},
	})
	if res.Err != nil {
		log.Error("Rename failed: %v", res.Err)
		stats.Failed++
		return false
	}
	stats.Renamed++
	stats.Bytes += size
	log.Success("Renamed -> %s (%d attempt(s), %s)", plan.OutputPath, res.Attempts, time.Since(start).Round(time.Millisecond))

	if jr != nil {
		if err := jr.record(plan.InputPath, plan.OutputPath); err != nil {
			log.Warn("Journal: %v", err)
		}
	}
	prune(log, filepath.Dir(plan.InputPath), cfg.Root)
	return true
}

func prune(log *logging.Logger, dir, stop string) {
	removed, err := rename.PruneEmptyDirs(dir, stop)
	if err != nil {
		log.Warn("Cannot remove empty directory: %v", err)
	}
	for _, d := range removed {
		log.Debug("Removed empty directory %s", d)
	}
}

// runJournal binds an open journal to the run being recorded.
type runJournal struct {
	j   *journal.Journal
	run journal.RunID
}

func beginJournal(path string) (*runJournal, error) {
	j, err := journal.Open(path)
	if err != nil {
		return nil, err
	}
	run, err := j.Begin()
	if err != nil {
		_ = j.Close()
		return nil, err
	}
	return &runJournal{j: j, run: run}, nil
}

func (r *runJournal) record(from, to string) error {
	return r.j.Record(r.run, from, to)
}

func (r *runJournal) close(log *logging.Logger) {
	if err := r.j.Close(); err != nil {
		log.Warn("Journal: %v", err)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %s under %s", display.Plural(stats.Total, "file"), cfg.Root)

	switch cfg.Operation {
	case config.OpSetVersion:
		v := cfg.Version
		if cfg.Minor != "" {
			v += "." + cfg.Minor
		}
		log.Info("Operation: set version %s", v)
	case config.OpBumpVersion:
		log.Info("Operation: bump version")
	case config.OpOffsetFrames:
		log.Info("Operation: offset frames by %+d", cfg.FrameOffset)
	}
	if cfg.Operation != config.OpOffsetFrames {
		if cfg.SetFolder {
			log.Info("Folders: versioned folder is renamed too")
		} else {
			log.Info("Folders: left unchanged")
		}
	}
	if cfg.DryRun {
		log.Info("Dry run: nothing will be renamed")
	}
	if cfg.Force {
		log.Warn("Force: existing targets will be overwritten")
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	verb := "renamed"
	if cfg.DryRun {
		verb = "would rename"
	}
	log.Info("Done: %s %s, %s skipped, %s failed",
		display.FormatCount(stats.Renamed), verb, display.FormatCount(stats.Skipped), display.FormatCount(stats.Failed))
	if !cfg.DryRun && stats.Renamed > 0 {
		log.Info("Moved %s", display.FormatBytes(uint64(stats.Bytes)))
	}
}
