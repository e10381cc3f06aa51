package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/display"
	"github.com/backmassage/seqpath/internal/journal"
	"github.com/backmassage/seqpath/internal/logging"
	"github.com/backmassage/seqpath/internal/planner"
	"github.com/backmassage/seqpath/internal/rename"
)

// Undo reverts the most recent journaled run, newest move first. The run is
// dropped from the journal only when every move was reverted.
func Undo(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return stats, err
	}
	defer j.Close()

	run, moves, err := j.Last()
	if err != nil {
		return stats, err
	}
	stats.Total = len(moves)
	log.Info("Undoing run %d (%s)", run, display.Plural(len(moves), "rename"))

	for i := len(moves) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		m := moves[i]
		stats.Current++
		log.Info("[%d/%d] %s", stats.Current, stats.Total, m.To)

		if cfg.DryRun {
			log.Success("[DRY] Would restore -> %s", m.From)
			stats.Renamed++
			continue
		}

		plan := &planner.FilePlan{Action: planner.ActionRename, InputPath: m.To, OutputPath: m.From}
		res := rename.Execute(ctx, plan, rename.Options{MaxAttempts: cfg.MaxAttempts})
		if res.Err != nil {
			log.Error("Restore failed: %v", res.Err)
			stats.Failed++
			continue
		}
		stats.Renamed++
		log.Success("Restored -> %s", m.From)
		prune(log, filepath.Dir(m.To), commonDir(filepath.Dir(m.From), filepath.Dir(m.To)))
	}

	switch {
	case cfg.DryRun:
	case stats.Failed == 0 && stats.Current == stats.Total:
		if err := j.Delete(run); err != nil {
			log.Warn("Journal: %v", err)
		}
	default:
		log.Warn("Run %d kept in the journal; fix the failures and undo again", run)
	}
	log.Info("Done: %s restored, %s failed", display.FormatCount(stats.Renamed), display.FormatCount(stats.Failed))
	return stats, nil
}

// commonDir returns the deepest directory containing both a and b.
func commonDir(a, b string) string {
	const sep = string(filepath.Separator)
	a, b = filepath.Clean(a), filepath.Clean(b)
	for {
		if a == b || strings.HasPrefix(b, strings.TrimSuffix(a, sep)+sep) {
			return a
		}
		parent := filepath.Dir(a)
		if parent == a {
			return a
		}
		a = parent
	}
}
