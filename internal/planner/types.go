package planner

// Action describes the per-file decision.
type Action int

const (
	ActionRename Action = iota
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionRename:
		return "rename"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// FilePlan holds the decision for a single image path. It is produced by
// BuildPlan and consumed by the pipeline (ordering, collision checks) and
// the rename executor.
type FilePlan struct {
	Action     Action
	SkipReason string

	InputPath  string
	OutputPath string // Equal to InputPath when skipped.

	// Note summarizes the change for logs, e.g. "version 3 -> 4 (file, folder)".
	Note string
}
