package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/pkg/imagepath"
)

// Skip reasons.
const (
	SkipNoVersion = "no version in file or folder"
	SkipNoFrame   = "no digit frame"
	SkipUnchanged = "already up to date"
)

// BuildPlan maps path and the configured operation to a FilePlan. Paths the
// operation does not apply to are skipped, not failed; an error means the
// operation applies but cannot produce a valid name.
func BuildPlan(cfg *config.Config, path string) (*FilePlan, error) {
	var opts []imagepath.Option
	if cfg.MajorMinor {
		opts = append(opts, imagepath.MajorMinor())
	}
	img := imagepath.New(path, opts...)
	plan := &FilePlan{InputPath: path, OutputPath: path}

	var err error
	switch cfg.Operation {
	case config.OpSetVersion:
		err = planSetVersion(cfg, img, plan)
	case config.OpBumpVersion:
		err = planBumpVersion(cfg, img, plan)
	case config.OpOffsetFrames:
		err = planOffsetFrames(cfg, img, plan)
	default:
		err = fmt.Errorf("unknown operation %q", cfg.Operation)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if plan.Action == ActionRename && plan.OutputPath == plan.InputPath {
		plan.Action = ActionSkip
		plan.SkipReason = SkipUnchanged
	}
	return plan, nil
}

func skip(plan *FilePlan, reason string) {
	plan.Action = ActionSkip
	plan.SkipReason = reason
}

// versionOptions translates the config into imagepath options. The folder
// is only rewritten when one exists, so files outside versioned folders
// still get their file version changed.
func versionOptions(cfg *config.Config, vi imagepath.VersionInfo) []imagepath.VersionOption {
	opts := []imagepath.VersionOption{
		imagepath.WithFolder(cfg.SetFolder && vi.HasFolder()),
		imagepath.WithMajorMinor(cfg.MajorMinor),
	}
	if cfg.VersionPrefix != "" {
		opts = append(opts, imagepath.WithVersionPrefix(cfg.VersionPrefix))
	}
	if cfg.VersionSep != "" {
		opts = append(opts, imagepath.WithVersionSep(cfg.VersionSep))
	}
	return opts
}

// targets describes what a version change touches, for the plan note.
func targets(cfg *config.Config, vi imagepath.VersionInfo) string {
	var parts []string
	if vi.HasFile() {
		parts = append(parts, "file")
	}
	if cfg.SetFolder && vi.HasFolder() {
		parts = append(parts, fmt.Sprintf("folder level %d", *vi.FolderLevel))
	}
	return strings.Join(parts, ", ")
}

// currentVersion is the file major, else the folder version.
func currentVersion(vi imagepath.VersionInfo) string {
	if vi.HasFile() {
		return *vi.FileVersion
	}
	return lo.FromPtr(vi.FolderVersion)
}

func planSetVersion(cfg *config.Config, img *imagepath.Image, plan *FilePlan) error {
	vi := img.Version()
	if !vi.HasFile() && !(cfg.SetFolder && vi.HasFolder()) {
		skip(plan, SkipNoVersion)
		return nil
	}

	var (
		out string
		err error
	)
	if cfg.Minor != "" {
		out, err = img.SetVersionPair(cfg.Version, cfg.Minor, versionOptions(cfg, vi)...)
	} else {
		out, err = img.SetVersion(cfg.Version, versionOptions(cfg, vi)...)
	}
	if err != nil {
		return err
	}
	plan.Action = ActionRename
	plan.OutputPath = out
	plan.Note = fmt.Sprintf("version %s -> %s (%s)", currentVersion(vi), cfg.Version, targets(cfg, vi))
	return nil
}

func planBumpVersion(cfg *config.Config, img *imagepath.Image, plan *FilePlan) error {
	vi := img.Version()
	if !vi.HasFile() && !(cfg.SetFolder && vi.HasFolder()) {
		skip(plan, SkipNoVersion)
		return nil
	}

	cur := currentVersion(vi)
	next, err := Bump(cur)
	if err != nil {
		return err
	}
	out, err := img.SetVersion(next, versionOptions(cfg, vi)...)
	if err != nil {
		return err
	}
	plan.Action = ActionRename
	plan.OutputPath = out
	plan.Note = fmt.Sprintf("version %s -> %s (%s)", cur, next, targets(cfg, vi))
	return nil
}

func planOffsetFrames(cfg *config.Config, img *imagepath.Image, plan *FilePlan) error {
	fi := img.Frame()
	n, ok := fi.Number()
	if !ok {
		skip(plan, SkipNoFrame)
		return nil
	}
	next := n + cfg.FrameOffset
	if next < 0 {
		return fmt.Errorf("frame %d offset by %d is negative", n, cfg.FrameOffset)
	}

	var opts []imagepath.FrameOption
	if cfg.FramePrefix != "" {
		opts = append(opts, imagepath.WithFramePrefix(cfg.FramePrefix))
	}
	out, err := img.SetFrameNumber(next, opts...)
	if err != nil {
		return err
	}
	plan.Action = ActionRename
	plan.OutputPath = out
	plan.Note = fmt.Sprintf("frame %s -> %s", *fi.Frame, *img.Frame().Frame)
	return nil
}

// Bump increments a decimal version string, keeping its zero-padded width
// ("009" -> "010", "99" -> "100").
func Bump(version string) (string, error) {
	n, err := strconv.Atoi(version)
	if err != nil || n < 0 {
		return "", fmt.Errorf("version %q is not a number", version)
	}
	return imagepath.PadFrame(n+1, len(version)), nil
}
