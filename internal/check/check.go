// Package check provides sequence diagnostics (the check command): it
// groups image files into frame sequences and reports inconsistencies
// within them, plus file versions that disagree with their folder.
package check

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/backmassage/seqpath/internal/display"
	"github.com/backmassage/seqpath/pkg/imagepath"
)

// IssueKind classifies a finding.
type IssueKind string

const (
	IssueGap             IssueKind = "gap"
	IssueMixedPadding    IssueKind = "mixed-padding"
	IssueDuplicateFrame  IssueKind = "duplicate-frame"
	IssueVersionMismatch IssueKind = "version-mismatch"
)

// Issue is one finding. Path is a sequence pattern for sequence-level
// issues and a file path otherwise.
type Issue struct {
	Kind   IssueKind `json:"kind" yaml:"kind"`
	Path   string    `json:"path" yaml:"path"`
	Detail string    `json:"detail" yaml:"detail"`
}

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Inspect groups paths and returns every issue found, sequence issues
// first in sequence order, then per-file version mismatches in path order.
func Inspect(paths []string, majorMinor bool) Issues {
	var issues Issues
	for _, s := range Group(paths) {
		if len(s.Frames) == 0 {
			continue
		}
		where := filepath.Join(s.Dir, s.Pattern)
		if gaps := s.Gaps(); len(gaps) > 0 {
			issues = append(issues, Issue{IssueGap, where,
				fmt.Sprintf("missing %s: %s", display.Plural(len(gaps), "frame"), FormatRange(gaps))})
		}
		if s.MixedPadding() {
			issues = append(issues, Issue{IssueMixedPadding, where,
				fmt.Sprintf("padded to %d but tokens have widths %v", s.Padding(), s.Paddings)})
		}
		if dups := s.Duplicates(); len(dups) > 0 {
			issues = append(issues, Issue{IssueDuplicateFrame, where,
				fmt.Sprintf("frames written more than once: %s", FormatRange(dups))})
		}
	}

	for _, p := range paths {
		if detail, ok := versionMismatch(p, majorMinor); ok {
			issues = append(issues, Issue{IssueVersionMismatch, p, detail})
		}
	}
	return issues
}

// versionMismatch compares the file version with its folder version
// numerically, so "v003" and "v3" agree.
func versionMismatch(path string, majorMinor bool) (string, bool) {
	var opts []imagepath.Option
	if majorMinor {
		opts = append(opts, imagepath.MajorMinor())
	}
	vi := imagepath.New(path, opts...).Version()
	if !vi.HasFile() || !vi.HasFolder() {
		return "", false
	}
	file, err1 := strconv.Atoi(*vi.FileVersion)
	folder, err2 := strconv.Atoi(*vi.FolderVersion)
	if err1 != nil || err2 != nil || file == folder {
		return "", false
	}
	return fmt.Sprintf("file version %s differs from folder version %s (level %d)",
		*vi.FileVersion, *vi.FolderVersion, *vi.FolderLevel), true
}

// RunCheck inspects paths and logs each issue. It returns true when
// nothing was found.
func RunCheck(paths []string, majorMinor bool, log Logger) bool {
	seqs := Group(paths)
	log.Info("Checking %s in %s", display.Plural(len(paths), "file"), display.Plural(len(seqs), "sequence"))
	for _, s := range seqs {
		if len(s.Frames) > 0 {
			log.Debug("  %s [%s]", s.Pattern, s.Range())
		}
	}

	issues := Inspect(paths, majorMinor)
	if len(issues) == 0 {
		log.Success("No issues found")
		return true
	}
	for _, is := range issues {
		log.Warn("%s: %s: %s", is.Kind, is.Path, is.Detail)
	}
	log.Error("Found %s", display.Plural(len(issues), "issue"))
	return false
}

// Issues renders as one line per issue.
type Issues []Issue

func (is Issues) WriteText(w io.Writer) error {
	for _, i := range is {
		if _, err := fmt.Fprintf(w, "%-16s %s: %s\n", i.Kind, i.Path, i.Detail); err != nil {
			return err
		}
	}
	return nil
}
