// Package scan walks a directory tree and lazily yields the files an image
// path tool should look at. Directories are pruned through [Options];
// descent can be bounded by depth.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	mapset "github.com/deckarep/golang-set/v2"
)

// ErrNotDir is returned when the scan root is not a directory.
var ErrNotDir = errors.New("scan root is not a directory")

// Entry is one found file.
type Entry struct {
	Dir  string
	Name string
}

// Path joins Dir and Name.
func (e Entry) Path() string { return filepath.Join(e.Dir, e.Name) }

// Options filter the walk. The zero value yields every file.
type Options struct {
	Pattern        string   // Regex searched in file names, case-insensitive.
	MaxDepth       int      // Directory levels below root to read; 0 = unlimited.
	ExcludeNames   []string // Directory names never descended.
	ExcludePattern string   // Regex matched at the start of directory names.
	ExcludeGlobs   []string // Globs matched against root-relative, slash-separated directory paths.
}

type walker struct {
	root      string
	maxDepth  int
	match     *regexp.Regexp
	excludeRe *regexp.Regexp
	names     mapset.Set[string]
	globs     []string
}

// Scan checks root and compiles opts, then returns the walk as a sequence.
// Nothing is read until the sequence is ranged over, and every range walks
// the tree again. Files come in lexical order per directory, before that
// directory's subdirectories. Read errors are yielded and the walk goes on.
func Scan(root string, opts Options) (iter.Seq2[Entry, error], error) {
	root = filepath.Clean(root)
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("scan %s: %w", root, ErrNotDir)
	}

	w := &walker{
		root:     root,
		maxDepth: opts.MaxDepth,
		names:    mapset.NewSet(opts.ExcludeNames...),
		globs:    opts.ExcludeGlobs,
	}
	if opts.Pattern != "" {
		if w.match, err = regexp.Compile("(?i)" + opts.Pattern); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", opts.Pattern, err)
		}
	}
	if opts.ExcludePattern != "" {
		if w.excludeRe, err = regexp.Compile("^(?:" + opts.ExcludePattern + ")"); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", opts.ExcludePattern, err)
		}
	}
	for _, g := range opts.ExcludeGlobs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("invalid exclude glob %q", g)
		}
	}

	return func(yield func(Entry, error) bool) {
		w.walk(root, 0, yield)
	}, nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Entry, error]) ([]Entry, error) {
	var out []Entry
	for e, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (w *walker) walk(dir string, depth int, yield func(Entry, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return yield(Entry{Dir: dir}, fmt.Errorf("read %s: %w", dir, err))
	}

	var subdirs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if !w.excluded(dir, name) {
				subdirs = append(subdirs, name)
			}
			continue
		}
		if !w.isFile(dir, e) {
			continue
		}
		if w.match != nil && !w.match.MatchString(name) {
			continue
		}
		if !yield(Entry{Dir: dir, Name: name}, nil) {
			return false
		}
	}

	if w.maxDepth > 0 && depth >= w.maxDepth {
		return true
	}
	for _, sub := range subdirs {
		if !w.walk(filepath.Join(dir, sub), depth+1, yield) {
			return false
		}
	}
	return true
}

// isFile accepts regular files and symlinks to them. Symlinked directories
// are neither listed nor followed.
func (w *walker) isFile(dir string, e fs.DirEntry) bool {
	switch {
	case e.Type().IsRegular():
		return true
	case e.Type()&fs.ModeSymlink != 0:
		fi, err := os.Stat(filepath.Join(dir, e.Name()))
		return err == nil && fi.Mode().IsRegular()
	default:
		return false
	}
}

func (w *walker) excluded(dir, name string) bool {
	if w.names.Contains(name) {
		return true
	}
	if w.excludeRe != nil && w.excludeRe.MatchString(name) {
		return true
	}
	if len(w.globs) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, filepath.Join(dir, name))
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range w.globs {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}
