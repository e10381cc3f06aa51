package check

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"

	"github.com/backmassage/seqpath/internal/display"
	"github.com/backmassage/seqpath/pkg/imagepath"
)

// Sequence is a set of files that differ only in their digit frame. Files
// without a digit frame form single-member sequences with no frames.
type Sequence struct {
	Dir      string   `json:"dir" yaml:"dir"`
	Pattern  string   `json:"pattern" yaml:"pattern"`
	Frames   []int    `json:"frames" yaml:"frames"`
	Paddings []int    `json:"paddings" yaml:"paddings"`
	Paths    []string `json:"paths" yaml:"paths"`

	tokens []string
}

// seqKey identifies a sequence: everything in the path except the frame.
type seqKey struct {
	dir, base, sep, ext string
	frameless        string // full path for files without a digit frame
}

func keyOf(path string) seqKey {
	img := imagepath.New(path)
	fi := img.Frame()
	if fi.Digits == nil {
		return seqKey{dir: img.Parts().Dir, base: img.Parts().Filename(), frameless: path}
	}
	parts := img.Parts()
	return seqKey{
		dir:  parts.Dir,
		base: lo.FromPtr(img.BaseName()),
		sep:  lo.FromPtr(fi.Prefix),
		ext:  parts.Ext,
	}
}

func (k seqKey) less(o seqKey) int {
	return strings.Compare(k.dir+"\x00"+k.base+k.sep+k.ext+"\x00"+k.frameless,
		o.dir+"\x00"+o.base+o.sep+o.ext+"\x00"+o.frameless)
}

// Group collapses paths into sequences ordered by directory then pattern.
// Paths within a sequence are ordered by frame.
func Group(paths []string) []Sequence {
	groups := lo.GroupBy(paths, keyOf)
	keys := lo.Keys(groups)
	slices.SortFunc(keys, seqKey.less)

	seqs := make([]Sequence, 0, len(keys))
	for _, k := range keys {
		seqs = append(seqs, newSequence(k, groups[k]))
	}
	return seqs
}

func newSequence(k seqKey, paths []string) Sequence {
	if k.frameless != "" {
		return Sequence{Dir: k.dir, Pattern: imagepath.SplitPath(k.frameless).Filename(), Paths: paths}
	}

	type member struct {
		path, token string
		frame       int
	}
	members := lo.Map(paths, func(p string, _ int) member {
		fi := imagepath.New(p).Frame()
		n, _ := fi.Number()
		return member{path: p, token: *fi.Digits, frame: n}
	})
	slices.SortStableFunc(members, func(a, b member) int {
		if a.frame != b.frame {
			return a.frame - b.frame
		}
		return strings.Compare(a.token, b.token)
	})

	frames := mapset.NewSet[int]()
	paddings := mapset.NewSet[int]()
	s := Sequence{Dir: k.dir}
	for _, m := range members {
		frames.Add(m.frame)
		paddings.Add(len(m.token))
		s.Paths = append(s.Paths, m.path)
		s.tokens = append(s.tokens, m.token)
	}
	s.Frames = sortedInts(frames)
	s.Paddings = sortedInts(paddings)

	width := s.Padding()
	if width == 0 {
		width = s.Paddings[0]
	}
	s.Pattern = k.base + k.sep + imagepath.HashRun(width) + k.ext
	return s
}

func sortedInts(set mapset.Set[int]) []int {
	out := set.ToSlice()
	slices.Sort(out)
	return out
}

// Padding returns the zero-padded width of the sequence: the longest token
// written with a leading zero. 0 means no token is zero-padded, so the
// width cannot be told apart from the frame numbers themselves.
func (s Sequence) Padding() int {
	width := 0
	for _, t := range s.tokens {
		if len(t) > 1 && t[0] == '0' && len(t) > width {
			width = len(t)
		}
	}
	return width
}

// MixedPadding reports tokens that disagree with the sequence padding:
// zero-padded to another width, or shorter than the padding.
func (s Sequence) MixedPadding() bool {
	width := s.Padding()
	if width == 0 {
		return false
	}
	for _, t := range s.tokens {
		if len(t) < width || (t[0] == '0' && len(t) > 1 && len(t) != width) {
			return true
		}
	}
	return false
}

// Duplicates returns frames written by more than one file, e.g. "1" and "01".
func (s Sequence) Duplicates() []int {
	counts := lo.CountValuesBy(s.Paths, func(p string) int {
		n, _ := imagepath.New(p).Frame().Number()
		return n
	})
	dups := lo.Keys(lo.PickBy(counts, func(_ int, c int) bool { return c > 1 }))
	slices.Sort(dups)
	return dups
}

// Gaps returns the frames missing between the first and last frame.
func (s Sequence) Gaps() []int {
	var gaps []int
	for i := 1; i < len(s.Frames); i++ {
		for f := s.Frames[i-1] + 1; f < s.Frames[i]; f++ {
			gaps = append(gaps, f)
		}
	}
	return gaps
}

// Range renders the frames as comma-separated runs, e.g. "1001-1003,1005".
func (s Sequence) Range() string {
	return FormatRange(s.Frames)
}

// FormatRange renders sorted frames as comma-separated runs.
func FormatRange(frames []int) string {
	var b strings.Builder
	for i := 0; i < len(frames); {
		j := i
		for j+1 < len(frames) && frames[j+1] == frames[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(frames[i]))
		if j > i {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(frames[j]))
		}
		i = j + 1
	}
	return b.String()
}

// Sequences renders as one line per sequence.
type Sequences []Sequence

func (ss Sequences) WriteText(w io.Writer) error {
	for _, s := range ss {
		line := filepath.Join(s.Dir, s.Pattern)
		if len(s.Frames) > 0 {
			line += fmt.Sprintf("  [%s] (%s)", s.Range(), display.Plural(len(s.Paths), "file"))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
