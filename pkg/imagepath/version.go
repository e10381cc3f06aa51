package imagepath

import (
	"regexp"
	"strings"

	"github.com/oriser/regroup"
	"github.com/samber/lo"
)

// VersionInfo is the version view of an image. Folder fields describe the
// nearest ancestor directory carrying a version marker; FolderVersion is
// set if and only if FolderLevel is.
type VersionInfo struct {
	FileDelimiter *string // separator in front of the marker, absent for the whole-name form
	FilePrefix    *string // "v" or "V"
	FileVersion   *string // major number in major.minor mode
	FileMinor     *string
	FileSep       *string // major.minor separator

	FolderLevel     *int // 1 = the file's own directory
	FolderDelimiter *string
	FolderPrefix    *string
	FolderVersion   *string
}

// HasFile reports whether the base name carries a version.
func (v VersionInfo) HasFile() bool { return v.FileVersion != nil }

// HasFolder reports whether an ancestor directory carries a version.
func (v VersionInfo) HasFolder() bool { return v.FolderLevel != nil }

type versionForm int

const (
	formSuffix versionForm = iota
	formMajorMinor
	formWhole
	formWholeMajorMinor
)

// versionRule pairs a grammar with its surface form. Rules are evaluated in
// order by matchVersion; first match wins.
type versionRule struct {
	Form    versionForm
	Pattern *regroup.ReGroup
}

var (
	reVersionSuffix = regroup.MustCompile(
		`^(?P<head>.*?)(?P<delim>[._-])(?P<prefix>[vV])(?P<major>\d+)(?P<tail>.*)$`)
	reVersionMajorMinor = regroup.MustCompile(
		`^(?P<head>.*?)(?P<delim>[._-])(?P<prefix>[vV])(?P<major>\d+)(?P<sep>[._-])(?P<minor>\d+)(?P<tail>.*)$`)
	reVersionWhole = regroup.MustCompile(
		`^(?P<prefix>[vV])(?P<major>\d+)(?P<tail>.*)$`)
	reVersionWholeMajorMinor = regroup.MustCompile(
		`^(?P<prefix>[vV])(?P<major>\d+)(?P<sep>[._-])(?P<minor>\d+)(?P<tail>.*)$`)

	reDigits = regexp.MustCompile(`^\d+$`)
)

var (
	singleVersionRules = []versionRule{
		{formSuffix, reVersionSuffix},
		{formWhole, reVersionWhole},
	}
	majorMinorVersionRules = []versionRule{
		{formMajorMinor, reVersionMajorMinor},
		{formWholeMajorMinor, reVersionWholeMajorMinor},
	}
)

// versionMatch is one located version marker, with the text around it so
// the marker can be substituted without index arithmetic.
type versionMatch struct {
	form   versionForm
	head   string
	delim  string
	prefix string
	major  string
	sep    string
	minor  string
	tail   string
}

func (m versionMatch) dual() bool {
	return m.form == formMajorMinor || m.form == formWholeMajorMinor
}

// render rebuilds the matched name with the given marker values.
func (m versionMatch) render(prefix, major, sep, minor string) string {
	var b strings.Builder
	b.WriteString(m.head)
	b.WriteString(m.delim)
	b.WriteString(prefix)
	b.WriteString(major)
	if m.dual() {
		b.WriteString(sep)
		b.WriteString(minor)
	}
	b.WriteString(m.tail)
	return b.String()
}

// strip returns the name with the marker removed.
func (m versionMatch) strip() string {
	if m.form == formWhole || m.form == formWholeMajorMinor {
		return strings.TrimLeft(m.tail, "._-")
	}
	return m.head + m.tail
}

func matchVersion(name string, majorMinor bool) (versionMatch, bool) {
	rules := singleVersionRules
	if majorMinor {
		rules = majorMinorVersionRules
	}
	for _, rule := range rules {
		g, ok := groups(rule.Pattern, name)
		if !ok {
			continue
		}
		return versionMatch{
			form:   rule.Form,
			head:   g["head"],
			delim:  g["delim"],
			prefix: g["prefix"],
			major:  g["major"],
			sep:    g["sep"],
			minor:  g["minor"],
			tail:   g["tail"],
		}, true
	}
	return versionMatch{}, false
}

// folderMatch is the nearest versioned ancestor directory.
type folderMatch struct {
	level int
	index int // position in PathParts.folders
	versionMatch
}

// matchFolderVersion walks the directory components nearest first. Empty
// components (the root, doubled separators) are not directories and do
// not count as levels.
func matchFolderVersion(pp PathParts) (folderMatch, bool) {
	folders := pp.folders()
	level := 0
	for i := len(folders) - 1; i >= 0; i-- {
		if folders[i] == "" {
			continue
		}
		level++
		if m, ok := matchVersion(folders[i], false); ok {
			return folderMatch{level: level, index: i, versionMatch: m}, true
		}
	}
	return folderMatch{}, false
}

func versionInfo(pp PathParts, np NameParts, majorMinor bool) VersionInfo {
	var vi VersionInfo
	if np.BaseName != nil {
		if m, ok := matchVersion(*np.BaseName, majorMinor); ok {
			vi.FileDelimiter = lo.EmptyableToPtr(m.delim)
			vi.FilePrefix = lo.ToPtr(m.prefix)
			vi.FileVersion = lo.ToPtr(m.major)
			vi.FileMinor = lo.EmptyableToPtr(m.minor)
			vi.FileSep = lo.EmptyableToPtr(m.sep)
		}
	}
	if fm, ok := matchFolderVersion(pp); ok {
		vi.FolderLevel = lo.ToPtr(fm.level)
		vi.FolderDelimiter = lo.EmptyableToPtr(fm.delim)
		vi.FolderPrefix = lo.ToPtr(fm.prefix)
		vi.FolderVersion = lo.ToPtr(fm.major)
	}
	return vi
}

// VersionOption configures [Image.SetVersion] and [Image.SetVersionPair].
type VersionOption func(*versionOptions)

type versionOptions struct {
	setFolder  bool
	majorMinor *bool
	prefix     *string
	sep        *string
}

// WithFolder controls whether the nearest versioned ancestor directory is
// rewritten too. Defaults to true; asking for it when no folder version
// exists is an error.
func WithFolder(set bool) VersionOption {
	return func(o *versionOptions) { o.setFolder = set }
}

// WithMajorMinor selects the major.minor surface form for the file version.
// Defaults to the image's own mode.
func WithMajorMinor(on bool) VersionOption {
	return func(o *versionOptions) { o.majorMinor = lo.ToPtr(on) }
}

// WithVersionPrefix replaces the "v"/"V" marker letter in file and folder.
func WithVersionPrefix(prefix string) VersionOption {
	return func(o *versionOptions) { o.prefix = lo.ToPtr(prefix) }
}

// WithVersionSep replaces the major.minor separator.
func WithVersionSep(sep string) VersionOption {
	return func(o *versionOptions) { o.sep = lo.ToPtr(sep) }
}

// SetVersion sets the version and returns the new path. In major.minor mode
// only the major number is replaced and the minor number is kept.
func (img *Image) SetVersion(version string, opts ...VersionOption) (string, error) {
	return img.setVersion(version, nil, opts)
}

// SetVersionPair sets both numbers of a major.minor version. It implies
// major.minor mode for the file; folders only receive the major number.
func (img *Image) SetVersionPair(major, minor string, opts ...VersionOption) (string, error) {
	opts = append([]VersionOption{WithMajorMinor(true)}, opts...)
	return img.setVersion(major, lo.ToPtr(minor), opts)
}

func (img *Image) setVersion(major string, minor *string, opts []VersionOption) (string, error) {
	o := versionOptions{setFolder: true}
	for _, opt := range opts {
		opt(&o)
	}
	majorMinor := lo.FromPtrOr(o.majorMinor, img.majorMinor)

	if !reDigits.MatchString(major) {
		return img.path, invalid("new_version", major, ErrInvalidVersion)
	}
	if minor != nil && !reDigits.MatchString(*minor) {
		return img.path, invalid("new_version", *minor, ErrInvalidVersion)
	}
	if o.prefix != nil && *o.prefix != "v" && *o.prefix != "V" {
		return img.path, invalid("prefix", *o.prefix, ErrInvalidVersionPrefix)
	}
	if o.sep != nil && !isSeparator(*o.sep) {
		return img.path, invalid("sep", *o.sep, ErrInvalidPrefix)
	}

	parts := img.parts
	stem := img.name

	var fm folderMatch
	if o.setFolder {
		var ok bool
		fm, ok = matchFolderVersion(parts)
		if !ok {
			return img.path, invalid("set_folder", "true", ErrNoFolderVersion)
		}
	}

	var wantFile *versionMatch
	if stem.BaseName != nil {
		if m, ok := matchVersion(*stem.BaseName, majorMinor); ok {
			prefix := lo.FromPtrOr(o.prefix, m.prefix)
			var sep, newMinor string
			if m.dual() {
				sep = lo.FromPtrOr(o.sep, m.sep)
				newMinor = lo.FromPtrOr(minor, m.minor)
			}
			stem.BaseName = lo.ToPtr(m.render(prefix, major, sep, newMinor))
			wantFile = &versionMatch{form: m.form, prefix: prefix, major: major, sep: sep, minor: newMinor}
		}
	}

	if o.setFolder {
		folders := parts.folders()
		prefix := lo.FromPtrOr(o.prefix, fm.prefix)
		folders[fm.index] = fm.render(prefix, major, "", "")
		parts = parts.withFolders(folders)
	}

	next := parse(parts.Join(stem.String()), img.majorMinor)
	if err := verifyVersion(next, majorMinor, wantFile, o.setFolder, fm.level, major); err != nil {
		return img.path, err
	}
	*img = next
	return img.path, nil
}

// verifyVersion re-reads the regenerated image and checks that every
// substitution landed where it was aimed.
func verifyVersion(next Image, majorMinor bool, wantFile *versionMatch, setFolder bool, level int, major string) error {
	if wantFile != nil {
		got, ok := matchVersion(lo.FromPtr(next.name.BaseName), majorMinor)
		if !ok {
			return mismatch("new_version", major, "file version lost in %q", next.path)
		}
		if got.prefix != wantFile.prefix || got.major != wantFile.major ||
			got.sep != wantFile.sep || got.minor != wantFile.minor {
			return mismatch("new_version", major, "file version reads %s%s%s%s in %q",
				got.prefix, got.major, got.sep, got.minor, next.path)
		}
	}
	if setFolder {
		got, ok := matchFolderVersion(next.parts)
		if !ok || got.level != level || got.major != major {
			return mismatch("new_version", major, "folder version not found at level %d in %q", level, next.path)
		}
	}
	return nil
}
