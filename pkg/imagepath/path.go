package imagepath

import "strings"

// Separator is the only directory separator understood by this package.
const Separator = '/'

// PathParts is the result of [SplitPath].
type PathParts struct {
	// Dir is the directory without trailing separators, except that a
	// root-only directory stays "/". Empty for a bare file name.
	Dir  string
	Stem string
	Ext  string // includes the leading dot; empty when there is none

	// head is the raw directory part including its final separator, kept
	// so that Join reproduces the input byte for byte.
	head string
}

// SplitPath splits p on its last separator and on the last dot of the final
// segment. Leading dots of the final segment never start an extension.
func SplitPath(p string) PathParts {
	var pp PathParts
	file := p
	if i := strings.LastIndexByte(p, Separator); i >= 0 {
		pp.head = p[:i+1]
		file = p[i+1:]
		pp.Dir = strings.TrimRight(pp.head, string(Separator))
		if pp.Dir == "" {
			pp.Dir = pp.head
		}
	}
	pp.Stem, pp.Ext = splitExt(file)
	return pp
}

func splitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || strings.Trim(name[:i], ".") == "" {
		return name, ""
	}
	return name[:i], name[i:]
}

// Join rebuilds a full path from the directory part, the given stem, and
// the original extension.
func (pp PathParts) Join(stem string) string {
	return pp.head + stem + pp.Ext
}

// Filename returns the final path segment.
func (pp PathParts) Filename() string {
	return pp.Stem + pp.Ext
}

// folders returns the raw directory components in path order. Empty
// components (root, doubled separators) are kept so the head can be
// rebuilt exactly by joinFolders.
func (pp PathParts) folders() []string {
	if pp.head == "" {
		return nil
	}
	return strings.Split(pp.head[:len(pp.head)-1], string(Separator))
}

// Folders returns the non-empty directory names in path order.
func (pp PathParts) Folders() []string {
	var out []string
	for _, f := range pp.folders() {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// withFolders returns a copy of pp whose directory is rebuilt from the
// given raw components, as produced by folders.
func (pp PathParts) withFolders(folders []string) PathParts {
	if folders == nil {
		return pp
	}
	return SplitPath(strings.Join(folders, string(Separator)) + string(Separator) + pp.Filename())
}
