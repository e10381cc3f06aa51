package imagepath

import (
	"encoding/json"

	"github.com/samber/lo"
)

// VersionValue is a version as exported by [Descriptor]: a single number,
// or a major/minor pair in major.minor mode.
type VersionValue struct {
	Major string
	Minor *string
}

// Value returns the plain form: a string, or a two-element []string.
func (v VersionValue) Value() any {
	if v.Minor == nil {
		return v.Major
	}
	return []string{v.Major, *v.Minor}
}

// MarshalJSON encodes the plain form.
func (v VersionValue) MarshalJSON() ([]byte, error) { return json.Marshal(v.Value()) }

// MarshalYAML encodes the plain form.
func (v VersionValue) MarshalYAML() (any, error) { return v.Value(), nil }

// Descriptor is the flat export of every component of an image. It is
// rebuilt on each call to [Image.Descriptor] and never updated in place.
type Descriptor struct {
	Image    string  `json:"image" yaml:"image"`
	Path     string  `json:"path" yaml:"path"`
	Name     *string `json:"name" yaml:"name"`
	BaseName *string `json:"base_name" yaml:"base_name"`
	Ext      string  `json:"ext" yaml:"ext"`

	VersionFolderLevel  *int          `json:"version_folder_level" yaml:"version_folder_level"`
	VersionFolderPrefix *string       `json:"version_folder_prefix" yaml:"version_folder_prefix"`
	VersionFolder       *string       `json:"version_folder" yaml:"version_folder"`
	VersionPrefix       *string       `json:"version_prefix" yaml:"version_prefix"`
	Version             *VersionValue `json:"version" yaml:"version"`
	VersionSep          *string       `json:"version_sep" yaml:"version_sep"`

	FramePrefix   *string `json:"frame_prefix" yaml:"frame_prefix"`
	Frame         *string `json:"frame" yaml:"frame"`
	FramePadding  *int    `json:"frame_padding" yaml:"frame_padding"`
	FrameNotation *string `json:"frame_notation" yaml:"frame_notation"`
	FrameHash     *string `json:"frame_hash" yaml:"frame_hash"`
}

// Descriptor aggregates path parts, frame and version views. Name is the
// base name with the file version marker taken out (comp_v3 -> comp);
// BaseName keeps it. VersionFolder is the folder marker (v3), not the bare
// number.
func (img *Image) Descriptor() Descriptor {
	fi := img.Frame()
	vi := img.Version()

	d := Descriptor{
		Image:    img.path,
		Path:     img.parts.Dir,
		Name:     img.name.BaseName,
		BaseName: img.name.BaseName,
		Ext:      img.parts.Ext,

		VersionFolderLevel:  vi.FolderLevel,
		VersionFolderPrefix: vi.FolderPrefix,
		VersionPrefix:       vi.FilePrefix,
		VersionSep:          vi.FileSep,

		FramePrefix:   fi.Prefix,
		Frame:         fi.Frame,
		FramePadding:  fi.Padding,
		FrameNotation: fi.Notation,
		FrameHash:     fi.Hash,
	}
	if vi.FolderVersion != nil {
		d.VersionFolder = lo.ToPtr(*vi.FolderPrefix + *vi.FolderVersion)
	}
	if vi.FileVersion != nil {
		d.Version = &VersionValue{Major: *vi.FileVersion, Minor: vi.FileMinor}
		if m, ok := matchVersion(*img.name.BaseName, img.majorMinor); ok {
			d.Name = lo.EmptyableToPtr(m.strip())
		}
	}
	return d
}

// Map returns the descriptor as a flat mapping keyed like the JSON form.
// Absent values are nil.
func (d Descriptor) Map() map[string]any {
	var version any
	if d.Version != nil {
		version = d.Version.Value()
	}
	return map[string]any{
		"image":                 d.Image,
		"path":                  d.Path,
		"name":                  ptrValue(d.Name),
		"base_name":             ptrValue(d.BaseName),
		"ext":                   d.Ext,
		"version_folder_level":  ptrValue(d.VersionFolderLevel),
		"version_folder_prefix": ptrValue(d.VersionFolderPrefix),
		"version_folder":        ptrValue(d.VersionFolder),
		"version_prefix":        ptrValue(d.VersionPrefix),
		"version":               version,
		"version_sep":           ptrValue(d.VersionSep),
		"frame_prefix":          ptrValue(d.FramePrefix),
		"frame":                 ptrValue(d.Frame),
		"frame_padding":         ptrValue(d.FramePadding),
		"frame_notation":        ptrValue(d.FrameNotation),
		"frame_hash":            ptrValue(d.FrameHash),
	}
}

func ptrValue[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
