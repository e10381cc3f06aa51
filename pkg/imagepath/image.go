package imagepath

import (
	"github.com/samber/lo"
)

// Image is a VFX image path value. The path string is the only state; all
// other views are recomputed from it. An Image must not be mutated from
// several goroutines without external locking.
type Image struct {
	path       string
	majorMinor bool

	parts PathParts
	name  NameParts
}

// Option configures [New].
type Option func(*Image)

// MajorMinor makes the image read file versions in the two-number
// major.minor form (comp_v3.2) by default.
func MajorMinor() Option {
	return func(img *Image) { img.majorMinor = true }
}

// New parses path. It never fails: undetected tokens are reported as
// absent fields.
func New(path string, opts ...Option) *Image {
	var mode Image
	for _, opt := range opts {
		opt(&mode)
	}
	img := parse(path, mode.majorMinor)
	return &img
}

func parse(path string, majorMinor bool) Image {
	parts := SplitPath(path)
	return Image{
		path:       path,
		majorMinor: majorMinor,
		parts:      parts,
		name:       SplitName(parts.Stem),
	}
}

// Path returns the full image path.
func (img *Image) Path() string { return img.path }

// String implements fmt.Stringer.
func (img *Image) String() string { return img.path }

// Parts returns the directory, stem and extension.
func (img *Image) Parts() PathParts { return img.parts }

// Name returns the filename stem decomposition.
func (img *Image) Name() NameParts { return img.name }

// IsMajorMinor reports the image's default version mode.
func (img *Image) IsMajorMinor() bool { return img.majorMinor }

// BaseName returns the stem without frame separator and frame token.
func (img *Image) BaseName() *string { return img.name.BaseName }

// Frame returns the frame view.
func (img *Image) Frame() FrameInfo { return frameInfo(img.name) }

// Version returns the version view in the image's default mode.
func (img *Image) Version() VersionInfo {
	return versionInfo(img.parts, img.name, img.majorMinor)
}

// VersionIn returns the version view in an explicit mode.
func (img *Image) VersionIn(majorMinor bool) VersionInfo {
	return versionInfo(img.parts, img.name, majorMinor)
}

// SetBaseName replaces the base name, keeping frame separator, frame token
// and extension, and returns the new path.
func (img *Image) SetBaseName(name string) (string, error) {
	stem := img.name
	stem.BaseName = lo.EmptyableToPtr(name)
	next := parse(img.parts.Join(stem.String()), img.majorMinor)
	if next.name.Token != img.name.Token || lo.FromPtr(next.name.BaseName) != name {
		return img.path, mismatch("new_name", name, "%q does not keep the frame token", next.parts.Filename())
	}
	*img = next
	return img.path, nil
}

// Clone returns an independent copy.
func (img *Image) Clone() *Image {
	c := *img
	return &c
}
