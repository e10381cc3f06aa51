package imagepath

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDescriptor_Scenarios(t *testing.T) {
	d := New("/show/shot010/comp_v3.0042.exr").Descriptor()
	assert.Equal(t, "/show/shot010/comp_v3.0042.exr", d.Image)
	assert.Equal(t, "/show/shot010", d.Path)
	assert.Equal(t, "comp", lo.FromPtr(d.Name))
	assert.Equal(t, "comp_v3", lo.FromPtr(d.BaseName))
	assert.Equal(t, ".exr", d.Ext)
	assert.Equal(t, "0042", lo.FromPtr(d.Frame))
	assert.Equal(t, 4, lo.FromPtr(d.FramePadding))
	assert.Equal(t, "%04d", lo.FromPtr(d.FrameNotation))
	assert.Equal(t, "####", lo.FromPtr(d.FrameHash))
	assert.Equal(t, ".", lo.FromPtr(d.FramePrefix))
	assert.Equal(t, "v", lo.FromPtr(d.VersionPrefix))
	require.NotNil(t, d.Version)
	assert.Equal(t, "3", d.Version.Value())
	assert.Nil(t, d.VersionFolderLevel)
	assert.Nil(t, d.VersionFolder)

	d = New("/show/v3/shot010/img.%04d.exr").Descriptor()
	assert.Equal(t, 2, lo.FromPtr(d.VersionFolderLevel))
	assert.Equal(t, "v3", lo.FromPtr(d.VersionFolder))
	assert.Equal(t, "v", lo.FromPtr(d.VersionFolderPrefix))
	assert.Nil(t, d.Version)
	assert.Equal(t, "img", lo.FromPtr(d.Name))
}

func TestDescriptor_WholeNameVersionHasNoName(t *testing.T) {
	d := New("/r/v3.0001.exr").Descriptor()
	assert.Nil(t, d.Name)
	assert.Equal(t, "v3", lo.FromPtr(d.BaseName))

	d = New("/r/v3_final.exr").Descriptor()
	assert.Equal(t, "final", lo.FromPtr(d.Name))
}

func TestDescriptor_Idempotent(t *testing.T) {
	paths := []string{
		"/show/shot010/comp_v3.0042.exr",
		"/show/v3/shot010/img.%04d.exr",
		"shot.exr",
		"/r/0042.exr",
		"",
	}
	for _, p := range paths {
		img := New(p)
		first := img.Descriptor()
		assert.Equal(t, first, img.Descriptor(), p)
		assert.Equal(t, first, New(first.Image).Descriptor(), p)
	}
}

func TestDescriptor_JSON(t *testing.T) {
	b, err := json.Marshal(New("shot.exr").Descriptor())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "shot", got["name"])
	assert.Equal(t, "", got["path"])
	for _, key := range []string{"version", "version_folder", "version_folder_level", "frame", "frame_padding", "frame_prefix"} {
		v, ok := got[key]
		assert.True(t, ok, "%s must be present", key)
		assert.Nil(t, v, "%s must be null", key)
	}

	b, err = json.Marshal(New("/p/comp_v3.2.0001.exr", MajorMinor()).Descriptor())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, []any{"3", "2"}, got["version"])
	assert.Equal(t, ".", got["version_sep"])
	assert.Equal(t, float64(4), got["frame_padding"])
}

func TestDescriptor_YAML(t *testing.T) {
	b, err := yaml.Marshal(New("/p/comp_v3.2.0001.exr", MajorMinor()).Descriptor())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, []any{"3", "2"}, got["version"])
	assert.Equal(t, "comp", got["name"])
	assert.Contains(t, got, "version_folder")
	assert.Nil(t, got["version_folder"])
}

func TestDescriptor_Map(t *testing.T) {
	m := New("/show/v3/shot010/comp_v3.0042.exr").Descriptor().Map()
	assert.Equal(t, "3", m["version"])
	assert.Equal(t, 4, m["frame_padding"])
	assert.Equal(t, 2, m["version_folder_level"])
	assert.Equal(t, "v3", m["version_folder"])

	m = New("shot.exr").Descriptor().Map()
	assert.Contains(t, m, "frame")
	assert.Nil(t, m["frame"])
	assert.Nil(t, m["version"])
	assert.Len(t, m, 16)
}
