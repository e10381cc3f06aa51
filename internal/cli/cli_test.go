package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error. The journal is redirected into a temp dir.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	if os.Getenv("SEQPATH_JOURNAL") == "" {
		t.Setenv("SEQPATH_JOURNAL", filepath.Join(t.TempDir(), "journal.db"))
	}
	t.Setenv("SEQPATH_COLOR", "never")

	app := &App{Version: "1.2.3", Commit: "abc"}
	t.Cleanup(func() { _ = app.Close() })
	root := NewRootCmd(app)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3 (abc)")
}

func TestInspect_JSON(t *testing.T) {
	out, _, err := execute(t, "inspect", "-o", "json", "/show/v3/shot/comp_v3.0042.exr")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "comp", got["name"])
	assert.Equal(t, "0042", got["frame"])
	assert.Equal(t, "3", got["version"])
	assert.Equal(t, "v3", got["version_folder"])
	assert.Equal(t, float64(2), got["version_folder_level"])
}

func TestInspect_TextMany(t *testing.T) {
	out, _, err := execute(t, "inspect", "/r/a.0001.exr", "/r/b.####.exr")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "frame_padding"))
	assert.Contains(t, out, "####")
}

func TestInspect_NeedsArgs(t *testing.T) {
	_, _, err := execute(t, "inspect")
	assert.Error(t, err)
}

func TestSetFrame(t *testing.T) {
	out, _, err := execute(t, "set-frame", "/r/comp.0001.exr", "%04d")
	require.NoError(t, err)
	assert.Equal(t, "/r/comp.%04d.exr\n", out)

	out, _, err = execute(t, "set-frame", "--frame-prefix", "_", "/r/comp.exr", "0007")
	require.NoError(t, err)
	assert.Equal(t, "/r/comp_0007.exr\n", out)

	_, _, err = execute(t, "set-frame", "/r/comp.0001.exr", "12a")
	assert.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	out, _, err := execute(t, "set-version", "/show/v3/comp_v3.0001.exr", "4")
	require.NoError(t, err)
	assert.Equal(t, "/show/v4/comp_v4.0001.exr\n", out)

	out, _, err = execute(t, "set-version", "--no-folder", "/show/v3/comp_v3.0001.exr", "4")
	require.NoError(t, err)
	assert.Equal(t, "/show/v3/comp_v4.0001.exr\n", out)

	out, _, err = execute(t, "set-version", "--major-minor", "/show/comp_v3.2.0001.exr", "4", "1")
	require.NoError(t, err)
	assert.Equal(t, "/show/comp_v4.1.0001.exr\n", out)

	_, _, err = execute(t, "set-version", "/show/plate.0001.exr", "4")
	assert.ErrorContains(t, err, "no version")
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "comp.0001.exr")
	touch(t, root, "comp.0002.exr")
	touch(t, root, "tmp/comp.0003.exr")

	out, _, err := execute(t, "scan", "--sequences", "--exclude", "tmp", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "comp.####.exr")+"  [1-2] (2 files)\n", out)

	out, _, err = execute(t, "scan", "-o", "json", root)
	require.NoError(t, err)
	var descs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &descs))
	assert.Len(t, descs, 3)
}

func TestRenameAndUndo(t *testing.T) {
	t.Setenv("SEQPATH_JOURNAL", filepath.Join(t.TempDir(), "journal.db"))
	root := t.TempDir()
	touch(t, root, "v1/comp_v1.0001.exr")

	_, _, err := execute(t, "rename", "--op", "bump-version", root)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "v2", "comp_v2.0001.exr"))

	_, stderr, err := execute(t, "undo")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Restored")
	assert.FileExists(t, filepath.Join(root, "v1", "comp_v1.0001.exr"))
}

func TestRename_NeedsVersion(t *testing.T) {
	_, _, err := execute(t, "rename", t.TempDir())
	assert.ErrorContains(t, err, "--version")
}

func TestRename_BadFlagValue(t *testing.T) {
	_, _, err := execute(t, "rename", "--op", "delete", t.TempDir())
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.0001.exr")
	touch(t, root, "a.0002.exr")

	_, stderr, err := execute(t, "check", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "No issues found")

	touch(t, root, "a.0005.exr")
	out, _, err := execute(t, "check", "-o", "json", root)
	assert.ErrorIs(t, err, errIssues)
	var issues []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, "gap", issues[0]["kind"])
}
