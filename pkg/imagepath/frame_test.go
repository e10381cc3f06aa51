package imagepath

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_PaddingAcrossForms(t *testing.T) {
	for w := 1; w <= 6; w++ {
		forms := map[FrameKind]string{
			FrameDigits:   PadFrame(7, w),
			FrameNotation: Notation(w),
			FrameHash:     HashRun(w),
		}
		for kind, token := range forms {
			t.Run(fmt.Sprintf("%s/%d", kind, w), func(t *testing.T) {
				fi := New("/show/shot/comp." + token + ".exr").Frame()

				require.NotNil(t, fi.Padding)
				assert.Equal(t, w, *fi.Padding)
				assert.Equal(t, kind, fi.Kind)
				assert.Equal(t, token, lo.FromPtr(fi.Frame))
				assert.Equal(t, Notation(w), lo.FromPtr(fi.Notation))
				assert.Equal(t, HashRun(w), lo.FromPtr(fi.Hash))
				if kind == FrameDigits {
					assert.Equal(t, token, lo.FromPtr(fi.Digits))
				} else {
					assert.Nil(t, fi.Digits, "digits cannot be derived from a width")
				}
			})
		}
	}
}

func TestFrame_Absent(t *testing.T) {
	fi := New("/show/shot/comp_v3.exr").Frame()
	assert.Equal(t, FrameInfo{}, fi)
	_, ok := fi.Number()
	assert.False(t, ok)
}

func TestFrame_Number(t *testing.T) {
	n, ok := New("comp.0042.exr").Frame().Number()
	require.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = New("comp.####.exr").Frame().Number()
	assert.False(t, ok)
}

func TestSetFrame_RoundTrip(t *testing.T) {
	paths := []string{
		"/show/shot010/comp_v3.0042.exr",
		"/show/shot010/comp_v3.%04d.exr",
		"/show/shot010/comp_v3_####.exr",
		"renders/plate-1001.dpx",
		"/show/0042.exr",
		"/show/%03d.tif",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			img := New(p)
			native := img.Frame().Frame
			require.NotNil(t, native)

			got, err := img.SetFrame(*native)
			require.NoError(t, err)
			assert.Equal(t, p, got)
			assert.Equal(t, p, img.Path())
		})
	}
}

func TestSetFrame_PrefixWhenNoSeparator(t *testing.T) {
	img := New("shot.exr")
	got, err := img.SetFrame("5", WithFramePrefix("_"))
	require.NoError(t, err)

	assert.Equal(t, "shot_5.exr", got)
	assert.Equal(t, "shot", lo.FromPtr(img.BaseName()))
	assert.Equal(t, "_", lo.FromPtr(img.Frame().Prefix))
}

func TestSetFrame_ExistingSeparatorWins(t *testing.T) {
	img := New("/r/comp.0042.exr")
	got, err := img.SetFrame("0007", WithFramePrefix("_"))
	require.NoError(t, err)
	assert.Equal(t, "/r/comp.0007.exr", got)
}

func TestSetFrame_ChangesForm(t *testing.T) {
	img := New("/r/comp.0042.exr")

	got, err := img.SetFrame("%04d")
	require.NoError(t, err)
	assert.Equal(t, "/r/comp.%04d.exr", got)
	assert.Nil(t, img.Frame().Digits)

	got, err = img.SetFrame("######")
	require.NoError(t, err)
	assert.Equal(t, "/r/comp.######.exr", got)
	assert.Equal(t, 6, lo.FromPtr(img.Frame().Padding))
}

func TestSetFrame_WholeNameToken(t *testing.T) {
	img := New("/r/0042.exr")
	got, err := img.SetFrame("43")
	require.NoError(t, err)
	assert.Equal(t, "/r/43.exr", got)
	assert.Nil(t, img.BaseName())
}

func TestSetFrame_Errors(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		frame     string
		opts      []FrameOption
		wantParam string
		wantErr   error
	}{
		{"not a frame", "/r/comp.0042.exr", "abc", nil, "new_frame", ErrInvalidFrame},
		{"negative", "/r/comp.0042.exr", "-1", nil, "new_frame", ErrInvalidFrame},
		{"bad prefix", "/r/comp.exr", "5", []FrameOption{WithFramePrefix("x")}, "prefix", ErrInvalidPrefix},
		{"empty prefix", "/r/comp.exr", "5", []FrameOption{WithFramePrefix("")}, "prefix", ErrInvalidPrefix},
		{"no separator available", "/r/shot.exr", "5", nil, "new_frame", ErrSubstitutionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := New(tt.path)
			got, err := img.SetFrame(tt.frame, tt.opts...)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want *ValidationError, got %v", err)
			assert.Equal(t, tt.wantParam, ve.Param)
			assert.True(t, errors.Is(err, tt.wantErr), "want %v in chain, got %v", tt.wantErr, err)
			assert.Equal(t, tt.path, got)
			assert.Equal(t, tt.path, img.Path(), "failed mutation must keep the path")
		})
	}
}

func TestSetFrameNumber(t *testing.T) {
	img := New("/r/comp.0042.exr")
	got, err := img.SetFrameNumber(7)
	require.NoError(t, err)
	assert.Equal(t, "/r/comp.0007.exr", got)

	img = New("/r/comp.####.exr")
	got, err = img.SetFrameNumber(12)
	require.NoError(t, err)
	assert.Equal(t, "/r/comp.0012.exr", got)

	img = New("/r/comp.0042.exr")
	got, err = img.SetFrameNumber(123456)
	require.NoError(t, err)
	assert.Equal(t, "/r/comp.123456.exr", got, "numbers wider than the padding are not truncated")

	_, err = img.SetFrameNumber(-1)
	assert.ErrorIs(t, err, ErrInvalidFrame)
}

func TestSetBaseName(t *testing.T) {
	img := New("/r/comp_v3.0042.exr")
	got, err := img.SetBaseName("plate_v3")
	require.NoError(t, err)
	assert.Equal(t, "/r/plate_v3.0042.exr", got)
	assert.Equal(t, "0042", lo.FromPtr(img.Frame().Frame))

	img = New("/r/0042.exr")
	_, err = img.SetBaseName("comp")
	assert.ErrorIs(t, err, ErrSubstitutionMismatch)
	assert.Equal(t, "/r/0042.exr", img.Path())
}
