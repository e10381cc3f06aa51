package imagepath

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name     string
		stem     string
		wantBase *string
		wantSep  *string
		wantKind FrameKind
		wantText string
	}{
		{"digits suffix", "comp_v3.0042", lo.ToPtr("comp_v3"), lo.ToPtr("."), FrameDigits, "0042"},
		{"notation suffix", "img.%04d", lo.ToPtr("img"), lo.ToPtr("."), FrameNotation, "%04d"},
		{"hash suffix", "img_####", lo.ToPtr("img"), lo.ToPtr("_"), FrameHash, "####"},
		{"dash separator", "shot-12", lo.ToPtr("shot"), lo.ToPtr("-"), FrameDigits, "12"},
		{"last token wins", "a.1.2", lo.ToPtr("a.1"), lo.ToPtr("."), FrameDigits, "2"},
		{"doubled separator", "img__0042", lo.ToPtr("img_"), lo.ToPtr("_"), FrameDigits, "0042"},
		{"wide notation", "img.%010d", lo.ToPtr("img"), lo.ToPtr("."), FrameNotation, "%010d"},
		{"whole digits", "0042", nil, nil, FrameDigits, "0042"},
		{"whole notation", "%04d", nil, nil, FrameNotation, "%04d"},
		{"whole hash", "###", nil, nil, FrameHash, "###"},
		{"separator only base", "_0042", nil, lo.ToPtr("_"), FrameDigits, "0042"},
		{"no token", "shot", lo.ToPtr("shot"), nil, FrameNone, ""},
		{"digits without separator", "shot5", lo.ToPtr("shot5"), nil, FrameNone, ""},
		{"zero width notation", "img.%00d", lo.ToPtr("img.%00d"), nil, FrameNone, ""},
		{"token not at end", "img.0042_final", lo.ToPtr("img.0042_final"), nil, FrameNone, ""},
		{"empty", "", nil, nil, FrameNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			np := SplitName(tt.stem)
			assert.Equal(t, tt.wantBase, np.BaseName, "BaseName")
			assert.Equal(t, tt.wantSep, np.Separator, "Separator")
			assert.Equal(t, tt.wantKind, np.Token.Kind, "Kind")
			assert.Equal(t, tt.wantText, np.Token.Text, "Text")
			assert.Equal(t, tt.stem, np.String(), "String must rebuild the stem")
		})
	}
}

func TestParseFrameToken(t *testing.T) {
	valid := map[string]FrameKind{
		"1":     FrameDigits,
		"00042": FrameDigits,
		"%04d":  FrameNotation,
		"#":     FrameHash,
		"####":  FrameHash,
	}
	for in, kind := range valid {
		tok, ok := ParseFrameToken(in)
		assert.True(t, ok, in)
		assert.Equal(t, FrameToken{Kind: kind, Text: in}, tok)
	}

	for _, in := range []string{"", "-1", "12a", "%4d", "%04x", "#0", ".0042", "1 2"} {
		_, ok := ParseFrameToken(in)
		assert.False(t, ok, "%q should not parse", in)
	}
}
