package imagepath

import (
	"github.com/oriser/regroup"
	"github.com/samber/lo"
)

// FrameKind tags which surface form a frame token uses.
type FrameKind int

const (
	FrameNone FrameKind = iota
	FrameDigits
	FrameNotation
	FrameHash
)

func (k FrameKind) String() string {
	switch k {
	case FrameDigits:
		return "digits"
	case FrameNotation:
		return "notation"
	case FrameHash:
		return "hash"
	default:
		return "none"
	}
}

// FrameToken is a frame token in its native surface form. Text is empty
// exactly when Kind is FrameNone.
type FrameToken struct {
	Kind FrameKind
	Text string
}

// NameParts is the decomposition of a filename stem.
type NameParts struct {
	BaseName  *string
	Separator *string
	Token     FrameToken
}

// HasFrame reports whether a frame token was detected.
func (np NameParts) HasFrame() bool { return np.Token.Kind != FrameNone }

// String rebuilds the stem.
func (np NameParts) String() string {
	return lo.FromPtr(np.BaseName) + lo.FromPtr(np.Separator) + np.Token.Text
}

const frameAlternatives = `(?:(?P<digits>\d+)|(?P<notation>%0[1-9]\d*d)|(?P<hash>#+))`

// nameRule pairs a grammar with its name. Rules are evaluated in order by
// SplitName; first match wins.
type nameRule struct {
	Name    string
	Pattern *regroup.ReGroup
}

var (
	reFrameSuffix = regroup.MustCompile(`^(?P<base>.*)(?P<sep>[._-])` + frameAlternatives + `$`)
	reFrameWhole  = regroup.MustCompile(`^` + frameAlternatives + `$`)
)

var nameRules = []nameRule{
	{"suffix", reFrameSuffix},
	{"whole", reFrameWhole},
}

// SplitName detects a trailing frame token in stem. The suffix grammar
// (separator + token at the end) is preferred; the whole-name grammar only
// applies when the suffix grammar matches nowhere. Without a match the full
// stem is the base name.
func SplitName(stem string) NameParts {
	for _, rule := range nameRules {
		g, ok := groups(rule.Pattern, stem)
		if !ok {
			continue
		}
		return NameParts{
			BaseName:  lo.EmptyableToPtr(g["base"]),
			Separator: lo.EmptyableToPtr(g["sep"]),
			Token:     tokenFromGroups(g),
		}
	}
	return NameParts{BaseName: lo.EmptyableToPtr(stem)}
}

// ParseFrameToken reports whether s is exactly one frame form.
func ParseFrameToken(s string) (FrameToken, bool) {
	g, ok := groups(reFrameWhole, s)
	if !ok {
		return FrameToken{}, false
	}
	return tokenFromGroups(g), true
}

func tokenFromGroups(g map[string]string) FrameToken {
	switch {
	case g["digits"] != "":
		return FrameToken{Kind: FrameDigits, Text: g["digits"]}
	case g["notation"] != "":
		return FrameToken{Kind: FrameNotation, Text: g["notation"]}
	case g["hash"] != "":
		return FrameToken{Kind: FrameHash, Text: g["hash"]}
	}
	return FrameToken{}
}

// groups runs a named-group match. regroup only fails when the pattern does
// not match, so the error is folded into the ok result here and nowhere else.
func groups(re *regroup.ReGroup, s string) (map[string]string, bool) {
	g, err := re.Groups(s)
	if err != nil {
		return nil, false
	}
	return g, true
}
