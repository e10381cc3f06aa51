package imagepath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// FrameInfo is the frame view of an image. Notation and Hash are always
// consistent with Padding; Digits is only set when the source token was a
// digit run, since a frame number cannot be derived from a width.
type FrameInfo struct {
	Prefix   *string
	Frame    *string // native token, e.g. "0042", "%04d" or "####"
	Kind     FrameKind
	Padding  *int
	Digits   *string
	Notation *string
	Hash     *string
}

// Number returns the frame number when the token is a digit run.
func (f FrameInfo) Number() (int, bool) {
	if f.Digits == nil {
		return 0, false
	}
	n, err := strconv.Atoi(*f.Digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func frameInfo(np NameParts) FrameInfo {
	if !np.HasFrame() {
		return FrameInfo{}
	}
	tok := np.Token
	fi := FrameInfo{
		Prefix: np.Separator,
		Frame:  lo.ToPtr(tok.Text),
		Kind:   tok.Kind,
	}

	var padding int
	switch tok.Kind {
	case FrameDigits:
		padding = len(tok.Text)
		fi.Digits = lo.ToPtr(tok.Text)
	case FrameNotation:
		padding, _ = strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(tok.Text, "%0"), "d"))
	case FrameHash:
		padding = len(tok.Text)
	}
	if padding > 0 {
		fi.Padding = lo.ToPtr(padding)
		fi.Notation = lo.ToPtr(Notation(padding))
		fi.Hash = lo.ToPtr(HashRun(padding))
	}
	return fi
}

// Notation returns the printf-style placeholder for a padding width.
func Notation(padding int) string { return fmt.Sprintf("%%0%dd", padding) }

// HashRun returns the hash placeholder for a padding width.
func HashRun(padding int) string { return strings.Repeat("#", padding) }

// PadFrame formats n zero-padded to padding digits.
func PadFrame(n, padding int) string { return fmt.Sprintf("%0*d", padding, n) }

// FrameOption configures [Image.SetFrame].
type FrameOption func(*frameOptions)

type frameOptions struct {
	prefix *string
}

// WithFramePrefix supplies the separator to use when the current name has
// none. An existing separator always wins.
func WithFramePrefix(prefix string) FrameOption {
	return func(o *frameOptions) { o.prefix = lo.ToPtr(prefix) }
}

func isSeparator(s string) bool {
	return s == "." || s == "_" || s == "-"
}

// SetFrame replaces the frame token with frame, which must be exactly one
// of the three frame forms, and returns the new path. On error the image
// is unchanged.
func (img *Image) SetFrame(frame string, opts ...FrameOption) (string, error) {
	var o frameOptions
	for _, opt := range opts {
		opt(&o)
	}

	tok, ok := ParseFrameToken(frame)
	if !ok {
		return img.path, invalid("new_frame", frame, ErrInvalidFrame)
	}
	if o.prefix != nil && !isSeparator(*o.prefix) {
		return img.path, invalid("prefix", *o.prefix, ErrInvalidPrefix)
	}

	sep := ""
	switch {
	case img.name.Separator != nil:
		sep = *img.name.Separator
	case o.prefix != nil:
		sep = *o.prefix
	}

	stem := lo.FromPtr(img.name.BaseName) + sep + frame
	next := parse(img.parts.Join(stem), img.majorMinor)
	if next.name.Token != tok {
		return img.path, mismatch("new_frame", frame, "%q parses as %s %q", stem, next.name.Token.Kind, next.name.Token.Text)
	}
	*img = next
	return img.path, nil
}

// SetFrameNumber sets a digit frame padded to the current padding width, or
// unpadded when the image has no frame token yet.
func (img *Image) SetFrameNumber(n int, opts ...FrameOption) (string, error) {
	if n < 0 {
		return img.path, invalid("new_frame", strconv.Itoa(n), ErrInvalidFrame)
	}
	padding := lo.FromPtr(img.Frame().Padding)
	return img.SetFrame(PadFrame(n, padding), opts...)
}
