// Package display formats human-facing output: aligned key/value blocks,
// counts and the banner. Widths are measured in terminal cells.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// KV is one row of a key/value block.
type KV struct {
	Key   string
	Value string
}

// WriteKV writes rows as "key  value" with keys padded to the widest key.
// Padding counts terminal cells so wide runes in keys stay aligned.
func WriteKV(w io.Writer, rows []KV) error {
	width := 0
	for _, r := range rows {
		if n := runewidth.StringWidth(r.Key); n > width {
			width = n
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(r.Key, width), r.Value); err != nil {
			return err
		}
	}
	return nil
}

// Truncate shortens s to at most width cells, marking the cut with "...".
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// FormatCount returns n with thousands separators (e.g. "12,345").
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// Plural returns "1 file" or "3 files".
func Plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return FormatCount(n) + " " + noun + "s"
}

// FormatBytes returns a human-readable size (B, kB, MB, ...).
func FormatBytes(bytes uint64) string {
	return humanize.Bytes(bytes)
}

// Rule returns a horizontal rule width cells wide.
func Rule(width int) string {
	return strings.Repeat("-", width)
}
