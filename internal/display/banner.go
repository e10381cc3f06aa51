package display

import (
	"fmt"
	"io"
	"os"

	"github.com/backmassage/seqpath/internal/term"
)

const bannerWidth = 48

// PrintBanner prints the banner, bold cyan when colors are enabled, over a
// rule no wider than the terminal.
func PrintBanner(w io.Writer, version string) {
	f, _ := w.(*os.File)
	fmt.Fprintf(w, "%s%sseqpath%s v%s  image sequence path tool\n", term.Bold, term.Cyan, term.NC, version)
	fmt.Fprintln(w, Rule(min(term.Width(f, bannerWidth), bannerWidth)))
}
