package pretty

import (
	"fmt"
	"strings"

	"abtools-core/similarity"
)

// Options control the ASCII rendering.
type Options struct {
	// Columns per block. If <=0, use default (60).
	Width int

	// Name column width. If <=0, the longer of the two names is used.
	NameWidth int

	// Glyphs
	ExactGlyph   string // default "|"
	PartialGlyph string // default "¦" (positive BLOSUM62 score)
	GapGlyph     string // default " "
}

// DefaultOptions keeps the current look & feel.
var DefaultOptions = Options{
	Width:        60,
	ExactGlyph:   "|",
	PartialGlyph: "¦",
	GapGlyph:     " ",
}

const linePrefix = "# "

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.ExactGlyph == "" {
		o.ExactGlyph = DefaultOptions.ExactGlyph
	}
	if o.PartialGlyph == "" {
		o.PartialGlyph = DefaultOptions.PartialGlyph
	}
	if o.GapGlyph == "" {
		o.GapGlyph = DefaultOptions.GapGlyph
	}
	return o
}

// matchLine draws one glyph per alignment column.
func matchLine(top, bottom string, opt Options) string {
	n := len(top)
	if len(bottom) < n {
		n = len(bottom)
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		switch {
		case top[i] == '-' || bottom[i] == '-':
			b.WriteString(opt.GapGlyph)
		case top[i] == bottom[i]:
			b.WriteString(opt.ExactGlyph)
		case similarity.Similar(top[i], bottom[i]):
			b.WriteString(opt.PartialGlyph)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// residues counts the non-gap letters of s.
func residues(s string) int { return len(s) - strings.Count(s, "-") }

// RenderAlignment prints a blocked alignment of aName over bName, each row
// flanked by residue coordinates, followed by a one-line summary.
func RenderAlignment(aName, bName string, al similarity.Alignment, opt Options) string {
	opt = opt.withDefaults()
	var b strings.Builder
	if al.Top == "" || len(al.Top) != len(al.Bottom) {
		fmt.Fprintf(&b, "%s(pretty not available: no alignment)\n\n", linePrefix)
		return b.String()
	}

	nw := opt.NameWidth
	if nw <= 0 {
		nw = len(aName)
		if len(bName) > nw {
			nw = len(bName)
		}
	}
	match := matchLine(al.Top, al.Bottom, opt)
	// match is in glyphs, which may be multi-byte
	glyphs := []rune(match)

	posA, posB := 0, 0
	for start := 0; start < len(al.Top); start += opt.Width {
		end := start + opt.Width
		if end > len(al.Top) {
			end = len(al.Top)
		}
		ta, tb := al.Top[start:end], al.Bottom[start:end]
		fromA, fromB := posA+1, posB+1
		posA += residues(ta)
		posB += residues(tb)

		fmt.Fprintf(&b, "%s%-*s %5d %s %d\n", linePrefix, nw, aName, fromA, ta, posA)
		fmt.Fprintf(&b, "%s%-*s       %s\n", linePrefix, nw, "", string(glyphs[start:end]))
		fmt.Fprintf(&b, "%s%-*s %5d %s %d\n", linePrefix, nw, bName, fromB, tb, posB)
		b.WriteString(linePrefix + "\n")
	}
	fmt.Fprintf(&b, "%sidentities %d/%d (%.2f%%), mismatches %d, gaps %d\n\n",
		linePrefix, al.Identities, al.Columns(), al.Percent(), al.Mismatches, al.Gaps)
	return b.String()
}
