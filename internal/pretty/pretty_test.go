package pretty

import (
	"strings"
	"testing"

	"abtools-core/similarity"
)

func TestDefaultOptions_Stable(t *testing.T) {
	d := DefaultOptions
	if d.ExactGlyph != "|" || d.PartialGlyph != "¦" || d.Width != 60 {
		t.Fatalf("DefaultOptions visual defaults changed")
	}
}

func TestMatchLine(t *testing.T) {
	got := matchLine("QVE-W", "QVDAG", DefaultOptions)
	if got != "||¦  " {
		t.Fatalf("match line = %q", got)
	}
}

func TestRenderAlignment(t *testing.T) {
	al := similarity.Alignment{
		Top:    "QVQLVE-SGG",
		Bottom: "QVQLVDASGG",
		Counts: similarity.Counts{Identities: 8, Mismatches: 1, Gaps: 1},
	}
	got := RenderAlignment("ref", "b", al, Options{})
	want := strings.Join([]string{
		"# ref     1 QVQLVE-SGG 9",
		"#           |||||¦ |||",
		"# b       1 QVQLVDASGG 10",
		"# ",
		"# identities 8/10 (80.00%), mismatches 1, gaps 1",
		"",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("render mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderWrapsBlocks(t *testing.T) {
	s := strings.Repeat("A", 25)
	al := similarity.Alignment{Top: s, Bottom: s, Counts: similarity.Counts{Identities: 25}}
	got := RenderAlignment("a", "b", al, Options{Width: 10})
	if n := strings.Count(got, "# a "); n != 3 {
		t.Fatalf("want 3 blocks, got %d:\n%s", n, got)
	}
	if !strings.Contains(got, "# a    21 AAAAA 25\n") {
		t.Fatalf("last block coordinates wrong:\n%s", got)
	}
}

func TestRenderWithoutAlignment(t *testing.T) {
	if got := RenderAlignment("a", "b", similarity.Alignment{}, DefaultOptions); !strings.Contains(got, "not available") {
		t.Fatalf("got %q", got)
	}
}
