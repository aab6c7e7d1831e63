// core/similarity/similarity.go
package similarity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/align/matrix"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Mode names an aligner configuration.
type Mode string

const (
	// BlastP is a global alignment scored with BLOSUM62, gap open -12 and
	// extension -1 (BLAST protein defaults).
	BlastP Mode = "blastp"
	// Local uses the BlastP scores with a local alignment.
	Local Mode = "local"

	DefaultMode = BlastP
)

// Modes lists the supported modes.
var Modes = []Mode{BlastP, Local}

const (
	gapOpen   = -11 // added to the extension score when a gap opens
	gapExtend = -1
)

var (
	ErrEmptySequence  = errors.New("empty sequence")
	ErrInvalidResidue = errors.New("invalid residue")
	ErrUnknownMode    = errors.New("unknown alignment mode")
)

var blastpMatrix = withGapScore(matrix.BLOSUM62, gapExtend)

// withGapScore copies m and sets the gap row and column to score.
func withGapScore(m [][]int, score int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	g := alphabet.Protein.IndexOf(alphabet.Protein.Gap())
	if g < 0 || g >= len(out) {
		return out
	}
	for i := range out {
		if i == g {
			continue
		}
		out[i][g] = score
		out[g][i] = score
	}
	return out
}

// ParseMode accepts the mode names case-insensitively; empty means DefaultMode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultMode, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func aligner(m Mode) (align.Aligner, error) {
	switch m {
	case BlastP:
		return align.NWAffine{Matrix: blastpMatrix, GapOpen: gapOpen}, nil
	case Local:
		return align.SWAffine{Matrix: blastpMatrix, GapOpen: gapOpen}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
}

// Counts tallies the columns of one alignment.
type Counts struct {
	Identities int
	Gaps       int
	Mismatches int
}

// Columns is the number of aligned columns.
func (c Counts) Columns() int { return c.Identities + c.Gaps + c.Mismatches }

// Percent is identities over all columns, scaled to 100. An alignment
// without columns scores 0.
func (c Counts) Percent() float64 {
	n := c.Columns()
	if n == 0 {
		return 0
	}
	return float64(c.Identities) / float64(n) * 100
}

func protein(name, s string) (*linear.Seq, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptySequence, name)
	}
	gap := alphabet.Protein.Gap()
	for i := 0; i < len(s); i++ {
		l := alphabet.Letter(s[i])
		if l == gap || !alphabet.Protein.IsValid(l) {
			return nil, fmt.Errorf("%w: %q at %s position %d", ErrInvalidResidue, s[i], name, i+1)
		}
	}
	sq := &linear.Seq{Seq: alphabet.BytesToLetters([]byte(s))}
	sq.ID = name
	sq.Alpha = alphabet.Protein
	return sq, nil
}

// Alignment is one pairwise alignment. Top and Bottom have equal length;
// gaps are '-'.
type Alignment struct {
	Top, Bottom string
	Counts
}

// AlignPair aligns seq1 against seq2 with mode and tallies the first
// alignment the aligner returns.
func AlignPair(seq1, seq2 string, mode Mode) (Alignment, error) {
	al, err := aligner(mode)
	if err != nil {
		return Alignment{}, err
	}
	a, err := protein("seq1", seq1)
	if err != nil {
		return Alignment{}, err
	}
	b, err := protein("seq2", seq2)
	if err != nil {
		return Alignment{}, err
	}
	aln, err := al.Align(a, b)
	if err != nil {
		return Alignment{}, err
	}
	cols := align.Format(a, b, aln, alphabet.Protein.Gap())
	top, bottom := fmt.Sprint(cols[0]), fmt.Sprint(cols[1])
	return Alignment{Top: top, Bottom: bottom, Counts: tally(top, bottom, byte(alphabet.Protein.Gap()))}, nil
}

// Align returns the column counts of AlignPair.
func Align(seq1, seq2 string, mode Mode) (Counts, error) {
	al, err := AlignPair(seq1, seq2, mode)
	return al.Counts, err
}

// Similar reports whether x and y are distinct residues with a positive
// BLOSUM62 score.
func Similar(x, y byte) bool {
	if x == y {
		return false
	}
	i := alphabet.Protein.IndexOf(alphabet.Letter(x))
	j := alphabet.Protein.IndexOf(alphabet.Letter(y))
	if i < 0 || j < 0 || i >= len(matrix.BLOSUM62) || j >= len(matrix.BLOSUM62[i]) {
		return false
	}
	return matrix.BLOSUM62[i][j] > 0
}

func tally(x, y string, gap byte) Counts {
	var c Counts
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	for i := 0; i < n; i++ {
		switch {
		case x[i] == gap || y[i] == gap:
			c.Gaps++
		case x[i] == y[i]:
			c.Identities++
		default:
			c.Mismatches++
		}
	}
	return c
}

// Percent returns the percent identity of seq1 and seq2 under mode.
func Percent(seq1, seq2 string, mode Mode) (float64, error) {
	c, err := Align(seq1, seq2, mode)
	if err != nil {
		return 0, err
	}
	return c.Percent(), nil
}
