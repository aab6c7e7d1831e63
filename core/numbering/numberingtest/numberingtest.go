// Package numberingtest provides a scripted numbering.Engine and numbered
// antibody fixtures for tests that must not depend on ANARCI.
package numberingtest

import (
	"context"
	"sync"

	"abtools-core/numbering"
)

// HeavySeq and LightSeq are a paired heavy and light variable domain.
const (
	HeavySeq = "QVQLVESGGGVVQPGRSLRLDCKASGITFSNSGMHWVRQAPGKGLEWVAVIWYDGSKRYYADSVKGRFTISRNSKNTLFLQMNSLRAEDTAVYYCATNDDYWGQGTLVTTVSS"
	LightSeq = "EIVLTQSPATLSLSPGERATLSCRASQSVSGYLAWYQQKPGQAPRLLIYDASNRATGIPARFSGSGSGTDFTLTISSLEPEDFAVYYCQQSSNWPRTFGQGTKVEIK"
)

// Run numbers s consecutively from start, one residue per position.
func Run(start int, s string) []numbering.Residue {
	out := make([]numbering.Residue, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = numbering.Residue{Pos: start + i, AA: s[i]}
	}
	return out
}

func concat(parts ...[]numbering.Residue) []numbering.Residue {
	var out []numbering.Residue
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// HeavyIMGT is HeavySeq numbered with IMGT.
func HeavyIMGT() numbering.Domain {
	return numbering.Domain{
		Scheme: "imgt",
		Residues: concat(
			Run(1, "QVQLVESGG-GVVQPGRSLRLDCKAS"),
			Run(27, "GITF----SNSG"),
			Run(39, "MHWVRQAPGKGLEWVAV"),
			Run(56, "IWYD--GSKR"),
			Run(66, "YYADSVK-GRFTISR-NSKNTLFLQMNSLRAEDTAVYYC"),
			Run(105, "ATN-------DDY"),
			Run(118, "WGQGTLVTTV"),
			[]numbering.Residue{{Pos: 127, Ins: 'A', AA: 'S'}, {Pos: 128, AA: 'S'}},
		),
		Hit: numbering.Hit{Species: "human", ChainType: "H", EValue: 1.1e-54, Score: 174.8, Start: 0, End: 112},
	}
}

// LightIMGT is LightSeq numbered with IMGT.
func LightIMGT() numbering.Domain {
	return numbering.Domain{
		Scheme: "imgt",
		Residues: concat(
			Run(1, "EIVLTQSPATLSLSPGERATLSCRAS"),
			Run(27, "QSV------SGY"),
			Run(39, "LAWYQQKPGQAPRLLIY"),
			Run(56, "DA-------S"),
			Run(66, "NRATGIP-ARFSGSG--SGTDFTLTISSLEPEDFAVYYC"),
			Run(105, "QQSSN----WPRT"),
			Run(118, "FGQGTKVEIK"),
		),
		Hit: numbering.Hit{Species: "human", ChainType: "K", EValue: 3.2e-50, Score: 160.1, Start: 0, End: 106},
	}
}

// Covering returns a domain with one residue per position in [lo, hi],
// each residue 'A'. Useful for exercising breakpoint tables.
func Covering(scheme string, lo, hi int) numbering.Domain {
	d := numbering.Domain{Scheme: scheme}
	for p := lo; p <= hi; p++ {
		d.Residues = append(d.Residues, numbering.Residue{Pos: p, AA: 'A'})
	}
	return d
}

// Call records one Number invocation.
type Call struct {
	Queries []numbering.Query
	Request numbering.Request
}

// Engine answers from a fixed table keyed by cleaned sequence. Unknown
// sequences yield a result without domains. Safe for concurrent use.
type Engine struct {
	Domains map[string][]numbering.Domain
	Err     error

	mu    sync.Mutex
	calls []Call
}

// NewEngine returns an Engine that knows HeavySeq and LightSeq under IMGT.
func NewEngine() *Engine {
	return &Engine{Domains: map[string][]numbering.Domain{
		HeavySeq: {HeavyIMGT()},
		LightSeq: {LightIMGT()},
	}}
}

func (e *Engine) Number(ctx context.Context, queries []numbering.Query, req numbering.Request) ([]numbering.Result, error) {
	e.mu.Lock()
	e.calls = append(e.calls, Call{Queries: append([]numbering.Query(nil), queries...), Request: req})
	e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.Err != nil {
		return nil, e.Err
	}
	out := make([]numbering.Result, len(queries))
	for i, q := range queries {
		out[i] = numbering.Result{Name: q.Name, Seq: q.Seq}
		for _, d := range e.Domains[q.Seq] {
			if d.Scheme == "" || d.Scheme == req.Scheme {
				out[i].Domains = append(out[i].Domains, d)
			}
		}
	}
	return out, nil
}

// Calls returns a copy of the recorded invocations.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}
