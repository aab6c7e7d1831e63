// internal/output/record.go
package output

import (
	"abtools-core/numbering"
	"abtools-core/regions"
	"abtools-core/similarity"
)

// Record is one numbered sequence ready for presentation.
type Record struct {
	SourceFile string
	Scheme     string
	Chain      numbering.Chain
	Result     numbering.Result
	Regions    regions.Regions // set for ViewRegions
}

func (r Record) first() numbering.Domain {
	d, _ := r.Result.First()
	return d
}

// Numbered is the gapped residue string of the first domain.
func (r Record) Numbered() string { return r.first().Sequence() }

// Species is the species label of the first domain.
func (r Record) Species() string { return r.first().Hit.Species }

// Score is one pairwise similarity.
type Score struct {
	SourceFile string
	A, B       string
	Mode       similarity.Mode
	Counts     similarity.Counts

	Top, Bottom string // aligned rows, for pretty blocks
}

// Alignment reassembles the aligned rows and their counts.
func (s Score) Alignment() similarity.Alignment {
	return similarity.Alignment{Top: s.Top, Bottom: s.Bottom, Counts: s.Counts}
}
