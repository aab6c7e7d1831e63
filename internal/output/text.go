// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strings"

	"abtools-core/regions"
)

// WriteTextRecord prints the TSV row(s) of r for view.
func WriteTextRecord(w io.Writer, view string, r Record) error {
	var err error
	switch view {
	case ViewRegions:
		cols := make([]string, 0, regions.NumRegions)
		for _, reg := range regions.All {
			cols = append(cols, r.Regions.Get(reg))
		}
		_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", r.SourceFile, r.Result.Name, strings.Join(cols, "\t"))
	case ViewNumbered:
		_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", r.SourceFile, r.Result.Name, r.Numbered())
	case ViewSpecies:
		d := r.first()
		var v, j string
		if d.Germlines != nil {
			v, j = d.Germlines.VGene, d.Germlines.JGene
		}
		_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.SourceFile, r.Result.Name, d.Hit.Species, d.Hit.ChainType, v, j)
	case ViewResidues:
		for _, res := range r.first().Residues {
			if _, err = fmt.Fprintf(w, "%s\t%s\t%s\t%c\n", r.SourceFile, r.Result.Name, res.Label(), res.AA); err != nil {
				return err
			}
		}
	default:
		err = fmt.Errorf("unknown view %q", view)
	}
	return err
}

// WriteTextScore prints one abident TSV row.
func WriteTextScore(w io.Writer, s Score) error {
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\t%d\t%d\n",
		s.SourceFile, s.A, s.B, s.Mode, s.Counts.Percent(),
		s.Counts.Identities, s.Counts.Mismatches, s.Counts.Gaps)
	return err
}
