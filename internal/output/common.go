package output

import (
	"fmt"
	"strings"

	"abtools-core/numbering"
	"abtools-core/regions"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatText, FormatJSON, FormatJSONL}

// Views select what abnum reports per sequence.
const (
	ViewRegions  = "regions"
	ViewNumbered = "numbered"
	ViewSpecies  = "species"
	ViewResidues = "residues"
)

// Views lists the accepted --what values.
var Views = []string{ViewRegions, ViewNumbered, ViewSpecies, ViewResidues}

// ScoreHeader is the header row of abident text output.
const ScoreHeader = "source_file\ta\tb\tmode\tpercent\tidentities\tmismatches\tgaps"

// TextHeader returns the TSV header row for view. Region columns carry the
// chain prefix (vh_/vl_).
func TextHeader(view string, chain numbering.Chain) (string, error) {
	switch view {
	case ViewRegions:
		rs := regions.Regions{Chain: chain}
		return "source_file\tname\t" + strings.Join(rs.Keys(), "\t"), nil
	case ViewNumbered:
		return "source_file\tname\tnumbered", nil
	case ViewSpecies:
		return "source_file\tname\tspecies\tchain_type\tv_gene\tj_gene", nil
	case ViewResidues:
		return "source_file\tname\tposition\taa", nil
	}
	return "", fmt.Errorf("unknown view %q", view)
}
