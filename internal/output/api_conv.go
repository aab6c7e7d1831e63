// internal/output/api_conv.go
package output

import (
	"abtools-core/numbering"
	"abtools/pkg/api"
)

// ToAPIDomain converts a numbered domain to the v1 wire schema.
func ToAPIDomain(d numbering.Domain) api.DomainV1 {
	v := api.DomainV1{
		Species:   d.Hit.Species,
		ChainType: d.Hit.ChainType,
		EValue:    d.Hit.EValue,
		Score:     d.Hit.Score,
		Start:     d.Hit.Start,
		End:       d.Hit.End,
		Numbered:  d.Sequence(),
		Residues:  make([]api.ResidueV1, len(d.Residues)),
	}
	for i, r := range d.Residues {
		v.Residues[i] = api.ResidueV1{Pos: r.Pos, AA: string(r.AA)}
		if r.Ins != 0 && r.Ins != ' ' {
			v.Residues[i].Ins = string(r.Ins)
		}
	}
	if g := d.Germlines; g != nil {
		v.Germlines = &api.GermlinesV1{
			Species:   g.Species,
			VGene:     g.VGene,
			VIdentity: g.VIdentity,
			JGene:     g.JGene,
			JIdentity: g.JIdentity,
		}
	}
	return v
}

// ToAPINumbering converts a full numbering result.
func ToAPINumbering(r Record) api.NumberingV1 {
	v := api.NumberingV1{
		Name:       r.Result.Name,
		Seq:        r.Result.Seq,
		Scheme:     r.Scheme,
		Chain:      string(r.Chain),
		Domains:    make([]api.DomainV1, 0, len(r.Result.Domains)),
		SourceFile: r.SourceFile,
	}
	for _, d := range r.Result.Domains {
		v.Domains = append(v.Domains, ToAPIDomain(d))
	}
	return v
}

func ToAPIRegions(r Record) api.RegionsV1 {
	return api.RegionsV1{
		Name:       r.Result.Name,
		Scheme:     r.Scheme,
		Chain:      string(r.Chain),
		Regions:    r.Regions.Map(),
		SourceFile: r.SourceFile,
	}
}

func ToAPINumbered(r Record) api.NumberedV1 {
	return api.NumberedV1{
		Name:       r.Result.Name,
		Scheme:     r.Scheme,
		Chain:      string(r.Chain),
		Numbered:   r.Numbered(),
		SourceFile: r.SourceFile,
	}
}

func ToAPISpecies(r Record) api.SpeciesV1 {
	return api.SpeciesV1{Name: r.Result.Name, Species: r.Species(), SourceFile: r.SourceFile}
}

// ToAPI converts r to the wire type of view.
func ToAPI(view string, r Record) any {
	switch view {
	case ViewRegions:
		return ToAPIRegions(r)
	case ViewNumbered:
		return ToAPINumbered(r)
	case ViewSpecies:
		return ToAPISpecies(r)
	}
	return ToAPINumbering(r)
}

// ToAPIScore converts a similarity score.
func ToAPIScore(s Score) api.SimilarityV1 {
	return api.SimilarityV1{
		A:          s.A,
		B:          s.B,
		Mode:       string(s.Mode),
		Percent:    s.Counts.Percent(),
		Identities: s.Counts.Identities,
		Mismatches: s.Counts.Mismatches,
		Gaps:       s.Counts.Gaps,
		SourceFile: s.SourceFile,
	}
}
