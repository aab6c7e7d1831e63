// pkg/api/numbering_v1.go
package api

// ResidueV1 is one numbered position. Ins is "" when there is no insertion
// code.
type ResidueV1 struct {
	Pos int    `json:"pos"`
	Ins string `json:"ins,omitempty"`
	AA  string `json:"aa"`
}

// GermlinesV1 is the germline assignment of a domain.
type GermlinesV1 struct {
	Species   string  `json:"species"`
	VGene     string  `json:"v_gene"`
	VIdentity float64 `json:"v_identity"`
	JGene     string  `json:"j_gene"`
	JIdentity float64 `json:"j_identity"`
}

// DomainV1 is one numbered variable domain.
type DomainV1 struct {
	Species   string       `json:"species"`
	ChainType string       `json:"chain_type"`
	EValue    float64      `json:"evalue"`
	Score     float64      `json:"score"`
	Start     int          `json:"start"`
	End       int          `json:"end"`
	Germlines *GermlinesV1 `json:"germlines,omitempty"`
	Numbered  string       `json:"numbered"`
	Residues  []ResidueV1  `json:"residues"`
}

// NumberingV1 is the stable JSON/JSONL schema for full numbering output.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type NumberingV1 struct {
	Name       string     `json:"name"`
	Seq        string     `json:"seq"`
	Scheme     string     `json:"scheme"`
	Chain      string     `json:"chain"`
	Domains    []DomainV1 `json:"domains"`
	SourceFile string     `json:"source_file,omitempty"`
}

// RegionsV1 maps prefixed region names (vh_fwr1 … vh_fwr4) to residues.
type RegionsV1 struct {
	Name       string            `json:"name"`
	Scheme     string            `json:"scheme"`
	Chain      string            `json:"chain"`
	Regions    map[string]string `json:"regions"`
	SourceFile string            `json:"source_file,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// NumberedV1 carries the gapped numbered sequence of the first domain.
type NumberedV1 struct {
	Name       string `json:"name"`
	Scheme     string `json:"scheme"`
	Chain      string `json:"chain"`
	Numbered   string `json:"numbered"`
	SourceFile string `json:"source_file,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SpeciesV1 carries the species assigned to the first domain.
type SpeciesV1 struct {
	Name       string `json:"name"`
	Species    string `json:"species"`
	SourceFile string `json:"source_file,omitempty"`
	Error      string `json:"error,omitempty"`
}
