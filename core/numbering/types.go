// core/numbering/types.go
package numbering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Chain selects the antibody chain a sequence is numbered as.
type Chain string

const (
	Heavy Chain = "H"
	Light Chain = "L"
)

// DefaultScheme is used when Options.Scheme is empty.
const DefaultScheme = "imgt"

// DefaultSpecies is the germline allow-list used when germline assignment is
// requested without an explicit list.
var DefaultSpecies = []string{"human", "mouse"}

// ParseChain accepts H/L (any case) and the words heavy/light.
func ParseChain(s string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "heavy", "vh":
		return Heavy, nil
	case "l", "light", "vl":
		return Light, nil
	}
	return "", fmt.Errorf("%w: %q (want H or L)", ErrInvalidChain, s)
}

// Allow expands the chain into the engine's chain-type letters. Light covers
// both kappa and lambda.
func (c Chain) Allow() []string {
	switch c {
	case Heavy:
		return []string{"H"}
	case Light:
		return []string{"K", "L"}
	}
	return nil
}

// Prefix is the region key prefix: vh for heavy, vl for light.
func (c Chain) Prefix() string {
	if c == Heavy {
		return "vh"
	}
	return "vl"
}

func (c Chain) valid() bool { return c == Heavy || c == Light }

// Residue is one numbered position. Ins is 0 when the position carries no
// insertion code. AA is an amino-acid letter or '-' for an empty position.
type Residue struct {
	Pos int
	Ins byte
	AA  byte
}

// Label renders the position as the engine prints it, e.g. "111" or "111A".
func (r Residue) Label() string {
	if r.Ins == 0 || r.Ins == ' ' {
		return strconv.Itoa(r.Pos)
	}
	return strconv.Itoa(r.Pos) + string(r.Ins)
}

// Hit is the most significant HMM hit reported for a domain.
type Hit struct {
	Species   string
	ChainType string
	EValue    float64
	Score     float64
	Start     int // first query index covered by the domain
	End       int // last query index covered by the domain
}

// Germlines holds the most sequence-identical germline genes.
type Germlines struct {
	Species   string
	VGene     string
	VIdentity float64
	JGene     string
	JIdentity float64
}

// Domain is one numbered variable domain.
type Domain struct {
	Scheme    string
	Residues  []Residue
	Hit       Hit
	Germlines *Germlines // nil unless germline assignment was requested
}

// Sequence concatenates residue characters in numbering order, gaps included.
func (d Domain) Sequence() string {
	b := make([]byte, len(d.Residues))
	for i, r := range d.Residues {
		b[i] = r.AA
	}
	return string(b)
}

// Result is the engine outcome for one query. No domains means the engine
// could not number the sequence.
type Result struct {
	Name    string
	Seq     string
	Domains []Domain
}

// OK reports whether at least one domain was numbered.
func (r Result) OK() bool { return len(r.Domains) > 0 }

// First returns the first numbered domain.
func (r Result) First() (Domain, bool) {
	if len(r.Domains) == 0 {
		return Domain{}, false
	}
	return r.Domains[0], true
}

// Query is a named sequence handed to an Engine.
type Query struct {
	Name string
	Seq  string
}

// Request carries engine parameters shared by every query of a call.
type Request struct {
	Scheme   string
	Allow    []string // chain-type letters, e.g. H or K,L
	Germline bool
	Species  []string
}

// Key is a stable string form of the request, used for caching.
func (r Request) Key() string {
	return fmt.Sprintf("%s|%s|%t|%s", r.Scheme, strings.Join(r.Allow, ","), r.Germline, strings.Join(r.Species, ","))
}

// Engine numbers sequences. It returns exactly one Result per query, in
// query order.
type Engine interface {
	Number(ctx context.Context, queries []Query, req Request) ([]Result, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, queries []Query, req Request) ([]Result, error)

func (f EngineFunc) Number(ctx context.Context, queries []Query, req Request) ([]Result, error) {
	return f(ctx, queries, req)
}
