// core/regions/extract.go
package regions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"abtools-core/numbering"
)

// ErrInvalidScheme is returned for schemes without a breakpoint table.
var ErrInvalidScheme = errors.New("invalid numbering scheme")

// Lookup selects the breakpoint table for scheme (case-insensitive) and
// chain. The scheme is checked first, so an unknown scheme fails the same
// way for every chain.
func Lookup(scheme string, chain numbering.Chain) (Table, error) {
	ct, ok := tables[strings.ToLower(strings.TrimSpace(scheme))]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrInvalidScheme, scheme)
	}
	switch chain {
	case numbering.Heavy:
		return ct.heavy, nil
	case numbering.Light:
		return ct.light, nil
	}
	return Table{}, fmt.Errorf("%w: %q (want H or L)", numbering.ErrInvalidChain, string(chain))
}

// Regions holds the residue string of every region of one domain.
type Regions struct {
	Scheme string
	Chain  numbering.Chain
	Seq    [NumRegions]string
}

// Key returns the prefixed name of r, e.g. vh_cdr3.
func (rs Regions) Key(r Region) string {
	return rs.Chain.Prefix() + "_" + r.String()
}

// Get returns the residues of r, gaps included.
func (rs Regions) Get(r Region) string { return rs.Seq[r] }

// Map returns the prefixed-name mapping. Every region is present, possibly
// empty.
func (rs Regions) Map() map[string]string {
	m := make(map[string]string, NumRegions)
	for _, r := range All {
		m[rs.Key(r)] = rs.Seq[r]
	}
	return m
}

// Keys returns the prefixed names in sequence order.
func (rs Regions) Keys() []string {
	out := make([]string, NumRegions)
	for i, r := range All {
		out[i] = rs.Key(r)
	}
	return out
}

// Joined concatenates the regions fwr1..fwr4.
func (rs Regions) Joined() string {
	return strings.Join(rs.Seq[:], "")
}

// Extract partitions numbered residues into regions. Residues outside every
// interval are dropped.
func Extract(residues []numbering.Residue, scheme string, chain numbering.Chain) (Regions, error) {
	t, err := Lookup(scheme, chain)
	if err != nil {
		return Regions{}, err
	}
	var buf [NumRegions]strings.Builder
	for _, res := range residues {
		if r, ok := t.Find(res.Pos); ok {
			buf[r].WriteByte(res.AA)
		}
	}
	out := Regions{Scheme: strings.ToLower(scheme), Chain: chain}
	for i := range buf {
		out.Seq[i] = buf[i].String()
	}
	return out, nil
}

// ExtractSeq numbers seq and extracts the regions of its first domain.
func ExtractSeq(ctx context.Context, eng numbering.Engine, seq, scheme string, chain numbering.Chain) (Regions, error) {
	if _, err := Lookup(scheme, chain); err != nil {
		return Regions{}, err
	}
	res, err := numbering.Run(ctx, eng, seq, numbering.Options{Scheme: scheme, Chain: chain})
	if err != nil {
		return Regions{}, err
	}
	d, _ := res.First()
	return Extract(d.Residues, scheme, chain)
}

// FromResult extracts the regions of a numbered result's first domain.
func FromResult(res numbering.Result, scheme string, chain numbering.Chain) (Regions, error) {
	d, ok := res.First()
	if !ok {
		return Regions{}, &numbering.InvalidSequenceError{Seq: res.Seq}
	}
	return Extract(d.Residues, scheme, chain)
}
