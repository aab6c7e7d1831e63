// core/numbering/run.go
package numbering

import (
	"context"
	"fmt"
	"strings"

	"abtools-core/sequence"
)

// Options mirrors the parameters of a single numbering call.
type Options struct {
	Name     string // default "<chain>-<scheme>"
	Scheme   string // default DefaultScheme
	Chain    Chain  // default Heavy
	Germline bool
	Species  []string // default DefaultSpecies when Germline is set
}

func (o Options) withDefaults() (Options, error) {
	if o.Scheme == "" {
		o.Scheme = DefaultScheme
	}
	if o.Chain == "" {
		o.Chain = Heavy
	}
	if !o.Chain.valid() {
		return o, fmt.Errorf("%w: %q (want H or L)", ErrInvalidChain, string(o.Chain))
	}
	if o.Name == "" {
		o.Name = string(o.Chain) + "-" + o.Scheme
	}
	if o.Germline && len(o.Species) == 0 {
		o.Species = append([]string(nil), DefaultSpecies...)
	}
	return o, nil
}

// Request builds the engine request for these options.
func (o Options) Request() (Request, error) {
	o, err := o.withDefaults()
	if err != nil {
		return Request{}, err
	}
	return Request{
		Scheme:   strings.ToLower(o.Scheme),
		Allow:    o.Chain.Allow(),
		Germline: o.Germline,
		Species:  append([]string(nil), o.Species...),
	}, nil
}

// Run cleans seq and numbers it. It fails with an *InvalidSequenceError when
// the engine reports no domain; engine errors are returned as they are.
func Run(ctx context.Context, eng Engine, seq string, o Options) (Result, error) {
	o, err := o.withDefaults()
	if err != nil {
		return Result{}, err
	}
	res, err := RunBatch(ctx, eng, []Query{{Name: o.Name, Seq: seq}}, o)
	if err != nil {
		return Result{}, err
	}
	if !res[0].OK() {
		return res[0], &InvalidSequenceError{Seq: res[0].Seq}
	}
	return res[0], nil
}

// RunBatch numbers many sequences in one engine call. Unnumberable queries
// come back as results without domains instead of failing the batch.
func RunBatch(ctx context.Context, eng Engine, queries []Query, o Options) ([]Result, error) {
	o, err := o.withDefaults()
	if err != nil {
		return nil, err
	}
	req, err := o.Request()
	if err != nil {
		return nil, err
	}
	if len(queries) == 0 {
		return nil, nil
	}
	clean := make([]Query, len(queries))
	for i, q := range queries {
		name := q.Name
		if name == "" {
			name = o.Name
		}
		clean[i] = Query{Name: name, Seq: sequence.Clean(q.Seq)}
	}
	res, err := eng.Number(ctx, clean, req)
	if err != nil {
		return nil, err
	}
	if len(res) != len(clean) {
		return nil, fmt.Errorf("numbering engine returned %d results for %d queries", len(res), len(clean))
	}
	for i := range res {
		if res[i].Name == "" {
			res[i].Name = clean[i].Name
		}
		if res[i].Seq == "" {
			res[i].Seq = clean[i].Seq
		}
	}
	return res, nil
}

// NumberedSeq returns the first domain's residues, gaps included, in
// numbering order.
func NumberedSeq(ctx context.Context, eng Engine, seq, scheme string, chain Chain) (string, error) {
	res, err := Run(ctx, eng, seq, Options{Scheme: scheme, Chain: chain})
	if err != nil {
		return "", err
	}
	d, _ := res.First()
	return d.Sequence(), nil
}

// Species returns the species label the engine assigned to the first domain.
// Germline assignment is requested so the label is restricted to the default
// species allow-list.
func Species(ctx context.Context, eng Engine, seq, scheme string, chain Chain) (string, error) {
	res, err := Run(ctx, eng, seq, Options{Scheme: scheme, Chain: chain, Germline: true})
	if err != nil {
		return "", err
	}
	d, _ := res.First()
	return d.Hit.Species, nil
}
