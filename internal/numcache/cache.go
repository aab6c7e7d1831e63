// internal/numcache/cache.go
package numcache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"abtools-core/numbering"
	"abtools/internal/logging"
)

var logger = logging.GetLogger("abtools.numcache")

// Engine caches per-sequence numbering results in front of another engine.
// Only cache misses reach the wrapped engine, in a single call per batch.
type Engine struct {
	next   numbering.Engine
	items  *cache.Cache
	ttl    time.Duration
	shared Store
	hits   atomic.Int64
	misses atomic.Int64
}

var _ numbering.Engine = (*Engine)(nil)

// New wraps next. Entries live for ttl and expired ones are swept every
// cleanup interval.
func New(next numbering.Engine, ttl, cleanup time.Duration) *Engine {
	return &Engine{next: next, items: cache.New(ttl, cleanup), ttl: ttl}
}

// WithStore adds a shared second level behind the in-process cache.
// Store failures are logged and treated as misses.
func (e *Engine) WithStore(s Store) *Engine {
	e.shared = s
	return e
}

func (e *Engine) lookup(ctx context.Context, k string) ([]numbering.Domain, bool) {
	if v, ok := e.items.Get(k); ok {
		return v.([]numbering.Domain), true
	}
	if e.shared == nil {
		return nil, false
	}
	ds, ok, err := e.shared.Get(ctx, k)
	if err != nil {
		logger.Warningf("shared cache: %v", err)
		return nil, false
	}
	if ok {
		e.items.SetDefault(k, ds)
	}
	return ds, ok
}

func (e *Engine) store(ctx context.Context, k string, ds []numbering.Domain) {
	e.items.SetDefault(k, ds)
	if e.shared == nil {
		return
	}
	if err := e.shared.Set(ctx, k, ds, e.ttl); err != nil {
		logger.Warningf("shared cache: %v", err)
	}
}

// cloneDomains gives every caller its own residues so that results handed
// out can be modified without touching cached entries.
func cloneDomains(ds []numbering.Domain) []numbering.Domain {
	if ds == nil {
		return nil
	}
	out := make([]numbering.Domain, len(ds))
	for i, d := range ds {
		d.Residues = append([]numbering.Residue(nil), d.Residues...)
		if d.Germlines != nil {
			g := *d.Germlines
			d.Germlines = &g
		}
		out[i] = d
	}
	return out
}

func key(req numbering.Request, seq string) string {
	return fmt.Sprintf("%s|%s", req.Key(), seq)
}

// Number serves cached queries and forwards the rest. Identical sequences
// within one batch are forwarded once.
func (e *Engine) Number(ctx context.Context, queries []numbering.Query, req numbering.Request) ([]numbering.Result, error) {
	out := make([]numbering.Result, len(queries))
	pending := map[string][]int{}
	var miss []numbering.Query
	for i, q := range queries {
		out[i] = numbering.Result{Name: q.Name, Seq: q.Seq}
		k := key(req, q.Seq)
		if ds, ok := e.lookup(ctx, k); ok {
			out[i].Domains = cloneDomains(ds)
			e.hits.Add(1)
			continue
		}
		if _, seen := pending[k]; !seen {
			miss = append(miss, q)
		}
		pending[k] = append(pending[k], i)
	}
	if len(miss) == 0 {
		return out, nil
	}
	e.misses.Add(int64(len(miss)))
	logger.Debugf("%d cached, %d forwarded", len(queries)-len(miss), len(miss))

	res, err := e.next.Number(ctx, miss, req)
	if err != nil {
		return nil, err
	}
	if len(res) != len(miss) {
		return nil, fmt.Errorf("numbering engine returned %d results for %d queries", len(res), len(miss))
	}
	for j, q := range miss {
		k := key(req, q.Seq)
		e.store(ctx, k, cloneDomains(res[j].Domains))
		for _, i := range pending[k] {
			out[i].Domains = cloneDomains(res[j].Domains)
		}
	}
	return out, nil
}

// Stats reports cache hits, misses and the number of live entries.
func (e *Engine) Stats() (hits, misses int64, items int) {
	return e.hits.Load(), e.misses.Load(), e.items.ItemCount()
}

// Flush drops every cached entry.
func (e *Engine) Flush() { e.items.Flush() }
