// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"abtools-core/numbering"
	"abtools-core/sequence"
	"abtools/internal/fasta"
	"abtools/internal/logging"
	"abtools/internal/runutil"
)

var logger = logging.GetLogger("abtools.pipeline")

// Config controls the numbering pipeline.
type Config struct {
	Threads   int  // number of worker goroutines (>=1)
	BatchSize int  // sequences per engine call (>=1)
	Unique    bool // skip sequences already seen (after cleaning)
	DedupeCap int  // bound for the Unique set; 0 = runutil default
}

// Item is one processed input.
type Item[T any] struct {
	Index      int    // 0-based position over all inputs
	SourceFile string // "" for inline sequences
	Query      numbering.Query
	Value      T
}

// WorkFunc processes one batch and returns one value per query.
type WorkFunc[T any] func(ctx context.Context, queries []numbering.Query) ([]T, error)

type input struct {
	query  numbering.Query
	source string
}

type batch struct {
	seq   int
	items []input
}

type batchResult[T any] struct {
	seq     int
	items   []input
	results []T
	err     error
}

// ForEachResult numbers inline queries followed by every record of seqFiles
// and calls visit once per input in that order.
func ForEachResult(
	ctx context.Context,
	cfg Config,
	inline []numbering.Query,
	seqFiles []string,
	eng numbering.Engine,
	opts numbering.Options,
	visit func(Item[numbering.Result]) error,
) error {
	work := func(ctx context.Context, qs []numbering.Query) ([]numbering.Result, error) {
		return numbering.RunBatch(ctx, eng, qs, opts)
	}
	return Map(ctx, cfg, inline, seqFiles, work, visit)
}

// Map runs work over inline queries followed by every record of seqFiles,
// in batches of cfg.BatchSize on cfg.Threads workers, and calls visit once
// per input in input order. It returns the first error encountered
// (including context cancellation).
func Map[T any](
	ctx context.Context,
	cfg Config,
	inline []numbering.Query,
	seqFiles []string,
	work WorkFunc[T],
	visit func(Item[T]) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan batch, cfg.Threads*2)
	results := make(chan batchResult[T], cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-jobs:
					if !ok {
						return
					}
					qs := make([]numbering.Query, len(b.items))
					for i, in := range b.items {
						qs[i] = in.query
					}
					res, err := work(ctx, qs)
					if err == nil && len(res) != len(qs) {
						err = fmt.Errorf("pipeline: %d results for %d queries", len(res), len(qs))
					}
					select {
					case results <- batchResult[T]{seq: b.seq, items: b.items, results: res, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector; batches are released in feed order.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		held := map[int]batchResult[T]{}
		next, index := 0, 0
		for br := range results {
			if cerr != nil {
				continue
			}
			held[br.seq] = br
			for {
				cur, ok := held[next]
				if !ok {
					break
				}
				delete(held, next)
				next++
				if cur.err != nil {
					cerr = cur.err
					cancel()
					break
				}
				for i, r := range cur.results {
					if err := visit(Item[T]{Index: index, SourceFile: cur.items[i].source, Query: cur.items[i].query, Value: r}); err != nil {
						cerr = err
						cancel()
						break
					}
					index++
				}
				if cerr != nil {
					break
				}
			}
		}
	}()

	// Feed work
	var (
		ferr    error
		pending []input
		seq     int
		seen    *runutil.LRUSet[string]
	)
	if cfg.Unique {
		seen = runutil.NewLRUSet[string](cfg.DedupeCap)
	}
	send := func() error {
		if len(pending) == 0 {
			return nil
		}
		b := batch{seq: seq, items: pending}
		seq++
		pending = nil
		select {
		case jobs <- b:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	add := func(in input) error {
		if seen != nil && seen.Add(sequence.Clean(in.query.Seq)) {
			logger.Debugf("skipping duplicate sequence %s", in.query.Name)
			return nil
		}
		pending = append(pending, in)
		if len(pending) >= cfg.BatchSize {
			return send()
		}
		return nil
	}

	for _, q := range inline {
		if ferr = add(input{query: q}); ferr != nil {
			break
		}
	}
	if ferr == nil {
		for _, fa := range seqFiles {
			ferr = fasta.ForEach(ctx, fa, func(rec fasta.Record) error {
				return add(input{query: numbering.Query{Name: rec.ID, Seq: rec.Seq}, source: fa})
			})
			if ferr != nil {
				break
			}
		}
	}
	if ferr == nil {
		ferr = send()
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	if ferr != nil {
		return ferr
	}
	return ctx.Err()
}
