// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"abtools-core/numbering"
	"abtools/internal/cmdutil"
	"abtools/internal/pipeline"
	"abtools/internal/runutil"
	"abtools/internal/writers"
)

type Options struct {
	Inline   []numbering.Query
	SeqFiles []string

	Threads   int
	BatchSize int
	Unique    bool

	Quiet           bool
	NoMatchExitCode int
}

type VisitorFunc[T, U any] func(pipeline.Item[T]) (keep bool, out U, err error)

type WriterFactory[U any] interface {
	Start(out io.Writer, bufSize int) (chan<- U, <-chan error)
}

// Run drives work over every input through the pipeline, keeps what visit
// accepts and streams it to the writer. It returns the process exit code.
func Run[T, U any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	work pipeline.WorkFunc[T],
	visit VisitorFunc[T, U],
	wf WriterFactory[U],
) int {
	outw := bufio.NewWriter(stdout)

	batch, warns := runutil.ValidateBatching(o.BatchSize, len(o.Inline), len(o.SeqFiles) > 0)
	for _, w := range warns {
		cmdutil.Warnf(stderr, o.Quiet, "%s", w)
	}
	thr := runutil.EffectiveThreads(o.Threads)

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, perr := cmdutil.RunStream[T, U](
		ctx,
		pipeline.Config{
			Threads:   thr,
			BatchSize: batch,
			Unique:    o.Unique,
		},
		o.Inline,
		o.SeqFiles,
		work,
		visit,
		func(x U) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}
