// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/namsral/flag"

	"abtools-core/numbering"
	"abtools-core/regions"
	"abtools/internal/appcore"
	"abtools/internal/cli"
	"abtools/internal/clibase"
	"abtools/internal/cmdutil"
	"abtools/internal/output"
	"abtools/internal/pipeline"
	"abtools/internal/runutil"
	"abtools/internal/version"
	"abtools/internal/writers"
)

// flush writes buffered output and maps the outcome to an exit code.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("abnum")
	fs.SetOutput(io.Discard)
	usage := cli.Usage(fs)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		usage(outw)
		return flush(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			usage(outw)
			return flush(outw, stderr, 0)
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			cli.PrintExamples(outw)
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		usage(outw)
		return flush(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "abnum version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	cfg, err := appcore.LoadSettings(opts.Engine)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	wf := appcore.NewRecordWriterFactory(opts.Output, opts.What, "", opts.Header)
	numOpts, err := appcore.NumberingOptions(cfg, opts.Scheme, opts.Chain, opts.Germline || wf.NeedGermline(), opts.Species)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	wf.Layout.Chain = numOpts.Chain
	if opts.What == output.ViewRegions {
		if _, err := regions.Lookup(numOpts.Scheme, numOpts.Chain); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}

	eng, err := appcore.BuildEngine(cfg, runutil.EffectiveThreads(opts.Threads))
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	inline := make([]numbering.Query, len(opts.Inline))
	for i, s := range opts.Inline {
		inline[i] = numbering.Query{Seq: s}
		if len(opts.Inline) > 1 {
			inline[i].Name = fmt.Sprintf("%s-%s-%d", numOpts.Chain, numOpts.Scheme, i+1)
		}
	}

	coreOpts := appcore.Options{
		Inline: inline, SeqFiles: opts.SeqFiles,
		Threads: opts.Threads, BatchSize: opts.BatchSize, Unique: opts.Unique,
		Quiet: opts.Quiet, NoMatchExitCode: opts.NoMatchExitCode,
	}
	work := func(ctx context.Context, qs []numbering.Query) ([]numbering.Result, error) {
		return numbering.RunBatch(ctx, eng, qs, numOpts)
	}
	return appcore.Run[numbering.Result, output.Record](parent, stdout, stderr, coreOpts, work,
		recordVisitor(stderr, opts.Quiet, opts.What, numOpts), wf)
}

// recordVisitor turns numbering results into output records. Sequences
// without a numbered domain are reported and skipped.
func recordVisitor(stderr io.Writer, quiet bool, view string, o numbering.Options) appcore.VisitorFunc[numbering.Result, output.Record] {
	scheme := strings.ToLower(o.Scheme)
	return func(it pipeline.Item[numbering.Result]) (bool, output.Record, error) {
		res := it.Value
		if !res.OK() {
			cmdutil.Warnf(stderr, quiet, "%s: %v", res.Name, &numbering.InvalidSequenceError{Seq: res.Seq})
			return false, output.Record{}, nil
		}
		rec := output.Record{SourceFile: it.SourceFile, Scheme: scheme, Chain: o.Chain, Result: res}
		if view == output.ViewRegions {
			rs, err := regions.FromResult(res, o.Scheme, o.Chain)
			if err != nil {
				return false, rec, err
			}
			rec.Regions = rs
		}
		return true, rec, nil
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
