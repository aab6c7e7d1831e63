// internal/identapp/app.go
package identapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/namsral/flag"

	"abtools-core/numbering"
	"abtools-core/similarity"
	"abtools/internal/appcore"
	"abtools/internal/clibase"
	"abtools/internal/cmdutil"
	"abtools/internal/identcli"
	"abtools/internal/output"
	"abtools/internal/pipeline"
	"abtools/internal/version"
	"abtools/internal/writers"
)

// scored is the per-sequence outcome of the similarity work.
type scored struct {
	al  similarity.Alignment
	err error
}

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

	fs := clibase.NewFlagSet("abident")
	fs.SetOutput(io.Discard)
	usage := identcli.Usage(fs)

	opts, err := identcli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			usage(outw)
			return flush(outw, stderr, 0)
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			identcli.PrintExamples(outw)
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		usage(outw)
		return flush(outw, stderr, 2)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "abident version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	ref, refName := opts.Reference, "reference"
	var inline []numbering.Query
	if opts.A != "" {
		ref, refName = opts.A, "a"
		inline = []numbering.Query{{Name: "b", Seq: opts.B}}
		if _, err := similarity.Align(opts.A, opts.B, opts.Mode); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}
	if _, err := similarity.Align(ref, ref, opts.Mode); err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", refName, err)
		return 2
	}

	work := func(ctx context.Context, qs []numbering.Query) ([]scored, error) {
		out := make([]scored, len(qs))
		for i, q := range qs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			al, err := similarity.AlignPair(ref, q.Seq, opts.Mode)
			out[i] = scored{al: al, err: err}
		}
		return out, nil
	}
	visit := func(it pipeline.Item[scored]) (bool, output.Score, error) {
		if it.Value.err != nil {
			cmdutil.Warnf(stderr, opts.Quiet, "%s: %v", it.Query.Name, it.Value.err)
			return false, output.Score{}, nil
		}
		return true, output.Score{
			SourceFile: it.SourceFile,
			A:          refName,
			B:          it.Query.Name,
			Mode:       opts.Mode,
			Counts:     it.Value.al.Counts,
			Top:        it.Value.al.Top,
			Bottom:     it.Value.al.Bottom,
		}, nil
	}

	coreOpts := appcore.Options{
		Inline: inline, SeqFiles: opts.SeqFiles,
		Threads: opts.Threads, BatchSize: opts.BatchSize,
		Quiet: opts.Quiet, NoMatchExitCode: opts.NoMatchExitCode,
	}
	return appcore.Run[scored, output.Score](parent, stdout, stderr, coreOpts, work, visit,
		appcore.NewScoreWriterFactory(opts.Output, opts.Header, opts.Pretty, opts.Sort))
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
