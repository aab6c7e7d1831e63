// internal/serveapp/app.go
package serveapp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/namsral/flag"

	"abtools-core/numbering"
	"abtools/internal/appcore"
	"abtools/internal/clibase"
	"abtools/internal/servecli"
	"abtools/internal/server"
	"abtools/internal/version"
)

// RunContext parses argv and serves the v1 API until ctx is canceled.
// A clean shutdown exits 0.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := clibase.NewFlagSet("abserve")
	fs.SetOutput(io.Discard)
	usage := servecli.Usage(fs)

	opts, err := servecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout)
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		usage(stderr)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "abserve version %s\n", version.Version)
		return 0
	}

	cfg, err := appcore.LoadSettings(opts.Engine)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	numOpts, err := appcore.NumberingOptions(cfg, opts.Scheme, opts.Chain, false, nil)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	species := opts.Species
	if len(species) == 0 {
		species = cfg.Numbering.Species
	}
	listen := opts.Listen
	if listen == "" {
		listen = cfg.Server.Listen
	}

	eng, err := appcore.BuildEngine(cfg, 1)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return serve(ctx, eng, listen, server.Options{
		Scheme:   numOpts.Scheme,
		Chain:    numOpts.Chain,
		Species:  species,
		MaxBatch: opts.MaxBatch,
	}, stderr)
}

func serve(ctx context.Context, eng numbering.Engine, listen string, o server.Options, stderr io.Writer) int {
	s := server.New(eng, o)
	err := s.ListenAndServe(ctx, listen)
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, err)
	return 3
}
