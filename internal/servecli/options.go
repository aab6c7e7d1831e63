// internal/servecli/options.go
package servecli

import (
	"errors"
	"fmt"
	"io"

	"github.com/namsral/flag"

	"abtools/internal/clibase"
	"abtools/internal/cliutil"
	"abtools/internal/version"
)

// Options holds all abserve flags.
type Options struct {
	clibase.Engine

	Listen   string
	Scheme   string
	Chain    string
	Species  []string
	MaxBatch int
	Version  bool
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	clibase.RegisterEngine(fs, &opt.Engine)
	fs.StringVar(&opt.Listen, "listen", "", "listen address (default from config, else :8080)")
	fs.StringVar(&opt.Scheme, "scheme", "", "default numbering scheme (default from config)")
	fs.StringVar(&opt.Chain, "chain", "", "default chain H | L (default from config)")
	fs.Var(cliutil.StringList{Dst: &opt.Species}, "species", "default germline species (repeatable or comma-separated)")
	fs.IntVar(&opt.MaxBatch, "max-batch", 1000, "sequences accepted per request [1000]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if opt.MaxBatch <= 0 {
		return opt, errors.New("--max-batch must be > 0")
	}
	return opt, clibase.ValidateEngine(&opt.Engine)
}

// Usage returns the abserve help printer for fs.
func Usage(fs *flag.FlagSet) clibase.Usage {
	return func(out io.Writer) {
		def := func(name string) string {
			if f := fs.Lookup(name); f != nil {
				return f.DefValue
			}
			return ""
		}
		fmt.Fprintln(out, "abserve – antibody numbering over HTTP/JSON")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  abserve [--listen :8080] [--config-file abtools.yaml]")

		fmt.Fprintln(out, "\nServer:")
		fmt.Fprintln(out, "      --listen addr           Listen address [from config]")
		fmt.Fprintln(out, "      --scheme string         Default scheme [from config]")
		fmt.Fprintln(out, "      --chain H|L             Default chain [from config]")
		fmt.Fprintln(out, "      --species list          Default germline species [from config]")
		fmt.Fprintf(out, "      --max-batch int         Sequences accepted per request [%s]\n", def("max-batch"))

		fmt.Fprintln(out, "\nEngine:")
		fmt.Fprintln(out, "      --anarci path           ANARCI executable [from config]")
		fmt.Fprintf(out, "      --ncpu int              CPUs per ANARCI process (0=auto) [%s]\n", def("ncpu"))
		fmt.Fprintln(out, "      --config-file file      YAML settings file")
		fmt.Fprintln(out, "      --log spec              Logging spec, e.g. abtools.server=DEBUG")

		fmt.Fprintln(out, "\nEndpoints:")
		fmt.Fprintln(out, "  POST /v1/number /v1/numbered /v1/regions /v1/species /v1/similarity")
		fmt.Fprintln(out, "  GET  /healthz /metrics")

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
		fmt.Fprintf(out, "\nEvery flag can also be set as %s_<FLAG>, e.g. %s_LISTEN=:9000.\n", clibase.EnvPrefix, clibase.EnvPrefix)
	}
}
