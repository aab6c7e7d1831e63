// internal/clibase/usage.go
package clibase

import (
	"fmt"
	"io"

	"github.com/namsral/flag"

	"abtools/internal/version"
)

// Usage prints the help text of a tool to out.
type Usage func(out io.Writer)

// UsageCommon builds the shared help text for fs. extra prints the
// tool-specific sections; engine adds the ANARCI/config block.
func UsageCommon(fs *flag.FlagSet, name, tagline string, engine bool, extra func(out io.Writer, def func(string) string)) Usage {
	return func(out io.Writer) {
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		fmt.Fprintf(out, "%s – %s\n\n", name, tagline)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -s, --sequences file        FASTA file(s) (repeatable, .gz ok) or '-' for STDIN")

		if engine {
			fmt.Fprintln(out, "\nEngine:")
			fmt.Fprintln(out, "      --anarci path           ANARCI executable [from config]")
			fmt.Fprintf(out, "      --ncpu int              CPUs per ANARCI process (0=auto) [%s]\n", def("ncpu"))
			fmt.Fprintln(out, "      --config-file file      YAML settings file")
			fmt.Fprintln(out, "      --log spec              Logging spec, e.g. abtools.anarci=DEBUG")
		}

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))
		fmt.Fprintf(out, "      --batch-size int        Sequences per engine call (0=default) [%s]\n", def("batch-size"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output: text | json | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --no-match-exit-code int  Exit code when nothing was reported [%s]\n", def("no-match-exit-code"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress non-essential warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "      --examples              Print quickstart examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
		fmt.Fprintf(out, "\nEvery flag can also be set as %s_<FLAG>, e.g. %s_THREADS=4.\n", EnvPrefix, EnvPrefix)
	}
}
