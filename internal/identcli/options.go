// internal/identcli/options.go
package identcli

import (
	"errors"
	"fmt"
	"io"

	"github.com/namsral/flag"

	"abtools-core/similarity"
	"abtools/internal/clibase"
	"abtools/internal/cliutil"
	"abtools/internal/output"
)

// Options holds all abident flags and arguments.
type Options struct {
	clibase.Common

	A, B      string
	Reference string
	Mode      similarity.Mode
	Pretty    bool
	Sort      bool
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	var mode string

	noHeader := clibase.Register(fs, &opt.Common)
	fs.StringVar(&opt.A, "a", "", "first sequence")
	fs.StringVar(&opt.B, "b", "", "second sequence")
	fs.StringVar(&opt.Reference, "reference", "", "score every FASTA record against this sequence")
	fs.StringVar(&opt.Reference, "r", "", "alias of --reference")
	fs.StringVar(&mode, "mode", string(similarity.DefaultMode), "alignment: blastp | local [blastp]")
	fs.BoolVar(&opt.Pretty, "pretty", false, "draw the alignment under each text row [false]")
	fs.BoolVar(&opt.Sort, "sort", false, "order output by percent identity, best first [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if opt.Examples {
		return opt, clibase.ErrPrintedAndExitOK
	}
	if err := clibase.AfterParse(&opt.Common, noHeader, posArgs); err != nil {
		return opt, err
	}
	if opt.Pretty && opt.Output != output.FormatText {
		return opt, errors.New("--pretty needs --output text")
	}
	m, err := similarity.ParseMode(mode)
	if err != nil {
		return opt, err
	}
	opt.Mode = m

	pair := opt.A != "" || opt.B != ""
	switch {
	case pair && opt.Reference != "":
		return opt, errors.New("--a/--b conflicts with --reference")
	case pair && (opt.A == "" || opt.B == ""):
		return opt, errors.New("--a and --b must be supplied together")
	case pair && len(opt.SeqFiles) > 0:
		return opt, errors.New("FASTA inputs need --reference, not --a/--b")
	case !pair && opt.Reference == "":
		return opt, errors.New("provide --a/--b or --reference with FASTA inputs")
	case opt.Reference != "" && len(opt.SeqFiles) == 0:
		return opt, errors.New("--reference needs at least one FASTA file")
	}
	return opt, nil
}

// Usage returns the abident help printer for fs.
func Usage(fs *flag.FlagSet) clibase.Usage {
	return clibase.UsageCommon(fs, "abident", "pairwise percent identity", false, func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  abident --a SEQ --b SEQ [--mode blastp]")
		fmt.Fprintln(out, "  abident --reference SEQ antibodies.fa")

		fmt.Fprintln(out, "\nScoring:")
		fmt.Fprintln(out, "      --a string              First sequence")
		fmt.Fprintln(out, "      --b string              Second sequence")
		fmt.Fprintln(out, "  -r, --reference string      Score every FASTA record against this sequence")
		fmt.Fprintf(out, "      --mode string           Alignment: blastp | local [%s]\n", def("mode"))
		fmt.Fprintf(out, "      --sort                  Order by percent identity, best first [%s]\n", def("sort"))
		fmt.Fprintf(out, "      --pretty                Draw the alignment under each row (text) [%s]\n", def("pretty"))
	})
}

// PrintExamples prints the abident quickstart.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "abident", func(w io.Writer) {
		fmt.Fprintln(w, "  # Identity of two CDR-H3 loops")
		fmt.Fprintln(w, "  abident --a ARDYYGSSYWYFDV --b ARDRYGSSYWYFDV")
		fmt.Fprintln(w, "\n  # Show the alignment")
		fmt.Fprintln(w, "  abident --a ARDYYGSSYWYFDV --b ARDRYGSSYWYFDV --pretty")
		fmt.Fprintln(w, "\n  # Rank a library against a parent, local alignment, JSON lines")
		fmt.Fprintln(w, "  abident --reference QVQLVESGG... --mode local --sort -o jsonl library.fa.gz")
	})
}
