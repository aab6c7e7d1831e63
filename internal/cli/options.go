// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/namsral/flag"

	"abtools/internal/clibase"
	"abtools/internal/cliutil"
	"abtools/internal/output"
)

// Options holds all abnum flags and arguments.
type Options struct {
	clibase.Common
	clibase.Engine

	// Sequences given inline with --sequence
	Inline []string

	// Numbering
	What     string
	Scheme   string // "" = from config
	Chain    string // "" = from config
	Germline bool
	Species  []string
	Unique   bool
}

// NewFlagSet returns the abnum FlagSet.
func NewFlagSet(name string) *flag.FlagSet { return clibase.NewFlagSet(name) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	noHeader := clibase.Register(fs, &opt.Common)
	clibase.RegisterEngine(fs, &opt.Engine)

	fs.Var(cliutil.StringList{Dst: &opt.Inline}, "sequence", "amino-acid sequence (repeatable)")
	fs.Var(cliutil.StringList{Dst: &opt.Inline}, "i", "alias of --sequence")
	fs.StringVar(&opt.What, "what", output.ViewRegions, "report: regions | numbered | species | residues [regions]")
	fs.StringVar(&opt.What, "w", output.ViewRegions, "alias of --what")
	fs.StringVar(&opt.Scheme, "scheme", "", "numbering scheme: imgt | aho | chothia | kabat | martin | wolfguy [imgt]")
	fs.StringVar(&opt.Chain, "chain", "", "chain: H | L [H]")
	fs.BoolVar(&opt.Germline, "germline", false, "assign germline genes [false]")
	fs.Var(cliutil.StringList{Dst: &opt.Species}, "species", "germline species allow-list (repeatable) [human,mouse]")
	fs.BoolVar(&opt.Unique, "unique", false, "skip repeated sequences [false]")
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
	if err := clibase.ValidateEngine(&opt.Engine); err != nil {
		return opt, err
	}

	if len(opt.Inline) == 0 && len(opt.SeqFiles) == 0 {
		return opt, errors.New("provide --sequence or at least one FASTA file")
	}
	opt.What = strings.ToLower(opt.What)
	switch opt.What {
	case output.ViewRegions, output.ViewNumbered, output.ViewSpecies, output.ViewResidues:
	default:
		return opt, fmt.Errorf("invalid --what %q (want %s)", opt.What, strings.Join(output.Views, " | "))
	}
	if len(opt.Species) > 0 && !opt.Germline && opt.What != output.ViewSpecies {
		return opt, errors.New("--species requires --germline")
	}
	return opt, nil
}

// Usage returns the abnum help printer for fs.
func Usage(fs *flag.FlagSet) clibase.Usage {
	return clibase.UsageCommon(fs, "abnum", "antibody numbering and region extraction", true, func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  abnum --sequence QVQLVESGG... [--chain H] [--scheme imgt]")
		fmt.Fprintln(out, "  abnum --what numbered --chain L antibodies.fa.gz")

		fmt.Fprintln(out, "\nNumbering:")
		fmt.Fprintln(out, "  -i, --sequence string       Amino-acid sequence (repeatable)")
		fmt.Fprintf(out, "  -w, --what string           Report: regions | numbered | species | residues [%s]\n", def("what"))
		fmt.Fprintln(out, "      --scheme string         Scheme: imgt | aho | chothia | kabat | martin | wolfguy [imgt]")
		fmt.Fprintln(out, "      --chain string          Chain: H | L [H]")
		fmt.Fprintf(out, "      --germline              Assign germline genes [%s]\n", def("germline"))
		fmt.Fprintln(out, "      --species string        Germline species allow-list (repeatable) [human,mouse]")
		fmt.Fprintf(out, "      --unique                Skip repeated sequences [%s]\n", def("unique"))
	})
}

// PrintExamples prints the abnum quickstart.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "abnum", func(w io.Writer) {
		fmt.Fprintln(w, "  # IMGT regions of one heavy chain")
		fmt.Fprintln(w, "  abnum --sequence QVQLVESGGGVVQPGRSLRLDCKASGITFSNSGMHWVRQAPGKGLEWVAVIWYDGSKRYYADSVKGRFTISRNSKNTLFLQMNSLRAEDTAVYYCATNDDYWGQGTLVTTVSS")
		fmt.Fprintln(w, "\n  # Kabat-numbered light chains from a FASTA file, as JSON lines")
		fmt.Fprintln(w, "  abnum --chain L --scheme kabat --what numbered -o jsonl light.fa")
		fmt.Fprintln(w, "\n  # Species of every sequence on stdin")
		fmt.Fprintln(w, "  cat vh.fa | abnum --what species -")
	})
}
