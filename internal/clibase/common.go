// internal/clibase/common.go
package clibase

import (
	"errors"
	"fmt"

	"github.com/namsral/flag"

	"abtools/internal/cliutil"
	"abtools/internal/output"
)

// EnvPrefix prefixes the environment variable of every flag:
// --scheme is also read from ABTOOLS_SCHEME.
const EnvPrefix = "ABTOOLS"

// Common holds CLI fields shared by abnum and abident.
type Common struct {
	// Input
	SeqFiles []string

	// Performance
	Threads   int
	BatchSize int

	// Output
	Output          string // text|json|jsonl
	Header          bool
	NoMatchExitCode int

	// Misc
	Quiet    bool
	Version  bool
	Examples bool
}

// sliceValue appends each value to a *[]string (for --sequences/-s)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// NewFlagSet returns a quiet ContinueOnError FlagSet that also reads
// ABTOOLS_* environment variables.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSetWithEnvPrefix(name, EnvPrefix, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// Register wires shared flags onto fs and returns a pointer to the “no-header” bool
// that the caller can use to set Common.Header = !noHeader after parsing.
func Register(fs *flag.FlagSet, c *Common) *bool {
	// Inputs
	seqVal := &sliceValue{dst: &c.SeqFiles}
	fs.Var(seqVal, "sequences", "FASTA file(s) (repeatable) or '-'")
	fs.Var(seqVal, "s", "alias of --sequences")

	// Performance
	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")
	fs.IntVar(&c.BatchSize, "batch-size", 0, "sequences per engine call (0=default) [0]")

	// Output
	fs.StringVar(&c.Output, "output", output.FormatText, "output: text | json | jsonl [text]")
	fs.StringVar(&c.Output, "o", output.FormatText, "alias of --output")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")
	fs.IntVar(&c.NoMatchExitCode, "no-match-exit-code", 1, "exit code when nothing was reported [1]")

	// Misc
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Examples, "examples", false, "print quickstart examples and exit [false]")

	return &noHeader
}

// AfterParse finalizes header and expands positionals, then runs shared validation.
func AfterParse(c *Common, noHeader *bool, posArgs []string) error {
	c.Header = !*noHeader

	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return err
		}
		c.SeqFiles = append(c.SeqFiles, exp...)
	}
	return Validate(c)
}

// Validate applies shared CLI invariants used by all tools.
func Validate(c *Common) error {
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if c.BatchSize < 0 {
		return errors.New("--batch-size must be ≥ 0")
	}
	switch c.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", c.Output)
	}
	if c.NoMatchExitCode < 0 || c.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return nil
}

// Engine holds the flags of tools that drive ANARCI.
type Engine struct {
	ConfigFile string
	Anarci     string
	NCPU       int
	LogSpec    string
}

// RegisterEngine wires the ANARCI and configuration flags onto fs.
func RegisterEngine(fs *flag.FlagSet, e *Engine) {
	fs.StringVar(&e.ConfigFile, "config-file", "", "YAML settings file")
	fs.StringVar(&e.Anarci, "anarci", "", "ANARCI executable (default from config, else ANARCI on PATH)")
	fs.IntVar(&e.NCPU, "ncpu", 0, "CPUs per ANARCI process (0=auto) [0]")
	fs.StringVar(&e.LogSpec, "log", "", "loggo spec, e.g. <root>=DEBUG")
}

// ValidateEngine checks the engine flags.
func ValidateEngine(e *Engine) error {
	if e.NCPU < 0 {
		return errors.New("--ncpu must be ≥ 0")
	}
	return nil
}
