// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"seqprof/internal/cliutil"
	"seqprof/internal/version"
)

// Options holds the parsed command line. Path/db fields left empty defer to
// the resolved configuration.
type Options struct {
	Identifier string // local path or remote accession (positional)

	ModelPath  string
	OutputPath string
	DB         string

	Quiet   bool
	Version bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		_, _ = fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] <identifier>\n\n", name)
		_, _ = fmt.Fprintln(out, "The identifier is a local FASTA file (plain or .gz) or a remote")
		_, _ = fmt.Fprintln(out, "nucleotide accession fetched via NCBI efetch.")
		_, _ = fmt.Fprintln(out, "\nOptions:")
		_, _ = fmt.Fprintln(out, "  -m, --model string     context-model file [kmer_model.txt]")
		_, _ = fmt.Fprintln(out, "  -o, --output string    compressed summary artifact [summary.gz]")
		_, _ = fmt.Fprintln(out, "      --db string        remote nucleotide database [nuccore]")
		_, _ = fmt.Fprintln(out, "  -q, --quiet            suppress non-essential notes [false]")
		_, _ = fmt.Fprintln(out, "  -v, --version          print version and exit [false]")
		_, _ = fmt.Fprintln(out, "      --examples         show quickstart examples and exit [false]")
		_, _ = fmt.Fprintln(out, "  -h                     show this help [false]")
		_, _ = fmt.Fprintln(out, "\nEnvironment:")
		_, _ = fmt.Fprintln(out, "  NCBI_API_KEY           appended to remote requests when set")
		_, _ = fmt.Fprintln(out, "  SEQPROF_CONFIG         path to a TOML config file")
	}
	return fs
}

// ErrPrintedAndExitOK signals that --examples output was requested; the
// caller prints it and exits 0.
var ErrPrintedAndExitOK = errors.New("printed; exit 0")

// Parse parses os.Args-style argv with a default flag set.
func Parse(argv []string) (Options, error) { return ParseArgs(NewFlagSet("seqprof"), argv) }

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool

	fs.StringVar(&o.ModelPath, "model", "", "context-model file")
	fs.StringVar(&o.ModelPath, "m", "", "alias of --model")
	fs.StringVar(&o.OutputPath, "output", "", "compressed summary artifact")
	fs.StringVar(&o.OutputPath, "o", "", "alias of --output")
	fs.StringVar(&o.DB, "db", "", "remote nucleotide database")
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress non-essential notes")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	fs.BoolVar(&o.Version, "v", false, "alias of --version")
	fs.BoolVar(&help, "h", false, "show this help")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}

	switch len(posArgs) {
	case 0:
		return o, errors.New("missing sequence identifier (local path or accession)")
	case 1:
		o.Identifier = posArgs[0]
	default:
		return o, fmt.Errorf("expected one identifier, got %d", len(posArgs))
	}
	return o, nil
}

// PrintExamples prints a tiny quickstart.
func PrintExamples(out io.Writer, name string) {
	_, _ = fmt.Fprintln(out, "Examples:")
	_, _ = fmt.Fprintf(out, "  %s NC_045512.2\n", name)
	_, _ = fmt.Fprintf(out, "  %s --model human.ctx --output chr1.gz chr1.fa.gz\n", name)
}
