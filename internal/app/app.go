// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"

	"seqprof-core/fasta"
	"seqprof-core/impute"
	"seqprof-core/model"
	"seqprof-core/seqstats"
	"seqprof/internal/cli"
	"seqprof/internal/config"
	"seqprof/internal/fetch"
	"seqprof/internal/report"
	"seqprof/internal/version"
)

// RunContext executes one fetch → normalize → impute → summarize → persist
// pass and returns the process exit code: 0 on success, 1 on any failure
// with a human-readable message on stderr.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("seqprof")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		if errors.Is(err, cli.ErrPrintedAndExitOK) {
			cli.PrintExamples(stdout, "seqprof")
			return 0
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 1
	}
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "seqprof version %s\n", version.Version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if opts.ModelPath != "" {
		cfg.Model.Path = opts.ModelPath
	}
	if opts.OutputPath != "" {
		cfg.Output.Path = opts.OutputPath
	}
	if opts.DB != "" {
		cfg.Eutils.DB = opts.DB
	}

	src := &fetch.Source{
		BaseURL:   cfg.Eutils.BaseURL,
		DB:        cfg.Eutils.DB,
		APIKey:    cfg.APIKey(),
		Attempts:  cfg.Fetch.Attempts,
		BaseDelay: cfg.Fetch.BaseDelay,
		Client:    &http.Client{Timeout: cfg.Fetch.Timeout},
	}
	raw, err := src.Fetch(parent, opts.Identifier)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	seq := fasta.Normalize(raw)

	// Missing or corrupt prior state degrades to an empty model by contract.
	m, err := model.Load(cfg.Model.Path)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	seq = impute.Run(seq, m)
	if err := m.Save(cfg.Model.Path); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	sum := report.Summary{Length: len(seq), GCContent: seqstats.GCFraction(seq)}
	if err := report.Write(sum, cfg.Output.Path); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, sum.String())
	if !opts.Quiet {
		_, _ = fmt.Fprintf(stderr, "seqprof: %d contexts -> %s, summary -> %s\n",
			m.Len(), cfg.Model.Path, cfg.Output.Path)
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
