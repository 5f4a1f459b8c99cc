// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	flag "github.com/spf13/pflag"

	"pzdehmm-core/annot"
	"pzdehmm-core/domtbl"
	"pzdehmm-core/filter"
	"pzdehmm/internal/annotdb"
	"pzdehmm/internal/cli"
	"pzdehmm/internal/cmdutil"
	"pzdehmm/internal/config"
	"pzdehmm/internal/hmmer"
	"pzdehmm/internal/output"
	"pzdehmm/internal/pipeline"
	"pzdehmm/internal/version"
	"pzdehmm/internal/writers"
)

// runConfig is the materialized run: flags merged over the config layer.
type runConfig struct {
	input      string
	outPrefix  string
	hmmDB      string
	domtblout  string
	evalue     float64
	threads    int
	koMap      string
	symbolMap  string
	annotDB    string
	quiet      bool
	thresholds filter.Config
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("pzdehmm")
	fs.SetOutput(stderr)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "pzdehmm version %s\n", version.Version)
		return 0
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	rc := materialize(opts, cfg)

	src, code := tableSource(rc, stderr)
	if code != 0 {
		return code
	}

	tablePath, err := src.Produce(parent)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	table, err := os.Open(tablePath)
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to read %s: %v\n", tablePath, err)
		return 1
	}
	defer func() { _ = table.Close() }()

	ko, symbol := loadAnnotations(rc, stderr)

	outPath := rc.outPrefix + ".filtered.csv"
	dst, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: could not write output file %s: %v\n", outPath, err)
		return 1
	}

	cmdutil.Infof(stderr, rc.quiet, "Parsing and filtering HMM hits...")
	outw := bufio.NewWriter(dst)
	in, writeErr := writers.StartReportWriter(outw, true, 64)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	st, perr := pipeline.ForEachHit(ctx, rc.thresholds, table, func(h domtbl.Hit) error {
		select {
		case in <- output.Row{Hit: h, KO: ko.Get(h.Query), Symbol: symbol.Get(h.Query)}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(in)
	werr := <-writeErr

	if e := outw.Flush(); e != nil && werr == nil {
		werr = e
	}
	if e := dst.Close(); e != nil && werr == nil {
		werr = e
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 1
	}
	if werr != nil {
		if writers.IsBrokenPipe(werr) {
			return 0
		}
		fmt.Fprintf(stderr, "error: could not write output file %s: %v\n", outPath, werr)
		return 1
	}

	if st.Skipped > 0 {
		cmdutil.Warnf(stderr, rc.quiet, "skipped %d malformed table line(s)", st.Skipped)
	}
	cmdutil.Infof(stderr, rc.quiet, "Kept %d of %d hits. Results saved to %s", st.Kept, st.Lines-st.Skipped, outPath)
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// materialize resolves the effective run settings: explicit flags win, then
// the config layer, then built-in defaults.
func materialize(opts cli.Options, cfg config.Config) runConfig {
	rc := runConfig{
		input:     opts.Input,
		outPrefix: opts.OutPrefix,
		hmmDB:     opts.HMMDB,
		domtblout: opts.Domtblout,
		evalue:    opts.Evalue,
		threads:   opts.Threads,
		koMap:     opts.KOMap,
		symbolMap: opts.SymbolMap,
		annotDB:   opts.AnnotDB,
		quiet:     opts.Quiet,
	}
	if rc.hmmDB == "" {
		rc.hmmDB = cfg.HMMDB
	}
	if rc.koMap == "" {
		rc.koMap = cfg.KOMap
	}
	if rc.symbolMap == "" {
		rc.symbolMap = cfg.SymbolMap
	}
	if rc.annotDB == "" {
		rc.annotDB = cfg.AnnotDB
	}
	if !opts.EvalueSet {
		rc.evalue = cfg.Evalue
	}
	if !opts.ThreadsSet {
		rc.threads = cfg.Threads
	}

	t := filter.Default()
	switch {
	case !math.IsNaN(opts.MinScore):
		t.MinScore = opts.MinScore
	case cfg.MinScore != nil:
		t.MinScore = *cfg.MinScore
	}
	switch {
	case !math.IsNaN(opts.MinModelCov):
		t.MinModelCov = opts.MinModelCov
	case cfg.MinModelCov != nil:
		t.MinModelCov = *cfg.MinModelCov
	}
	switch {
	case !math.IsNaN(opts.MinSeqCov):
		t.MinSeqCov = opts.MinSeqCov
	case cfg.MinSeqCov != nil:
		t.MinSeqCov = *cfg.MinSeqCov
	}
	rc.thresholds = t
	return rc
}

// tableSource picks the domain-table producer and runs the fatal existence
// checks for its inputs.
func tableSource(rc runConfig, stderr io.Writer) (hmmer.Source, int) {
	if rc.domtblout != "" {
		if _, err := os.Stat(rc.domtblout); err != nil {
			fmt.Fprintf(stderr, "error: domain table not found: %s\n", rc.domtblout)
			return nil, 1
		}
		return hmmer.File(rc.domtblout), 0
	}
	for _, in := range []struct{ path, name string }{
		{rc.input, "input FASTA"},
		{rc.hmmDB, "HMM database"},
	} {
		if _, err := os.Stat(in.path); err != nil {
			fmt.Fprintf(stderr, "error: %s not found: %s\n", in.name, in.path)
			return nil, 1
		}
	}
	cmdutil.Infof(stderr, rc.quiet, "Running hmmsearch on %s...", rc.input)
	return hmmer.Search{
		Input:     rc.input,
		HMMDB:     rc.hmmDB,
		OutPrefix: rc.outPrefix,
		Evalue:    rc.evalue,
		Threads:   rc.threads,
	}, 0
}

// loadAnnotations loads the KO and symbol lookups. Failures degrade to empty
// maps with a warning; absence is silent.
func loadAnnotations(rc runConfig, stderr io.Writer) (ko, symbol annot.Map) {
	if rc.annotDB != "" {
		var err error
		ko, symbol, err = annotdb.Load(rc.annotDB)
		if err != nil {
			cmdutil.Warnf(stderr, rc.quiet, "could not read annotation store %s: %v", rc.annotDB, err)
			return annot.Map{}, annot.Map{}
		}
		return ko, symbol
	}
	var err error
	if ko, err = annot.Load(rc.koMap); err != nil {
		cmdutil.Warnf(stderr, rc.quiet, "could not read KO map file %s: %v", rc.koMap, err)
	}
	if symbol, err = annot.Load(rc.symbolMap); err != nil {
		cmdutil.Warnf(stderr, rc.quiet, "could not read symbol map file %s: %v", rc.symbolMap, err)
	}
	return ko, symbol
}
