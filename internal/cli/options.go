// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"math"

	flag "github.com/spf13/pflag"

	"pzdehmm/internal/version"
)

// Options holds all CLI flags and arguments. Path fields left empty and
// threshold fields left NaN fall back to the config layer's defaults.
type Options struct {
	// Input / output
	Input     string // protein FASTA (ORFs)
	OutPrefix string // output prefix; report lands at <prefix>.filtered.csv
	HMMDB     string // HMM database path
	Domtblout string // reuse an existing domain table instead of running hmmsearch

	// hmmsearch parameters
	Evalue     float64
	EvalueSet  bool
	Threads    int
	ThreadsSet bool

	// Hit thresholds (NaN = not supplied)
	MinScore    float64
	MinModelCov float64
	MinSeqCov   float64

	// Annotation sources
	KOMap     string
	SymbolMap string
	AnnotDB   string // SQLite store; overrides the two text maps

	// Misc
	ConfigFile string
	Quiet      bool
	Version    bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: detect plasticizer-degrading enzyme genes with HMMER

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVarP(&opt.Input, "input", "i", "", "input protein FASTA file (e.g. ORFs.faa) [*]")
	fs.StringVarP(&opt.OutPrefix, "output", "o", "", "output prefix (e.g. results) [*]")
	fs.StringVar(&opt.HMMDB, "hmm-db", "", "path to HMM database [data/PzDE-HMM.hmm]")
	fs.StringVar(&opt.Domtblout, "domtblout", "", "reuse an existing --domtblout table (skips hmmsearch)")

	fs.Float64Var(&opt.Evalue, "evalue", 1e-5, "hmmsearch E-value threshold [1e-5]")
	fs.IntVarP(&opt.Threads, "threads", "n", 4, "number of CPUs for hmmsearch [4]")

	fs.Float64Var(&opt.MinScore, "min-score", 0, "minimum full bit score (e.g. 50)")
	fs.Float64Var(&opt.MinModelCov, "min-modelcov", 0, "minimum model coverage (e.g. 0.7)")
	fs.Float64Var(&opt.MinSeqCov, "min-seqcov", 0, "minimum sequence coverage (e.g. 0.7)")

	fs.StringVar(&opt.KOMap, "ko-map", "", "KO mapping file [data/hmm_label-KO.txt]")
	fs.StringVar(&opt.SymbolMap, "symbol-map", "", "gene symbol mapping file [data/hmm_label-symbol.txt]")
	fs.StringVar(&opt.AnnotDB, "annot-db", "", "SQLite annotation store (overrides --ko-map/--symbol-map)")

	fs.StringVar(&opt.ConfigFile, "config", "", "YAML config file with defaults")
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "suppress progress and warnings on stderr")
	fs.BoolVarP(&opt.Version, "version", "v", false, "print version and exit")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	opt.EvalueSet = fs.Changed("evalue")
	opt.ThreadsSet = fs.Changed("threads")

	// A threshold the caller never set must not reject anything downstream.
	if !fs.Changed("min-score") {
		opt.MinScore = math.NaN()
	}
	if !fs.Changed("min-modelcov") {
		opt.MinModelCov = math.NaN()
	}
	if !fs.Changed("min-seqcov") {
		opt.MinSeqCov = math.NaN()
	}

	// Validation
	if opt.Input == "" && opt.Domtblout == "" {
		return opt, errors.New("provide --input or --domtblout")
	}
	if opt.OutPrefix == "" {
		return opt, errors.New("--output prefix is required")
	}
	if opt.Evalue < 0 {
		return opt, errors.New("--evalue must be ≥ 0")
	}
	if opt.Threads < 1 {
		return opt, errors.New("--threads must be ≥ 1")
	}
	if c := opt.MinModelCov; !math.IsNaN(c) && (c < 0 || c > 1) {
		return opt, fmt.Errorf("--min-modelcov must be in [0,1], got %v", c)
	}
	if c := opt.MinSeqCov; !math.IsNaN(c) && (c < 0 || c > 1) {
		return opt, fmt.Errorf("--min-seqcov must be in [0,1], got %v", c)
	}
	return opt, nil
}
