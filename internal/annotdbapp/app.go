// internal/annotdbapp/app.go
package annotdbapp

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"pzdehmm-core/annot"
	"pzdehmm/internal/annotdb"
	"pzdehmm/internal/version"
)

type options struct {
	KOMap     string
	SymbolMap string
	Out       string
}

func parseArgs(fs *flag.FlagSet, argv []string) (options, error) {
	var opt options
	var help bool

	fs.StringVar(&opt.KOMap, "ko-map", "", "KO mapping file [*]")
	fs.StringVar(&opt.SymbolMap, "symbol-map", "", "gene symbol mapping file [*]")
	fs.StringVarP(&opt.Out, "out", "o", "", "SQLite annotation store to write [*]")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Out == "" {
		return opt, errors.New("--out is required")
	}
	if opt.KOMap == "" && opt.SymbolMap == "" {
		return opt, errors.New("provide --ko-map and/or --symbol-map")
	}
	return opt, nil
}

// RunContext builds a SQLite annotation store from the two text map files.
func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pzdehmm-annotdb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`pzdehmm-annotdb: compile annotation maps into a SQLite store

Version: %s

Usage of pzdehmm-annotdb:
`, version.Version)
		fs.PrintDefaults()
	}

	opt, err := parseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	ko, err := annot.Load(opt.KOMap)
	if err != nil {
		fmt.Fprintf(stderr, "error: could not read KO map file %s: %v\n", opt.KOMap, err)
		return 1
	}
	symbol, err := annot.Load(opt.SymbolMap)
	if err != nil {
		fmt.Fprintf(stderr, "error: could not read symbol map file %s: %v\n", opt.SymbolMap, err)
		return 1
	}

	if err := annotdb.Build(opt.Out, ko, symbol); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %d KO and %d symbol annotations to %s\n", len(ko), len(symbol), opt.Out)
	return 0
}
