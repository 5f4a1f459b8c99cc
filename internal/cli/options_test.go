// internal/cli/options_test.go
package cli

import (
	"io"
	"math"
	"testing"
)

func parse(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("pzdehmm")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, argv)
}

func TestParseMinimal(t *testing.T) {
	opt, err := parse(t, "-i", "orfs.faa", "-o", "results")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Input != "orfs.faa" || opt.OutPrefix != "results" {
		t.Fatalf("opts: %+v", opt)
	}
	if opt.Evalue != 1e-5 || opt.Threads != 4 {
		t.Fatalf("defaults: evalue=%v threads=%d", opt.Evalue, opt.Threads)
	}
	if opt.EvalueSet || opt.ThreadsSet {
		t.Fatal("unset flags reported as set")
	}
}

func TestUnsetThresholdsAreNaN(t *testing.T) {
	opt, err := parse(t, "-i", "a.faa", "-o", "out")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !math.IsNaN(opt.MinScore) || !math.IsNaN(opt.MinModelCov) || !math.IsNaN(opt.MinSeqCov) {
		t.Fatalf("unset thresholds must be NaN: %+v", opt)
	}
}

func TestExplicitZeroMinScoreIsKept(t *testing.T) {
	opt, err := parse(t, "-i", "a.faa", "-o", "out", "--min-score", "0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.MinScore != 0 {
		t.Fatalf("explicit --min-score 0 lost: %v", opt.MinScore)
	}
}

func TestValidation(t *testing.T) {
	cases := [][]string{
		{"-o", "out"},
		{"-i", "a.faa"},
		{"-i", "a.faa", "-o", "out", "--threads", "0"},
		{"-i", "a.faa", "-o", "out", "--min-modelcov", "1.5"},
		{"-i", "a.faa", "-o", "out", "--min-seqcov", "-0.1"},
		{"-i", "a.faa", "-o", "out", "--evalue", "-1"},
	}
	for _, argv := range cases {
		if _, err := parse(t, argv...); err == nil {
			t.Fatalf("expected error for %v", argv)
		}
	}
}

func TestDomtbloutAlone(t *testing.T) {
	opt, err := parse(t, "--domtblout", "prev.domtblout", "-o", "out")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Domtblout != "prev.domtblout" {
		t.Fatalf("opts: %+v", opt)
	}
}
