// internal/hmmer/hmmer.go
package hmmer

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

// Source produces a domain table and returns its path. The pipeline only
// ever consumes the table; swapping in a File source keeps the hmmsearch
// dependency out of tests.
type Source interface {
	Produce(ctx context.Context) (string, error)
}

// File is a Source backed by an existing domtblout table.
type File string

func (f File) Produce(context.Context) (string, error) { return string(f), nil }

// Search runs hmmsearch over a protein FASTA against an HMM database and
// writes the domain table to <OutPrefix>.domtblout.
type Search struct {
	Input     string  // protein FASTA
	HMMDB     string  // HMM database
	OutPrefix string  // table lands at OutPrefix+".domtblout"
	Evalue    float64 // -E threshold
	Threads   int     // --cpu
}

// Args returns the hmmsearch argument vector (without the binary name).
func (s Search) Args() []string {
	return []string{
		"--domtblout", s.TablePath(),
		"-E", strconv.FormatFloat(s.Evalue, 'g', -1, 64),
		"--cpu", strconv.Itoa(s.Threads),
		s.HMMDB,
		s.Input,
	}
}

// TablePath is where the domain table is written.
func (s Search) TablePath() string { return s.OutPrefix + ".domtblout" }

// Produce invokes hmmsearch synchronously. Cancellation of ctx kills the
// subprocess. hmmsearch chatter on stdout/stderr is discarded; the table
// file is the only output consumed.
func (s Search) Produce(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("hmmsearch"); err != nil {
		return "", fmt.Errorf("hmmsearch not found in PATH (is HMMER installed?): %w", err)
	}
	cmd := exec.CommandContext(ctx, "hmmsearch", s.Args()...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("hmmsearch failed: %w", err)
	}
	return s.TablePath(), nil
}
