// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pzdehmm-core/annot"
	"pzdehmm/internal/annotdb"
	"pzdehmm/internal/app"
	"pzdehmm/internal/output"
)

// Three data lines, one malformed (10 tokens). Scores: 102.5, 25.0.
const table = `# --- full sequence --- -------------- this domain -------------
gene_1 - 100 abh_1 - 50 1.2e-30 102.50 0.1 1 1 3.1e-30 2.5e-27 99.2 0.1 1 50 1 100 1 100 0.98 Abhydrolase family
gene_2 broken line with only ten tokens a b c
gene_3 - 200 est_2 - 80 4.0e-08 25.00 0.0 1 1 9.0e-08 7.0e-05 24.1 0.0 5 60 11 150 11 150 0.90 Esterase
`

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func readReport(t *testing.T, prefix string) []string {
	t.Helper()
	data, err := os.ReadFile(prefix + ".filtered.csv")
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestEndToEndNoThresholds(t *testing.T) {
	dir := t.TempDir()
	tbl := write(t, dir, "run.domtblout", table)
	prefix := filepath.Join(dir, "results")

	code, _, stderr := run(t, "--domtblout", tbl, "-o", prefix)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	lines := readReport(t, prefix)
	if lines[0] != output.CSVHeader {
		t.Fatalf("header: %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected 2 candidate rows, got %d: %q", len(lines)-1, lines)
	}
	// No annotation maps anywhere near the temp dir: both columns sentinel.
	for _, l := range lines[1:] {
		if !strings.HasSuffix(l, ",NA,NA") {
			t.Fatalf("expected NA annotations: %q", l)
		}
	}
	if !strings.Contains(stderr, "skipped 1 malformed") {
		t.Fatalf("malformed-line warning missing: %q", stderr)
	}
}

func TestEndToEndMinScore(t *testing.T) {
	dir := t.TempDir()
	tbl := write(t, dir, "run.domtblout", table)
	prefix := filepath.Join(dir, "results")

	code, _, stderr := run(t, "--domtblout", tbl, "-o", prefix, "--min-score", "30")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	lines := readReport(t, prefix)
	if len(lines) != 2 {
		t.Fatalf("expected 1 surviving row, got %d: %q", len(lines)-1, lines)
	}
	if !strings.HasPrefix(lines[1], "gene_1,abh_1,1.20e-30,102.50,1.0000,1.0000,") {
		t.Fatalf("row: %q", lines[1])
	}
}

func TestEndToEndAnnotations(t *testing.T) {
	dir := t.TempDir()
	tbl := write(t, dir, "run.domtblout", table)
	koMap := write(t, dir, "ko.txt", "abh_1 K01046\nest_2 K21104\n")
	symMap := write(t, dir, "symbol.txt", "abh_1 pzdA\n")
	prefix := filepath.Join(dir, "results")

	code, _, stderr := run(t, "--domtblout", tbl, "-o", prefix, "--ko-map", koMap, "--symbol-map", symMap)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	lines := readReport(t, prefix)
	if !strings.HasSuffix(lines[1], ",K01046,pzdA") {
		t.Fatalf("annotated row: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",K21104,NA") {
		t.Fatalf("half-annotated row: %q", lines[2])
	}
}

func TestEndToEndAnnotDB(t *testing.T) {
	dir := t.TempDir()
	tbl := write(t, dir, "run.domtblout", table)
	store := filepath.Join(dir, "annot.db")
	if err := annotdb.Build(store, annot.Map{"abh_1": "K01046"}, annot.Map{"abh_1": "pzdA", "est_2": "estB"}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	prefix := filepath.Join(dir, "results")

	code, _, stderr := run(t, "--domtblout", tbl, "-o", prefix, "--annot-db", store)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	lines := readReport(t, prefix)
	if !strings.HasSuffix(lines[1], ",K01046,pzdA") || !strings.HasSuffix(lines[2], ",NA,estB") {
		t.Fatalf("annot-db rows: %q", lines)
	}
}

func TestEndToEndIdempotent(t *testing.T) {
	dir := t.TempDir()
	tbl := write(t, dir, "run.domtblout", table)
	prefix := filepath.Join(dir, "results")

	if code, _, stderr := run(t, "--domtblout", tbl, "-o", prefix, "--min-modelcov", "0.5"); code != 0 {
		t.Fatalf("first run exit %d, stderr=%s", code, stderr)
	}
	first, err := os.ReadFile(prefix + ".filtered.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if code, _, stderr := run(t, "--domtblout", tbl, "-o", prefix, "--min-modelcov", "0.5"); code != 0 {
		t.Fatalf("second run exit %d, stderr=%s", code, stderr)
	}
	second, err := os.ReadFile(prefix + ".filtered.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("reruns differ:\n%s\n%s", first, second)
	}
}

func TestEndToEndConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	tbl := write(t, dir, "run.domtblout", table)
	koMap := write(t, dir, "ko.txt", "abh_1 K01046\n")
	cfgFile := write(t, dir, "pzdehmm.yaml", "ko_map: "+koMap+"\nmin_score: 30\n")
	prefix := filepath.Join(dir, "results")

	code, _, stderr := run(t, "--domtblout", tbl, "-o", prefix, "--config", cfgFile)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	lines := readReport(t, prefix)
	if len(lines) != 2 || !strings.HasSuffix(lines[1], ",K01046,NA") {
		t.Fatalf("config-driven run: %q", lines)
	}

	// An explicit flag must beat the config threshold.
	code, _, stderr = run(t, "--domtblout", tbl, "-o", prefix, "--config", cfgFile, "--min-score", "10")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	if lines = readReport(t, prefix); len(lines) != 3 {
		t.Fatalf("flag must override config: %q", lines)
	}
}

func TestMissingTableIsFatal(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := run(t, "--domtblout", filepath.Join(dir, "nope.domtblout"), "-o", filepath.Join(dir, "r"))
	if code != 1 {
		t.Fatalf("expected exit 1, got %d (stderr=%q)", code, stderr)
	}
	if !strings.Contains(stderr, "not found") {
		t.Fatalf("stderr: %q", stderr)
	}
}

func TestMissingInputIsFatal(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := run(t, "-i", filepath.Join(dir, "nope.faa"), "-o", filepath.Join(dir, "r"))
	if code != 1 {
		t.Fatalf("expected exit 1, got %d (stderr=%q)", code, stderr)
	}
	if !strings.Contains(stderr, "input FASTA not found") {
		t.Fatalf("stderr: %q", stderr)
	}
}

func TestUsageErrors(t *testing.T) {
	if code, _, _ := run(t, "-o", "out"); code != 2 {
		t.Fatalf("expected exit 2 for missing input, got %d", code)
	}
}
