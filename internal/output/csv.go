// internal/output/csv.go
package output

import (
	"fmt"
	"io"

	"pzdehmm-core/domtbl"
)

// CSVHeader is the canonical header row for the filtered report.
// Keep this as the single source of truth; all writers should use it.
const CSVHeader = "target,query,full_evalue,full_score,modelcov,seqcov,KO,symbol"

// Row is one report record: a surviving hit joined with its annotations.
type Row struct {
	Hit    domtbl.Hit
	KO     string
	Symbol string
}

// FormatRow renders one CSV row (no trailing newline). The numeric formats
// are part of the report contract: e-value in scientific notation with two
// decimals, score with two, coverages with four.
func FormatRow(r Row) string {
	return fmt.Sprintf("%s,%s,%.2e,%.2f,%.4f,%.4f,%s,%s",
		r.Hit.Target, r.Hit.Query,
		r.Hit.FullEvalue, r.Hit.FullScore,
		r.Hit.ModelCov, r.Hit.SeqCov,
		r.KO, r.Symbol,
	)
}

// WriteCSV writes the header and all rows in order.
func WriteCSV(w io.Writer, rows []Row, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, CSVHeader); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, FormatRow(r)); err != nil {
			return err
		}
	}
	return nil
}

// StreamCSV writes the header, then rows as they arrive. On a write error
// the remaining rows are drained so the producer never blocks.
func StreamCSV(w io.Writer, in <-chan Row, header bool) error {
	var err error
	if header {
		_, err = fmt.Fprintln(w, CSVHeader)
	}
	for r := range in {
		if err != nil {
			continue
		}
		_, err = fmt.Fprintln(w, FormatRow(r))
	}
	return err
}
