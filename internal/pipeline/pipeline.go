// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"

	"pzdehmm-core/domtbl"
	"pzdehmm-core/filter"
)

// Stats summarizes one run: data lines seen, malformed lines dropped, and
// hits surviving the thresholds.
type Stats struct {
	Lines   int
	Skipped int
	Kept    int
}

// ForEachHit parses a domain table, applies the thresholds, and calls visit
// for each surviving hit in input order. Parsing completes before visiting
// starts, so visit always observes the final Stats-to-be. The first visit
// error or context cancellation stops the run.
func ForEachHit(
	ctx context.Context,
	cfg filter.Config,
	r io.Reader,
	visit func(domtbl.Hit) error,
) (Stats, error) {
	hits, pst, err := domtbl.Parse(r)
	if err != nil {
		return Stats{Lines: pst.Lines, Skipped: pst.Skipped}, err
	}
	st := Stats{Lines: pst.Lines, Skipped: pst.Skipped}
	for _, h := range filter.Apply(hits, cfg) {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		if err := visit(h); err != nil {
			return st, err
		}
		st.Kept++
	}
	return st, nil
}
