// core/filter/filter.go
package filter

import (
	"math"

	"pzdehmm-core/domtbl"
)

// CovUnset disables a coverage threshold. Coverages of well-formed hits are
// in (0,1], so any negative sentinel can never reject.
const CovUnset = -1

// Config holds the optional hit thresholds. The zero value is not usable;
// build one with Default and override the enabled thresholds.
type Config struct {
	MinScore    float64 // minimum full bit score; -Inf = no minimum
	MinModelCov float64 // minimum model coverage; CovUnset = off
	MinSeqCov   float64 // minimum sequence coverage; CovUnset = off
}

// Default returns a Config with every threshold disabled.
func Default() Config {
	return Config{
		MinScore:    math.Inf(-1),
		MinModelCov: CovUnset,
		MinSeqCov:   CovUnset,
	}
}

// normalized maps NaN (caller never set a minimum) to -Inf so the score
// check is always safe to apply.
func (c Config) normalized() Config {
	if math.IsNaN(c.MinScore) {
		c.MinScore = math.Inf(-1)
	}
	return c
}

// Pass reports whether a single hit survives every enabled threshold.
// The score check is always active; boundaries are inclusive (reject only on
// strictly less-than).
func (c Config) Pass(h domtbl.Hit) bool {
	n := c.normalized()
	if h.FullScore < n.MinScore {
		return false
	}
	if n.MinModelCov >= 0 && h.ModelCov < n.MinModelCov {
		return false
	}
	if n.MinSeqCov >= 0 && h.SeqCov < n.MinSeqCov {
		return false
	}
	return true
}

// Apply returns the hits passing cfg, preserving input order. No reordering,
// no dedup.
func Apply(hits []domtbl.Hit, cfg Config) []domtbl.Hit {
	var kept []domtbl.Hit
	for _, h := range hits {
		if cfg.Pass(h) {
			kept = append(kept, h)
		}
	}
	return kept
}
