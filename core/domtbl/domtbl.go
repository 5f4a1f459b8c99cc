// core/domtbl/domtbl.go
package domtbl

// Hit is one row of a hmmsearch --domtblout table, reduced to the fields the
// detector reports on. Immutable after parsing; freely copyable.
type Hit struct {
	Target     string
	Query      string
	TargetLen  int
	QueryLen   int
	FullEvalue float64
	FullScore  float64
	HmmFrom    int
	HmmTo      int
	AliFrom    int
	AliTo      int

	// Derived once at parse time.
	ModelCov float64 // (HmmTo-HmmFrom+1)/QueryLen
	SeqCov   float64 // (AliTo-AliFrom+1)/TargetLen
}

// Stats summarizes one Parse run over a table.
type Stats struct {
	Lines   int // non-comment, non-blank data lines seen
	Skipped int // data lines dropped as malformed
}
