// core/domtbl/parser.go
package domtbl

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// domtblout column layout (0-based). The table carries 23 columns; the last is
// a free-text description, so tokenization is capped at maxFields to keep it
// in one piece.
const (
	colTarget  = 0
	colTLen    = 2
	colQuery   = 3
	colQLen    = 5
	colEvalue  = 6
	colScore   = 7
	colHmmFrom = 15
	colHmmTo   = 16
	colAliFrom = 17
	colAliTo   = 18

	minFields = 22
	maxFields = 23
)

// Parse reads a domain table and returns one Hit per well-formed data line.
// Blank lines and '#' comments are ignored; under-length lines and lines with
// non-numeric fields are counted in Stats.Skipped and dropped, never fatal.
func Parse(r io.Reader) ([]Hit, Stats, error) {
	var (
		hits []Hit
		st   Stats
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		st.Lines++
		h, ok := parseLine(line)
		if !ok {
			st.Skipped++
			continue
		}
		hits = append(hits, h)
	}
	if err := sc.Err(); err != nil {
		return nil, st, err
	}
	return hits, st, nil
}

func parseLine(line string) (Hit, bool) {
	f := fieldsN(line, maxFields)
	if len(f) < minFields {
		return Hit{}, false
	}
	var (
		h   Hit
		err error
	)
	h.Target = f[colTarget]
	h.Query = f[colQuery]
	if h.TargetLen, err = strconv.Atoi(f[colTLen]); err != nil {
		return Hit{}, false
	}
	if h.QueryLen, err = strconv.Atoi(f[colQLen]); err != nil {
		return Hit{}, false
	}
	if h.FullEvalue, err = strconv.ParseFloat(f[colEvalue], 64); err != nil {
		return Hit{}, false
	}
	if h.FullScore, err = strconv.ParseFloat(f[colScore], 64); err != nil {
		return Hit{}, false
	}
	if h.HmmFrom, err = strconv.Atoi(f[colHmmFrom]); err != nil {
		return Hit{}, false
	}
	if h.HmmTo, err = strconv.Atoi(f[colHmmTo]); err != nil {
		return Hit{}, false
	}
	if h.AliFrom, err = strconv.Atoi(f[colAliFrom]); err != nil {
		return Hit{}, false
	}
	if h.AliTo, err = strconv.Atoi(f[colAliTo]); err != nil {
		return Hit{}, false
	}
	if h.TargetLen <= 0 || h.QueryLen <= 0 {
		return Hit{}, false
	}
	h.ModelCov = float64(h.HmmTo-h.HmmFrom+1) / float64(h.QueryLen)
	h.SeqCov = float64(h.AliTo-h.AliFrom+1) / float64(h.TargetLen)
	return h, true
}

// fieldsN splits s on runs of whitespace into at most n fields; the final
// field keeps the remainder of the line verbatim (trailing description).
func fieldsN(s string, n int) []string {
	var out []string
	for len(out) < n-1 {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return out
		}
		i := strings.IndexAny(s, " \t")
		if i < 0 {
			return append(out, s)
		}
		out = append(out, s[:i])
		s = s[i:]
	}
	s = strings.TrimLeft(s, " \t")
	if s != "" {
		out = append(out, s)
	}
	return out
}
