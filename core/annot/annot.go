// core/annot/annot.go
package annot

import (
	"bufio"
	"os"
	"strings"
)

// Sentinel is substituted when a lookup misses.
const Sentinel = "NA"

// Map associates query/profile labels with a free-text annotation.
type Map map[string]string

// Get returns the annotation for key, or Sentinel when absent.
func (m Map) Get(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return Sentinel
}

// Load reads a two-column annotation table: first whitespace run splits the
// key from the rest of the line (the value may contain spaces). Blank lines,
// '#' comments and one-column lines are skipped; a repeated key keeps the
// last value seen.
//
// A missing file is not an error: the run degrades to an empty Map. Any
// other failure also yields an empty Map, with the error returned so the
// caller can warn and continue.
func Load(path string) (Map, error) {
	m := Map{}
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, err
	}
	defer func() { _ = fh.Close() }()

	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, val, ok := splitKV(line)
		if !ok {
			continue
		}
		m[key] = val
	}
	if err := sc.Err(); err != nil {
		return Map{}, err
	}
	return m, nil
}

func splitKV(line string) (key, val string, ok bool) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return "", "", false
	}
	key = line[:i]
	val = strings.TrimLeft(line[i:], " \t")
	if val == "" {
		return "", "", false
	}
	return key, val, true
}
