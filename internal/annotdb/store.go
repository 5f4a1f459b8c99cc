// Package annotdb stores the KO and gene-symbol annotation maps in a single
// SQLite database, as an alternative to shipping the two text tables. The
// pzdehmm-annotdb binary builds the store; the detector loads it via
// --annot-db.
package annotdb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"pzdehmm-core/annot"
)

// Annotation kinds stored in the database.
const (
	KindKO     = "ko"
	KindSymbol = "symbol"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS annotations (
    kind  TEXT NOT NULL,
    label TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (kind, label)
);
`

// Build writes both maps into the database at path, creating or replacing
// entries as needed. An existing entry for the same (kind, label) is
// overwritten, matching the text loader's last-write-wins rule.
func Build(path string, ko, symbol annot.Map) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open annotation db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO annotations (kind, label, value) VALUES (?, ?, ?)
		ON CONFLICT (kind, label) DO UPDATE SET value = excluded.value`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for kind, m := range map[string]annot.Map{KindKO: ko, KindSymbol: symbol} {
		for label, value := range m {
			if _, err := stmt.Exec(kind, label, value); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert %s/%s: %w", kind, label, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads both annotation maps back from the database at path.
func Load(path string) (ko, symbol annot.Map, err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open annotation db: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`SELECT kind, label, value FROM annotations`)
	if err != nil {
		return nil, nil, fmt.Errorf("query annotations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ko, symbol = annot.Map{}, annot.Map{}
	for rows.Next() {
		var kind, label, value string
		if err := rows.Scan(&kind, &label, &value); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		switch kind {
		case KindKO:
			ko[label] = value
		case KindSymbol:
			symbol[label] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read annotations: %w", err)
	}
	return ko, symbol, nil
}
