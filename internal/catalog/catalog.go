// Package catalog keeps an optional SQLite index of conversion runs, one
// row per converted file. It is bookkeeping only; a catalog failure never
// fails a conversion.
package catalog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at TEXT    NOT NULL,
	input       TEXT    NOT NULL,
	input_sha   TEXT    NOT NULL,
	output      TEXT    NOT NULL,
	voxels      INTEGER NOT NULL,
	materials   INTEGER NOT NULL,
	dim_x       INTEGER NOT NULL,
	dim_y       INTEGER NOT NULL,
	dim_z       INTEGER NOT NULL,
	palette     TEXT    NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_sha ON conversions(input_sha);
`

// Entry is one conversion run.
type Entry struct {
	Input      string
	InputSHA   string
	Output     string
	Voxels     int
	Materials  int
	DimX       uint32
	DimY       uint32
	DimZ       uint32
	Palette    string // "custom" or "default"
	Duration   time.Duration
	RecordedAt time.Time
}

// Catalog is a single-writer handle on the index database.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens the index at path, applying the schema.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("empty catalog path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record inserts one conversion row.
func (c *Catalog) Record(e Entry) error {
	recordedAt := e.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	_, err := c.db.Exec(`
INSERT INTO conversions
	(recorded_at, input, input_sha, output, voxels, materials, dim_x, dim_y, dim_z, palette, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordedAt.Format(time.RFC3339),
		e.Input, e.InputSHA, e.Output,
		e.Voxels, e.Materials,
		e.DimX, e.DimY, e.DimZ,
		e.Palette,
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record conversion: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (c *Catalog) Recent(limit int) ([]Entry, error) {
	rows, err := c.db.Query(`
SELECT recorded_at, input, input_sha, output, voxels, materials, dim_x, dim_y, dim_z, palette, duration_ms
FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var recordedAt string
		var durationMS int64
		if err := rows.Scan(&recordedAt, &e.Input, &e.InputSHA, &e.Output,
			&e.Voxels, &e.Materials, &e.DimX, &e.DimY, &e.DimZ,
			&e.Palette, &durationMS); err != nil {
			return nil, fmt.Errorf("scan conversion row: %w", err)
		}
		e.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, e)
	}
	return out, rows.Err()
}

// SHA256 hex-digests a file's contents for the input_sha column.
func SHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
