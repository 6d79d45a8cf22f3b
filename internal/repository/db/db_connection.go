package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file, ensures tables exist and seeds the
// sample history when it is empty.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite handles one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := SeedSamples(db, time.Now().UTC()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaSamples = `
CREATE TABLE IF NOT EXISTS temperature_samples (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    taken_at TIMESTAMP NOT NULL,
    blanket_avg_c REAL NOT NULL,
    body_c REAL NOT NULL
);
`

const schemaControlEvents = `
CREATE TABLE IF NOT EXISTS control_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    panel_id TEXT,
    message TEXT NOT NULL,
    meta TEXT
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range []string{schemaSamples, schemaControlEvents} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

// SampleInterval is the spacing of the seeded history points.
const SampleInterval = 5 * time.Minute

// SeedBlanketAvgC and SeedBodyC are the history shown before any reading exists.
var (
	SeedBlanketAvgC = []float64{30, 35, 37, 38, 38.5, 39, 39.5, 40}
	SeedBodyC       = []float64{36, 36, 36, 36, 36, 36, 36, 36}
)

// SeedSamples inserts the default history, ending at now, into an empty
// temperature_samples table. A non-empty table is left untouched.
func SeedSamples(db *sql.DB, now time.Time) error {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM temperature_samples`).Scan(&n); err != nil {
		return fmt.Errorf("count samples: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	last := len(SeedBlanketAvgC) - 1
	for i := range SeedBlanketAvgC {
		takenAt := now.Add(-time.Duration(last-i) * SampleInterval)
		if _, err := tx.Exec(
			`INSERT INTO temperature_samples (taken_at, blanket_avg_c, body_c) VALUES (?, ?, ?)`,
			takenAt, SeedBlanketAvgC[i], SeedBodyC[i],
		); err != nil {
			return fmt.Errorf("seed sample %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
