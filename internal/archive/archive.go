// Package archive maintains a long-term SQLite mirror of the CSV ledger.
// The ledger stays the source of truth; the archive exists for multi-week
// trend queries without re-parsing old CSV files.
package archive

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/hpungsan/nutrimind/internal/entry"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Init opens (and migrates) the archive database at baseDir/filename.
// The baseDir parameter allows tests to use t.TempDir() instead of
// ~/.nutrimind.
func Init(baseDir, filename string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, filename)
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := userVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS entries (
		  id          TEXT PRIMARY KEY,
		  entry_date  TEXT NOT NULL,
		  foods       TEXT NOT NULL,
		  sleep_hours REAL NOT NULL,
		  exercise    TEXT NOT NULL,
		  mood        INTEGER NOT NULL,
		  archived_at INTEGER NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_natural
		ON entries(entry_date, foods, sleep_hours, exercise, mood);

		CREATE INDEX IF NOT EXISTS idx_entries_date
		ON entries(entry_date);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

// Insert adds one ledger entry to the archive. Returns false when the row
// was already archived (natural-key collision), which makes repeated syncs
// idempotent.
func Insert(db *sql.DB, e entry.DailyEntry) (bool, error) {
	id, err := newULID()
	if err != nil {
		return false, err
	}

	result, err := db.Exec(`
		INSERT OR IGNORE INTO entries (id, entry_date, foods, sleep_hours, exercise, mood, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		e.Date.Format(entry.DateLayout),
		e.Foods,
		e.SleepHours,
		e.Exercise,
		e.Mood,
		time.Now().Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to archive entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return rows > 0, nil
}

// AllEntries returns every archived entry ordered by date then id.
func AllEntries(db *sql.DB) ([]entry.DailyEntry, error) {
	rows, err := db.Query(`
		SELECT entry_date, foods, sleep_hours, exercise, mood
		FROM entries
		ORDER BY entry_date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}
	defer rows.Close()

	var entries []entry.DailyEntry
	for rows.Next() {
		var dateStr string
		var e entry.DailyEntry
		if err := rows.Scan(&dateStr, &e.Foods, &e.SleepHours, &e.Exercise, &e.Mood); err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}
		date, err := entry.ParseDate(dateStr)
		if err != nil {
			// Archive rows are written by us; a bad date here is corruption.
			return nil, fmt.Errorf("corrupt archive date %q: %w", dateStr, err)
		}
		e.Date = date
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of archived entries.
func Count(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count archive entries: %w", err)
	}
	return n, nil
}

func newULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
