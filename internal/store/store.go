package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS schedule (
		month    TEXT NOT NULL,
		day      TEXT NOT NULL,
		slot     TEXT NOT NULL CHECK (slot IN ('morning','evening')),
		plan_id  TEXT NOT NULL,
		PRIMARY KEY (day, slot)
	);

	CREATE INDEX IF NOT EXISTS idx_schedule_month ON schedule(month);

	CREATE TABLE IF NOT EXISTS completions (
		month        TEXT NOT NULL,
		day          TEXT NOT NULL,
		slot         TEXT NOT NULL CHECK (slot IN ('morning','evening')),
		completed_at TEXT NOT NULL,
		PRIMARY KEY (day, slot)
	);

	CREATE INDEX IF NOT EXISTS idx_completions_month ON completions(month);

	CREATE TABLE IF NOT EXISTS streak (
		id        INTEGER PRIMARY KEY CHECK (id = 1),
		count     INTEGER NOT NULL DEFAULT 0,
		last_date TEXT NOT NULL DEFAULT ''
	);

	INSERT OR IGNORE INTO streak (id, count, last_date) VALUES (1, 0, '');

	CREATE TABLE IF NOT EXISTS session_logs (
		id               TEXT PRIMARY KEY,
		plan_id          TEXT NOT NULL,
		day              TEXT NOT NULL,
		slot             TEXT NOT NULL,
		exercise_seconds INTEGER NOT NULL,
		rest_seconds     INTEGER NOT NULL,
		started_at       TEXT NOT NULL,
		ended_at         TEXT,
		outcome          TEXT NOT NULL DEFAULT 'running'
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('sound',      'on'),
		('week_start', 'monday');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// EvictStaleMonths deletes schedule and completion rows belonging to any
// month other than currentMonth. Streak, settings and session history are
// unscoped and survive. Called once at startup.
func (s *Store) EvictStaleMonths(currentMonth string) error {
	if _, err := s.db.Exec(`DELETE FROM schedule WHERE month != ?`, currentMonth); err != nil {
		return fmt.Errorf("evict schedule: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM completions WHERE month != ?`, currentMonth); err != nil {
		return fmt.Errorf("evict completions: %w", err)
	}
	return nil
}

// DefaultDBPath returns ~/.config/fitsched/fitsched.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "fitsched", "fitsched.db"), nil
}
