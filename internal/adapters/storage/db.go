package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database with WAL mode, foreign keys and a busy timeout.
// PRE: path is a file path or ":memory:"
// POST: Returns a pinged connection pool
func Open(path string) (*sql.DB, error) {
	inMemory := path == ":memory:" || strings.HasPrefix(path, "file::memory:")
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	if inMemory {
		dsn = path
		if !strings.Contains(path, "?") {
			dsn += "?_pragma=foreign_keys(ON)"
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if inMemory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created; safe to run on every startup
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT,
		banned_at TEXT,
		ban_reason TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS trainer (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		specialties TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS award (
		id TEXT PRIMARY KEY,
		trainer_id TEXT NOT NULL,
		title TEXT NOT NULL,
		year INTEGER NOT NULL,
		favorite INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (trainer_id) REFERENCES trainer(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS class_session (
		id TEXT PRIMARY KEY,
		module_name TEXT NOT NULL,
		trainer_id TEXT,
		day TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		room TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_class_session_day ON class_session(day, start_time);

	CREATE TABLE IF NOT EXISTS closure (
		id TEXT PRIMARY KEY,
		reason TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS page (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS testimonial (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL,
		author_name TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		rating INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		moderated_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		moderated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS tier (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		monthly_cents INTEGER NOT NULL,
		features TEXT NOT NULL DEFAULT '',
		highlighted INTEGER NOT NULL DEFAULT 0
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// TimeLayout is the text format used for timestamps in every table.
const TimeLayout = time.RFC3339Nano

// NullableTime formats t for storage, mapping the zero time to NULL.
func NullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(TimeLayout)
}

// ParseNullableTime parses a stored timestamp, mapping NULL to the zero time.
func ParseNullableTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(TimeLayout, s.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored time %q: %w", s.String, err)
	}
	return t, nil
}
