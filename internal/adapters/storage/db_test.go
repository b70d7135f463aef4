package storage

import (
	"database/sql"
	"sort"
	"testing"
	"time"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after InitDB.
var expectedTables = []string{
	"account",
	"award",
	"class_session",
	"closure",
	"page",
	"testimonial",
	"tier",
	"trainer",
}

// TestInitDB_Fresh verifies all tables are created on an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("tables = %v, want %v", got, expectedTables)
	}
	for i := range expectedTables {
		if got[i] != expectedTables[i] {
			t.Errorf("tables[%d] = %q, want %q", i, got[i], expectedTables[i])
		}
	}
}

// TestInitDB_Idempotent verifies running InitDB twice keeps data.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB() error = %v", err)
	}
	if _, err := db.Exec("INSERT INTO closure (id, reason, start_date, end_date) VALUES ('c1', 'Easter', '2026-04-03', '2026-04-06')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB() error = %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM closure").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("closure rows = %d, want 1", n)
	}
}

// TestNullableTime round-trips timestamps and NULLs.
func TestNullableTime(t *testing.T) {
	if NullableTime(time.Time{}) != nil {
		t.Error("zero time should map to NULL")
	}
	at := time.Date(2026, 3, 9, 9, 30, 15, 500, time.UTC)
	stored, ok := NullableTime(at).(string)
	if !ok {
		t.Fatal("non-zero time should map to a string")
	}
	back, err := ParseNullableTime(sql.NullString{String: stored, Valid: true})
	if err != nil {
		t.Fatalf("ParseNullableTime() error = %v", err)
	}
	if !back.Equal(at) {
		t.Errorf("round trip = %v, want %v", back, at)
	}
	zero, err := ParseNullableTime(sql.NullString{})
	if err != nil || !zero.IsZero() {
		t.Errorf("ParseNullableTime(NULL) = %v, %v", zero, err)
	}
	if _, err := ParseNullableTime(sql.NullString{String: "yesterday", Valid: true}); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}
