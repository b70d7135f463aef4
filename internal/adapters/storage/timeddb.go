package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"gymdesk/internal/adapters/http/perf"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// DefaultSlowQueryMs is the default threshold for slow query warnings.
const DefaultSlowQueryMs = 50

// TimedDB wraps a *sql.DB to log slow queries and optionally record to a collector.
// Satisfies the SQLDB interface so it can be passed to any store constructor.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold float64
}

// Compile-time check that *TimedDB satisfies SQLDB.
var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps a *sql.DB with timing instrumentation.
// A non-positive slowQueryMs falls back to DefaultSlowQueryMs.
// PRE: db is a valid database connection
// POST: Returns a TimedDB that logs slow queries and records to collector
func NewTimedDB(db *sql.DB, collector *perf.Collector, slowQueryMs int) *TimedDB {
	if slowQueryMs <= 0 {
		slowQueryMs = DefaultSlowQueryMs
	}
	return &TimedDB{
		db:        db,
		collector: collector,
		threshold: float64(slowQueryMs),
	}
}

// RawDB returns the underlying *sql.DB (needed for migrations and pool config).
// PRE: none
// POST: returns the unwrapped *sql.DB
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

// queryLabel reduces a statement to its verb and table ("SELECT class_session") so timings group by shape.
func queryLabel(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "EMPTY"
	}
	verb := strings.ToUpper(fields[0])
	marker := ""
	switch verb {
	case "SELECT", "DELETE":
		marker = "FROM"
	case "INSERT", "REPLACE":
		marker = "INTO"
	case "UPDATE":
		return verb + " " + tableName(fields, 1)
	default:
		return verb
	}
	for i, f := range fields {
		if strings.EqualFold(f, marker) {
			return verb + " " + tableName(fields, i+1)
		}
	}
	return verb
}

func tableName(fields []string, i int) string {
	if i >= len(fields) {
		return "?"
	}
	name, _, _ := strings.Cut(fields[i], "(")
	return strings.Trim(name, "`\"")
}

// record logs a statement timing and, with a collector, adds it to the perf ring.
func (t *TimedDB) record(label string, start time.Time, err error) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	switch {
	case durationMs >= t.threshold:
		slog.Warn("slow_query", "query", label, "duration_ms", durationMs, "failed", err != nil)
	case err != nil:
		slog.Debug("query_failed", "query", label, "error", err.Error())
	}
	if t.collector == nil {
		return
	}
	t.collector.Record(perf.Entry{
		Kind:       perf.KindQuery,
		Path:       label,
		DurationMs: durationMs,
		Timestamp:  start,
	})
}

// ExecContext runs a statement and records its timing.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.db.ExecContext(ctx, query, args...)
	t.record(queryLabel(query), start, err)
	return result, err
}

// QueryContext runs a query and records the time to first result set.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.record(queryLabel(query), start, err)
	return rows, err
}

// QueryRowContext runs a single-row query. Errors surface at Scan, so none are logged here.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.record(queryLabel(query), start, nil)
	return row
}

// BeginTx starts a transaction. Statements inside it go straight to the *sql.Tx and are not timed.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	start := time.Now()
	tx, err := t.db.BeginTx(ctx, opts)
	t.record("BEGIN", start, err)
	return tx, err
}

func (t *TimedDB) Close() error {
	return t.db.Close()
}

func (t *TimedDB) Ping() error {
	return t.db.Ping()
}
