package closure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/closure"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ClosureStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Closure by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Closure, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, reason, start_date, end_date FROM closure WHERE id = ?", id)
	entity, err := scanClosure(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Closure{}, fmt.Errorf("closure not found: %w", err)
	}
	return entity, err
}

// Save persists a Closure to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Closure) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO closure (id, reason, start_date, end_date) VALUES (?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET reason=excluded.reason, start_date=excluded.start_date, end_date=excluded.end_date",
		entity.ID, entity.Reason, entity.StartDate.Format(domain.DateLayout), entity.EndDate.Format(domain.DateLayout),
	)
	return err
}

// Delete removes a Closure from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM closure WHERE id = ?", id)
	return err
}

// List retrieves all Closures ordered by start date.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Closure, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, reason, start_date, end_date FROM closure ORDER BY start_date, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Closure
	for rows.Next() {
		entity, err := scanClosure(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanClosure(scan func(dest ...any) error) (domain.Closure, error) {
	var e domain.Closure
	var startStr, endStr string
	if err := scan(&e.ID, &e.Reason, &startStr, &endStr); err != nil {
		return domain.Closure{}, err
	}
	var err error
	if e.StartDate, err = time.Parse(domain.DateLayout, startStr); err != nil {
		return domain.Closure{}, fmt.Errorf("invalid closure start date %q: %w", startStr, err)
	}
	if e.EndDate, err = time.Parse(domain.DateLayout, endStr); err != nil {
		return domain.Closure{}, fmt.Errorf("invalid closure end date %q: %w", endStr, err)
	}
	return e, nil
}
