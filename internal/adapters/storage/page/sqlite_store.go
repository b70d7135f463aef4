package page

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/page"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new PageStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetBySlug retrieves a Page by slug.
// PRE: slug is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if never saved
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (domain.Page, error) {
	row := s.db.QueryRowContext(ctx, "SELECT slug, title, body, updated_by, updated_at FROM page WHERE slug = ?", slug)
	entity, err := scanPage(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Page{}, fmt.Errorf("page not found: %w", err)
	}
	return entity, err
}

// Save persists a Page.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Page) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO page (slug, title, body, updated_by, updated_at) VALUES (?, ?, ?, ?, ?) ON CONFLICT(slug) DO UPDATE SET title=excluded.title, body=excluded.body, updated_by=excluded.updated_by, updated_at=excluded.updated_at",
		entity.Slug, entity.Title, entity.Body, entity.UpdatedBy, entity.UpdatedAt.Format(storage.TimeLayout),
	)
	return err
}

// List retrieves every saved Page ordered by slug.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Page, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT slug, title, body, updated_by, updated_at FROM page ORDER BY slug")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Page
	for rows.Next() {
		entity, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanPage(scan func(dest ...any) error) (domain.Page, error) {
	var e domain.Page
	var updatedAt string
	if err := scan(&e.Slug, &e.Title, &e.Body, &e.UpdatedBy, &updatedAt); err != nil {
		return domain.Page{}, err
	}
	var err error
	e.UpdatedAt, err = storage.ParseNullableTime(sql.NullString{String: updatedAt, Valid: true})
	return e, err
}
