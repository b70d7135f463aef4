package testimonial

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/testimonial"
)

const selectColumns = "SELECT id, author_id, author_name, content, rating, status, moderated_by, created_at, moderated_at FROM testimonial"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new TestimonialStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Testimonial by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Testimonial, error) {
	entity, err := scanTestimonial(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return domain.Testimonial{}, fmt.Errorf("testimonial not found: %w", err)
	}
	return entity, err
}

// Save persists a Testimonial.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, e domain.Testimonial) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO testimonial (id, author_id, author_name, content, rating, status, moderated_by, created_at, moderated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET content=excluded.content, rating=excluded.rating, status=excluded.status, moderated_by=excluded.moderated_by, moderated_at=excluded.moderated_at",
		e.ID, e.AuthorID, e.AuthorName, e.Content, e.Rating, e.Status, e.ModeratedBy,
		e.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(e.ModeratedAt),
	)
	return err
}

// Delete removes a Testimonial.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM testimonial WHERE id = ?", id)
	return err
}

// ListByStatus retrieves Testimonials newest first, optionally filtered by status.
func (s *SQLiteStore) ListByStatus(ctx context.Context, status string) ([]domain.Testimonial, error) {
	query := selectColumns
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Testimonial
	for rows.Next() {
		entity, err := scanTestimonial(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanTestimonial(scan func(dest ...any) error) (domain.Testimonial, error) {
	var e domain.Testimonial
	var createdAt string
	var moderatedAt sql.NullString
	if err := scan(&e.ID, &e.AuthorID, &e.AuthorName, &e.Content, &e.Rating, &e.Status, &e.ModeratedBy, &createdAt, &moderatedAt); err != nil {
		return domain.Testimonial{}, err
	}
	var err error
	if e.CreatedAt, err = storage.ParseNullableTime(sql.NullString{String: createdAt, Valid: true}); err != nil {
		return domain.Testimonial{}, err
	}
	if e.ModeratedAt, err = storage.ParseNullableTime(moderatedAt); err != nil {
		return domain.Testimonial{}, err
	}
	return e, nil
}
