package trainer

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/trainer"
)

const awardColumns = "SELECT id, trainer_id, title, year, favorite, created_at FROM award"

const upsertAward = "INSERT INTO award (id, trainer_id, title, year, favorite, created_at) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET title=excluded.title, year=excluded.year, favorite=excluded.favorite"

// GetAwardByID retrieves an Award by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetAwardByID(ctx context.Context, id string) (domain.Award, error) {
	entity, err := scanAward(s.db.QueryRowContext(ctx, awardColumns+" WHERE id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return domain.Award{}, fmt.Errorf("award not found: %w", err)
	}
	return entity, err
}

// SaveAward persists an Award.
// PRE: entity has been validated; its trainer exists
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveAward(ctx context.Context, entity domain.Award) error {
	_, err := s.db.ExecContext(ctx, upsertAward, awardArgs(entity)...)
	return err
}

// DeleteAward removes an Award.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) DeleteAward(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM award WHERE id = ?", id)
	return err
}

// ListAwards retrieves a trainer's awards, favorites first then newest year first.
func (s *SQLiteStore) ListAwards(ctx context.Context, trainerID string) ([]domain.Award, error) {
	rows, err := s.db.QueryContext(ctx, awardColumns+" WHERE trainer_id = ? ORDER BY favorite DESC, year DESC, title", trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Award
	for rows.Next() {
		entity, err := scanAward(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func awardArgs(e domain.Award) []any {
	favorite := 0
	if e.Favorite {
		favorite = 1
	}
	return []any{e.ID, e.TrainerID, e.Title, e.Year, favorite, e.CreatedAt.Format(storage.TimeLayout)}
}

func scanAward(scan func(dest ...any) error) (domain.Award, error) {
	var e domain.Award
	var favorite int
	var createdAt string
	if err := scan(&e.ID, &e.TrainerID, &e.Title, &e.Year, &favorite, &createdAt); err != nil {
		return domain.Award{}, err
	}
	e.Favorite = favorite == 1
	var err error
	if e.CreatedAt, err = storage.ParseNullableTime(sql.NullString{String: createdAt, Valid: true}); err != nil {
		return domain.Award{}, err
	}
	return e, nil
}
