package trainer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/trainer"
)

const selectColumns = "SELECT id, account_id, name, bio, specialties, photo_url, updated_at FROM trainer"

// SQLiteStore implements Store and AwardStore using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new TrainerStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Trainer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Trainer, error) {
	entity, err := scanTrainer(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return domain.Trainer{}, fmt.Errorf("trainer not found: %w", err)
	}
	return entity, err
}

// GetByAccountID retrieves the Trainer profile linked to an account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Trainer, error) {
	entity, err := scanTrainer(s.db.QueryRowContext(ctx, selectColumns+" WHERE account_id = ?", accountID).Scan)
	if err == sql.ErrNoRows {
		return domain.Trainer{}, fmt.Errorf("trainer not found: %w", err)
	}
	return entity, err
}

// Save persists a Trainer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Trainer) error {
	specialties, err := json.Marshal(nonNil(entity.Specialties))
	if err != nil {
		return fmt.Errorf("encode specialties: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO trainer (id, account_id, name, bio, specialties, photo_url, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, bio=excluded.bio, specialties=excluded.specialties, photo_url=excluded.photo_url, updated_at=excluded.updated_at",
		entity.ID, entity.AccountID, entity.Name, entity.Bio, string(specialties), entity.PhotoURL, entity.UpdatedAt.Format(storage.TimeLayout),
	)
	return err
}

// Delete removes a Trainer and, by cascade, their awards.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM trainer WHERE id = ?", id)
	return err
}

// List retrieves all Trainers ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Trainer, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Trainer
	for rows.Next() {
		entity, err := scanTrainer(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanTrainer(scan func(dest ...any) error) (domain.Trainer, error) {
	var e domain.Trainer
	var specialties, updatedAt string
	if err := scan(&e.ID, &e.AccountID, &e.Name, &e.Bio, &specialties, &e.PhotoURL, &updatedAt); err != nil {
		return domain.Trainer{}, err
	}
	if specialties != "" {
		if err := json.Unmarshal([]byte(specialties), &e.Specialties); err != nil {
			return domain.Trainer{}, fmt.Errorf("decode specialties: %w", err)
		}
	}
	var err error
	if e.UpdatedAt, err = storage.ParseNullableTime(sql.NullString{String: updatedAt, Valid: true}); err != nil {
		return domain.Trainer{}, err
	}
	return e, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
