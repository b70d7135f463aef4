package tier

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/tier"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new TierStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Tier by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Tier, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, monthly_cents, features, highlighted FROM tier WHERE id = ?", id)
	entity, err := scanTier(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Tier{}, fmt.Errorf("tier not found: %w", err)
	}
	return entity, err
}

// Save persists a Tier.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, e domain.Tier) error {
	features := e.Features
	if features == nil {
		features = []string{}
	}
	encoded, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	highlighted := 0
	if e.Highlighted {
		highlighted = 1
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO tier (id, name, monthly_cents, features, highlighted) VALUES (?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, monthly_cents=excluded.monthly_cents, features=excluded.features, highlighted=excluded.highlighted",
		e.ID, e.Name, e.MonthlyCents, string(encoded), highlighted,
	)
	return err
}

// List retrieves all Tiers cheapest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Tier, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, monthly_cents, features, highlighted FROM tier ORDER BY monthly_cents, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Tier
	for rows.Next() {
		entity, err := scanTier(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanTier(scan func(dest ...any) error) (domain.Tier, error) {
	var e domain.Tier
	var features string
	var highlighted int
	if err := scan(&e.ID, &e.Name, &e.MonthlyCents, &features, &highlighted); err != nil {
		return domain.Tier{}, err
	}
	e.Highlighted = highlighted == 1
	if features != "" {
		if err := json.Unmarshal([]byte(features), &e.Features); err != nil {
			return domain.Tier{}, fmt.Errorf("decode features: %w", err)
		}
	}
	return e, nil
}
