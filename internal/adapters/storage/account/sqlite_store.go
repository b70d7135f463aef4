package account

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/account"
)

const selectColumns = "SELECT id, email, password_hash, role, display_name, phone, created_at, failed_logins, locked_until, banned_at, ban_reason FROM account"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AccountStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves an Account by email, case-insensitively.
// PRE: email is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE lower(email) = lower(?)", email)
	entity, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); created_at is never overwritten
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	fields := []string{"id", "email", "password_hash", "role", "display_name", "phone", "created_at", "failed_logins", "locked_until", "banned_at", "ban_reason"}
	updates := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "id" || f == "created_at" {
			continue
		}
		updates = append(updates, f+"=excluded."+f)
	}

	query := fmt.Sprintf(
		"INSERT INTO account (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(fields)), ", "),
		strings.Join(updates, ", "),
	)

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Email,
		entity.PasswordHash,
		entity.Role,
		entity.DisplayName,
		entity.Phone,
		entity.CreatedAt.Format(storage.TimeLayout),
		entity.FailedLogins,
		storage.NullableTime(entity.LockedUntil),
		storage.NullableTime(entity.BannedAt),
		entity.BanReason,
	)
	return err
}

// Delete removes an Account from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM account WHERE id = ?", id)
	return err
}

// List retrieves Accounts based on the filter.
// PRE: filter.Limit > 0
// POST: Returns matching entities in the requested order
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Account, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectColumns)

	where, args := whereClause(filter)
	queryBuilder.WriteString(where)

	col, ok := SortColumns[filter.Sort]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if filter.Desc {
		dir = "DESC"
	}
	fmt.Fprintf(&queryBuilder, " ORDER BY %s %s, id LIMIT ? OFFSET ?", col, dir)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Account
	for rows.Next() {
		entity, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of accounts matching the filter.
// PRE: none
// POST: Returns the total ignoring Limit and Offset
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := whereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account"+where, args...).Scan(&count)
	return count, err
}

func whereClause(filter ListFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Role != "" {
		conds = append(conds, "role = ?")
		args = append(args, filter.Role)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		conds = append(conds, "(lower(email) LIKE ? OR lower(display_name) LIKE ?)")
		like := "%" + strings.ToLower(q) + "%"
		args = append(args, like, like)
	}
	if filter.Banned != nil {
		if *filter.Banned {
			conds = append(conds, "banned_at IS NOT NULL")
		} else {
			conds = append(conds, "banned_at IS NULL")
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanAccount extracts an Account from a row scanner function.
func scanAccount(scan func(dest ...any) error) (domain.Account, error) {
	var a domain.Account
	var createdAt string
	var lockedUntil, bannedAt sql.NullString
	err := scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.DisplayName, &a.Phone,
		&createdAt, &a.FailedLogins, &lockedUntil, &bannedAt, &a.BanReason)
	if err != nil {
		return domain.Account{}, err
	}
	if a.CreatedAt, err = storage.ParseNullableTime(sql.NullString{String: createdAt, Valid: true}); err != nil {
		return domain.Account{}, err
	}
	if a.LockedUntil, err = storage.ParseNullableTime(lockedUntil); err != nil {
		return domain.Account{}, err
	}
	if a.BannedAt, err = storage.ParseNullableTime(bannedAt); err != nil {
		return domain.Account{}, err
	}
	return a, nil
}
