package account

import (
	"context"

	domain "gymdesk/internal/domain/account"
)

// Store persists Account state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Account, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering, sorting and paging parameters for List operations.
// Limit and Offset are ignored by Count.
type ListFilter struct {
	Limit  int
	Offset int
	Role   string
	Search string // matched against email and display name
	Banned *bool
	Sort   string // one of SortColumns; defaults to created_at
	Desc   bool
}

// SortColumns maps the public sort keys accepted by List to column names.
var SortColumns = map[string]string{
	"created_at": "created_at",
	"email":      "email",
	"name":       "display_name",
	"role":       "role",
}
