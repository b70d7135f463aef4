package page

import (
	"context"

	domain "gymdesk/internal/domain/page"
)

// Store persists static content pages keyed by slug.
type Store interface {
	GetBySlug(ctx context.Context, slug string) (domain.Page, error)
	Save(ctx context.Context, value domain.Page) error
	List(ctx context.Context) ([]domain.Page, error)
}
