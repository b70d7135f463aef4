package closure

import (
	"context"

	domain "gymdesk/internal/domain/closure"
)

// Store persists Closure state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Closure, error)
	Save(ctx context.Context, value domain.Closure) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Closure, error)
}
