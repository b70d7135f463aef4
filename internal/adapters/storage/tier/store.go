package tier

import (
	"context"

	domain "gymdesk/internal/domain/tier"
)

// Store persists membership Tier pricing.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Tier, error)
	Save(ctx context.Context, value domain.Tier) error
	List(ctx context.Context) ([]domain.Tier, error)
}
