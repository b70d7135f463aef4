package trainer

import (
	"context"

	domain "gymdesk/internal/domain/trainer"
)

// Store persists Trainer profiles.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Trainer, error)
	GetByAccountID(ctx context.Context, accountID string) (domain.Trainer, error)
	Save(ctx context.Context, value domain.Trainer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Trainer, error)
}
