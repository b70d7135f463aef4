package trainer

import (
	"context"

	domain "gymdesk/internal/domain/trainer"
)

// AwardStore persists trainer awards.
type AwardStore interface {
	GetAwardByID(ctx context.Context, id string) (domain.Award, error)
	SaveAward(ctx context.Context, value domain.Award) error
	DeleteAward(ctx context.Context, id string) error
	ListAwards(ctx context.Context, trainerID string) ([]domain.Award, error)
}
