package testimonial

import (
	"context"

	domain "gymdesk/internal/domain/testimonial"
)

// Store persists Testimonial state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Testimonial, error)
	Save(ctx context.Context, value domain.Testimonial) error
	Delete(ctx context.Context, id string) error
	// ListByStatus returns all testimonials when status is empty.
	ListByStatus(ctx context.Context, status string) ([]domain.Testimonial, error)
}
