package testimonial

import (
	"errors"
	"strings"
	"time"
)

// Testimonial statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatuses contains all valid testimonial statuses.
var ValidStatuses = []string{StatusPending, StatusApproved, StatusRejected}

// Max length constants for user-editable fields.
const (
	MaxContentLength = 1000
	MinRating        = 1
	MaxRating        = 5
)

// Domain errors
var (
	ErrEmptyAuthor      = errors.New("testimonial author cannot be empty")
	ErrEmptyContent     = errors.New("testimonial content cannot be empty")
	ErrContentTooLong   = errors.New("testimonial content cannot exceed 1000 characters")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus    = errors.New("testimonial status must be one of: pending, approved, rejected")
	ErrAlreadyModerated = errors.New("testimonial has already been moderated")
)

// Testimonial is a member review shown on the public site once approved.
type Testimonial struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"` // AccountID
	AuthorName  string    `json:"author_name"`
	Content     string    `json:"content"`
	Rating      int       `json:"rating"`
	Status      string    `json:"status"`
	ModeratedBy string    `json:"moderated_by,omitempty"` // AccountID of the admin who approved or rejected
	CreatedAt   time.Time `json:"created_at"`
	ModeratedAt time.Time `json:"moderated_at,omitzero"`
}

// Validate checks if the Testimonial has valid data.
// PRE: Testimonial struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Testimonial) Validate() error {
	if strings.TrimSpace(t.AuthorID) == "" {
		return ErrEmptyAuthor
	}
	if strings.TrimSpace(t.Content) == "" {
		return ErrEmptyContent
	}
	if len(t.Content) > MaxContentLength {
		return ErrContentTooLong
	}
	if t.Rating < MinRating || t.Rating > MaxRating {
		return ErrInvalidRating
	}
	if !isValidStatus(t.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Approve publishes a pending testimonial.
// PRE: Status is pending
// POST: Status is approved, moderation fields set
func (t *Testimonial) Approve(adminID string, at time.Time) error {
	return t.moderate(StatusApproved, adminID, at)
}

// Reject hides a pending testimonial.
// PRE: Status is pending
// POST: Status is rejected, moderation fields set
func (t *Testimonial) Reject(adminID string, at time.Time) error {
	return t.moderate(StatusRejected, adminID, at)
}

// IsPublic reports whether the testimonial may be shown to visitors.
func (t *Testimonial) IsPublic() bool {
	return t.Status == StatusApproved
}

func (t *Testimonial) moderate(status, adminID string, at time.Time) error {
	if t.Status != StatusPending {
		return ErrAlreadyModerated
	}
	t.Status = status
	t.ModeratedBy = adminID
	t.ModeratedAt = at
	return nil
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
