package trainer

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength       = 100
	MaxBioLength        = 4000
	MaxSpecialtyLength  = 60
	MaxSpecialties      = 10
	MaxAwardTitleLength = 200
)

// MaxFavoriteAwards is how many awards a trainer can feature on their profile.
const MaxFavoriteAwards = 3

// Domain errors
var (
	ErrEmptyAccountID     = errors.New("account ID cannot be empty")
	ErrEmptyName          = errors.New("trainer name cannot be empty")
	ErrNameTooLong        = errors.New("trainer name cannot exceed 100 characters")
	ErrBioTooLong         = errors.New("bio cannot exceed 4000 characters")
	ErrTooManySpecialties = errors.New("a trainer can list at most 10 specialties")
	ErrSpecialtyTooLong   = errors.New("specialty cannot exceed 60 characters")
	ErrInvalidPhotoURL    = errors.New("photo URL must start with https://")
	ErrEmptyAwardTitle    = errors.New("award title cannot be empty")
	ErrAwardTitleTooLong  = errors.New("award title cannot exceed 200 characters")
	ErrInvalidAwardYear   = errors.New("award year must be between 1950 and next year")
	ErrTooManyFavorites   = errors.New("at most 3 awards can be favorited")
)

// Trainer is the public profile attached to a trainer account.
type Trainer struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"` // Markdown
	Specialties []string  `json:"specialties"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Award is an achievement listed on a trainer profile.
type Award struct {
	ID        string    `json:"id"`
	TrainerID string    `json:"trainer_id,omitempty"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the Trainer has valid data.
// PRE: Trainer struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Trainer) Validate() error {
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(t.Bio) > MaxBioLength {
		return ErrBioTooLong
	}
	if len(t.Specialties) > MaxSpecialties {
		return ErrTooManySpecialties
	}
	for _, s := range t.Specialties {
		if len(s) > MaxSpecialtyLength {
			return ErrSpecialtyTooLong
		}
	}
	if t.PhotoURL != "" && !strings.HasPrefix(t.PhotoURL, "https://") {
		return ErrInvalidPhotoURL
	}
	return nil
}

// NormalizeSpecialties trims, drops empties and de-duplicates case-insensitively.
func NormalizeSpecialties(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// Validate checks if the Award has valid data against the current year.
// PRE: Award struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Award) Validate(now time.Time) error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyAwardTitle
	}
	if len(a.Title) > MaxAwardTitleLength {
		return ErrAwardTitleTooLong
	}
	if a.Year < 1950 || a.Year > now.Year()+1 {
		return ErrInvalidAwardYear
	}
	return nil
}

// ToggleFavorite flips the favorite flag on awards[idx].
// Favoriting is refused once MaxFavoriteAwards are already favorited.
// PRE: idx is within awards
// POST: awards[idx].Favorite is flipped, or ErrTooManyFavorites
func ToggleFavorite(awards []Award, idx int) error {
	if awards[idx].Favorite {
		awards[idx].Favorite = false
		return nil
	}
	count := 0
	for _, a := range awards {
		if a.Favorite {
			count++
		}
	}
	if count >= MaxFavoriteAwards {
		return ErrTooManyFavorites
	}
	awards[idx].Favorite = true
	return nil
}
