package page

import (
	"errors"
	"strings"
	"time"
)

// Page slugs. The set is fixed; admins edit content, not structure.
const (
	SlugAboutUs        = "about-us"
	SlugOurMission     = "our-mission"
	SlugTermsOfService = "terms-of-service"
)

// ValidSlugs contains all editable page slugs.
var ValidSlugs = []string{SlugAboutUs, SlugOurMission, SlugTermsOfService}

// DefaultTitles maps each slug to the title used when the page is first created.
var DefaultTitles = map[string]string{
	SlugAboutUs:        "About Us",
	SlugOurMission:     "Our Mission",
	SlugTermsOfService: "Terms of Service",
}

// Max length constants for user-editable fields.
const (
	MaxTitleLength = 120
	MaxBodyLength  = 50000
)

// Domain errors
var (
	ErrInvalidSlug  = errors.New("page must be one of: about-us, our-mission, terms-of-service")
	ErrEmptyTitle   = errors.New("page title cannot be empty")
	ErrTitleTooLong = errors.New("page title cannot exceed 120 characters")
	ErrBodyTooLong  = errors.New("page body cannot exceed 50000 characters")
)

// Page is a static content page. Body is Markdown.
type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedBy string    `json:"updated_by,omitempty"` // AccountID of the last editor
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the Page has valid data.
// PRE: Page struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Page) Validate() error {
	if !IsValidSlug(p.Slug) {
		return ErrInvalidSlug
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if len(p.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(p.Body) > MaxBodyLength {
		return ErrBodyTooLong
	}
	return nil
}

// Placeholder returns the empty page shown before an admin writes any content.
func Placeholder(slug string) Page {
	return Page{Slug: slug, Title: DefaultTitles[slug]}
}

// IsValidSlug reports whether slug is one of ValidSlugs.
func IsValidSlug(slug string) bool {
	for _, s := range ValidSlugs {
		if s == slug {
			return true
		}
	}
	return false
}
