package page_test

import (
	"strings"
	"testing"

	"gymdesk/internal/domain/page"
)

// TestPage_Validate tests validation of Page.
func TestPage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       page.Page
		wantErr error
	}{
		{name: "valid about page", p: page.Page{Slug: page.SlugAboutUs, Title: "About Us", Body: "# Hello"}},
		{name: "empty body allowed", p: page.Page{Slug: page.SlugTermsOfService, Title: "Terms"}},
		{name: "unknown slug", p: page.Page{Slug: "careers", Title: "Careers"}, wantErr: page.ErrInvalidSlug},
		{name: "empty title", p: page.Page{Slug: page.SlugOurMission, Title: "  "}, wantErr: page.ErrEmptyTitle},
		{name: "title too long", p: page.Page{Slug: page.SlugOurMission, Title: strings.Repeat("t", 121)}, wantErr: page.ErrTitleTooLong},
		{name: "body too long", p: page.Page{Slug: page.SlugOurMission, Title: "Mission", Body: strings.Repeat("b", 50001)}, wantErr: page.ErrBodyTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); err != tt.wantErr {
				t.Errorf("Page.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestPlaceholder tests default titles for unwritten pages.
func TestPlaceholder(t *testing.T) {
	for _, slug := range page.ValidSlugs {
		p := page.Placeholder(slug)
		if err := p.Validate(); err != nil {
			t.Errorf("Placeholder(%q).Validate() error = %v", slug, err)
		}
	}
}
