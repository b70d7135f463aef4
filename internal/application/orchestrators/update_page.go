package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gymdesk/internal/domain/page"
)

// PageStoreForOrchestrator defines the store interface needed by UpdatePage.
type PageStoreForOrchestrator interface {
	Save(ctx context.Context, p page.Page) error
}

// UpdatePageInput carries input for the update page orchestrator.
type UpdatePageInput struct {
	Slug    string
	Title   string // defaults to the slug's standard title when empty
	Body    string // Markdown
	AdminID string
}

// UpdatePageDeps holds dependencies for UpdatePage.
type UpdatePageDeps struct {
	PageStore PageStoreForOrchestrator
	Now       func() time.Time
}

// ExecuteUpdatePage replaces the content of a static page.
// PRE: Slug is one of page.ValidSlugs
// POST: Page is saved with UpdatedBy and UpdatedAt set
func ExecuteUpdatePage(ctx context.Context, input UpdatePageInput, deps UpdatePageDeps) (page.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = page.DefaultTitles[input.Slug]
	}
	p := page.Page{
		Slug:      input.Slug,
		Title:     title,
		Body:      input.Body,
		UpdatedBy: input.AdminID,
		UpdatedAt: deps.Now(),
	}
	if err := p.Validate(); err != nil {
		return page.Page{}, err
	}
	if err := deps.PageStore.Save(ctx, p); err != nil {
		return page.Page{}, err
	}
	slog.Info("admin_event", "event", "page_updated", "slug", p.Slug, "admin_id", input.AdminID)
	return p, nil
}
