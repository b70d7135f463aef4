package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	emailAdapter "gymdesk/internal/adapters/email"
	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/testimonial"
)

// TestimonialStoreForOrchestrator defines the store interface needed by testimonial orchestrators.
type TestimonialStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (testimonial.Testimonial, error)
	Save(ctx context.Context, t testimonial.Testimonial) error
}

// AdminLister finds the accounts to notify about new submissions.
type AdminLister interface {
	ListAdmins(ctx context.Context) ([]account.Account, error)
}

// --- Submit Testimonial ---

// SubmitTestimonialInput carries input for the submit testimonial orchestrator.
type SubmitTestimonialInput struct {
	AuthorID string
	Content  string
	Rating   int
}

// SubmitTestimonialDeps holds dependencies for SubmitTestimonial.
// Admins and Sender may be nil.
type SubmitTestimonialDeps struct {
	AccountStore     AccountStoreForAdmin
	TestimonialStore TestimonialStoreForOrchestrator
	Admins           AdminLister
	Sender           emailAdapter.Sender
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteSubmitTestimonial records a pending testimonial and emails every admin.
// PRE: AuthorID is an authenticated, non-banned account
// POST: Testimonial is saved as pending and is not public
func ExecuteSubmitTestimonial(ctx context.Context, input SubmitTestimonialInput, deps SubmitTestimonialDeps) (testimonial.Testimonial, error) {
	author, err := deps.AccountStore.GetByID(ctx, input.AuthorID)
	if err != nil {
		return testimonial.Testimonial{}, err
	}
	t := testimonial.Testimonial{
		ID:         deps.GenerateID(),
		AuthorID:   author.ID,
		AuthorName: author.Name(),
		Content:    strings.TrimSpace(input.Content),
		Rating:     input.Rating,
		Status:     testimonial.StatusPending,
		CreatedAt:  deps.Now(),
	}
	if err := t.Validate(); err != nil {
		return testimonial.Testimonial{}, err
	}
	if err := deps.TestimonialStore.Save(ctx, t); err != nil {
		return testimonial.Testimonial{}, err
	}
	slog.Info("testimonial_event", "event", "submitted", "testimonial_id", t.ID, "author_id", t.AuthorID)

	notifyAdmins(ctx, deps, t)
	return t, nil
}

func notifyAdmins(ctx context.Context, deps SubmitTestimonialDeps, t testimonial.Testimonial) {
	if deps.Sender == nil || deps.Admins == nil {
		return
	}
	admins, err := deps.Admins.ListAdmins(ctx)
	if err != nil {
		slog.Warn("email_notify_failed", "template", "testimonial_submitted", "error", err.Error())
		return
	}
	html, err := emailAdapter.Render("testimonial_submitted", emailAdapter.MessageData{Name: t.AuthorName, Content: t.Content, Rating: t.Rating})
	if err != nil {
		slog.Error("email_render_failed", "template", "testimonial_submitted", "error", err.Error())
		return
	}
	reqs := make([]emailAdapter.SendRequest, 0, len(admins))
	for _, a := range admins {
		reqs = append(reqs, emailAdapter.SendRequest{To: []string{a.Email}, Subject: "New testimonial awaiting moderation", HTML: html})
	}
	if len(reqs) == 0 {
		return
	}
	if _, err := deps.Sender.SendBatch(ctx, reqs); err != nil {
		slog.Warn("email_notify_failed", "template", "testimonial_submitted", "error", err.Error())
	}
}

// --- Moderate Testimonial ---

// Moderation decisions.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ErrInvalidDecision is returned for anything other than approve or reject.
var ErrInvalidDecision = errors.New("decision must be approve or reject")

// ModerateTestimonialInput carries input for the moderate testimonial orchestrator.
type ModerateTestimonialInput struct {
	TestimonialID string
	AdminID       string
	Decision      string
}

// ModerateTestimonialDeps holds dependencies for ModerateTestimonial.
// AccountStore and Sender are only used to thank the author on approval and may be nil.
type ModerateTestimonialDeps struct {
	TestimonialStore TestimonialStoreForOrchestrator
	AccountStore     AccountStoreForAdmin
	Sender           emailAdapter.Sender
	GymName          string
	Now              func() time.Time
}

// ExecuteModerateTestimonial approves or rejects a pending testimonial.
// PRE: Testimonial is pending
// POST: Status is approved or rejected, ModeratedBy and ModeratedAt are set
func ExecuteModerateTestimonial(ctx context.Context, input ModerateTestimonialInput, deps ModerateTestimonialDeps) (testimonial.Testimonial, error) {
	t, err := deps.TestimonialStore.GetByID(ctx, input.TestimonialID)
	if err != nil {
		return testimonial.Testimonial{}, err
	}

	now := deps.Now()
	switch input.Decision {
	case DecisionApprove:
		err = t.Approve(input.AdminID, now)
	case DecisionReject:
		err = t.Reject(input.AdminID, now)
	default:
		return testimonial.Testimonial{}, ErrInvalidDecision
	}
	if err != nil {
		return testimonial.Testimonial{}, err
	}
	if err := deps.TestimonialStore.Save(ctx, t); err != nil {
		return testimonial.Testimonial{}, err
	}
	slog.Info("testimonial_event", "event", t.Status, "testimonial_id", t.ID, "admin_id", input.AdminID)

	if t.IsPublic() && deps.AccountStore != nil {
		if author, err := deps.AccountStore.GetByID(ctx, t.AuthorID); err == nil {
			notify(ctx, deps.Sender, author, "Your testimonial is live", "testimonial_approved", emailAdapter.MessageData{
				Gym: deps.GymName, Name: author.Name(),
			})
		}
	}
	return t, nil
}
