package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	emailAdapter "gymdesk/internal/adapters/email"
	"gymdesk/internal/domain/account"
)

// AccountStoreForAdmin defines the store interface needed by admin account orchestrators.
type AccountStoreForAdmin interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// BanAccountInput carries input for the ban and unban orchestrators.
type BanAccountInput struct {
	AccountID string
	AdminID   string
	Reason    string // ignored by unban
}

// BanAccountDeps holds dependencies for Ban and Unban.
// Sender may be nil, in which case no notification is sent.
type BanAccountDeps struct {
	AccountStore AccountStoreForAdmin
	Sender       emailAdapter.Sender
	GymName      string
	Now          func() time.Time
}

// ErrSelfModeration is returned when an admin targets their own account.
var ErrSelfModeration = errors.New("admins cannot change their own account this way")

// ExecuteBanAccount suspends an account and notifies its owner.
// PRE: AccountID and AdminID are non-empty
// POST: Account is banned; a failed notification is logged, never returned
func ExecuteBanAccount(ctx context.Context, input BanAccountInput, deps BanAccountDeps) (account.Account, error) {
	if input.AccountID == input.AdminID {
		return account.Account{}, ErrSelfModeration
	}
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return account.Account{}, err
	}
	if err := acct.Ban(input.Reason, deps.Now()); err != nil {
		return account.Account{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}
	slog.Info("admin_event", "event", "account_banned", "account_id", acct.ID, "admin_id", input.AdminID)

	notify(ctx, deps.Sender, acct, "Your account has been suspended", "ban", emailAdapter.MessageData{
		Gym: deps.GymName, Name: acct.Name(), Reason: acct.BanReason,
	})
	return acct, nil
}

// ExecuteUnbanAccount restores an account and notifies its owner.
// PRE: AccountID is non-empty
// POST: Account is no longer banned and its failed login counter is cleared
func ExecuteUnbanAccount(ctx context.Context, input BanAccountInput, deps BanAccountDeps) (account.Account, error) {
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return account.Account{}, err
	}
	if err := acct.Unban(); err != nil {
		return account.Account{}, err
	}
	acct.ResetFailedLogins()
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}
	slog.Info("admin_event", "event", "account_unbanned", "account_id", acct.ID, "admin_id", input.AdminID)

	notify(ctx, deps.Sender, acct, "Your account has been restored", "unban", emailAdapter.MessageData{
		Gym: deps.GymName, Name: acct.Name(),
	})
	return acct, nil
}

// notify sends a single templated email to acct, logging failures.
func notify(ctx context.Context, sender emailAdapter.Sender, acct account.Account, subject, tmpl string, data emailAdapter.MessageData) {
	if sender == nil {
		return
	}
	html, err := emailAdapter.Render(tmpl, data)
	if err != nil {
		slog.Error("email_render_failed", "template", tmpl, "error", err.Error())
		return
	}
	if _, err := sender.Send(ctx, emailAdapter.SendRequest{To: []string{acct.Email}, Subject: subject, HTML: html}); err != nil {
		slog.Warn("email_notify_failed", "template", tmpl, "account_id", acct.ID, "error", err.Error())
	}
}
