package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/account"
)

// AccountStoreForProfile defines the store interface needed by UpdateProfile.
type AccountStoreForProfile interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// UpdateProfileInput carries the settings a user may change on their own account.
// Nil fields are left unchanged. NewPassword requires CurrentPassword.
type UpdateProfileInput struct {
	AccountID       string
	DisplayName     *string
	Phone           *string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	AccountStore AccountStoreForProfile
}

// ErrCurrentPasswordRequired is returned when a password change omits the current password.
var ErrCurrentPasswordRequired = errors.New("current password is required to set a new password")

// ExecuteUpdateProfile updates display name, phone and optionally the password.
// PRE: AccountID is the authenticated caller
// POST: Account is saved only if every change validates
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) (account.Account, error) {
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return account.Account{}, err
	}

	if input.DisplayName != nil {
		acct.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Phone != nil {
		acct.Phone = strings.TrimSpace(*input.Phone)
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}

	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			return account.Account{}, ErrCurrentPasswordRequired
		}
		if err := acct.CheckPassword(input.CurrentPassword); err != nil {
			return account.Account{}, err
		}
		if err := acct.SetPassword(input.NewPassword); err != nil {
			return account.Account{}, err
		}
		slog.Info("auth_event", "event", "password_changed", "account_id", acct.ID)
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}
	return acct, nil
}
