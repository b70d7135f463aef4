package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gymdesk/internal/domain/account"
)

// AccountStoreForRegister defines the store interface needed by Register.
type AccountStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterInput carries input for self-service member registration.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	AccountStore AccountStoreForRegister
	GenerateID   func() string
	Now          func() time.Time
}

// ErrEmailTaken is returned when an account already uses the email.
var ErrEmailTaken = errors.New("an account with this email already exists")

// ExecuteRegister creates a member account.
// PRE: Password meets account.MinPasswordLength
// POST: A member account exists with a bcrypt hash; roles other than member are never self-assigned
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (account.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	acct := account.Account{
		ID:          deps.GenerateID(),
		Email:       email,
		Role:        account.RoleMember,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Phone:       strings.TrimSpace(input.Phone),
		CreatedAt:   deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if _, err := deps.AccountStore.GetByEmail(ctx, email); err == nil {
		return account.Account{}, ErrEmailTaken
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}
	slog.Info("auth_event", "event", "registered", "account_id", acct.ID, "email", email)
	return acct, nil
}
