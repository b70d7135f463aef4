package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/trainer"
)

// TrainerStoreForRole defines the trainer store interface needed by ChangeRole.
type TrainerStoreForRole interface {
	GetByAccountID(ctx context.Context, accountID string) (trainer.Trainer, error)
	Save(ctx context.Context, t trainer.Trainer) error
}

// ChangeRoleInput carries input for the change role orchestrator.
type ChangeRoleInput struct {
	AccountID string
	AdminID   string
	Role      string
}

// ChangeRoleDeps holds dependencies for ChangeRole.
type ChangeRoleDeps struct {
	AccountStore AccountStoreForAdmin
	TrainerStore TrainerStoreForRole
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteChangeRole assigns a new role to an account.
// PRE: Role is one of account.ValidRoles
// POST: Account has the role; promoting to trainer creates an empty trainer profile if none exists
// INVARIANT: An admin cannot change their own role
func ExecuteChangeRole(ctx context.Context, input ChangeRoleInput, deps ChangeRoleDeps) (account.Account, error) {
	if !account.IsValidRole(input.Role) {
		return account.Account{}, account.ErrInvalidRole
	}
	if input.AccountID == input.AdminID {
		return account.Account{}, ErrSelfModeration
	}
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return account.Account{}, err
	}
	if acct.Role == input.Role {
		return acct, nil
	}

	previous := acct.Role
	acct.Role = input.Role
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	if input.Role == account.RoleTrainer {
		if _, err := deps.TrainerStore.GetByAccountID(ctx, acct.ID); err != nil {
			profile := trainer.Trainer{
				ID:        deps.GenerateID(),
				AccountID: acct.ID,
				Name:      acct.Name(),
				UpdatedAt: deps.Now(),
			}
			if err := deps.TrainerStore.Save(ctx, profile); err != nil {
				return account.Account{}, err
			}
		}
	}

	slog.Info("admin_event", "event", "role_changed", "account_id", acct.ID, "admin_id", input.AdminID, "from", previous, "to", input.Role)
	return acct, nil
}
